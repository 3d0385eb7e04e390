package port

import "context"

// Notifier broadcasts change events to the connected clients. Delivery is
// best effort and never fails the caller.
type Notifier interface {
	Publish(ctx context.Context, event string, payload any)
}

type NotifierFunc func(ctx context.Context, event string, payload any)

// Publish implements Notifier.
func (fn NotifierFunc) Publish(ctx context.Context, event string, payload any) {
	fn(ctx, event, payload)
}

var NoopNotifier Notifier = NotifierFunc(func(ctx context.Context, event string, payload any) {})
