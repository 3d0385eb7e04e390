package service

import (
	"context"
	"sync"
	"time"

	"github.com/bornholm/producthub/internal/adapter/memory/collection"
	"github.com/bornholm/producthub/internal/core/model"
)

type publishedEvent struct {
	Event   string
	Payload any
}

type recordingNotifier struct {
	mutex  sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(ctx context.Context, event string, payload any) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.events = append(n.events, publishedEvent{Event: event, Payload: payload})
}

func (n *recordingNotifier) Events() []publishedEvent {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return append([]publishedEvent{}, n.events...)
}

func (n *recordingNotifier) Last() publishedEvent {
	events := n.Events()
	if len(events) == 0 {
		return publishedEvent{}
	}
	return events[len(events)-1]
}

type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func newTestFeedbackManager() (*FeedbackManager, *recordingNotifier, *fakeClock) {
	notifier := &recordingNotifier{}
	clock := newFakeClock()
	manager := NewFeedbackManager(
		collection.NewStore[*model.Feedback](),
		WithNotifier(notifier),
		WithClock(clock.Now),
	)
	return manager, notifier, clock
}

func ptr[T any](v T) *T {
	return &v
}
