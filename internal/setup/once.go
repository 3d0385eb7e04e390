package setup

import (
	"context"
	"sync"

	"github.com/bornholm/producthub/internal/config"
)

// createFromConfigOnce memoizes the first result of factory, error included.
func createFromConfigOnce[T any](factory func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = factory(ctx, conf)
		})

		return value, err
	}
}
