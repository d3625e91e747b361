package setup

import (
	"context"
	"sync"

	"github.com/aldemarvin/extractor/internal/config"
	"github.com/pkg/errors"
)

type factoryFunc[T any] func(ctx context.Context, conf *config.Config) (T, error)

// createFromConfigOnce memoizes a config-driven factory so wiring code can
// reference the same dependency from multiple places without re-creating it.
func createFromConfigOnce[T any](fn factoryFunc[T]) factoryFunc[T] {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = fn(ctx, conf)
		})
		if err != nil {
			var zero T
			return zero, errors.WithStack(err)
		}

		return value, nil
	}
}
