package worker

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/logging/logger"
)

// ProviderSet is the wire provider set for the worker package.
var ProviderSet = wire.NewSet(ProvidePool)

// ProvidePool creates and starts a pool from the worker configuration.
// Failed tasks are logged. The cleanup function drains the queue, waiting
// at most 30 seconds.
func ProvidePool(cfg *config.Worker, l *logger.Logger) (*Pool, func(), error) {
	c := DefaultConfig()
	if cfg != nil {
		c = &Config{
			MaxWorkers:  cfg.MaxWorkers,
			QueueSize:   cfg.QueueSize,
			TaskTimeout: cfg.TaskTimeout,
		}
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	pool := NewPool(c, WithErrorHandler(func(err error) {
		l.Error(context.Background(), "background task failed: ", err)
	}))
	pool.Start()

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := pool.Stop(ctx); err != nil {
			l.Warnf(context.Background(), "worker pool stopped before draining: %v", err)
		}
	}

	return pool, cleanup, nil
}
