package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrQueueFull is returned by Submit when the queue has no free slot
	ErrQueueFull = errors.New("task queue is full")
	// ErrStopped is returned by Submit after Stop
	ErrStopped = errors.New("worker pool is stopped")
)

// Task is a unit of background work. ctx is cancelled on task timeout or
// when the pool is stopped forcefully.
type Task func(ctx context.Context) error

// Config represents pool configuration
type Config struct {
	MaxWorkers  int           // maximum number of workers
	QueueSize   int           // task queue size
	TaskTimeout time.Duration // timeout for single task, 0 disables it
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxWorkers:  4,
		QueueSize:   64,
		TaskTimeout: 30 * time.Second,
	}
}

// Validate validates configuration
func (cfg *Config) Validate() error {
	if cfg.MaxWorkers < 1 {
		return errors.New("max workers must be greater than 0")
	}
	if cfg.QueueSize < 1 {
		return errors.New("queue size must be greater than 0")
	}
	if cfg.TaskTimeout < 0 {
		return errors.New("task timeout must be greater than or equal to 0")
	}
	return nil
}

// Metrics tracks pool's operational metrics
type Metrics struct {
	ActiveWorkers  atomic.Int64
	PendingTasks   atomic.Int64
	CompletedTasks atomic.Int64
	FailedTasks    atomic.Int64
}

// Pool runs submitted tasks on a fixed number of goroutines.
type Pool struct {
	cfg   Config
	tasks chan Task

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool

	onError func(error)
	metrics Metrics
}

// Option configures a Pool
type Option func(*Pool)

// WithErrorHandler sets the function receiving failed task errors
func WithErrorHandler(fn func(error)) Option {
	return func(p *Pool) {
		p.onError = fn
	}
}

// NewPool creates a new worker pool. Call Start before submitting.
func NewPool(cfg *Config, opts ...Option) *Pool {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		cfg:    *cfg,
		tasks:  make(chan Task, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.cfg.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Submit queues a task without blocking.
func (p *Pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrStopped
	}
	p.metrics.PendingTasks.Add(1)
	select {
	case p.tasks <- t:
		return nil
	default:
		p.metrics.PendingTasks.Add(-1)
		return ErrQueueFull
	}
}

// Stop stops accepting tasks and waits for queued ones to finish. When ctx
// expires first, running tasks are cancelled and ctx's error is returned.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		p.run(t)
	}
}

func (p *Pool) run(t Task) {
	p.metrics.PendingTasks.Add(-1)
	p.metrics.ActiveWorkers.Add(1)
	defer p.metrics.ActiveWorkers.Add(-1)

	ctx, cancel := p.ctx, context.CancelFunc(func() {})
	if p.cfg.TaskTimeout > 0 {
		ctx, cancel = context.WithTimeout(p.ctx, p.cfg.TaskTimeout)
	}
	defer cancel()

	if err := safeRun(ctx, t); err != nil {
		p.metrics.FailedTasks.Add(1)
		if p.onError != nil {
			p.onError(err)
		}
		return
	}
	p.metrics.CompletedTasks.Add(1)
}

func safeRun(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return t(ctx)
}

// GetMetrics returns the current metrics
func (p *Pool) GetMetrics() map[string]int64 {
	return map[string]int64{
		"active_workers":  p.metrics.ActiveWorkers.Load(),
		"pending_tasks":   p.metrics.PendingTasks.Load(),
		"completed_tasks": p.metrics.CompletedTasks.Load(),
		"failed_tasks":    p.metrics.FailedTasks.Load(),
	}
}

// IsBusy returns whether every worker is busy or the queue is full
func (p *Pool) IsBusy() bool {
	return p.metrics.ActiveWorkers.Load() >= int64(p.cfg.MaxWorkers) ||
		p.metrics.PendingTasks.Load() >= int64(p.cfg.QueueSize)
}
