package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Worker background job pool config struct
type Worker struct {
	MaxWorkers  int
	QueueSize   int
	TaskTimeout time.Duration
}

func getWorkerConfig(v *viper.Viper) (*Worker, error) {
	w := &Worker{
		MaxWorkers:  getIntOrDefault(v, "worker.max_workers", 4),
		QueueSize:   getIntOrDefault(v, "worker.queue_size", 64),
		TaskTimeout: 30 * time.Second,
	}
	if v.IsSet("worker.task_timeout") {
		w.TaskTimeout = v.GetDuration("worker.task_timeout")
	}

	if w.MaxWorkers < 1 || w.QueueSize < 1 {
		return nil, fmt.Errorf("worker.max_workers and worker.queue_size must be positive, got %d and %d", w.MaxWorkers, w.QueueSize)
	}
	return w, nil
}
