// Package worker provides a fixed size goroutine pool for background
// tasks with a bounded queue, per task timeouts and graceful draining.
package worker
