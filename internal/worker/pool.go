// Package worker provides the background task pool that migration runs are
// scheduled onto.
package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Task is a unit of background work. The context passed to it is the pool's
// process-lifetime context, never a request context: accepted tasks outlive
// the requests that submitted them.
type Task func(ctx context.Context)

// Pool runs submitted tasks on a fixed number of workers.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue capacity.
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < workers {
		queueSize = workers
	}
	return &Pool{workers: workers, tasks: make(chan Task, queueSize)}
}

// Start launches the workers. They run until ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	slog.Info("worker pool started", "workers", p.workers)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Submit enqueues a task. It reports false when the queue is full; the task
// is then dropped and the caller decides what that means.
func (p *Pool) Submit(task Task) bool {
	select {
	case p.tasks <- task:
		return true
	default:
		slog.Warn("worker pool queue full, task dropped")
		return false
	}
}

// Wait blocks until all workers have exited after their context was
// cancelled.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-p.tasks:
			task(ctx)
		}
	}
}
