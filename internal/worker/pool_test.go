package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(2, 8)
	p.Start(ctx)

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		ok := p.Submit(func(context.Context) {
			defer wg.Done()
			ran.Add(1)
		})
		if !ok {
			t.Fatalf("submit %d rejected", i)
		}
	}
	wg.Wait()

	if got := ran.Load(); got != 5 {
		t.Errorf("tasks run = %d, want 5", got)
	}
}

func TestPool_SubmitRejectsWhenQueueFull(t *testing.T) {
	// Not started: nothing drains the queue.
	p := NewPool(1, 2)
	for i := 0; i < 2; i++ {
		if !p.Submit(func(context.Context) {}) {
			t.Fatalf("submit %d should fit in the queue", i)
		}
	}
	if p.Submit(func(context.Context) {}) {
		t.Error("submit to a full queue should report false")
	}
}

func TestPool_WaitReturnsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := NewPool(3, 3)
	p.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
}

func TestNewPool_ClampsWorkersAndQueue(t *testing.T) {
	p := NewPool(0, -1)
	if p.workers != 1 {
		t.Errorf("workers = %d, want 1", p.workers)
	}
	if cap(p.tasks) != 1 {
		t.Errorf("queue capacity = %d, want 1", cap(p.tasks))
	}
}

func TestPool_TaskReceivesPoolContext(t *testing.T) {
	type key struct{}
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "pool"))
	defer cancel()

	p := NewPool(1, 1)
	p.Start(ctx)

	got := make(chan any, 1)
	p.Submit(func(taskCtx context.Context) {
		got <- taskCtx.Value(key{})
	})

	select {
	case v := <-got:
		if v != "pool" {
			t.Errorf("task context value = %v, want %q", v, "pool")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}
