package workerpool_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muthuvel/santhai/pkg/workerpool"
)

func TestSubmitRunsEveryTask(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const recipients = 120
	var sent atomic.Int64

	var wg sync.WaitGroup
	wg.Add(recipients)

	for i := 0; i < recipients; i++ {
		if err := pool.SubmitWait(func() {
			defer wg.Done()
			sent.Add(1)
		}); err != nil {
			t.Fatalf("SubmitWait: %v", err)
		}
	}

	wg.Wait()

	if got := sent.Load(); got != recipients {
		t.Errorf("ran %d of %d tasks", got, recipients)
	}
}

func TestSubmitRejectsWhenQueueFull(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	started := make(chan struct{})

	_ = pool.SubmitWait(func() {
		close(started)
		<-blocker
	})
	<-started

	// The buffer holds twice the worker count, so two more fit.
	_ = pool.Submit(func() {})
	_ = pool.Submit(func() {})

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolFull) {
		t.Errorf("expected ErrPoolFull, got %v", err)
	}

	close(blocker)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)

	_ = pool.SubmitWait(func() {
		defer wg.Done()
		panic("send exploded")
	})

	wg.Wait()

	done := make(chan struct{})
	_ = pool.SubmitWait(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never ran another task after a panic")
	}
}

func TestShutdownDrainsCleanly(t *testing.T) {
	pool := workerpool.New(10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		_ = pool.SubmitWait(func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
		})
	}

	wg.Wait()
	pool.Shutdown()
}
