package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muthuvel/santhai/pkg/queue"
)

type confirmJob struct {
	OrderNumber string
	handled     *atomic.Int32
}

func (j *confirmJob) Handle() error {
	if j.handled != nil {
		j.handled.Add(1)
	}
	return nil
}

type flakyProviderJob struct {
	attempts *atomic.Int32
}

func (j *flakyProviderJob) Handle() error {
	if j.attempts != nil {
		j.attempts.Add(1)
	}
	return errors.New("provider unreachable")
}

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	_ = cancel
	queue.StartWorkers(ctx, 2)

	queue.Register("*queue_test.confirmJob", func() queue.Job {
		return &confirmJob{handled: &atomic.Int32{}}
	})
	queue.Register("*queue_test.flakyProviderJob", func() queue.Job {
		return &flakyProviderJob{attempts: &atomic.Int32{}}
	})
}

func TestDispatchReachesWorker(t *testing.T) {
	if err := queue.Dispatch(&confirmJob{OrderNumber: "SAN202608310001", handled: &atomic.Int32{}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
}

func TestExhaustedJobLandsInFailedList(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	if err := queue.Dispatch(&flakyProviderJob{attempts: &atomic.Int32{}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	// one attempt, one second of backoff, plus slack
	time.Sleep(2500 * time.Millisecond)

	if len(queue.FailedJobs()) == 0 {
		t.Error("expected the exhausted job in FailedJobs")
	}
}

func TestConcurrentDispatch(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&confirmJob{OrderNumber: "SAN202608310002", handled: &atomic.Int32{}}) //nolint:errcheck
		}()
	}
	wg.Wait()
}
