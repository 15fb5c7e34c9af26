package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) Err() error {
	return r.err
}

type stubJob struct {
	duration time.Duration
	fail     bool
	ran      *int32
}

func (j *stubJob) Run(ctx context.Context) Result {
	if j.ran != nil {
		atomic.AddInt32(j.ran, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &stubResult{err: errors.New("job failed")}
	}
	return &stubResult{}
}

func TestNewPool_MinimumOneWorker(t *testing.T) {
	for _, workers := range []int{0, -1} {
		p := NewPool(workers)
		if p.workers != 1 {
			t.Errorf("Expected 1 worker for input %d, got %d", workers, p.workers)
		}
	}

	if p := NewPool(5); p.workers != 5 {
		t.Errorf("Expected 5 workers, got %d", p.workers)
	}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var ran int32
	p := NewPool(3)
	p.Start()

	for i := 0; i < 10; i++ {
		p.Submit(&stubJob{ran: &ran})
	}
	results := p.Wait()

	if got := atomic.LoadInt32(&ran); got != 10 {
		t.Errorf("Expected 10 jobs run, got %d", got)
	}
	if len(results) != 10 {
		t.Errorf("Expected 10 results, got %d", len(results))
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	p := NewPool(2)
	p.Start()

	p.Submit(&stubJob{})
	p.Submit(&stubJob{fail: true})
	p.Submit(&stubJob{fail: true})
	results := p.Wait()

	failures := 0
	for _, r := range results {
		if r.Err() != nil {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("Expected 2 failed results, got %d", failures)
	}
}

func TestPool_ShutdownCancelsJobs(t *testing.T) {
	p := NewPool(1)
	p.Start()

	p.Submit(&stubJob{duration: 5 * time.Second})

	done := make(chan struct{})
	go func() {
		p.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected shutdown to cancel the in-flight job promptly")
	}
}
