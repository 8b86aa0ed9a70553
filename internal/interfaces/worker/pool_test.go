package worker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"inboxassist/internal/infrastructure/logger"
)

type recordingExec struct {
	mu    sync.Mutex
	seen  []string
	err   error
	delay time.Duration
}

func (r *recordingExec) Execute(_ context.Context, gmailID string) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, gmailID)
	return r.err
}

func (r *recordingExec) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.seen...)
	sort.Strings(out)
	return out
}

func TestPoolProcessesAllJobs(t *testing.T) {
	exec := &recordingExec{}
	p := NewPool(logger.NewNop(), Config{Workers: 3, QueueSize: 10}, exec)

	ctx := context.Background()
	p.Start(ctx)

	for _, id := range []string{"c", "a", "b"} {
		if err := p.Submit(ctx, EmailJob{GmailID: id}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	p.Shutdown(ctx)

	got := exec.ids()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("processed = %v", got)
	}
}

func TestPoolContinuesAfterError(t *testing.T) {
	exec := &recordingExec{err: errors.New("boom")}
	p := NewPool(logger.NewNop(), Config{Workers: 1}, exec)

	ctx := context.Background()
	p.Start(ctx)
	_ = p.Submit(ctx, EmailJob{GmailID: "1"})
	_ = p.Submit(ctx, EmailJob{GmailID: "2"})
	p.Shutdown(ctx)

	if got := exec.ids(); len(got) != 2 {
		t.Errorf("processed = %v, want both jobs", got)
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := NewPool(logger.NewNop(), Config{Workers: 1}, &recordingExec{})
	ctx := context.Background()
	p.Start(ctx)
	p.Shutdown(ctx)

	if err := p.Submit(ctx, EmailJob{GmailID: "x"}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("err = %v, want ErrPoolClosed", err)
	}

	// Shutdown is idempotent.
	p.Shutdown(ctx)
}

func TestSubmitRespectsContextWhenFull(t *testing.T) {
	// Not started: the queue of one fills and stays full.
	p := NewPool(logger.NewNop(), Config{Workers: 1, QueueSize: 1}, &recordingExec{})
	if err := p.Submit(context.Background(), EmailJob{GmailID: "1"}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := p.Submit(ctx, EmailJob{GmailID: "2"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestPoolRateLimit(t *testing.T) {
	exec := &recordingExec{}
	p := NewPool(logger.NewNop(), Config{Workers: 4, RatePerSec: 20, QueueSize: 10}, exec)

	ctx := context.Background()
	start := time.Now()
	p.Start(ctx)
	for i := 0; i < 5; i++ {
		_ = p.Submit(ctx, EmailJob{GmailID: string(rune('a' + i))})
	}
	p.Shutdown(ctx)

	// Burst of one, then 50ms per job: at least 4 waits.
	if elapsed := time.Since(start); elapsed < 180*time.Millisecond {
		t.Errorf("elapsed %v, rate limit not applied", elapsed)
	}
}

func TestShutdownDrainsQueueAfterCancel(t *testing.T) {
	exec := &recordingExec{delay: 5 * time.Millisecond}
	p := NewPool(logger.NewNop(), Config{Workers: 1, QueueSize: 10}, exec)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	for i := 0; i < 10; i++ {
		if err := p.Submit(ctx, EmailJob{GmailID: string(rune('a' + i))}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	// A signal arrives before the queue is empty.
	cancel()
	p.Shutdown(ctx)

	if got := exec.ids(); len(got) != 10 {
		t.Errorf("processed %d of 10 queued jobs", len(got))
	}
}

type blockingExec struct {
	started chan struct{}
	aborted chan struct{}
}

func (b *blockingExec) Execute(ctx context.Context, _ string) error {
	close(b.started)
	<-ctx.Done()
	close(b.aborted)
	return ctx.Err()
}

func TestShutdownDrainTimeoutAbortsJobs(t *testing.T) {
	exec := &blockingExec{started: make(chan struct{}), aborted: make(chan struct{})}
	p := NewPool(logger.NewNop(), Config{Workers: 1, DrainTimeout: 20 * time.Millisecond}, exec)

	ctx := context.Background()
	p.Start(ctx)
	if err := p.Submit(ctx, EmailJob{GmailID: "stuck"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-exec.started

	done := make(chan struct{})
	go func() {
		p.Shutdown(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the drain timeout")
	}

	select {
	case <-exec.aborted:
	default:
		t.Error("running job was not cancelled on drain timeout")
	}
}

func TestShutdownNotBlockedByPendingSubmit(t *testing.T) {
	// Not started: the queue of one fills and stays full.
	p := NewPool(logger.NewNop(), Config{Workers: 1, QueueSize: 1}, &recordingExec{})
	if err := p.Submit(context.Background(), EmailJob{GmailID: "1"}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	submitErr := make(chan error, 1)
	go func() {
		submitErr <- p.Submit(context.Background(), EmailJob{GmailID: "2"})
	}()
	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		p.Shutdown(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown blocked behind a Submit waiting on a full queue")
	}

	if err := <-submitErr; !errors.Is(err, ErrPoolClosed) {
		t.Errorf("pending Submit err = %v, want ErrPoolClosed", err)
	}
}
