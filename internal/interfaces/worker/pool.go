package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"inboxassist/internal/infrastructure/logger"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// DefaultDrainTimeout bounds how long Shutdown keeps processing queued jobs.
const DefaultDrainTimeout = 30 * time.Second

type EmailJob struct {
	GmailID string
}

// Executor processes one message. The route-email use case satisfies it.
type Executor interface {
	Execute(ctx context.Context, gmailID string) error
}

type Config struct {
	Workers      int
	RatePerSec   float64
	QueueSize    int
	DrainTimeout time.Duration
}

type Pool struct {
	l            logger.Logger
	workers      int
	jobs         chan EmailJob
	exec         Executor
	limiter      *rate.Limiter
	drainTimeout time.Duration
	wg           sync.WaitGroup

	// runCtx outlives the caller's ctx so queued jobs survive a signal;
	// cancelRun aborts them once the drain timeout expires.
	runCtx    context.Context
	cancelRun context.CancelFunc

	mu         sync.Mutex
	closed     bool
	done       chan struct{}
	submitters sync.WaitGroup
}

func NewPool(l logger.Logger, cfg Config, exec Executor) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = DefaultDrainTimeout
	}

	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}

	return &Pool{
		l:            l,
		workers:      cfg.Workers,
		jobs:         make(chan EmailJob, cfg.QueueSize),
		exec:         exec,
		limiter:      rate.NewLimiter(limit, 1),
		drainTimeout: cfg.DrainTimeout,
		done:         make(chan struct{}),
	}
}

// Start launches the workers. They keep running after ctx is done and stop
// only once Shutdown has drained the queue.
func (p *Pool) Start(ctx context.Context) {
	p.runCtx, p.cancelRun = context.WithCancel(context.WithoutCancel(ctx))

	p.l.Infof(ctx, "Worker pool started with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Submit queues a job. It blocks while the queue is full, until ctx is done
// or the pool shuts down.
func (p *Pool) Submit(ctx context.Context, job EmailJob) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.submitters.Add(1)
	p.mu.Unlock()
	defer p.submitters.Done()

	select {
	case p.jobs <- job:
		return nil
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and processes what is already queued, for at
// most the drain timeout. ctx is used for logging only: callers usually pass
// an already cancelled signal context.
func (p *Pool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	// No sender is left once in-flight Submits return, so closing is safe.
	p.submitters.Wait()
	close(p.jobs)

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(p.drainTimeout):
		p.l.Warnf(ctx, "Worker pool drain timed out after %s, dropping %d queued job(s)", p.drainTimeout, len(p.jobs))
		p.cancelRun()
		<-drained
	}

	if p.cancelRun != nil {
		p.cancelRun()
	}
	p.l.Info(ctx, "Worker pool shut down")
}

func (p *Pool) worker(workerID int) {
	defer p.wg.Done()

	for job := range p.jobs {
		if p.runCtx.Err() != nil {
			continue
		}

		// Gmail API quota is per user, shared by all workers.
		if err := p.limiter.Wait(p.runCtx); err != nil {
			continue
		}

		if err := p.exec.Execute(p.runCtx, job.GmailID); err != nil {
			p.l.Errorf(p.runCtx, "[worker %d] Error processing %s: %v", workerID, job.GmailID, err)
		}
	}
}
