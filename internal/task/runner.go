package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrRunnerStarted is returned when a job is scheduled after Start.
var ErrRunnerStarted = errors.New("runner already started")

type scheduledJob struct {
	job      Job
	interval time.Duration
}

// Runner runs scheduled jobs on their own tickers. A job never overlaps with
// itself: the next tick is only observed after the previous run returned.
type Runner struct {
	jobs       []scheduledJob
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	started    bool
	logger     *slog.Logger
	errHandler func(job Job, err error)
}

// NewRunner creates a Runner with no jobs.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")
	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger,
		errHandler: func(job Job, err error) {
			logger.Error("job execution failed",
				"job", job.Name(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function.
func (r *Runner) SetErrorHandler(handler func(job Job, err error)) {
	r.errHandler = handler
}

// Schedule registers job to run every interval once the runner starts.
func (r *Runner) Schedule(job Job, interval time.Duration) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}
	if interval <= 0 {
		return fmt.Errorf("interval for job %s must be positive", job.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrRunnerStarted
	}
	r.jobs = append(r.jobs, scheduledJob{job: job, interval: interval})
	return nil
}

// Start launches one goroutine per scheduled job. Each job runs once
// immediately and then on every tick.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrRunnerStarted
	}
	r.started = true

	for _, sj := range r.jobs {
		r.wg.Add(1)
		go r.loop(sj)
	}
	r.logger.Info("task runner started", "job_count", len(r.jobs))
	return nil
}

// Stop cancels running jobs and waits for their goroutines to exit.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	r.logger.Info("task runner stopped")
}

func (r *Runner) loop(sj scheduledJob) {
	defer r.wg.Done()

	ticker := time.NewTicker(sj.interval)
	defer ticker.Stop()

	r.runOnce(sj.job)
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(sj.job)
		}
	}
}

func (r *Runner) runOnce(job Job) {
	if r.ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := job.Run(r.ctx); err != nil {
		if r.ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return
		}
		r.errHandler(job, err)
		return
	}
	r.logger.Debug("job completed",
		"job", job.Name(),
		"duration_ms", time.Since(start).Milliseconds())
}
