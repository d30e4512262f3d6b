package task

import "context"

// Job is a unit of periodic background work.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Run performs one pass. It should return promptly once ctx is done.
	Run(ctx context.Context) error
}

type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

// NewJob wraps a function as a named Job.
func NewJob(name string, fn func(ctx context.Context) error) Job {
	return funcJob{name: name, fn: fn}
}
