// Package worker runs independent jobs on a bounded set of goroutines.
// Jobs are swatch renders or horizontal image bands; the pool does not care.
package worker

import (
	"context"
	"sync"
	"time"
)

// Processor handles one job. The returned string is a job-specific artifact
// such as an output path; it may be empty.
type Processor[T any] interface {
	Process(ctx context.Context, job T) (string, error)
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc[T any] func(ctx context.Context, job T) (string, error)

func (f ProcessorFunc[T]) Process(ctx context.Context, job T) (string, error) {
	return f(ctx, job)
}

// Result is the outcome of a single job.
type Result[T any] struct {
	Job     T
	Path    string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each job completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config[T any] struct {
	Workers    int
	Processor  Processor[T]
	OnProgress ProgressFunc
}

// Pool processes jobs in parallel.
type Pool[T any] struct {
	workers    int
	processor  Processor[T]
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New[T any](cfg Config[T]) *Pool[T] {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool[T]{
		workers:    workers,
		processor:  cfg.Processor,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all jobs and returns one result per job, in completion order.
// It blocks until every job has a result. Once ctx is cancelled the remaining
// jobs are not processed and report ctx.Err().
func (p *Pool[T]) Run(ctx context.Context, jobs []T) []Result[T] {
	if len(jobs) == 0 {
		return nil
	}

	jobCh := make(chan T, len(jobs))
	resultCh := make(chan Result[T], len(jobs))

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)

	var wg sync.WaitGroup
	for i := 0; i < min(p.workers, len(jobs)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, jobCh, resultCh)
		}()
	}

	results := make([]Result[T], 0, len(jobs))
	done := make(chan struct{})

	go func() {
		var completed, failed int
		for result := range resultCh {
			results = append(results, result)

			completed++
			if result.Err != nil {
				failed++
			}
			if p.onProgress != nil {
				p.onProgress(completed, len(jobs), failed)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool[T]) worker(ctx context.Context, jobs <-chan T, results chan<- Result[T]) {
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- Result[T]{Job: job, Err: err}
			continue
		}

		start := time.Now()
		path, err := p.processor.Process(ctx, job)

		results <- Result[T]{
			Job:     job,
			Path:    path,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}

// FirstError returns the first failed result's error, if any.
func FirstError[T any](results []Result[T]) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
