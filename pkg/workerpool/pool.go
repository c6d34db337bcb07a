// Package workerpool provides a bounded worker pool for generating many start
// scripts concurrently. Jobs share nothing, so the pool only limits how many
// run at once.
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

// Job is one script generation request.
type Job struct {
	// Source names where the descriptor came from, for reporting.
	Source string

	Descriptor launch.Descriptor
	Platform   launch.Platform
}

// Output is what an executor produced for a job.
type Output struct {
	// Path is where the script was written, if it was written.
	Path string

	// Script is the rendered script.
	Script []byte

	// Duration is the wall-clock time the job took.
	Duration time.Duration
}

// Result wraps the output of a job along with the job that produced it.
type Result struct {
	Job    Job
	Output Output
	Err    error
}

// ExecutorFunc is the function signature used to execute a job.
// This abstraction allows injecting a mock executor for testing.
type ExecutorFunc func(ctx context.Context, job Job) (Output, error)

// Option configures a Pool.
type Option func(*Pool)

// WithLogger logs job start and completion at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// Pool manages a bounded set of workers that process Jobs.
type Pool struct {
	concurrency int
	executor    ExecutorFunc
	logger      *log.Logger
	jobs        chan Job
	results     chan Result
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	startOnce   sync.Once
}

// NewPool creates a worker pool with the given concurrency limit.
// If concurrency <= 0, it defaults to runtime.NumCPU().
// The executor function is used to process each job.
func NewPool(ctx context.Context, concurrency int, executor ExecutorFunc, opts ...Option) *Pool {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)

	p := &Pool{
		concurrency: concurrency,
		executor:    executor,
		jobs:        make(chan Job, concurrency*2),
		results:     make(chan Result, concurrency*2),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// start launches the worker goroutines (called once).
func (p *Pool) start() {
	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	// Close results channel when all workers finish.
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

// worker pulls jobs from the channel and executes them.
func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		select {
		case <-p.ctx.Done():
			p.results <- Result{
				Job: job,
				Err: p.ctx.Err(),
			}
		default:
			if p.logger != nil {
				p.logger.Debug("generating", "source", job.Source, "platform", job.Platform)
			}
			start := time.Now()
			output, err := p.executor(p.ctx, job)
			if output.Duration == 0 {
				output.Duration = time.Since(start)
			}
			if p.logger != nil {
				p.logger.Debug("generated", "source", job.Source, "platform", job.Platform, "duration", output.Duration, "err", err)
			}
			p.results <- Result{
				Job:    job,
				Output: output,
				Err:    err,
			}
		}
	}
}

// Submit adds a job to the work queue. It starts workers on first call.
// Blocks if the job buffer is full.
func (p *Pool) Submit(job Job) {
	p.startOnce.Do(p.start)
	p.jobs <- job
}

// Results returns the channel from which completed results can be read.
// The channel is closed after Shutdown completes.
func (p *Pool) Results() <-chan Result {
	p.startOnce.Do(p.start)
	return p.results
}

// Shutdown signals that no more jobs will be submitted.
// It closes the job channel and returns immediately; the results channel is
// closed once in-flight work finishes.
func (p *Pool) Shutdown() {
	p.startOnce.Do(p.start)
	close(p.jobs)
}

// Cancel terminates the pool context, causing workers to abort pending jobs.
func (p *Pool) Cancel() {
	p.cancel()
}

// Run submits every job, shuts the pool down and collects all results. It
// drains results while submitting so a full buffer never blocks.
func (p *Pool) Run(jobs []Job) []Result {
	go func() {
		for _, job := range jobs {
			p.Submit(job)
		}
		p.Shutdown()
	}()

	results := make([]Result, 0, len(jobs))
	for r := range p.Results() {
		results = append(results, r)
	}
	p.cancel()
	return results
}
