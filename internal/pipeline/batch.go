// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdiddy/coalseam/pkg/types"
)

// Job is one dataset file to assess in a batch.
type Job struct {
	Path    string
	Request Request
}

// Result is the outcome of one Job. Exactly one of Report and Err is set.
type Result struct {
	Job    Job
	Report *types.AssessmentReport
	Err    error
}

// LoadFunc reads a dataset from a path.
type LoadFunc func(path string) (*types.Dataset, error)

// Batch assesses jobs with at most cfg.Batch.Workers running at once.
// Results are returned in job order. Jobs not started before ctx is
// cancelled report the context error.
func (p *Pipeline) Batch(ctx context.Context, jobs []Job, load LoadFunc) []Result {
	workers := p.cfg.Batch.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]Result, len(jobs))
	queue := make(chan int, workers*2)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = p.run(ctx, jobs[i], load)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()
	return results
}

func (p *Pipeline) run(ctx context.Context, job Job, load LoadFunc) Result {
	if err := ctx.Err(); err != nil {
		return Result{Job: job, Err: err}
	}

	ds, err := load(job.Path)
	if err != nil {
		p.log.WithField("path", job.Path).WithError(err).Warn("loading dataset")
		return Result{Job: job, Err: fmt.Errorf("loading %s: %w", job.Path, err)}
	}

	report, err := p.Assess(ds, job.Request)
	if err != nil {
		return Result{Job: job, Err: err}
	}
	return Result{Job: job, Report: report}
}
