package algorithm

import (
	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/internal/parallel"
	"github.com/gogpu/plotgen/noise"
)

// Job is one independent generation request.
type Job struct {
	ID     string
	Params Params
	Seed   uint64
	Bounds plotgen.Bounds
}

// BatchResult pairs a job with its output.
type BatchResult struct {
	Job    Job
	Result Result
	Err    error
}

// GenerateBatch runs jobs on up to workers goroutines (GOMAXPROCS when
// workers <= 0). Every job gets its own Rng; field is shared read-only.
// Results are returned in job order.
func GenerateBatch(reg *Registry, field *noise.Field, jobs []Job, workers int) []BatchResult {
	out := make([]BatchResult, len(jobs))
	if len(jobs) == 0 {
		return out
	}
	if field == nil {
		field = noise.NewField(nil)
	}

	pool := parallel.NewWorkerPool(min(max(workers, 0), len(jobs)))
	defer pool.Close()

	work := make([]func(), len(jobs))
	for i, job := range jobs {
		work[i] = func() {
			res, err := reg.Generate(job.ID, job.Params, plotgen.NewRng(job.Seed), field, job.Bounds)
			out[i] = BatchResult{Job: job, Result: res, Err: err}
		}
	}
	pool.ExecuteAll(work)
	return out
}
