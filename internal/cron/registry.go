package cron

import "context"

// Job is one scheduled batch task. The worker registers each job once at
// startup; Run must be safe to invoke again the next day regardless of how
// the previous run ended.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the worker's jobs in registration order, which is also
// their execution order within a cycle.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry from the given jobs, dropping nils.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{}
	for _, job := range jobs {
		if job == nil {
			continue
		}
		registry.jobs = append(registry.jobs, job)
	}
	return registry
}

// Register appends a job.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns a copy so a caller cannot reorder the schedule underneath a
// running cycle.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
