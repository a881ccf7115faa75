package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers is a set of workers started and stopped together.
type Workers struct {
	workers []Worker
}

// NewWorkers returns a set holding workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Add appends w to the set. It must not be called once Run has started.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Len returns the number of workers in the set.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run runs all workers concurrently and blocks until every one returned.
// The first failure cancels the context of the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}
