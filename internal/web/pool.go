package web

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many repository operations run at once. Object reads and
// diffs are blocking, so each request holds a slot for its whole operation.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool with the given number of slots (at least one).
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Do waits for a free slot and runs fn in it. It returns ctx.Err() if the
// context ends while waiting; once started, fn runs to completion.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return fn()
}
