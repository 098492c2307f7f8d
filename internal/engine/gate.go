package engine

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate is the shared admission control for backend calls. One Gate is
// built per batch run and every leaf translation in every record contends
// for its permits, so the number of in-flight backend calls never exceeds
// the pool size no matter how deep or wide the trees are.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a gate with the given number of permits. Sizes below
// one are clamped to one.
func NewGate(size int) *Gate {
	if size < 1 {
		size = 1
	}
	return &Gate{sem: semaphore.NewWeighted(int64(size))}
}

// Acquire blocks until a permit is available or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release returns a permit to the pool. Callers must release exactly once
// per successful Acquire, on every exit path.
func (g *Gate) Release() {
	g.sem.Release(1)
}
