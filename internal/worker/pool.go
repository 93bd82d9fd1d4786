package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("worker pool closed")

// Result carries a job's outcome.
type Result[T any] struct {
	Value T
	Err   error
}

// Pool bounds the number of concurrently running jobs.
type Pool struct {
	size     int64
	sem      *semaphore.Weighted
	wg       sync.WaitGroup
	closed   atomic.Bool
	inFlight atomic.Int64
}

// NewPool returns a pool with size slots. size <= 0 selects runtime.GOMAXPROCS(0).
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return int(p.size)
}

// InFlight returns the number of jobs currently holding a slot.
func (p *Pool) InFlight() int {
	return int(p.inFlight.Load())
}

// Submit schedules fn and returns a channel that receives exactly one Result. If ctx ends
// before a slot frees up, fn never runs and the Result carries ctx.Err().
func Submit[T any](ctx context.Context, p *Pool, fn func() (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	if p == nil || p.closed.Load() {
		out <- Result[T]{Err: ErrClosed}
		return out
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		out <- Result[T]{Err: err}
		return out
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			out <- Result[T]{Err: err}
			return
		}
		p.inFlight.Add(1)
		defer func() {
			p.inFlight.Add(-1)
			p.sem.Release(1)
		}()

		v, err := fn()
		out <- Result[T]{Value: v, Err: err}
	}()
	return out
}

// Do submits fn and waits for its result or for ctx to end, whichever comes first. When
// ctx ends first the job keeps running and its result is discarded.
func Do[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	ch := Submit(ctx, p, fn)
	select {
	case res := <-ch:
		return res.Value, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Close stops accepting jobs and waits for submitted jobs to finish.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closed.Store(true)
	p.wg.Wait()
}
