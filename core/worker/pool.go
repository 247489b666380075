// Package worker provides a small goroutine pool for per-shard batch work.
//
// Shards are independent files with no shared mutable state, so batch
// drivers fan their per-shard jobs out on a bounded pool instead of
// spawning naked goroutines.
package worker

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Task is a context-aware unit of work.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission and a wait group so
// batch drivers can block until every submitted shard finished.
type Pool struct {
	pool *ants.Pool
	wg   sync.WaitGroup
}

// New creates a pool of the given size. Panics inside tasks are recovered
// and logged rather than taking the whole batch down.
func New(size int, log *zap.Logger) (*Pool, error) {
	if size < 1 {
		size = 1
	}
	p, err := ants.NewPool(size,
		ants.WithNonblocking(false),
		ants.WithPanicHandler(func(v interface{}) {
			log.Error("shard task panicked", zap.Any("panic", v), zap.Stack("stack"))
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p}, nil
}

// Submit schedules a task. If ctx is already cancelled the task is not
// submitted and ctx.Err() is returned; a task that was queued before
// cancellation checks ctx again before running.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p.wg.Add(1)
	err := p.pool.Submit(func() {
		defer p.wg.Done()
		select {
		case <-ctx.Done():
			return
		default:
		}
		task(ctx)
	})
	if err != nil {
		p.wg.Done()
	}
	return err
}

// Wait blocks until all submitted tasks completed.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Release shuts the pool down after waiting for in-flight tasks.
func (p *Pool) Release() {
	p.wg.Wait()
	p.pool.Release()
}
