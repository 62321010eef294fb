// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package async

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Task runs off the tick thread. It must only capture copied values (ids, names, paths),
// never live engine objects, and report back through its returned result.
type Task func(ctx context.Context) any

// Executor runs tasks in the background and hands their results back to the tick thread.
type Executor interface {
	Submit(name string, task Task)
	// Drain returns every result produced since the last call without blocking.
	Drain() []any
}

// Pool is a bounded Executor. Submit never blocks the caller.
type Pool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	sem     *semaphore.Weighted
	results chan any
	wg      sync.WaitGroup
}

func NewPool(ctx context.Context, workers int, buffer int) *Pool {
	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		ctx:     ctx,
		cancel:  cancel,
		sem:     semaphore.NewWeighted(int64(max(workers, 1))),
		results: make(chan any, max(buffer, 1)),
	}
}

func (p *Pool) Submit(name string, task Task) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			logrus.WithField("task", name).Warn("background task dropped, pool is closing")
			return
		}
		defer p.sem.Release(1)

		result := task(p.ctx)
		if result == nil {
			return
		}

		select {
		case p.results <- result:
		case <-p.ctx.Done():
			logrus.WithField("task", name).Warn("background result dropped, pool is closing")
		}
	}()
}

func (p *Pool) Drain() []any {
	var drained []any
	for {
		select {
		case result := <-p.results:
			drained = append(drained, result)
		default:
			return drained
		}
	}
}

// Wait blocks until every submitted task has finished. Results stay available to Drain.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close cancels pending work and waits for running tasks to return.
func (p *Pool) Close() {
	p.cancel()
	p.wg.Wait()
}
