// Package workerpool implements a small fixed-size pool of goroutines for
// running blocking or CPU-heavy tasks without unboundedly fanning out
// goroutines, grounded on the channel-based goroutine coordination pattern
// used by the teacher's pkg/websocket Conn (its readMessages/writeMessages
// split: a fixed set of goroutines draining a shared channel).
package workerpool

import (
	"context"
	"sync"

	"github.com/greenj84/engineio/internal/logger"
)

// Task is a unit of work submitted to a [Pool].
type Task func()

// Pool runs submitted [Task] values on a fixed number of worker goroutines.
type Pool struct {
	tasks chan Task
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// DefaultSize is used by [New] when size <= 0.
const DefaultSize = 4

// New starts a Pool with the given number of worker goroutines. Tasks
// submitted via [Pool.Submit] are buffered on an internal channel and
// picked up by whichever worker is free.
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	p := &Pool{
		tasks: make(chan Task, size*4),
	}
	p.wg.Add(size)
	for range size {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		runTask(task)
	}
}

// runTask invokes task, recovering and logging a panic instead of letting
// it crash the worker goroutine, so one misbehaving task cannot take down
// the pool or block the other workers' queue draining.
func runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(context.Background()).Error().
				Interface("panic", r).
				Msg("worker pool task panicked; isolating fault")
		}
	}()
	task()
}

// Submit enqueues a task for execution by one of the pool's workers. It
// blocks if the internal buffer is full. Submit must not be called after
// [Pool.Close].
func (p *Pool) Submit(t Task) {
	p.tasks <- t
}

// Close stops accepting new tasks and waits for all workers to drain the
// queue and exit.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
