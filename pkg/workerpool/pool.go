// Package workerpool bounds concurrent goroutines with backpressure.
//
// Submit never blocks: when every worker is busy and the buffer is at
// capacity it returns ErrPoolFull and the caller chooses what to do
// with the task.
//
//	pool := workerpool.New(16)
//	defer pool.Shutdown()
//	if err := pool.Submit(task); err != nil { ... }
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when the task buffer is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closing chan struct{}
}

// New starts a pool of size workers. The task buffer holds 2x size so
// short bursts are absorbed without rejections.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		tasks:   make(chan func(), size*2),
		closing: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closing:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown rejects new tasks and waits for in-flight ones. Safe to call
// more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closing)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		run(task)
	}
}

// run isolates a task panic so it cannot take a worker down with it.
func run(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
