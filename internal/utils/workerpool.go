package utils

import (
	"context"
	"fmt"
	"sync"
)

// Job is one queued input and, once handled, its output
type Job[T any] struct {
	Input  T
	Output any
	Err    error
}

// Handler processes a single job input
type Handler[T any] func(ctx context.Context, in T) (any, error)

// Pool runs a Handler on a fixed number of goroutines. Handled jobs are
// delivered on Results, which closes after Stop.
type Pool[T any] struct {
	size    int
	handle  Handler[T]
	queue   chan *Job[T]
	results chan *Job[T]
	wg      sync.WaitGroup
	once    sync.Once
}

// NewPool creates a pool of size workers; sizes below one become one
func NewPool[T any](size int, handle Handler[T]) *Pool[T] {
	size = max(size, 1)
	return &Pool[T]{
		size:    size,
		handle:  handle,
		queue:   make(chan *Job[T], size),
		results: make(chan *Job[T], size),
	}
}

// Start launches the workers. They exit when ctx is done or the pool is stopped.
func (p *Pool[T]) Start(ctx context.Context) {
	p.wg.Add(p.size)
	for range p.size {
		go p.work(ctx)
	}
}

func (p *Pool[T]) work(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.queue {
		if ctx.Err() != nil {
			return
		}
		job.Output, job.Err = p.run(ctx, job.Input)

		select {
		case p.results <- job:
		case <-ctx.Done():
			return
		}
	}
}

// run calls the handler, turning a panic into the job error
func (p *Pool[T]) run(ctx context.Context, in T) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return p.handle(ctx, in)
}

// Submit queues in, blocking until a worker has room or ctx is done
func (p *Pool[T]) Submit(ctx context.Context, in T) error {
	select {
	case p.queue <- &Job[T]{Input: in}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results delivers handled jobs. It must be drained while the pool runs.
func (p *Pool[T]) Results() <-chan *Job[T] {
	return p.results
}

// Stop closes the queue, waits for the workers and closes Results. Submit
// must not be called after Stop.
func (p *Pool[T]) Stop() {
	p.once.Do(func() {
		close(p.queue)
		p.wg.Wait()
		close(p.results)
	})
}
