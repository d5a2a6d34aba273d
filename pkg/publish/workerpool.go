package publish

import (
	"context"
	"errors"
	"sync"
)

// Job is a unit of work submitted to the WorkerPool.
type Job func(ctx context.Context) error

// ErrPoolClosed is returned if a Submit is attempted after Close.
var ErrPoolClosed = errors.New("worker pool closed")

// WorkerPool runs jobs on a fixed number of goroutines and keeps the first
// job error. Once a job fails, jobs still queued are skipped.
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int

	closeMu sync.Mutex
	closed  bool

	errOnce sync.Once
	err     error
	failed  chan struct{}
}

// NewWorkerPool creates a pool with the given worker count and queue capacity.
func NewWorkerPool(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		workers: workers,
		failed:  make(chan struct{}),
	}
}

// Start launches the workers. They exit when ctx is done or the pool is closed.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					p.fail(ctx.Err())
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					select {
					case <-p.failed:
						continue
					default:
					}
					if err := job(ctx); err != nil {
						p.fail(err)
					}
				}
			}
		}()
	}
}

func (p *WorkerPool) fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		close(p.failed)
	})
}

// Submit enqueues a job, blocking while the queue is full.
func (p *WorkerPool) Submit(ctx context.Context, job Job) error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.jobs <- job:
		return nil
	case <-p.failed:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait stops accepting jobs, waits for the workers to drain the queue and
// returns the first job error.
func (p *WorkerPool) Wait() error {
	p.closeMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.closeMu.Unlock()
	p.wg.Wait()
	return p.err
}
