package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type JobFunc[T any, G any] func(job T) (G, error)

/*
WorkerPool. fixed number of workers consuming a job queue. the first job error cancels the pool:
remaining queued jobs are drained without being run and Wait returns that error.

usage: Start, AddJob for every job, Close, Wait, then range over CollectResults.
the results buffer holds jobQueueSize values, so a pool must not get more jobs than that
unless results are consumed concurrently.
*/
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	g          *errgroup.Group
	ctx        context.Context
}

func NewWorkerPool[T any, G any](ctx context.Context, numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
		g:          g,
		ctx:        gctx,
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) error {
	for job := range wp.jobQueue {
		if wp.ctx.Err() != nil {
			continue
		}
		res, err := jobFunc(job)
		if err != nil {
			return err
		}
		wp.results <- res
	}
	return nil
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.g.Go(func() error {
			return wp.worker(jobFunc)
		})
	}
}

// AddJob. false if the pool was cancelled and the job was dropped
func (wp *WorkerPool[T, G]) AddJob(job T) bool {
	if wp.ctx.Err() != nil {
		return false
	}
	select {
	case <-wp.ctx.Done():
		return false
	case wp.jobQueue <- job:
		return true
	}
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Wait. blocks until every worker returned, then closes the results channel
func (wp *WorkerPool[T, G]) Wait() error {
	err := wp.g.Wait()
	close(wp.results)
	return err
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}
