package meshing

import (
	"context"
	"errors"
	"sync"

	"github.com/jan00bl/webmc/pkg/blockmodel"
)

// ErrPoolClosed is returned when submitting to a pool that has been shut down.
var ErrPoolClosed = errors.New("meshing: worker pool is shut down")

// BuildJob represents a request to emit one scene instance
type BuildJob struct {
	Index    int
	Instance Instance
	UV       blockmodel.UVProvider
	// Result channel - will be sent the result when done
	ResultChan chan BuildResult
}

// BuildResult contains the result of a build job. Buffers start at index 0.
type BuildResult struct {
	Index   int
	Buffers blockmodel.Buffers
	Error   error
}

// WorkerPool manages goroutines for buffer generation. Models handed to it
// must already be flattened; workers only read them.
type WorkerPool struct {
	jobQueue chan BuildJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new build worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan BuildJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a job to the pool.
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job BuildJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking blocks until the job is queued, ctx is done or the pool shuts down.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job BuildJob) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			buffers, err := job.Instance.Buffers(job.UV)
			result := BuildResult{
				Index:   job.Index,
				Buffers: buffers,
				Error:   err,
			}

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Shutdown stops the workers and waits for them to exit. Queued jobs are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
