package worker_pool

import (
	"context"
	"sync"

	"website_speed_test/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

// ErrPoolStopped is returned by Submit once the pool has been stopped.
var ErrPoolStopped = errors.Sentinel("worker pool is stopped; cannot accept new tasks")

type TaskFunc func(ctx context.Context) (any, error)

// TaskResult holds the outcome of a finished task (its ID, result value, or error).
type TaskResult struct {
	ID     string
	Result any
	Err    error
}

// workItem is an internal wrapper for tasks submitted to the pool.
type workItem struct {
	id string
	fn TaskFunc
}

// WorkerPool runs submitted tasks on a fixed number of goroutines. Results
// are delivered on ResultsCh, which must be drained by the owner and is
// closed after the pool stops and every worker has exited.
type WorkerPool struct {
	tasksCh    chan workItem
	ResultsCh  chan TaskResult
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	log        *log.Logger
}

// NewWorkerPool starts numWorkers workers. Up to queueSize tasks wait for a
// free worker before Submit blocks.
func NewWorkerPool(parentCtx context.Context, numWorkers, queueSize int, logger *log.Logger) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	ctx, cancel := context.WithCancel(parentCtx)
	wp := &WorkerPool{
		tasksCh:    make(chan workItem, queueSize),
		ResultsCh:  make(chan TaskResult, numWorkers),
		ctx:        ctx,
		cancelFunc: cancel,
		log:        logger,
	}

	wp.wg.Add(numWorkers)
	for i := 1; i <= numWorkers; i++ {
		go wp.worker(i)
	}
	logger.Debugf("worker pool started with %d workers", numWorkers)

	go func() {
		<-wp.ctx.Done()
		logger.Debug("worker pool cancellation triggered, waiting for workers")
		wp.wg.Wait()
		close(wp.ResultsCh)
	}()
	return wp
}

// Submit queues a task. It blocks while the queue is full and fails once
// the pool is stopped.
func (wp *WorkerPool) Submit(id string, taskFn TaskFunc) error {
	select {
	case <-wp.ctx.Done():
		wp.log.Warnf("submit rejected for task %s: pool is stopped", id)
		return ErrPoolStopped
	default:
	}

	select {
	case wp.tasksCh <- workItem{id: id, fn: taskFn}:
		return nil
	case <-wp.ctx.Done():
		wp.log.Warnf("submit failed for task %s: pool was stopped", id)
		return ErrPoolStopped
	}
}

func (wp *WorkerPool) worker(workerID int) {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			wp.log.Debugf("worker %d exiting due to cancellation", workerID)
			return
		case task := <-wp.tasksCh:
			wp.log.Debugf("worker %d starting task %s", workerID, task.id)
			result, err := task.fn(wp.ctx)
			if err != nil {
				wp.log.Debugf("task %s failed: %v", task.id, err)
			}

			select {
			case wp.ResultsCh <- TaskResult{ID: task.id, Result: result, Err: err}:
			case <-wp.ctx.Done():
				wp.log.Warnf("dropping result of task %s: pool stopped", task.id)
				return
			}
		}
	}
}

// Stop cancels the pool. In-flight tasks see their context canceled and
// queued tasks are discarded.
func (wp *WorkerPool) Stop() {
	wp.log.Debug("stopping worker pool")
	wp.cancelFunc()
}
