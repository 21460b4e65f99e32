package syssched

import (
	"context"
	"time"
)

// AsyncTaskRunner periodically runs a task in a standalone goroutine.
//
// Remarks:
//   - The task is run once immediately on start, then on every tick.
//   - Cycles never overlap: the next tick waits until the previous cycle
//     finished.
type AsyncTaskRunner struct {
	ctx            context.Context
	doneCh         chan struct{}
	task           Task
	handler        ErrorHandler
	updateInterval time.Duration
}

// NewAsyncTaskRunner is an AsyncTaskRunner initialization.
//
// Parameters:
//   - ctx - parent context, cancellation stops the runner.
//   - task to run periodically.
//   - handler to receive task errors, optional.
//   - updateInterval - how often to run the task.
func NewAsyncTaskRunner(
	ctx context.Context,
	task Task,
	handler ErrorHandler,
	updateInterval time.Duration,
) *AsyncTaskRunner {
	return &AsyncTaskRunner{
		ctx:            ctx,
		doneCh:         make(chan struct{}),
		task:           task,
		handler:        handler,
		updateInterval: updateInterval,
	}
}

// Start begins asynchronous task processing.
func (r *AsyncTaskRunner) Start() {
	go r.run()
}

// Close ends asynchronous task processing.
func (r *AsyncTaskRunner) Close() error {
	<-r.doneCh

	return nil
}

func (r *AsyncTaskRunner) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.updateInterval)
	defer ticker.Stop()

	r.runTask()

	for {
		select {
		case <-ticker.C:
			r.runTask()

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *AsyncTaskRunner) runTask() {
	if err := r.task.Run(); err != nil {
		if r.handler != nil {
			r.handler.HandleError(err)
		}
	}
}
