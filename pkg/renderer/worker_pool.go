package renderer

import (
	"runtime"
	"sync"
)

// RowTask represents one pixel row to render up to a sample target
type RowTask struct {
	Y             int // Row index, 0 = top of the image
	TargetSamples int // Total samples per pixel to reach this pass
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Y       int // Row index
	Samples int // Samples taken during this task
}

// WorkerPool renders pixel rows in parallel. Rows are disjoint regions of
// the shared pixel stats array and each row owns its random generator, so
// workers never need to synchronize during rendering.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	raytracer   *Raytracer
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool for the given raytracer
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	height := raytracer.config.Height
	return &WorkerPool{
		taskQueue:   make(chan RowTask, height),
		resultQueue: make(chan RowResult, height),
		raytracer:   raytracer,
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop shuts down all workers after the queued tasks are drained
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit queues a row task
func (wp *WorkerPool) Submit(task RowTask) {
	wp.taskQueue <- task
}

// Result retrieves a completed row result
func (wp *WorkerPool) Result() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		samples := wp.raytracer.renderRow(task.Y, task.TargetSamples)
		wp.resultQueue <- RowResult{Y: task.Y, Samples: samples}
	}
}
