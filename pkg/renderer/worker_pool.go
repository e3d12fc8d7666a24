package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// rowSeedStride separates the seeds of neighbouring scanlines
const rowSeedStride = 1_000_003

// ScanlineTask asks a worker to render one scanline
type ScanlineTask struct {
	Row  int   // Scanline index counted from the bottom of the image
	Seed int64 // Seed for this task's private random source
}

// ScanlineResult contains the accumulated colors of a rendered scanline
type ScanlineResult struct {
	Row    int
	Colors []core.Vec3 // Per-pixel sample sums, left to right
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	raytracer   *Raytracer
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 means one worker per CPU.
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	height := raytracer.Config().Height
	return &WorkerPool{
		taskQueue:   make(chan ScanlineTask, height),   // Buffer for every scanline
		resultQueue: make(chan ScanlineResult, height), // Buffer for every result
		raytracer:   raytracer,
		numWorkers:  numWorkers,
	}
}

// ScanlineSeed returns the seed for scanline row under the given base seed
func ScanlineSeed(baseSeed int64, row int) int64 {
	return baseSeed + int64(row)*rowSeedStride
}

// Start begins all workers. Once ctx is done, queued tasks are skipped and
// produce no result.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop closes the task queue, waits for workers to drain it and then closes
// the result queue.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitTask(task ScanlineTask) {
	wp.taskQueue <- task
}

// Results returns the channel completed scanlines arrive on, in completion order
func (wp *WorkerPool) Results() <-chan ScanlineResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if ctx.Err() != nil {
			continue
		}
		// Each task owns its random source
		sampler := core.NewSeededSampler(task.Seed)
		wp.resultQueue <- ScanlineResult{
			Row:    task.Row,
			Colors: wp.raytracer.RenderScanline(task.Row, sampler),
		}
	}
}
