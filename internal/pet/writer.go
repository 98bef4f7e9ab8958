package pet

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// defaultQueueSize bounds pending persistence jobs.
const defaultQueueSize = 32

// writeJob is one queued persistence call.
type writeJob struct {
	name string
	run  func(ctx context.Context) error
}

// writer runs persistence jobs on a single goroutine in FIFO order.
// Callers never wait on it: a full queue drops the job, and a failed job is
// logged. The next tick or action issues a fresh write anyway.
type writer struct {
	jobs   chan writeJob
	logger *log.Logger
	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newWriter(size int, logger *log.Logger) *writer {
	if size <= 0 {
		size = defaultQueueSize
	}
	w := &writer{
		jobs:   make(chan writeJob, size),
		logger: logger,
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue schedules a job without blocking.
// Returns false if the job was dropped.
func (w *writer) enqueue(job writeJob) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.logger.Debug("writer closed, dropping job", "job", job.name)
		return false
	}

	select {
	case w.jobs <- job:
		return true
	default:
		w.logger.Warn("write queue full, dropping job", "job", job.name)
		return false
	}
}

func (w *writer) run() {
	defer close(w.done)

	ctx := context.Background()
	for job := range w.jobs {
		if err := job.run(ctx); err != nil {
			w.logger.Error("persistence failed", "job", job.name, "error", err)
		}
	}
}

// close stops intake and waits for queued jobs to finish.
func (w *writer) close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()

	<-w.done
}
