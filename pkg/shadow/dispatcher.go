package shadow

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dispatcher runs background comparison work on a fixed worker pool.
// Submit returns immediately; submitted work executes at most once, panics
// are recovered, and a full queue drops the task rather than blocking the
// caller. There is no cancellation: once accepted, a task runs to completion.
type Dispatcher struct {
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger zerolog.Logger
}

const (
	// DefaultWorkers is the default worker pool size.
	DefaultWorkers = 4

	// DefaultQueueSize is the default task queue capacity.
	DefaultQueueSize = 256
)

// NewDispatcher creates a dispatcher with the given pool size and queue
// capacity. Non-positive values fall back to the defaults.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	d := &Dispatcher{
		tasks:  make(chan func(), queueSize),
		logger: log.With().Str("component", "shadow-dispatcher").Logger(),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Submit queues a task for background execution. It never blocks: when the
// queue is full or the dispatcher is closed the task is dropped and Submit
// returns false.
func (d *Dispatcher) Submit(task func()) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}

	select {
	case d.tasks <- task:
		return true
	default:
		TasksDropped.Inc()
		d.logger.Warn().Msg("Background task queue full, dropping comparison")
		return false
	}
}

// Close stops accepting tasks and waits for in-flight work to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		d.run(task)
	}
}

// run executes one task, containing any panic.
func (d *Dispatcher) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			TaskPanics.Inc()
			d.logger.Error().Interface("panic", r).Msg("Recovered panic in background task")
		}
	}()
	task()
}
