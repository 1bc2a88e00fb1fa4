// Package eventloop implements the single-threaded, cooperative task queue
// that backs ALang's promises and `go` statements (spec §4.6/§5). The host
// owns the thread that drains the queue by calling RunUntilIdle; other
// goroutines (timers, native async helpers) may only enqueue work via
// Dispatch, never touch interpreter state directly.
package eventloop

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of queued work: the body of a `go expr`, or a `then`/
// `catch` callback invocation. Tasks never run inline with the code that
// schedules them (spec §4.6: "then/catch always dispatch via a posted task").
type Task func()

// Loop is a FIFO task queue drained cooperatively by a single owning thread.
type Loop struct {
	mu    sync.Mutex
	tasks []Task
	// pending tracks cross-thread Dispatch calls not yet drained,
	// so RunUntilIdle can decide whether to keep waiting for async work.
	pending int
}

// New creates an empty Loop.
func New() *Loop {
	return &Loop{}
}

// Enqueue appends a task to the queue. Safe to call both from the owning
// thread (e.g. scheduling a `go expr` body) and from other goroutines.
func (l *Loop) Enqueue(t Task) {
	l.mu.Lock()
	l.tasks = append(l.tasks, t)
	l.mu.Unlock()
}

// Dispatch is the cross-thread settlement entry point: a worker goroutine
// (e.g. a `std.time.sleep` timer, a network call) calls this to hand a
// continuation back to the loop's owning thread once its work completes.
func (l *Loop) Dispatch(t Task) {
	l.mu.Lock()
	l.tasks = append(l.tasks, t)
	l.mu.Unlock()
}

// BeginPending registers one outstanding piece of async work (a goroutine
// that will eventually call Dispatch), so RunUntilIdle knows not to return
// early while work is still in flight but hasn't posted a task yet.
func (l *Loop) BeginPending() {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
}

// EndPending marks one outstanding piece of async work as settled.
func (l *Loop) EndPending() {
	l.mu.Lock()
	l.pending--
	l.mu.Unlock()
}

func (l *Loop) popAll() []Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := l.tasks
	l.tasks = nil
	return t
}

func (l *Loop) hasPending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending > 0 || len(l.tasks) > 0
}

// RunUntilIdle drains the queue, including tasks scheduled by tasks it runs,
// until both the queue is empty and no outstanding async work remains (the
// host embedding API's run_event_loop_until_idle, spec §4.9).
func (l *Loop) RunUntilIdle() {
	for l.hasPending() {
		batch := l.popAll()
		for _, t := range batch {
			t()
		}
		if len(batch) == 0 {
			// Pending async work exists but hasn't posted a task yet; yield
			// briefly rather than busy-spinning the owning thread.
			runtime.Gosched()
		}
	}
}

// RunWorkers executes fns concurrently via an errgroup, used by builtins that
// fan out several native async operations (e.g. batched network requests)
// before resuming the script through Dispatch.
func RunWorkers(fns ...func() error) error {
	var g errgroup.Group
	for _, fn := range fns {
		fn := fn
		g.Go(fn)
	}
	return g.Wait()
}

// RunWorkers exposes the package-level fan-out helper as a method so callers
// holding only a *Loop (builtins.Runtime implementers) can use it without
// importing this package directly.
func (l *Loop) RunWorkers(fns ...func() error) error {
	return RunWorkers(fns...)
}
