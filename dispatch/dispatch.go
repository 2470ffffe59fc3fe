// Package dispatch owns the single-threaded execution context that all
// UI-affine work must run on.
//
// The interactive auth broker misbehaves silently when invoked off the UI
// thread, so thread affinity is made explicit: affinity-sensitive calls are
// tasks submitted to a Queue whose Run pump executes them strictly in
// submission order, one at a time, on its owning goroutine. Nothing in this
// package ever invokes a task on the submitter's goroutine.
package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrDispatcherUnavailable reports that no UI execution context is available:
// the primary handle was never captured and no fallback is registered.
var ErrDispatcherUnavailable = errors.New("ui dispatcher unavailable")

type Task func()

// Executor accepts tasks for execution on a single owned thread. Submit
// reports false when the task was not accepted.
type Executor interface {
	Submit(Task) bool
}

// AbortCapable is implemented by executors that can notify a task it was
// accepted but will never run, e.g. because the pump shut down first.
type AbortCapable interface {
	SubmitWithAbort(t Task, abort func()) bool
}

// SubmitWithAbort submits t to e, attaching abort when the executor supports
// it. Callers use abort to reject a promise whose task was accepted but then
// discarded at shutdown, so no waiter blocks forever.
func SubmitWithAbort(e Executor, t Task, abort func()) bool {
	if ae, ok := e.(AbortCapable); ok {
		return ae.SubmitWithAbort(t, abort)
	}
	return e.Submit(t)
}

type queueItem struct {
	run   Task
	abort func()
}

// Queue is the FIFO task queue backing the UI execution context.
type Queue struct {
	tasks chan queueItem

	mu     sync.Mutex
	closed bool
}

func NewQueue() *Queue {
	return &Queue{tasks: make(chan queueItem, 64)}
}

// Submit enqueues a task. Returns false once the queue is closed or when the
// buffer is full (the pump is not running or is wedged); tasks are never
// executed inline as that would break the affinity contract.
func (q *Queue) Submit(t Task) bool {
	return q.SubmitWithAbort(t, nil)
}

// SubmitWithAbort enqueues a task with an abort callback invoked if the pump
// stops before the task runs.
func (q *Queue) SubmitWithAbort(t Task, abort func()) bool {
	if t == nil {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	select {
	case q.tasks <- queueItem{run: t, abort: abort}:
		return true
	default:
		return false
	}
}

// Run executes submitted tasks in submission order on the calling goroutine
// until ctx is cancelled. The calling goroutine becomes the UI execution
// context; callers typically lock it to an OS thread first.
//
// On cancellation, tasks already accepted but not yet started are not run;
// their abort callbacks fire instead so pending promises reject rather than
// leak.
func (q *Queue) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
		case it := <-q.tasks:
			it.run()
		}
	}

	q.close()
	q.drain()
	return ctx.Err()
}

func (q *Queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// drain aborts everything left in the buffer. Runs after close, so no new
// items can arrive.
func (q *Queue) drain() {
	for {
		select {
		case it := <-q.tasks:
			if it.abort != nil {
				it.abort()
			}
		default:
			return
		}
	}
}

var (
	fallbackMu sync.Mutex
	fallback   Executor
)

// SetFallback registers the secondary dispatcher source consulted when no
// captured handle exists. The shell registers it once at startup; there is
// exactly one fallback, matching the documented recovery path.
func SetFallback(e Executor) {
	fallbackMu.Lock()
	fallback = e
	fallbackMu.Unlock()
}

// Resolve picks the execution context for a dispatch: the captured handle if
// present, otherwise the registered fallback, otherwise
// ErrDispatcherUnavailable. It never fabricates a context; running affinity-
// sensitive work on an arbitrary goroutine is worse than failing cleanly.
func Resolve(captured Executor) (Executor, error) {
	if captured != nil {
		return captured, nil
	}
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	if fallback != nil {
		return fallback, nil
	}
	return nil, ErrDispatcherUnavailable
}
