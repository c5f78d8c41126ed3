// Package task runs background work off the caller's goroutine.
package task

import (
	"dir-compare/internal/logging"
	"dir-compare/internal/util"
	"errors"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"sync"
	"time"
)

const (
	MaxWorkers = 64
)

var (
	ErrRunnerShutdown = errors.New("task runner has been shut down")
	ErrQueueFull      = errors.New("task runner queue is full")
)

// Task is a unit of background work. Long running tasks are expected to check
// the token at regular checkpoints and return early once it is cancelled.
type Task interface {
	Execute(token *Token)
}

// Func adapts a plain function to the Task interface.
type Func func(token *Token)

func (f Func) Execute(token *Token) {
	f(token)
}

// Submitter is implemented by everything that accepts tasks.
type Submitter interface {
	Submit(token *Token, task Task) (*Handle, error)
}

// Handle tracks a single submitted task.
type Handle struct {
	token *Token
	done  chan struct{}
	err   error
}

func newHandle(token *Token) *Handle {
	return &Handle{
		token: token,
		done:  make(chan struct{}),
	}
}

// Done is closed once the task has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task has returned and reports a panic raised by it, if any.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Cancel requests cancellation of the task without waiting for it.
func (h *Handle) Cancel() {
	h.token.Cancel()
}

func (h *Handle) Token() *Token {
	return h.token
}

type job struct {
	task   Task
	handle *Handle
}

// Runner executes submitted tasks on a fixed number of worker goroutines.
type Runner struct {
	queue   chan job
	workers conc.WaitGroup

	mu          sync.Mutex
	closed      bool
	outstanding int
	idle        chan struct{}
}

// NewRunner starts a runner with the given amount of workers (clamped to 1..MaxWorkers)
// and a queue that holds up to queueSize tasks that have not been picked up yet.
func NewRunner(workers int, queueSize int) *Runner {
	workers = util.Coerce(workers, 1, MaxWorkers)
	if queueSize < 1 {
		queueSize = 1
	}

	idle := make(chan struct{})
	close(idle)

	r := &Runner{
		queue: make(chan job, queueSize),
		idle:  idle,
	}
	for i := 0; i < workers; i++ {
		r.workers.Go(r.work)
	}
	return r
}

// Submit queues task for execution and returns without waiting for it.
func (r *Runner) Submit(token *Token, task Task) (*Handle, error) {
	if token == nil {
		token = NewToken()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRunnerShutdown
	}

	handle := newHandle(token)
	select {
	case r.queue <- job{task: task, handle: handle}:
	default:
		return nil, ErrQueueFull
	}

	if r.outstanding == 0 {
		r.idle = make(chan struct{})
	}
	r.outstanding++
	return handle, nil
}

// Shutdown stops accepting new tasks. Workers exit once the queue has been drained.
func (r *Runner) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	close(r.queue)
}

// AwaitIdle blocks until no submitted task is outstanding or timeout elapsed.
// It returns true if the runner became idle in time.
func (r *Runner) AwaitIdle(timeout time.Duration) bool {
	r.mu.Lock()
	idle := r.idle
	r.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-idle:
		return true
	case <-timer.C:
		return false
	}
}

// Close shuts the runner down and waits for all workers to exit.
func (r *Runner) Close() {
	r.Shutdown()
	r.workers.Wait()
}

func (r *Runner) work() {
	for j := range r.queue {
		r.execute(j)
	}
}

func (r *Runner) execute(j job) {
	defer r.finish()
	defer close(j.handle.done)

	var catcher panics.Catcher
	catcher.Try(func() {
		j.task.Execute(j.handle.token)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		j.handle.err = recovered.AsError()
		logging.Error("Background task panicked: %v", recovered.Value)
	}
}

func (r *Runner) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outstanding--
	if r.outstanding == 0 {
		close(r.idle)
	}
}
