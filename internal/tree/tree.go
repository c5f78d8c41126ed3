// Package tree provides the handle a consumer uses to build and observe
// a comparison tree in the background.
package tree

import (
	"dir-compare/internal/data"
	"dir-compare/internal/logging"
	"dir-compare/internal/populator"
	"dir-compare/internal/source"
	"dir-compare/internal/statistics"
	"dir-compare/internal/task"
	"dir-compare/internal/util"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"sync"
	"time"
)

var (
	ErrBuildActive = errors.New("a build is already running for this tree")
	ErrNotStarted  = errors.New("tree has never been started")
)

// Outcome describes how a build ended.
type Outcome int

const (
	Completed Outcome = iota
	Cancelled
)

func (o Outcome) String() string {
	if o == Cancelled {
		return "cancelled"
	}
	return "completed"
}

// Listener is notified exactly once per build, after the build has returned.
// The tree may be read from within the listener and afterwards.
type Listener func(outcome Outcome)

// Tree owns one comparison tree and the build that populates it.
type Tree struct {
	leftPath  string
	rightPath string
	provider  source.Provider
	runner    task.Submitter

	mu         sync.Mutex
	root       *data.Node
	token      *task.Token
	active     bool
	built      bool
	lastResult populator.Result

	listenerMu     sync.Mutex
	listeners      map[int]Listener
	nextListenerId int
}

// New resolves both root paths through provider and creates an unpopulated tree.
func New(leftPath string, rightPath string, runner task.Submitter, provider source.Provider) (*Tree, error) {
	t := &Tree{
		leftPath:  leftPath,
		rightPath: rightPath,
		provider:  provider,
		runner:    runner,
		listeners: map[int]Listener{},
	}
	root, err := t.newRoot()
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

func (t *Tree) newRoot() (*data.Node, error) {
	leftData, err := t.provider.DataFor(nil, t.leftPath)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve left path %s: %w", t.leftPath, err)
	}
	rightData, err := t.provider.DataFor(nil, t.rightPath)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve right path %s: %w", t.rightPath, err)
	}
	return data.NewNode("", t.leftPath, t.rightPath, leftData, rightData), nil
}

// OnChange registers a listener for build notifications and returns a function
// that removes it again.
func (t *Tree) OnChange(listener Listener) (unregister func()) {
	t.listenerMu.Lock()
	defer t.listenerMu.Unlock()

	id := t.nextListenerId
	t.nextListenerId++
	t.listeners[id] = listener

	return func() {
		t.listenerMu.Lock()
		defer t.listenerMu.Unlock()
		delete(t.listeners, id)
	}
}

// Start submits a new build and returns without waiting for it.
// A tree that has been built before is replaced by a fresh one.
func (t *Tree) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return ErrBuildActive
	}

	if t.built {
		root, err := t.newRoot()
		if err != nil {
			return err
		}
		t.root = root
	}

	token := task.NewToken()
	b := &build{
		id:    uuid.NewString(),
		tree:  t,
		root:  t.root,
		start: time.Now(),
	}
	if _, err := t.runner.Submit(token, b); err != nil {
		return fmt.Errorf("unable to start build: %w", err)
	}

	t.token = token
	t.active = true
	t.built = true
	logging.Debug("Build %s submitted for %s <-> %s", b.id, t.leftPath, t.rightPath)
	return nil
}

// Stop requests cancellation of the current build and returns immediately.
// The listeners are notified once the build has noticed the request.
func (t *Tree) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token == nil {
		return ErrNotStarted
	}
	t.token.Cancel()
	return nil
}

// Active reports whether a build is currently running.
func (t *Tree) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Root returns the root node of the current tree. It must only be traversed
// while no build is active.
func (t *Tree) Root() *data.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

// LastResult returns the result of the most recent finished build.
func (t *Tree) LastResult() populator.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastResult
}

// finish reports Cancelled whenever a stop was requested, even if it arrived
// during the last visit and no further visit had to be skipped.
func (t *Tree) finish(b *build, result populator.Result, token *task.Token) Outcome {
	outcome := Completed
	if result.Cancelled || token.IsCancelled() {
		outcome = Cancelled
	}

	t.mu.Lock()
	t.active = false
	t.lastResult = result
	t.mu.Unlock()

	statistics.RecordBuild(outcome.String(), time.Since(b.start))
	return outcome
}

func (t *Tree) notify(outcome Outcome) {
	t.listenerMu.Lock()
	listeners := make([]Listener, 0, len(t.listeners))
	for _, id := range util.SortedKeys(t.listeners) {
		listeners = append(listeners, t.listeners[id])
	}
	t.listenerMu.Unlock()

	for _, listener := range listeners {
		listener(outcome)
	}
}
