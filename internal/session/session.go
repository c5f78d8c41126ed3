// Package session drives a comparison tree for the command line: it starts builds,
// prints their reports and optionally rebuilds whenever one of the roots changes.
package session

import (
	"context"
	"dir-compare/internal/logging"
	"dir-compare/internal/report"
	"dir-compare/internal/tree"
	"dir-compare/internal/util"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

type Options struct {
	Report report.Options
	// Watch keeps the session running and rebuilds the tree on file changes
	Watch    bool
	Debounce time.Duration
}

type Session struct {
	tree    *tree.Tree
	paths   []string
	options Options
	out     io.Writer

	outcomes chan tree.Outcome
	changes  chan string

	// running counts started builds whose outcome has not been received
	running        int
	restartPending bool
}

// New creates a session for t. paths are the directories watched in watch mode.
func New(t *tree.Tree, options Options, paths ...string) *Session {
	var watched []string
	for _, path := range paths {
		if !util.IsBlank(path) {
			watched = append(watched, path)
		}
	}
	return &Session{
		tree:     t,
		paths:    watched,
		options:  options,
		out:      os.Stdout,
		outcomes: make(chan tree.Outcome, 4),
		changes:  make(chan string, 1),
	}
}

// WithOutput redirects the rendered reports to w.
func (s *Session) WithOutput(w io.Writer) *Session {
	s.out = w
	return s
}

// Run builds the tree and prints the result. In watch mode it keeps rebuilding
// until ctx is done, otherwise it returns after the first build.
// A cancelled context stops a running build and waits for it before returning.
func (s *Session) Run(ctx context.Context) error {
	unregister := s.subscribe()
	defer unregister()

	if s.options.Watch {
		watcher := util.NewFileWatcher(s.options.Debounce, s.paths...)
		err := watcher.Watch(func(path string) {
			select {
			case s.changes <- path:
			default:
			}
		})
		if err != nil {
			return fmt.Errorf("unable to watch %v: %w", s.paths, err)
		}
		defer watcher.Stop()
	}

	if err := s.start(); err != nil {
		return err
	}

	for {
		select {
		case outcome := <-s.outcomes:
			if err := s.handleOutcome(outcome); err != nil {
				return err
			}
			if !s.options.Watch {
				return nil
			}
		case path := <-s.changes:
			if err := s.handleChange(path); err != nil {
				return err
			}
		case <-ctx.Done():
			return s.shutdown()
		}
	}
}

func (s *Session) subscribe() (unregister func()) {
	return s.tree.OnChange(func(outcome tree.Outcome) {
		s.outcomes <- outcome
	})
}

// start submits a build. Every started build is counted until its outcome has been received.
func (s *Session) start() error {
	if err := s.tree.Start(); err != nil {
		return err
	}
	s.running++
	return nil
}

func (s *Session) handleOutcome(outcome tree.Outcome) error {
	s.running--
	if s.running > 0 {
		// a newer build owns the tree
		return nil
	}
	if err := s.print(outcome); err != nil {
		return err
	}
	if s.restartPending {
		s.restartPending = false
		return s.start()
	}
	return nil
}

// handleChange restarts the build. While the outcome of a build has not been
// received yet, the tree may still be written, so the restart waits for it.
func (s *Session) handleChange(path string) error {
	logging.Info("Change detected at %s, rebuilding...", path)
	if s.running > 0 {
		s.restartPending = true
		if err := s.tree.Stop(); err != nil && !errors.Is(err, tree.ErrNotStarted) {
			return err
		}
		return nil
	}
	return s.start()
}

func (s *Session) shutdown() error {
	if s.running == 0 {
		return nil
	}
	if err := s.tree.Stop(); err != nil {
		return err
	}
	for s.running > 0 {
		<-s.outcomes
		s.running--
	}
	logging.Debug("Running build stopped.")
	return nil
}

func (s *Session) print(outcome tree.Outcome) error {
	if outcome == tree.Cancelled {
		logging.Debug("Build was cancelled, skipping report")
		return nil
	}

	text, err := report.Render(s.tree.Root(), s.options.Report)
	if err != nil {
		return err
	}
	summary := report.RenderSummary(report.Summarize(s.tree.Root()))
	if _, err = fmt.Fprintf(s.out, "%s\n%s\n", text, summary); err != nil {
		return err
	}

	if failures := s.tree.LastResult().Err(); failures != nil {
		logging.Warning("Some entries could not be compared: %v", failures)
	}
	return nil
}
