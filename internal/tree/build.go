package tree

import (
	"dir-compare/internal/data"
	"dir-compare/internal/logging"
	"dir-compare/internal/populator"
	"dir-compare/internal/task"
	"time"
)

// build is the background task populating one tree.
type build struct {
	id    string
	tree  *Tree
	root  *data.Node
	start time.Time
}

func (b *build) Execute(token *task.Token) {
	// an unexpected panic leaves the tree incomplete, which is reported like a cancellation
	result := populator.Result{Cancelled: true}
	defer func() {
		outcome := b.tree.finish(b, result, token)
		logging.Debug("Build %s %s after %s, visited %d nodes", b.id, outcome, time.Since(b.start), result.Visited)
		if err := result.Err(); err != nil {
			logging.Warning("Build %s could not resolve %d node(s)", b.id, len(result.Failures.Errors))
		}
		b.tree.notify(outcome)
	}()

	result = populator.Populate(b.root, b.tree.provider, token)
}
