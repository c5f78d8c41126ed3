// Package populator builds and classifies a comparison tree.
//
// The tree is expanded depth first. Every node visit first checks the cancellation
// token, then either classifies a leaf through the source.Provider or discovers the
// children of a container, visits them and aggregates their states. A node whose data
// cannot be resolved keeps the Unchecked state, its siblings are still visited.
package populator

import (
	"dir-compare/internal/data"
	"dir-compare/internal/data/diff_state"
	"dir-compare/internal/logging"
	"dir-compare/internal/source"
	"dir-compare/internal/statistics"
	"dir-compare/internal/task"
	"dir-compare/internal/util"
	"fmt"
	"github.com/hashicorp/go-multierror"
	"github.com/sourcegraph/conc/panics"
)

// Result summarizes a single run.
type Result struct {
	// Visited is the number of nodes whose visit has started
	Visited int
	// Cancelled is true if at least one visit was skipped because of cancellation
	Cancelled bool
	// Failures holds one error per node that could not be resolved, nil if there were none
	Failures *multierror.Error
}

// Err returns the collected failures or nil.
func (r Result) Err() error {
	return r.Failures.ErrorOrNil()
}

type populator struct {
	provider source.Provider
	token    *task.Token
	result   Result
}

// Populate expands and classifies the tree below root.
// It never panics because of the provider and returns once the tree is complete
// or cancellation stopped the walk.
func Populate(root *data.Node, provider source.Provider, token *task.Token) Result {
	p := &populator{
		provider: provider,
		token:    token,
	}
	p.visit(root)
	return p.result
}

func (p *populator) visit(node *data.Node) {
	if p.token.IsCancelled() {
		p.result.Cancelled = true
		return
	}
	p.result.Visited++
	statistics.RecordNodeVisit()

	leftLeaf, rightLeaf, err := p.leafSides(node)
	if err != nil {
		p.fail(node, err)
		return
	}
	if leftLeaf && rightLeaf {
		p.classifyLeaf(node)
		return
	}

	children, err := p.discover(node, !leftLeaf, !rightLeaf)
	if err != nil {
		p.fail(node, err)
		return
	}
	if len(children) == 0 {
		// the container has been emptied since it was inspected
		p.classifyLeaf(node)
		return
	}
	for _, child := range children {
		node.Children = append(node.Children, child.node)
		if child.err != nil {
			p.fail(child.node, child.err)
			continue
		}
		p.visit(child.node)
	}

	p.classify(node)
}

// leafSides reports for each side whether it is a leaf. An absent side counts as leaf.
func (p *populator) leafSides(node *data.Node) (left bool, right bool, err error) {
	left, right = true, true
	err = p.call(func() error {
		var err error
		if node.HasLeft() {
			if left, err = p.provider.IsLeaf(node.LeftPath, node.LeftData); err != nil {
				return err
			}
		}
		if node.HasRight() {
			if right, err = p.provider.IsLeaf(node.RightPath, node.RightData); err != nil {
				return err
			}
		}
		return nil
	})
	return left, right, err
}

type discoveredChild struct {
	node *data.Node
	err  error
}

// discover lists the child keys of both sides, left keys first, and creates one
// child node per distinct key.
func (p *populator) discover(node *data.Node, expandLeft bool, expandRight bool) ([]discoveredChild, error) {
	var leftKeys, rightKeys []string
	err := p.call(func() error {
		var err error
		if expandLeft {
			if leftKeys, err = p.provider.Children(node.LeftPath, node.LeftData, data.Left); err != nil {
				return err
			}
		}
		if expandRight {
			if rightKeys, err = p.provider.Children(node.RightPath, node.RightData, data.Right); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := util.MergeUnique(leftKeys, rightKeys)
	onLeft := toSet(leftKeys)
	onRight := toSet(rightKeys)

	result := make([]discoveredChild, 0, len(keys))
	for _, key := range keys {
		child, err := p.newChild(node, key, onLeft[key], onRight[key])
		result = append(result, discoveredChild{node: child, err: err})
	}
	return result, nil
}

func (p *populator) newChild(parent *data.Node, key string, onLeft bool, onRight bool) (*data.Node, error) {
	child := data.NewNode(key, "", "", nil, nil)
	err := p.call(func() error {
		if onLeft {
			child.LeftPath = p.provider.PathFor(parent.LeftPath, key)
			leftData, err := p.provider.DataFor(parent.LeftData, key)
			if err != nil {
				return err
			}
			child.LeftData = leftData
		}
		if onRight {
			child.RightPath = p.provider.PathFor(parent.RightPath, key)
			rightData, err := p.provider.DataFor(parent.RightData, key)
			if err != nil {
				return err
			}
			child.RightData = rightData
		}
		return nil
	})
	return child, err
}

func (p *populator) classifyLeaf(node *data.Node) {
	var left, right diff_state.DiffState
	err := p.call(func() error {
		left, right = p.provider.LeafState(node.LeftData, node.RightData)
		return nil
	})
	if err != nil {
		p.fail(node, err)
		return
	}
	node.SetState(left, right)
}

// classify aggregates the states of all children of node into its own state.
func (p *populator) classify(node *data.Node) {
	leftStates, rightStates := node.ChildStates()
	node.SetState(diff_state.Aggregate(leftStates), diff_state.Aggregate(rightStates))
}

func (p *populator) fail(node *data.Node, err error) {
	node.SetState(diff_state.Unchecked, diff_state.Unchecked)
	p.result.Failures = multierror.Append(p.result.Failures, fmt.Errorf("%s: %w", describe(node), err))
	statistics.RecordNodeFailure()
	logging.Warning("Unable to resolve %s: %v", describe(node), err)
}

// call runs fn and turns a panic of the provider into an error.
func (p *populator) call(fn func() error) error {
	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = fn()
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return recovered.AsError()
	}
	return err
}

func describe(node *data.Node) string {
	switch {
	case node.LeftPath != "" && node.RightPath != "":
		return fmt.Sprintf("%s <-> %s", node.LeftPath, node.RightPath)
	case node.LeftPath != "":
		return node.LeftPath
	case node.RightPath != "":
		return node.RightPath
	default:
		return node.Name
	}
}

func toSet(keys []string) map[string]bool {
	result := make(map[string]bool, len(keys))
	for _, key := range keys {
		result[key] = true
	}
	return result
}
