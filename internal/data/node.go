package data

import (
	"dir-compare/internal/data/diff_state"
)

// Side identifies one of the two trees being compared.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Node is a single entry of a comparison tree.
//
// A node is written only by the build that created it. Readers must wait for
// the build to finish before traversing a tree.
type Node struct {
	// Name is the key of this node inside its parent, empty for the root
	Name string

	// LeftPath is empty if the node does not exist on the left side
	LeftPath string
	// RightPath is empty if the node does not exist on the right side
	RightPath string

	// LeftData and RightData are opaque handles of the data source, nil if absent
	LeftData  any
	RightData any

	LeftState  diff_state.DiffState
	RightState diff_state.DiffState

	Children []*Node
}

func NewNode(name string, leftPath string, rightPath string, leftData any, rightData any) *Node {
	return &Node{
		Name:       name,
		LeftPath:   leftPath,
		RightPath:  rightPath,
		LeftData:   leftData,
		RightData:  rightData,
		LeftState:  diff_state.Unchecked,
		RightState: diff_state.Unchecked,
	}
}

// HasLeft indicates whether this node exists on the left side.
func (node *Node) HasLeft() bool {
	return node.LeftData != nil
}

// HasRight indicates whether this node exists on the right side.
func (node *Node) HasRight() bool {
	return node.RightData != nil
}

func (node *Node) Has(side Side) bool {
	if side == Left {
		return node.HasLeft()
	}
	return node.HasRight()
}

func (node *Node) Path(side Side) string {
	if side == Left {
		return node.LeftPath
	}
	return node.RightPath
}

func (node *Node) Data(side Side) any {
	if side == Left {
		return node.LeftData
	}
	return node.RightData
}

func (node *Node) IsLeaf() bool {
	return len(node.Children) == 0
}

// IsChecked is true once both sides carry a terminal state.
func (node *Node) IsChecked() bool {
	return node.LeftState.IsTerminal() && node.RightState.IsTerminal()
}

func (node *Node) SetState(left diff_state.DiffState, right diff_state.DiffState) {
	node.LeftState = left
	node.RightState = right
}

// ChildStates returns the left and right states of all direct children, in child order.
func (node *Node) ChildStates() (left []diff_state.DiffState, right []diff_state.DiffState) {
	left = make([]diff_state.DiffState, 0, len(node.Children))
	right = make([]diff_state.DiffState, 0, len(node.Children))
	for _, child := range node.Children {
		left = append(left, child.LeftState)
		right = append(right, child.RightState)
	}
	return left, right
}

// Walk visits node and all of its descendants depth first, parents before children.
// Returning false from fn skips the children of the current node.
func (node *Node) Walk(fn func(depth int, n *Node) bool) {
	node.walk(0, fn)
}

func (node *Node) walk(depth int, fn func(depth int, n *Node) bool) {
	if !fn(depth, node) {
		return
	}
	for _, child := range node.Children {
		child.walk(depth+1, fn)
	}
}

// Find returns the descendant at the given chain of child names, or nil.
func (node *Node) Find(names ...string) *Node {
	current := node
	for _, name := range names {
		var next *Node
		for _, child := range current.Children {
			if child.Name == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}
