// Package source defines how a comparison tree discovers its content.
package source

import (
	"dir-compare/internal/data"
	"dir-compare/internal/data/diff_state"
)

// Provider enumerates and resolves the nodes of both sides of a comparison.
//
// Data handles returned by a Provider are opaque to everything but the
// Provider itself. A nil handle means "does not exist on this side".
type Provider interface {
	// Children lists the keys of all direct descendants of the node at path on the given side.
	// The result must be deterministic for an unchanged source.
	Children(path string, handle any, side data.Side) ([]string, error)

	// IsLeaf distinguishes terminal nodes from containers.
	IsLeaf(path string, handle any) (bool, error)

	// DataFor resolves the data handle of the child key of parentData.
	// A nil parentData resolves key as a root.
	DataFor(parentData any, key string) (any, error)

	// PathFor returns the path of the child key below parentPath.
	PathFor(parentPath string, key string) string

	// LeafState classifies a pair of leaf data handles. Either handle may be nil,
	// the existing side is New in that case.
	LeafState(leftData any, rightData any) (left diff_state.DiffState, right diff_state.DiffState)
}
