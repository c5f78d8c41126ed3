package diff_state

// DiffState is the classification of one side of a comparison node.
type DiffState int

const (
	// Unchecked is the initial state of every node. It stays like this until the node
	// has been visited by a completed build.
	Unchecked DiffState = iota
	// New means this side is newer than the other side.
	New
	// Old means this side is older than (or missing compared to) the other side.
	Old
	// NewOld means the subtree contains both newer and older entries on this side.
	NewOld
	// Same means both sides are equal.
	Same
)

func (s DiffState) String() string {
	switch s {
	case Unchecked:
		return "Unchecked"
	case New:
		return "New"
	case Old:
		return "Old"
	case NewOld:
		return "NewOld"
	case Same:
		return "Same"
	default:
		return "Invalid"
	}
}

// IsTerminal reports whether s is one of New, Old, NewOld or Same
func (s DiffState) IsTerminal() bool {
	switch s {
	case New, Old, NewOld, Same:
		return true
	default:
		return false
	}
}

// Aggregate combines the states of all children of a node (for a single side)
// into the state of the parent.
//
// Only the presence of a value matters, neither order nor multiplicity:
// any Unchecked child results in Unchecked, New together with Old results in NewOld,
// then New, Old and Same take precedence in that order. An empty list is Unchecked.
func Aggregate(states []DiffState) DiffState {
	hasNew, hasOld, hasSame := false, false, false
	for _, state := range states {
		switch state {
		case New:
			hasNew = true
		case Old:
			hasOld = true
		case NewOld:
			hasNew = true
			hasOld = true
		case Same:
			hasSame = true
		default:
			return Unchecked
		}
	}

	switch {
	case hasNew && hasOld:
		return NewOld
	case hasNew:
		return New
	case hasOld:
		return Old
	case hasSame:
		return Same
	default:
		return Unchecked
	}
}
