package source

import (
	"dir-compare/internal/data/diff_state"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	CriterionModTime = "modtime"
	CriterionSize    = "size"
)

// Criterion orders the two sides of a leaf. A positive result means the left side
// ranks higher ("newer"), a negative result the right side, zero means equal.
type Criterion func(left os.FileInfo, right os.FileInfo) int

// ByModTime compares modification times, truncated to precision if it is positive.
// A coarse precision helps with filesystems that store timestamps at low resolution.
func ByModTime(precision time.Duration) Criterion {
	return func(left os.FileInfo, right os.FileInfo) int {
		leftTime := left.ModTime()
		rightTime := right.ModTime()
		if precision > 0 {
			leftTime = leftTime.Truncate(precision)
			rightTime = rightTime.Truncate(precision)
		}
		return leftTime.Compare(rightTime)
	}
}

// BySize ranks the larger file higher.
func BySize() Criterion {
	return func(left os.FileInfo, right os.FileInfo) int {
		switch {
		case left.Size() > right.Size():
			return 1
		case left.Size() < right.Size():
			return -1
		default:
			return 0
		}
	}
}

// ParseCriterion returns the criterion with the given name.
func ParseCriterion(name string, precision time.Duration) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CriterionModTime:
		return ByModTime(precision), nil
	case CriterionSize:
		return BySize(), nil
	default:
		return nil, fmt.Errorf("unknown comparison criterion %q, expected one of: %s, %s", name, CriterionModTime, CriterionSize)
	}
}

// StatesFor maps the result of a Criterion to the states of both sides.
func StatesFor(order int) (left diff_state.DiffState, right diff_state.DiffState) {
	switch {
	case order > 0:
		return diff_state.New, diff_state.Old
	case order < 0:
		return diff_state.Old, diff_state.New
	default:
		return diff_state.Same, diff_state.Same
	}
}
