package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// SortedKeys returns the keys of input in ascending order
func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	result := make([]T, 0, len(input))
	for k := range input {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}

// MergeUnique concatenates all given slices, dropping every value that has been seen before.
// The first occurrence of each value keeps its position, so the result is deterministic.
func MergeUnique[T comparable](dataSlices ...[]T) []T {
	size := 0
	for _, dataSlice := range dataSlices {
		size += len(dataSlice)
	}

	seen := make(map[T]bool, size)
	result := make([]T, 0, size)

	for _, dataSlice := range dataSlices {
		for _, value := range dataSlice {
			if seen[value] {
				continue
			}
			seen[value] = true
			result = append(result, value)
		}
	}

	return result
}

// Coerce returns a value that is at least min and at most max, otherwise value
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}
