package diff_state

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestAggregate_NewAndOld(t *testing.T) {
	// GIVEN
	a := []DiffState{New, Old}
	b := []DiffState{Old, New, New}

	// WHEN
	resultA := Aggregate(a)
	resultB := Aggregate(b)

	// THEN
	assert.Equal(t, NewOld, resultA)
	assert.Equal(t, resultA, resultB)
}

func TestAggregate_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		states   []DiffState
		expected DiffState
	}{
		{"new wins over same", []DiffState{Same, New, Same}, New},
		{"old wins over same", []DiffState{Same, Old}, Old},
		{"only same", []DiffState{Same, Same}, Same},
		{"single new", []DiffState{New}, New},
		{"nested difference on both sides", []DiffState{NewOld, Same}, NewOld},
		{"nested difference only", []DiffState{NewOld}, NewOld},
		{"nested difference and new", []DiffState{New, NewOld}, NewOld},
		{"empty", []DiffState{}, Unchecked},
		{"nil", nil, Unchecked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Aggregate(tt.states))
		})
	}
}

func TestAggregate_UncheckedPoisons(t *testing.T) {
	// GIVEN
	variants := [][]DiffState{
		{Unchecked},
		{New, Unchecked},
		{Same, Same, Unchecked, Same},
		{Unchecked, New, Old},
	}

	for _, states := range variants {
		// WHEN
		result := Aggregate(states)

		// THEN
		assert.Equal(t, Unchecked, result, "states: %v", states)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	// GIVEN
	states := []DiffState{Same, New, Same, Old, New}
	reversed := []DiffState{New, Old, Same, New, Same}

	// WHEN
	result := Aggregate(states)
	resultReversed := Aggregate(reversed)

	// THEN
	assert.Equal(t, result, resultReversed)
}

func TestDiffState_String(t *testing.T) {
	assert.Equal(t, "Unchecked", Unchecked.String())
	assert.Equal(t, "NewOld", NewOld.String())
	assert.Equal(t, "Invalid", DiffState(42).String())
}

func TestDiffState_IsTerminal(t *testing.T) {
	assert.False(t, Unchecked.IsTerminal())
	assert.True(t, New.IsTerminal())
	assert.True(t, Old.IsTerminal())
	assert.True(t, NewOld.IsTerminal())
	assert.True(t, Same.IsTerminal())
	assert.False(t, DiffState(-1).IsTerminal())
}
