package report

import (
	"dir-compare/internal/data"
	"dir-compare/internal/data/diff_state"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func sampleTree() *data.Node {
	root := data.NewNode("", "/left", "/right", "l", "r")
	root.SetState(diff_state.Old, diff_state.New)

	a := data.NewNode("a.txt", "/left/a.txt", "/right/a.txt", "l", "r")
	a.SetState(diff_state.Old, diff_state.New)
	b := data.NewNode("b.txt", "/left/b.txt", "/right/b.txt", "l", "r")
	b.SetState(diff_state.Same, diff_state.Same)
	dir := data.NewNode("dir", "", "/right/dir", nil, "r")
	dir.SetState(diff_state.Old, diff_state.New)
	c := data.NewNode("c.txt", "", "/right/dir/c.txt", nil, "r")
	c.SetState(diff_state.Old, diff_state.New)
	dir.Children = append(dir.Children, c)

	root.Children = append(root.Children, a, b, dir)
	return root
}

func TestSummarize(t *testing.T) {
	// WHEN
	summary := Summarize(sampleTree())

	// THEN
	assert.Equal(t, 3, summary.Leaves)
	assert.Equal(t, 2, summary.Counts[StatePair{diff_state.Old, diff_state.New}])
	assert.Equal(t, 1, summary.Counts[StatePair{diff_state.Same, diff_state.Same}])
}

func TestRenderSummary(t *testing.T) {
	// WHEN
	text := RenderSummary(Summarize(sampleTree()))
	empty := RenderSummary(Summary{})

	// THEN
	assert.Equal(t, "3 entries compared (Old/New: 2, Same/Same: 1)", text)
	assert.Equal(t, "No entries compared.", empty)
}

func TestRender(t *testing.T) {
	// GIVEN
	pterm.DisableColor()
	defer pterm.EnableColor()

	// WHEN
	text, err := Render(sampleTree(), Options{})

	// THEN
	require.NoError(t, err)
	text = pterm.RemoveColorFromString(text)
	assert.Contains(t, text, "[-|+] /left <-> /right")
	assert.Contains(t, text, "[-|+] a.txt")
	assert.Contains(t, text, "[=|=] b.txt")
	assert.Contains(t, text, "[-|+] c.txt")
}

func TestRender_OnlyDifferences(t *testing.T) {
	// GIVEN
	pterm.DisableColor()
	defer pterm.EnableColor()

	// WHEN
	text, err := Render(sampleTree(), Options{OnlyDifferences: true})

	// THEN
	require.NoError(t, err)
	text = pterm.RemoveColorFromString(text)
	assert.Contains(t, text, "a.txt")
	assert.NotContains(t, text, "b.txt")
	assert.Contains(t, text, "c.txt")
}

func TestRender_DetailsOfMissingSide(t *testing.T) {
	// GIVEN
	pterm.DisableColor()
	defer pterm.EnableColor()

	// WHEN
	text, err := Render(sampleTree(), Options{ShowDetails: true})

	// THEN
	require.NoError(t, err)
	text = pterm.RemoveColorFromString(text)
	assert.Contains(t, text, "c.txt  missing | -")
}

func TestRender_UncheckedTree(t *testing.T) {
	// GIVEN
	pterm.DisableColor()
	defer pterm.EnableColor()
	root := data.NewNode("", "/left", "/right", "l", "r")

	// WHEN
	text, err := Render(root, Options{})

	// THEN
	require.NoError(t, err)
	text = pterm.RemoveColorFromString(text)
	assert.Contains(t, text, "[?|?] /left <-> /right")
}
