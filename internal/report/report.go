package report

import (
	"dir-compare/internal/data"
	"dir-compare/internal/data/diff_state"
	"dir-compare/internal/source"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"golang.org/x/exp/slices"
	"strings"
)

// Options controls how a tree is rendered.
type Options struct {
	// OnlyDifferences hides subtrees that are Same on both sides
	OnlyDifferences bool
	// ShowDetails adds size and modification time of both sides to every leaf
	ShowDetails bool
}

// Summary counts leaves per state pair.
type Summary struct {
	Counts map[StatePair]int
	Leaves int
}

type StatePair struct {
	Left  diff_state.DiffState
	Right diff_state.DiffState
}

func (p StatePair) String() string {
	return fmt.Sprintf("%s/%s", p.Left, p.Right)
}

// Summarize counts the leaves of the tree below root.
func Summarize(root *data.Node) Summary {
	summary := Summary{
		Counts: map[StatePair]int{},
	}
	root.Walk(func(depth int, n *data.Node) bool {
		if n.IsLeaf() {
			summary.Leaves++
			summary.Counts[StatePair{Left: n.LeftState, Right: n.RightState}]++
		}
		return true
	})
	return summary
}

// Render returns the tree below root as text.
func Render(root *data.Node, options Options) (string, error) {
	header := fmt.Sprintf("%s %s <-> %s", stateLabel(root), displayPath(root.LeftPath), displayPath(root.RightPath))
	rootNode := pterm.TreeNode{
		Children: renderChildren(root, options),
	}
	body, err := pterm.DefaultTree.WithRoot(rootNode).Srender()
	if err != nil {
		return "", err
	}
	return header + "\n" + body, nil
}

// RenderSummary returns a single line overview of summary.
func RenderSummary(summary Summary) string {
	if summary.Leaves == 0 {
		return "No entries compared."
	}

	pairs := make([]StatePair, 0, len(summary.Counts))
	for pair := range summary.Counts {
		pairs = append(pairs, pair)
	}
	sortPairs(pairs)

	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, fmt.Sprintf("%s: %d", pair, summary.Counts[pair]))
	}
	return fmt.Sprintf("%d entries compared (%s)", summary.Leaves, strings.Join(parts, ", "))
}

func renderChildren(node *data.Node, options Options) []pterm.TreeNode {
	var result []pterm.TreeNode
	for _, child := range node.Children {
		if options.OnlyDifferences && child.LeftState == diff_state.Same && child.RightState == diff_state.Same {
			continue
		}
		text := fmt.Sprintf("%s %s", stateLabel(child), child.Name)
		if child.IsLeaf() && options.ShowDetails {
			text = fmt.Sprintf("%s  %s | %s", text, details(child.LeftData), details(child.RightData))
		}
		result = append(result, pterm.TreeNode{
			Text:     text,
			Children: renderChildren(child, options),
		})
	}
	return result
}

func stateLabel(node *data.Node) string {
	return fmt.Sprintf("[%s|%s]", colorize(node.LeftState), colorize(node.RightState))
}

func colorize(state diff_state.DiffState) string {
	switch state {
	case diff_state.New:
		return pterm.FgGreen.Sprint("+")
	case diff_state.Old:
		return pterm.FgRed.Sprint("-")
	case diff_state.NewOld:
		return pterm.FgYellow.Sprint("≠")
	case diff_state.Same:
		return pterm.FgGray.Sprint("=")
	default:
		return pterm.FgGray.Sprint("?")
	}
}

func details(handle any) string {
	if handle == nil {
		return "missing"
	}
	entry, ok := handle.(*source.Entry)
	if !ok || entry == nil || entry.Info == nil {
		return "-"
	}
	return fmt.Sprintf("%s, %s", humanize.IBytes(uint64(entry.Info.Size())), humanize.Time(entry.Info.ModTime()))
}

func displayPath(path string) string {
	if path == "" {
		return "(missing)"
	}
	return path
}

func sortPairs(pairs []StatePair) {
	slices.SortFunc(pairs, func(a, b StatePair) int {
		if a.Left != b.Left {
			return int(a.Left - b.Left)
		}
		return int(a.Right - b.Right)
	})
}
