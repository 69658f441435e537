package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one node in a tree display.
type TreeItem struct {
	Title     string
	Level     int
	IsLast    bool
	Collapsed bool
	Parent    bool
	Detail    string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree with box-drawing
// connectors. Collapsed parents get a ▸ marker, expanded ones ▾, and
// details are aligned in a column to the right.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	// open[d] records whether the ancestor at depth d still has siblings
	// below, which decides between a pipe and a blank.
	var open []bool
	for i, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for d := 1; d < item.Level; d++ {
				if d < len(open) && open[d] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		marker := "  "
		switch {
		case item.Parent && item.Collapsed:
			marker = StyleYellow.Render("▸ ")
		case item.Parent:
			marker = StyleDim.Render("▾ ")
		}

		contents[i] = StyleDim.Render(prefix.String()) + marker + item.Title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			b.WriteString(strings.Repeat(" ", widest-lipgloss.Width(contents[i])+colGap))
			b.WriteString(item.Detail)
		}
		b.WriteString("\n")
	}
	return b.String()
}
