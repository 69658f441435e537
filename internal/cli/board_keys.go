package cli

import (
	"strings"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
)

// boardKeyMap is every keyboard binding of the board.
type boardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Indent      key.Binding
	Outdent     key.Binding
	Demote      key.Binding
	Promote     key.Binding
	Collapse    key.Binding
	Delete      key.Binding
	Escape      key.Binding
	Retype      key.Binding
	New         key.Binding
	Milestone   key.Binding
	Zoom        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Quit        key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
		Down:        key.NewBinding(key.WithKeys("down", "j")),
		MoveUp:      key.NewBinding(key.WithKeys("alt+up", "K"), key.WithHelp("alt+↑/↓", "reorder")),
		MoveDown:    key.NewBinding(key.WithKeys("alt+down", "J")),
		Indent:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/shift+tab", "indent")),
		Outdent:     key.NewBinding(key.WithKeys("shift+tab")),
		Demote:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d/p", "demote/promote")),
		Promote:     key.NewBinding(key.WithKeys("p")),
		Collapse:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "collapse")),
		Delete:      key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "delete")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Retype:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "link type")),
		New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Milestone:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "milestone")),
		Zoom:        key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		ScrollLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "scroll")),
		ScrollRight: key.NewBinding(key.WithKeys("right", "l")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the hint bar. Paired bindings
// share one hint.
func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.MoveUp, k.Indent, k.Demote, k.Collapse, k.Delete,
		k.New, k.Milestone, k.Retype, k.Zoom, k.ScrollLeft, k.Quit,
	}
}

func renderHints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
	}
	return strings.Join(hints, "  ")
}
