package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorBar    = lipgloss.Color("#458588")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// BarColor returns the activity's own color when it is a hex value, and
// the default bar color otherwise.
func BarColor(color string) lipgloss.Color {
	if hexColor.MatchString(color) {
		return lipgloss.Color(color)
	}
	return ColorBar
}

// TypeStyle returns the style used for a dependency type.
func TypeStyle(t domain.DependencyType) lipgloss.Style {
	switch t {
	case domain.FinishToStart:
		return StyleBlue
	case domain.StartToStart:
		return StyleGreen
	case domain.FinishToFinish:
		return StylePurple
	default:
		return StyleDim
	}
}

// TypeBadge renders a dependency type as a short colored badge, e.g. "FS".
func TypeBadge(t domain.DependencyType) string {
	return TypeStyle(t).Render(string(t))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold.
func Bold(text string) string {
	return StyleBold.Render(text)
}
