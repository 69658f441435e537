package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// DateRange renders an activity's span as "start → end (N days)", or a
// dimmed placeholder when it has no dates.
func DateRange(a *domain.Activity) string {
	start, end, ok := a.Span()
	if !ok {
		return Dim("unscheduled")
	}
	return fmt.Sprintf("%s → %s %s",
		start.Format(domain.DateLayout),
		end.Format(domain.DateLayout),
		Dim(fmt.Sprintf("(%s)", Days(domain.DaysBetween(start, end)+1))))
}

// Days renders a day count, e.g. "1 day" or "12 days".
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// OptionalDate renders a nullable date, dimming the missing case.
func OptionalDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return domain.FormatDate(t)
}

// HumanTimestamp returns a relative timestamp against now.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom returns a relative timestamp against a reference time.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID returns the first 8 characters of an ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Truncate shortens s to width cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
