package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/routing"
	"github.com/alexanderramin/gantt/internal/tree"
)

// TreeItems converts flattened rows into tree items. A row is last when
// no later sibling follows before the walk climbs back above its depth.
func TreeItems(rows []tree.Row) []TreeItem {
	items := make([]TreeItem, len(rows))
	for i, r := range rows {
		last := true
		for _, next := range rows[i+1:] {
			if next.Depth < r.Depth {
				break
			}
			if next.Depth == r.Depth {
				last = false
				break
			}
		}
		items[i] = TreeItem{
			Title:     StyleFg.Render(r.Activity.Name) + " " + TruncID(r.Activity.ID),
			Level:     r.Depth,
			IsLast:    last,
			Collapsed: r.Activity.Collapsed,
			Parent:    r.HasChildren,
			Detail:    DateRange(r.Activity),
		}
	}
	return items
}

// FormatActivityTree renders the activity hierarchy.
func FormatActivityTree(rows []tree.Row) string {
	if len(rows) == 0 {
		return Dim("No activities yet. Add one with `gantt activity add NAME`.") + "\n"
	}
	return RenderTree(TreeItems(rows))
}

// ActivityDetail is everything shown by `activity show`.
type ActivityDetail struct {
	Activity   *domain.Activity
	Parent     *domain.Activity
	Children   []*domain.Activity
	Links      []*domain.Dependency
	Milestones []*domain.Milestone
	// Names maps activity ids to names for the link lines.
	Names map[string]string
}

// FormatActivityDetail renders one activity with its children, links and
// milestones in a box.
func FormatActivityDetail(d ActivityDetail) string {
	a := d.Activity
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value)
	}
	field("ID", a.ID)
	field("Dates", DateRange(a))
	if d.Parent != nil {
		field("Parent", d.Parent.Name+" "+TruncID(d.Parent.ID))
	} else {
		field("Parent", Dim("(top level)"))
	}
	if a.Color != "" {
		field("Color", a.Color)
	}
	if len(d.Children) > 0 {
		state := "expanded"
		if a.Collapsed {
			state = "collapsed"
		}
		field("Children", fmt.Sprintf("%d %s", len(d.Children), Dim("("+state+")")))
	}
	field("Order", fmt.Sprintf("%d", a.SortOrder))
	field("Updated", HumanTimestamp(a.UpdatedAt))

	if len(d.Links) > 0 {
		b.WriteString("\n" + Header("Dependencies") + "\n")
		for _, dep := range d.Links {
			fmt.Fprintf(&b, "%s %s → %s %s\n",
				TypeBadge(dep.Type),
				nameOr(d.Names, dep.FromActivityID),
				nameOr(d.Names, dep.ToActivityID),
				TruncID(dep.ID))
		}
	}
	if len(d.Milestones) > 0 {
		b.WriteString("\n" + Header("Milestones") + "\n")
		for _, m := range d.Milestones {
			fmt.Fprintf(&b, "%s %s %s %s\n", StyleYellow.Render("◆"), OptionalDate(m.Date), m.Name, TruncID(m.ID))
		}
	}
	return RenderBox(a.Name, strings.TrimRight(b.String(), "\n"))
}

// FormatDependencyList renders dependencies as a table.
func FormatDependencyList(deps []*domain.Dependency, names map[string]string) string {
	if len(deps) == 0 {
		return Dim("No dependencies.") + "\n"
	}
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{
			TruncID(d.ID),
			TypeBadge(d.Type),
			nameOr(names, d.FromActivityID),
			nameOr(names, d.ToActivityID),
		})
	}
	return RenderTable([]string{"ID", "TYPE", "FROM", "TO"}, rows)
}

// FormatMilestoneList renders milestones as a table.
func FormatMilestoneList(ms []*domain.Milestone, names map[string]string) string {
	if len(ms) == 0 {
		return Dim("No milestones.") + "\n"
	}
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{
			TruncID(m.ID),
			OptionalDate(m.Date),
			m.Name,
			nameOr(names, m.ActivityID),
		})
	}
	return RenderTable([]string{"ID", "DATE", "NAME", "ACTIVITY"}, rows)
}

// FormatRoute renders a routed link as its waypoint list.
func FormatRoute(d *domain.Dependency, p routing.Path, names map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s → %s\n", TypeBadge(d.Type), nameOr(names, d.FromActivityID), nameOr(names, d.ToActivityID))
	for i, pt := range p.Points {
		fmt.Fprintf(&b, "  %s (%.1f, %.1f)\n", Dim(fmt.Sprintf("%d", i)), pt.X, pt.Y)
	}
	return b.String()
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return ShortID(id)
}
