package board

import (
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/routing"
	"github.com/alexanderramin/gantt/internal/tree"
)

// Bar is the geometry of one visible row. Left and Right are the date
// positions; undated rows have Dated false and no extent.
type Bar struct {
	ActivityID string
	Row        int
	Dated      bool
	Left       float64
	Right      float64
}

// Marker is a positioned milestone.
type Marker struct {
	MilestoneID string
	ActivityID  string
	Name        string
	Row         int
	X           float64
}

// View is the composed board for one snapshot and layout.
type View struct {
	Layout  Layout
	Forest  *tree.Forest
	Rows    []tree.Row
	Bars    []Bar
	Links   []routing.Path
	Markers []Marker

	rowOf map[string]int
}

// Compose builds the view. Entities without usable geometry (a link with a
// missing anchor date or hidden endpoint, a milestone without a date or
// with a hidden owner) are skipped.
func Compose(s *Snapshot, l Layout) *View {
	l = l.withDefaults()
	if s == nil {
		s = &Snapshot{}
	}
	f := tree.Build(s.Activities)
	rows := tree.Flatten(f)

	v := &View{
		Layout: l,
		Forest: f,
		Rows:   rows,
		Bars:   make([]Bar, len(rows)),
		rowOf:  make(map[string]int, len(rows)),
	}
	for i, r := range rows {
		v.rowOf[r.Activity.ID] = i
		v.Bars[i] = barFor(r.Activity, i, l)
	}

	router := l.Router()
	for _, d := range s.Dependencies {
		from, okFrom := v.endpoint(d.FromActivityID)
		to, okTo := v.endpoint(d.ToActivityID)
		if !okFrom || !okTo {
			continue
		}
		if p, ok := router.Route(d, from, to); ok {
			v.Links = append(v.Links, p)
		}
	}

	for _, m := range s.Milestones {
		if m.Date == nil {
			continue
		}
		row, ok := v.rowOf[m.ActivityID]
		if !ok {
			continue
		}
		v.Markers = append(v.Markers, Marker{
			MilestoneID: m.ID,
			ActivityID:  m.ActivityID,
			Name:        m.Name,
			Row:         row,
			X:           l.Scale.PositionForDate(*m.Date),
		})
	}
	return v
}

func barFor(a *domain.Activity, row int, l Layout) Bar {
	b := Bar{ActivityID: a.ID, Row: row}
	start, end, ok := a.Span()
	if !ok {
		return b
	}
	b.Dated = true
	b.Left = l.Scale.PositionForDate(start)
	b.Right = l.Scale.PositionForDate(end)
	return b
}

func (v *View) endpoint(id string) (routing.Endpoint, bool) {
	row, ok := v.rowOf[id]
	if !ok {
		return routing.Endpoint{}, false
	}
	a := v.Rows[row].Activity
	return routing.Endpoint{Row: row, Start: a.StartDate, End: a.EndDate}, true
}

// RowOf returns the visible row of id.
func (v *View) RowOf(id string) (int, bool) {
	row, ok := v.rowOf[id]
	return row, ok
}

// Bar returns the bar of id.
func (v *View) Bar(id string) (Bar, bool) {
	row, ok := v.rowOf[id]
	if !ok {
		return Bar{}, false
	}
	return v.Bars[row], true
}

// Order returns the visible activities top to bottom.
func (v *View) Order() []*domain.Activity {
	return tree.Activities(v.Rows)
}

// ActivityAt returns the activity on the row under p.
func (v *View) ActivityAt(p geom.Point) (string, bool) {
	row := v.Layout.RowAt(p.Y)
	if row < 0 || row >= len(v.Rows) {
		return "", false
	}
	return v.Rows[row].Activity.ID, true
}

// Width is the total timeline width.
func (v *View) Width() float64 {
	return v.Layout.Scale.Width()
}

// Height is the total height of the visible rows.
func (v *View) Height() float64 {
	return float64(len(v.Rows)) * v.Layout.RowHeight
}
