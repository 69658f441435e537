// Package routing computes orthogonal waypoint paths for dependency links so
// that an arrow never runs through the bars it connects.
package routing

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// DefaultGap is the horizontal clearance kept between a bar edge and the
// vertical leg of a link.
const DefaultGap = 15.0

// Endpoint is one side of a link: the visible row of the activity and its
// dates. A nil date means that anchor does not exist.
type Endpoint struct {
	Row   int
	Start *time.Time
	End   *time.Time
}

// Router turns dependencies into paths on one timeline scale.
type Router struct {
	Gap       float64
	RowHeight float64
	Scale     timeline.Scale
}

// NewRouter returns a router with the default gap.
func NewRouter(scale timeline.Scale, rowHeight float64) Router {
	return Router{Gap: DefaultGap, RowHeight: rowHeight, Scale: scale}
}

// Route computes the path for dep. ok is false when either anchor date is
// missing or the type is unknown; such links are not drawn.
func (r Router) Route(dep *domain.Dependency, from, to Endpoint) (Path, bool) {
	src, dst, ok := anchors(dep.Type, from, to)
	if !ok {
		return Path{}, false
	}

	s := geom.Pt(r.Scale.PositionForDate(*src), r.rowCenter(from.Row))
	t := geom.Pt(r.Scale.PositionForDate(*dst), r.rowCenter(to.Row))

	var points []geom.Point
	switch {
	case from.Row == to.Row:
		points = []geom.Point{s, t}
	case dep.Type == domain.FinishToStart:
		points = r.finishToStart(s, t, from.Row, to.Row)
	case dep.Type == domain.StartToStart:
		x := min(s.X, t.X) - r.gap()
		points = []geom.Point{s, geom.Pt(x, s.Y), geom.Pt(x, t.Y), t}
	case dep.Type == domain.FinishToFinish:
		x := max(s.X, t.X) + r.gap()
		points = []geom.Point{s, geom.Pt(x, s.Y), geom.Pt(x, t.Y), t}
	default:
		return Path{}, false
	}

	return Path{DependencyID: dep.ID, Type: dep.Type, Points: points}, true
}

// finishToStart drops straight into the target when it starts clear of the
// source. Otherwise it loops around along the source row's edge.
func (r Router) finishToStart(s, t geom.Point, fromRow, toRow int) []geom.Point {
	gap := r.gap()
	exit := s.X + gap
	if t.X >= exit {
		return []geom.Point{s, geom.Pt(exit, s.Y), geom.Pt(exit, t.Y), t}
	}

	gapY := float64(fromRow) * r.RowHeight
	if toRow > fromRow {
		gapY += r.RowHeight
	}
	entry := t.X - gap
	return []geom.Point{
		s,
		geom.Pt(exit, s.Y),
		geom.Pt(exit, gapY),
		geom.Pt(entry, gapY),
		geom.Pt(entry, t.Y),
		t,
	}
}

// anchors picks the source and target dates for each link type.
func anchors(typ domain.DependencyType, from, to Endpoint) (src, dst *time.Time, ok bool) {
	switch typ {
	case domain.FinishToStart:
		src, dst = from.End, to.Start
	case domain.StartToStart:
		src, dst = from.Start, to.Start
	case domain.FinishToFinish:
		src, dst = from.End, to.End
	default:
		return nil, nil, false
	}
	return src, dst, src != nil && dst != nil
}

func (r Router) rowCenter(row int) float64 {
	return float64(row)*r.RowHeight + r.RowHeight/2
}

func (r Router) gap() float64 {
	if r.Gap <= 0 {
		return DefaultGap
	}
	return r.Gap
}
