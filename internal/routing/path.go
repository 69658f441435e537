package routing

import (
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
)

// Stroke widths for drawing, plus the wider invisible hit region.
const (
	StrokeWidth      = 1.5
	HoverStrokeWidth = 3.0
	HitWidth         = 12.0
)

// Path is a routed link as an ordered list of waypoints.
type Path struct {
	DependencyID string
	Type         domain.DependencyType
	Points       []geom.Point
	Hovered      bool
}

// Stroke returns the width to draw the path with.
func (p Path) Stroke() float64 {
	if p.Hovered {
		return HoverStrokeWidth
	}
	return StrokeWidth
}

// Hit reports whether pt is within half the hit width of any segment.
func (p Path) Hit(pt geom.Point) bool {
	for i := 1; i < len(p.Points); i++ {
		if geom.SegmentDistance(pt, p.Points[i-1], p.Points[i]) <= HitWidth/2 {
			return true
		}
	}
	return false
}

// PathAt returns the index of the path under pt, preferring the last drawn.
func PathAt(paths []Path, pt geom.Point) (int, bool) {
	for i := len(paths) - 1; i >= 0; i-- {
		if paths[i].Hit(pt) {
			return i, true
		}
	}
	return -1, false
}

// Hover marks the path under pt as hovered and clears the rest. It returns
// the hovered dependency id, or "".
func Hover(paths []Path, pt geom.Point) string {
	idx, ok := PathAt(paths, pt)
	for i := range paths {
		paths[i].Hovered = ok && i == idx
	}
	if !ok {
		return ""
	}
	return paths[idx].DependencyID
}
