package board

import (
	"math"

	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/routing"
)

// HitKind names the element under the pointer.
type HitKind int

const (
	HitNone HitKind = iota
	HitRow
	HitBar
	HitLeftHandle
	HitRightHandle
	HitStartConnector
	HitEndConnector
	HitLink
	HitMilestone
)

func (k HitKind) String() string {
	switch k {
	case HitRow:
		return "row"
	case HitBar:
		return "bar"
	case HitLeftHandle:
		return "left-handle"
	case HitRightHandle:
		return "right-handle"
	case HitStartConnector:
		return "start-connector"
	case HitEndConnector:
		return "end-connector"
	case HitLink:
		return "link"
	case HitMilestone:
		return "milestone"
	default:
		return "none"
	}
}

// Hit is the result of HitTest.
type Hit struct {
	Kind         HitKind
	ActivityID   string
	DependencyID string
	MilestoneID  string
}

// Extent returns the drawn horizontal extent of a dated bar. Short bars are
// widened so both handles and a grab area stay reachable.
func (v *View) Extent(b Bar) (left, right float64) {
	h := v.Layout.HandleWidth
	return b.Left, math.Max(b.Right, b.Left+3*h)
}

// HitTest resolves the topmost element at p: milestones, then bar zones,
// then links, then the bare row.
func (v *View) HitTest(p geom.Point) Hit {
	row := v.Layout.RowAt(p.Y)
	inRows := row >= 0 && row < len(v.Rows)
	h := v.Layout.HandleWidth

	if inRows {
		for _, m := range v.Markers {
			if m.Row == row && math.Abs(p.X-m.X) <= h/2 {
				return Hit{Kind: HitMilestone, ActivityID: m.ActivityID, MilestoneID: m.MilestoneID}
			}
		}

		b := v.Bars[row]
		if b.Dated {
			left, right := v.Extent(b)
			id := b.ActivityID
			switch {
			case p.X >= left-h && p.X < left:
				return Hit{Kind: HitStartConnector, ActivityID: id}
			case p.X >= left && p.X < left+h:
				return Hit{Kind: HitLeftHandle, ActivityID: id}
			case p.X >= right-h && p.X < right:
				return Hit{Kind: HitRightHandle, ActivityID: id}
			case p.X >= right && p.X < right+h:
				return Hit{Kind: HitEndConnector, ActivityID: id}
			case p.X >= left && p.X < right:
				return Hit{Kind: HitBar, ActivityID: id}
			}
		}
	}

	if idx, ok := routing.PathAt(v.Links, p); ok {
		return Hit{Kind: HitLink, DependencyID: v.Links[idx].DependencyID}
	}

	if inRows {
		return Hit{Kind: HitRow, ActivityID: v.Rows[row].Activity.ID}
	}
	return Hit{Kind: HitNone}
}
