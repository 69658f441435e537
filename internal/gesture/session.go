package gesture

import (
	"math"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
)

// Kind is the type of an in-flight gesture.
type Kind int

const (
	KindNone Kind = iota
	KindMove
	KindResizeLeft
	KindResizeRight
	KindCreateBar
	KindCreateLink
	KindReorder
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindResizeLeft:
		return "resize-left"
	case KindResizeRight:
		return "resize-right"
	case KindCreateBar:
		return "create-bar"
	case KindCreateLink:
		return "create-link"
	case KindReorder:
		return "reorder"
	default:
		return "none"
	}
}

// Edge selects which bar end a resize drags.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

// LinkSide is the connector a link drag starts from.
type LinkSide int

const (
	LinkStart LinkSide = iota
	LinkEnd
)

// DependencyType infers the link type: start connector gives SS, end
// connector gives FS. No drag produces FF.
func (s LinkSide) DependencyType() domain.DependencyType {
	if s == LinkStart {
		return domain.StartToStart
	}
	return domain.FinishToStart
}

// Thresholds are the pixel limits that separate clicks from drags.
type Thresholds struct {
	Click       float64
	MinBarWidth float64
	CreateBar   float64
}

// DefaultThresholds returns click 3px, minimum bar width 16px and create
// span 10px.
func DefaultThresholds() Thresholds {
	return Thresholds{Click: 3, MinBarWidth: 16, CreateBar: 10}
}

// session is the one in-flight interaction. It is created on pointer-down
// and dropped on pointer-up or Abort.
type session struct {
	kind       Kind
	activityID string
	origin     geom.Point
	current    geom.Point
	bar        board.Bar
	side       LinkSide
	release    func()
}

func (s *session) delta() float64 {
	return s.current.X - s.origin.X
}

func (s *session) isClick(t Thresholds) bool {
	return math.Abs(s.delta()) < t.Click
}
