package gesture

import "github.com/alexanderramin/gantt/internal/geom"

// Feedback is the transient visual state of a live session. It is applied
// optimistically by the host and never committed on its own.
type Feedback struct {
	Kind       Kind
	ActivityID string
	Delta      float64

	// Left and Right are the previewed bar edges for move, resize and
	// create-bar sessions.
	Left  float64
	Right float64

	// LinkFrom and LinkTo are the rubber band for link sessions.
	LinkFrom geom.Point
	LinkTo   geom.Point

	// DropRow is the row a reorder would land on.
	DropRow int
}

// Active reports whether the feedback belongs to a live session.
func (f Feedback) Active() bool {
	return f.Kind != KindNone
}

// OutcomeKind classifies how a session ended.
type OutcomeKind int

const (
	// OutcomeNone means no session was live.
	OutcomeNone OutcomeKind = iota
	// OutcomeClick means the pointer moved less than the click threshold.
	OutcomeClick
	// OutcomeReverted means the gesture was degenerate and discarded.
	OutcomeReverted
	// OutcomeCommitted means one mutation was issued and the board refetched.
	OutcomeCommitted
	// OutcomeFailed means the mutation was rejected by the store.
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeClick:
		return "click"
	case OutcomeReverted:
		return "reverted"
	case OutcomeCommitted:
		return "committed"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// Outcome reports how PointerUp resolved.
type Outcome struct {
	Kind       OutcomeKind
	Session    Kind
	ActivityID string
}
