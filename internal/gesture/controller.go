// Package gesture turns pointer and keyboard input on the board into
// transient feedback or committed mutations. One Controller owns at most one
// live session; it is not safe for concurrent use and is meant to be driven
// from a single event loop.
package gesture

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/tree"
)

// Controller is the gesture state machine for one board.
type Controller struct {
	ports      Ports
	surface    Surface
	observer   service.UseCaseObserver
	layout     LayoutFunc
	thresholds Thresholds
	hit        HitTester
	onSelect   func(id string)

	snapshot *board.Snapshot
	view     *board.View

	session  *session
	feedback Feedback
	selected string
	focused  bool
	pending  *ConfirmRequest
}

// Option configures a Controller.
type Option func(*Controller)

// WithLayout fixes the layout regardless of the snapshot.
func WithLayout(l board.Layout) Option {
	return func(c *Controller) {
		c.layout = func(*board.Snapshot) board.Layout { return l }
	}
}

// WithLayoutFunc derives the layout from each loaded snapshot.
func WithLayoutFunc(fn LayoutFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.layout = fn
		}
	}
}

// WithThresholds overrides the click, minimum width and create thresholds.
func WithThresholds(t Thresholds) Option {
	return func(c *Controller) { c.thresholds = t }
}

// WithHitTester overrides how link drops find their target. By default
// the row under the pointer is used.
func WithHitTester(h HitTester) Option {
	return func(c *Controller) { c.hit = h }
}

// WithSelectHandler is called whenever a click selects an activity.
func WithSelectHandler(fn func(id string)) Option {
	return func(c *Controller) { c.onSelect = fn }
}

// NewController wires the controller to its store ports and event surface.
func NewController(ports Ports, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		ports:      ports,
		surface:    surface,
		observer:   ports.Observer,
		thresholds: DefaultThresholds(),
		layout: func(s *board.Snapshot) board.Layout {
			return board.NewLayout(s, board.LayoutOptions{})
		},
	}
	if c.observer == nil {
		c.observer = service.NoopUseCaseObserver{}
	}
	for _, opt := range opts {
		opt(c)
	}
	c.setSnapshot(&board.Snapshot{})
	return c
}

// Refresh refetches every collection and recomposes the view. On failure
// the last good snapshot stays in place.
func (c *Controller) Refresh(ctx context.Context) error {
	snap, err := c.ports.Loader.Load(ctx)
	if err != nil {
		c.observe(ctx, "board.load", time.Now(), err, nil)
		return fmt.Errorf("loading board: %w", err)
	}
	c.setSnapshot(snap)
	return nil
}

// SetLayoutFunc swaps the layout (for example on zoom) and recomposes.
func (c *Controller) SetLayoutFunc(fn LayoutFunc) {
	if fn == nil {
		return
	}
	c.layout = fn
	c.setSnapshot(c.snapshot)
}

func (c *Controller) setSnapshot(s *board.Snapshot) {
	if s == nil {
		s = &board.Snapshot{}
	}
	c.snapshot = s
	c.view = board.Compose(s, c.layout(s))
	if c.selected != "" {
		if _, ok := s.Activity(c.selected); !ok {
			c.selected = ""
		}
	}
}

// Snapshot returns the last loaded collections.
func (c *Controller) Snapshot() *board.Snapshot { return c.snapshot }

// View returns the composed board for the last snapshot.
func (c *Controller) View() *board.View { return c.view }

// Feedback returns the live session's preview, or the zero value.
func (c *Controller) Feedback() Feedback { return c.feedback }

// Active reports whether a session is live.
func (c *Controller) Active() bool { return c.session != nil }

// BeginMove starts dragging the whole bar of id.
func (c *Controller) BeginMove(id string, p geom.Point) error {
	bar, err := c.datedBar(id)
	if err != nil {
		return err
	}
	return c.begin(&session{kind: KindMove, activityID: id, origin: p, current: p, bar: bar})
}

// BeginResize starts dragging one edge of the bar of id.
func (c *Controller) BeginResize(id string, edge Edge, p geom.Point) error {
	bar, err := c.datedBar(id)
	if err != nil {
		return err
	}
	kind := KindResizeLeft
	if edge == EdgeRight {
		kind = KindResizeRight
	}
	return c.begin(&session{kind: kind, activityID: id, origin: p, current: p, bar: bar})
}

// BeginCreateBar starts drawing a bar on the row of an undated activity.
func (c *Controller) BeginCreateBar(id string, p geom.Point) error {
	bar, ok := c.view.Bar(id)
	if !ok {
		return ErrNotVisible
	}
	if bar.Dated {
		return ErrAlreadyDated
	}
	return c.begin(&session{kind: KindCreateBar, activityID: id, origin: p, current: p, bar: bar})
}

// BeginLink starts a link drag from the start or end connector of id.
func (c *Controller) BeginLink(id string, side LinkSide, p geom.Point) error {
	bar, err := c.datedBar(id)
	if err != nil {
		return err
	}
	return c.begin(&session{kind: KindCreateLink, activityID: id, origin: p, current: p, bar: bar, side: side})
}

// BeginReorder starts dragging the row of id.
func (c *Controller) BeginReorder(id string, p geom.Point) error {
	bar, ok := c.view.Bar(id)
	if !ok {
		return ErrNotVisible
	}
	return c.begin(&session{kind: KindReorder, activityID: id, origin: p, current: p, bar: bar})
}

func (c *Controller) datedBar(id string) (board.Bar, error) {
	bar, ok := c.view.Bar(id)
	if !ok {
		return board.Bar{}, ErrNotVisible
	}
	if !bar.Dated {
		return board.Bar{}, ErrUndated
	}
	return bar, nil
}

func (c *Controller) begin(s *session) error {
	if c.session != nil {
		return ErrSessionActive
	}
	s.release = func() {}
	if c.surface != nil {
		if release := c.surface.Capture(c); release != nil {
			s.release = release
		}
	}
	c.session = s
	c.feedback = c.preview(s)
	return nil
}

// PointerMove updates the live session and returns its preview. Nothing is
// committed.
func (c *Controller) PointerMove(p geom.Point) Feedback {
	if c.session == nil {
		return Feedback{}
	}
	c.session.current = p
	c.feedback = c.preview(c.session)
	return c.feedback
}

// Abort ends the live session without committing.
func (c *Controller) Abort() {
	s := c.end()
	if s != nil {
		s.release()
	}
}

func (c *Controller) end() *session {
	s := c.session
	c.session = nil
	c.feedback = Feedback{}
	return s
}

// PointerUp resolves the live session: a click, a discarded degenerate
// gesture, or exactly one committed mutation followed by a refetch.
func (c *Controller) PointerUp(ctx context.Context, p geom.Point) (Outcome, error) {
	s := c.end()
	if s == nil {
		return Outcome{}, nil
	}
	defer s.release()

	s.current = p
	fb := c.preview(s)
	out := Outcome{Session: s.kind, ActivityID: s.activityID}

	switch s.kind {
	case KindMove, KindResizeLeft, KindResizeRight:
		if s.isClick(c.thresholds) {
			c.selectActivity(s.activityID)
			out.Kind = OutcomeClick
			return out, nil
		}
		if fb.Left == s.bar.Left && fb.Right == s.bar.Right {
			out.Kind = OutcomeReverted
			return out, nil
		}
		return c.commitDates(ctx, s, fb, out)
	case KindCreateBar:
		if math.Abs(s.delta()) <= c.thresholds.CreateBar {
			out.Kind = OutcomeReverted
			return out, nil
		}
		return c.commitDates(ctx, s, fb, out)
	case KindCreateLink:
		return c.commitLink(ctx, s, out)
	case KindReorder:
		// Releasing on the row it started from is a click on the name.
		if fb.DropRow == s.bar.Row {
			c.selectActivity(s.activityID)
			out.Kind = OutcomeClick
			return out, nil
		}
		return c.commitReorder(ctx, s, fb, out)
	default:
		out.Kind = OutcomeReverted
		return out, nil
	}
}

// preview computes the feedback for s at its current pointer position.
func (c *Controller) preview(s *session) Feedback {
	d := s.delta()
	fb := Feedback{Kind: s.kind, ActivityID: s.activityID, Delta: d, Left: s.bar.Left, Right: s.bar.Right}
	// A bar already narrower than the minimum keeps its width; an inward
	// drag never extends it.
	minWidth := math.Min(c.thresholds.MinBarWidth, s.bar.Right-s.bar.Left)

	switch s.kind {
	case KindMove:
		fb.Left += d
		fb.Right += d
	case KindResizeLeft:
		fb.Left = math.Min(s.bar.Left+d, s.bar.Right-minWidth)
	case KindResizeRight:
		fb.Right = math.Max(s.bar.Right+d, s.bar.Left+minWidth)
	case KindCreateBar:
		fb.Left = math.Min(s.origin.X, s.current.X)
		fb.Right = math.Max(s.origin.X, s.current.X)
	case KindCreateLink:
		x := s.bar.Right
		if s.side == LinkStart {
			x = s.bar.Left
		}
		y := c.view.Layout.RowTop(s.bar.Row) + c.view.Layout.RowHeight/2
		fb.LinkFrom = geom.Pt(x, y)
		fb.LinkTo = s.current
	case KindReorder:
		fb.DropRow = c.dropRow(s.current.Y)
	}
	return fb
}

func (c *Controller) dropRow(y float64) int {
	row := c.view.Layout.RowAt(y)
	if y < 0 {
		row = 0
	}
	if last := len(c.view.Rows) - 1; row > last {
		row = last
	}
	return row
}

// commitDates converts the previewed edges to dates. Move keeps whichever
// dates the activity had; resize submits only the dragged end; create-bar
// submits both.
func (c *Controller) commitDates(ctx context.Context, s *session, fb Feedback, out Outcome) (Outcome, error) {
	a, ok := c.snapshot.Activity(s.activityID)
	if !ok {
		out.Kind = OutcomeReverted
		return out, nil
	}
	scale := c.view.Layout.Scale
	left := scale.DateForPosition(fb.Left)
	right := scale.DateForPosition(fb.Right)

	var patch domain.ActivityPatch
	switch s.kind {
	case KindMove:
		if a.StartDate != nil {
			patch.StartDate = &left
		}
		if a.EndDate != nil {
			patch.EndDate = &right
		}
	case KindResizeLeft:
		patch.StartDate = &left
	case KindResizeRight:
		patch.EndDate = &right
	case KindCreateBar:
		patch.StartDate = &left
		patch.EndDate = &right
	}

	fields := map[string]any{
		"activity_id": s.activityID,
		"start":       domain.FormatDate(patch.StartDate),
		"end":         domain.FormatDate(patch.EndDate),
	}
	return c.commit(ctx, "gesture."+s.kind.String(), fields, out, func(ctx context.Context) error {
		_, err := c.ports.Activities.UpdateActivity(ctx, s.activityID, patch)
		return err
	})
}

func (c *Controller) commitLink(ctx context.Context, s *session, out Outcome) (Outcome, error) {
	hit := c.hit
	if hit == nil {
		hit = c.view
	}
	target, ok := hit.ActivityAt(s.current)
	if !ok || target == s.activityID {
		out.Kind = OutcomeReverted
		return out, nil
	}
	typ := s.side.DependencyType()
	fields := map[string]any{"from": s.activityID, "to": target, "type": string(typ)}
	return c.commit(ctx, "gesture.create-link", fields, out, func(ctx context.Context) error {
		_, err := c.ports.Dependencies.CreateDependency(ctx, s.activityID, target, typ)
		return err
	})
}

func (c *Controller) commitReorder(ctx context.Context, s *session, fb Feedback, out Outcome) (Outcome, error) {
	from, ok := c.view.RowOf(s.activityID)
	if !ok || fb.DropRow < 0 || fb.DropRow == from {
		out.Kind = OutcomeReverted
		return out, nil
	}
	edits := tree.Reorder(tree.Move(c.view.Order(), from, fb.DropRow))
	if len(edits) == 0 {
		out.Kind = OutcomeReverted
		return out, nil
	}
	fields := map[string]any{"activity_id": s.activityID, "to_row": fb.DropRow, "edits": len(edits)}
	return c.commit(ctx, "gesture.reorder", fields, out, func(ctx context.Context) error {
		return c.ports.Activities.ApplyEdits(ctx, edits)
	})
}

// commit issues one mutation and refetches. A failed mutation leaves the
// snapshot untouched and is reported through the observer.
func (c *Controller) commit(ctx context.Context, name string, fields map[string]any, out Outcome, mutate func(context.Context) error) (Outcome, error) {
	startedAt := time.Now()
	if err := mutate(ctx); err != nil {
		c.observe(ctx, name, startedAt, err, fields)
		out.Kind = OutcomeFailed
		return out, err
	}
	c.observe(ctx, name, startedAt, nil, fields)
	out.Kind = OutcomeCommitted
	return out, c.Refresh(ctx)
}

func (c *Controller) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	c.observer.ObserveUseCase(ctx, service.UseCaseEvent{
		Name:      name,
		Layer:     service.LayerGesture,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
