package gesture

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/alexanderramin/gantt/internal/tree"
)

var errStoreDown = errors.New("store unavailable")

type updateCall struct {
	id    string
	patch domain.ActivityPatch
}

type depCall struct {
	from, to string
	typ      domain.DependencyType
}

// fakeStore is an in-memory store that records every mutation call.
type fakeStore struct {
	snap *board.Snapshot
	fail error

	loads        int
	updates      []updateCall
	edits        [][]tree.Edit
	createdDeps  []depCall
	retyped      []depCall
	deletedActs  []string
	deletedDeps  []string
	deletedMiles []string
	createdActs  []string
	createdMiles []string
}

func (f *fakeStore) mutations() int {
	return len(f.updates) + len(f.edits) + len(f.createdDeps) + len(f.retyped) +
		len(f.deletedActs) + len(f.deletedDeps) + len(f.deletedMiles) +
		len(f.createdActs) + len(f.createdMiles)
}

func (f *fakeStore) Load(context.Context) (*board.Snapshot, error) {
	f.loads++
	return f.snap, nil
}

func (f *fakeStore) CreateActivity(_ context.Context, name string) (*domain.Activity, error) {
	f.createdActs = append(f.createdActs, name)
	if f.fail != nil {
		return nil, f.fail
	}
	a := &domain.Activity{ID: "new-" + name, Name: name, SortOrder: len(f.snap.Activities)}
	f.snap.Activities = append(f.snap.Activities, a)
	return a, nil
}

func (f *fakeStore) UpdateActivity(_ context.Context, id string, patch domain.ActivityPatch) (*domain.Activity, error) {
	f.updates = append(f.updates, updateCall{id: id, patch: patch})
	if f.fail != nil {
		return nil, f.fail
	}
	a, _ := f.snap.Activity(id)
	a.Apply(patch)
	return a, nil
}

func (f *fakeStore) DeleteActivity(_ context.Context, id string) error {
	f.deletedActs = append(f.deletedActs, id)
	return f.fail
}

func (f *fakeStore) ApplyEdits(_ context.Context, edits []tree.Edit) error {
	f.edits = append(f.edits, edits)
	if f.fail != nil {
		return f.fail
	}
	f.snap.Activities = tree.Apply(f.snap.Activities, edits)
	return nil
}

func (f *fakeStore) CreateDependency(_ context.Context, from, to string, typ domain.DependencyType) (*domain.Dependency, error) {
	f.createdDeps = append(f.createdDeps, depCall{from: from, to: to, typ: typ})
	if f.fail != nil {
		return nil, f.fail
	}
	return &domain.Dependency{ID: "dep-new", FromActivityID: from, ToActivityID: to, Type: typ}, nil
}

func (f *fakeStore) DeleteDependency(_ context.Context, id string) error {
	f.deletedDeps = append(f.deletedDeps, id)
	return f.fail
}

func (f *fakeStore) SetDependencyType(_ context.Context, id string, typ domain.DependencyType) (*domain.Dependency, error) {
	f.retyped = append(f.retyped, depCall{from: id, typ: typ})
	if f.fail != nil {
		return nil, f.fail
	}
	d, _ := f.snap.Dependency(id)
	d.Type = typ
	return d, nil
}

func (f *fakeStore) CreateMilestone(_ context.Context, activityID, name string, date time.Time) (*domain.Milestone, error) {
	f.createdMiles = append(f.createdMiles, activityID+":"+name)
	if f.fail != nil {
		return nil, f.fail
	}
	return &domain.Milestone{ID: "m-new", ActivityID: activityID, Name: name, Date: &date}, nil
}

func (f *fakeStore) DeleteMilestone(_ context.Context, id string) error {
	f.deletedMiles = append(f.deletedMiles, id)
	return f.fail
}

// fakeSurface counts capture attach and release.
type fakeSurface struct {
	handler  PointerHandler
	captures int
	releases int
}

func (s *fakeSurface) Capture(h PointerHandler) func() {
	s.captures++
	s.handler = h
	return func() {
		s.releases++
		s.handler = nil
	}
}

func (s *fakeSurface) attached() bool {
	return s.captures > s.releases
}

type recordingObserver struct {
	events []service.UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	o.events = append(o.events, e)
}

func (o *recordingObserver) failures() []service.UseCaseEvent {
	var out []service.UseCaseEvent
	for _, e := range o.events {
		if !e.Success {
			out = append(out, e)
		}
	}
	return out
}

func date(s string) *time.Time {
	d := domain.MustDate(s)
	return &d
}

func activity(id, parent string, order int, start, end string) *domain.Activity {
	a := &domain.Activity{ID: id, Name: "Activity " + id, SortOrder: order}
	if parent != "" {
		p := parent
		a.ParentID = &p
	}
	if start != "" {
		a.StartDate = date(start)
	}
	if end != "" {
		a.EndDate = date(end)
	}
	return a
}

// testLayout is 40px week columns from Monday 2024-01-29, rows of 16px.
func testLayout() board.Layout {
	return board.Layout{
		Scale: timeline.NewScale(timeline.Range{
			Start: domain.MustDate("2024-01-29"),
			End:   domain.MustDate("2024-03-03"),
		}, 40, domain.GranularityWeek),
		RowHeight: 16,
	}
}

// Visible rows: a (0, 40..80), a1 (1, undated), a2 (2), b (3, 120..~143).
func testSnapshot() *board.Snapshot {
	return &board.Snapshot{
		Activities: []*domain.Activity{
			activity("a", "", 0, "2024-02-05", "2024-02-12"),
			activity("a1", "a", 0, "", ""),
			activity("a2", "a", 1, "2024-02-12", "2024-02-16"),
			activity("b", "", 1, "2024-02-19", "2024-02-23"),
		},
		Dependencies: []*domain.Dependency{
			{ID: "d1", FromActivityID: "a", ToActivityID: "b", Type: domain.FinishToStart},
		},
		Milestones: []*domain.Milestone{
			{ID: "m1", ActivityID: "a", Name: "Kickoff", Date: date("2024-02-06")},
		},
	}
}

type harness struct {
	store    *fakeStore
	surface  *fakeSurface
	observer *recordingObserver
	selected []string
	c        *Controller
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		store:    &fakeStore{snap: testSnapshot()},
		surface:  &fakeSurface{},
		observer: &recordingObserver{},
	}
	ports := Ports{
		Activities:   h.store,
		Dependencies: h.store,
		Milestones:   h.store,
		Loader:       h.store,
		Observer:     h.observer,
	}
	base := []Option{
		WithLayout(testLayout()),
		WithSelectHandler(func(id string) { h.selected = append(h.selected, id) }),
	}
	h.c = NewController(ports, h.surface, append(base, opts...)...)
	if err := h.c.Refresh(context.Background()); err != nil {
		panic(err)
	}
	h.store.loads = 0
	return h
}
