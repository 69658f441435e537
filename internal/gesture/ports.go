package gesture

import (
	"context"
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/tree"
)

// ActivityMutator is the store's activity mutation interface.
type ActivityMutator interface {
	CreateActivity(ctx context.Context, name string) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, id string, patch domain.ActivityPatch) (*domain.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
	ApplyEdits(ctx context.Context, edits []tree.Edit) error
}

// DependencyMutator is the store's dependency mutation interface.
type DependencyMutator interface {
	CreateDependency(ctx context.Context, fromID, toID string, typ domain.DependencyType) (*domain.Dependency, error)
	DeleteDependency(ctx context.Context, id string) error
	SetDependencyType(ctx context.Context, id string, typ domain.DependencyType) (*domain.Dependency, error)
}

// MilestoneMutator is the store's milestone mutation interface.
type MilestoneMutator interface {
	CreateMilestone(ctx context.Context, activityID, name string, date time.Time) (*domain.Milestone, error)
	DeleteMilestone(ctx context.Context, id string) error
}

// Loader fetches the full collections. It runs after every committed
// mutation; partial responses are never merged.
type Loader interface {
	Load(ctx context.Context) (*board.Snapshot, error)
}

// Ports bundles the external collaborators handed to the controller.
type Ports struct {
	Activities   ActivityMutator
	Dependencies DependencyMutator
	Milestones   MilestoneMutator
	Loader       Loader
	Observer     service.UseCaseObserver
}

// PointerHandler receives pointer motion and release while a session holds
// the capture.
type PointerHandler interface {
	PointerMove(p geom.Point) Feedback
	PointerUp(ctx context.Context, p geom.Point) (Outcome, error)
}

// Surface is the host's event source. Capture routes every pointer move and
// release to h until release is called.
type Surface interface {
	Capture(h PointerHandler) (release func())
}

// HitTester resolves the activity under a pointer position.
type HitTester interface {
	ActivityAt(p geom.Point) (string, bool)
}

// LayoutFunc derives the layout for a freshly loaded snapshot.
type LayoutFunc func(*board.Snapshot) board.Layout
