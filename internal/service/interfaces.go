package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/tree"
)

// NewActivity carries the optional fields accepted when adding an activity
// from the command line. The board only ever creates with a name.
type NewActivity struct {
	Name      string
	ParentID  *string
	StartDate *time.Time
	EndDate   *time.Time
	Color     string
}

type ActivityService interface {
	CreateActivity(ctx context.Context, name string) (*domain.Activity, error)
	AddActivity(ctx context.Context, in NewActivity) (*domain.Activity, error)
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)
	ListActivities(ctx context.Context) ([]*domain.Activity, error)
	UpdateActivity(ctx context.Context, id string, patch domain.ActivityPatch) (*domain.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
	ApplyEdits(ctx context.Context, edits []tree.Edit) error
}

type DependencyService interface {
	CreateDependency(ctx context.Context, fromID, toID string, typ domain.DependencyType) (*domain.Dependency, error)
	GetDependency(ctx context.Context, id string) (*domain.Dependency, error)
	ListDependencies(ctx context.Context) ([]*domain.Dependency, error)
	SetDependencyType(ctx context.Context, id string, typ domain.DependencyType) (*domain.Dependency, error)
	DeleteDependency(ctx context.Context, id string) error
}

type MilestoneService interface {
	CreateMilestone(ctx context.Context, activityID, name string, date time.Time) (*domain.Milestone, error)
	GetMilestone(ctx context.Context, id string) (*domain.Milestone, error)
	ListMilestones(ctx context.Context) ([]*domain.Milestone, error)
	DeleteMilestone(ctx context.Context, id string) error
}

// BoardService returns the full collections the board is drawn from.
type BoardService interface {
	Load(ctx context.Context) (*board.Snapshot, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Activities      []*domain.Activity
	DependencyCount int
	MilestoneCount  int
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
