package repository

import (
	"context"

	"github.com/alexanderramin/gantt/internal/domain"
)

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) ([]*domain.Activity, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Activity, error)
	NextSortOrder(ctx context.Context, parentID *string) (int, error)
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	GetByID(ctx context.Context, id string) (*domain.Dependency, error)
	List(ctx context.Context) ([]*domain.Dependency, error)
	ListByActivity(ctx context.Context, activityID string) ([]*domain.Dependency, error)
	SetType(ctx context.Context, id string, typ domain.DependencyType) error
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context) ([]*domain.Milestone, error)
	ListByActivity(ctx context.Context, activityID string) ([]*domain.Milestone, error)
	Delete(ctx context.Context, id string) error
}
