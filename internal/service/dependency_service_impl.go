package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/google/uuid"
)

type dependencyService struct {
	deps       repository.DependencyRepo
	activities repository.ActivityRepo
	observer   UseCaseObserver
}

func NewDependencyService(
	deps repository.DependencyRepo,
	activities repository.ActivityRepo,
	observers ...UseCaseObserver,
) DependencyService {
	return &dependencyService{
		deps:       deps,
		activities: activities,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// CreateDependency links two distinct existing activities. A second link of
// the same type between the same pair is rejected.
func (s *dependencyService) CreateDependency(ctx context.Context, fromID, toID string, typ domain.DependencyType) (d *domain.Dependency, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"from": fromID, "to": toID, "type": string(typ)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "dependency.create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	d = &domain.Dependency{
		ID:             uuid.New().String(),
		FromActivityID: fromID,
		ToActivityID:   toID,
		Type:           typ,
		CreatedAt:      time.Now().UTC(),
	}
	if err = d.Validate(); err != nil {
		return nil, err
	}
	for _, id := range []string{fromID, toID} {
		if _, err = s.activities.GetByID(ctx, id); err != nil {
			return nil, fmt.Errorf("resolving dependency endpoint: %w", err)
		}
	}

	existing, err := s.deps.ListByActivity(ctx, fromID)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.FromActivityID == fromID && e.ToActivityID == toID && e.Type == typ {
			return nil, fmt.Errorf("%s %s -> %s: %w", typ, fromID, toID, ErrDuplicateDependency)
		}
	}

	if err = s.deps.Create(ctx, d); err != nil {
		return nil, err
	}
	fields["id"] = d.ID
	return d, nil
}

func (s *dependencyService) GetDependency(ctx context.Context, id string) (*domain.Dependency, error) {
	return s.deps.GetByID(ctx, id)
}

func (s *dependencyService) ListDependencies(ctx context.Context) ([]*domain.Dependency, error) {
	return s.deps.List(ctx)
}

// SetDependencyType retypes an existing link. It is the only path that
// produces finish-to-finish links.
func (s *dependencyService) SetDependencyType(ctx context.Context, id string, typ domain.DependencyType) (d *domain.Dependency, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "dependency.set_type",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"id": id, "type": string(typ)},
		})
	}()

	if _, err = domain.ParseDependencyType(string(typ)); err != nil {
		return nil, err
	}
	d, err = s.deps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Type == typ {
		return d, nil
	}

	siblings, err := s.deps.ListByActivity(ctx, d.FromActivityID)
	if err != nil {
		return nil, err
	}
	for _, e := range siblings {
		if e.ID != d.ID && e.ToActivityID == d.ToActivityID && e.FromActivityID == d.FromActivityID && e.Type == typ {
			return nil, fmt.Errorf("%s %s -> %s: %w", typ, d.FromActivityID, d.ToActivityID, ErrDuplicateDependency)
		}
	}

	if err = s.deps.SetType(ctx, id, typ); err != nil {
		return nil, err
	}
	d.Type = typ
	return d, nil
}

func (s *dependencyService) DeleteDependency(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "dependency.delete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"id": id},
		})
	}()

	err = s.deps.Delete(ctx, id)
	return err
}
