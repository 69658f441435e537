package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/tree"
	"github.com/google/uuid"
)

type activityService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewActivityService(
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ActivityService {
	return &activityService{
		activities: activities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// CreateActivity appends an undated activity to the end of the top level.
func (s *activityService) CreateActivity(ctx context.Context, name string) (*domain.Activity, error) {
	return s.AddActivity(ctx, NewActivity{Name: name})
}

func (s *activityService) AddActivity(ctx context.Context, in NewActivity) (a *domain.Activity, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": in.Name}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "activity.create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if in.ParentID != nil {
		if _, err = s.activities.GetByID(ctx, *in.ParentID); err != nil {
			return nil, fmt.Errorf("resolving parent: %w", err)
		}
		fields["parent_id"] = *in.ParentID
	}

	order, err := s.activities.NextSortOrder(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a = &domain.Activity{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      in.Name,
		SortOrder: order,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.StartDate != nil {
		a.StartDate = domain.DatePtr(*in.StartDate)
	}
	if in.EndDate != nil {
		a.EndDate = domain.DatePtr(*in.EndDate)
	}
	if err = a.ValidateDates(); err != nil {
		return nil, err
	}

	if err = s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	fields["id"] = a.ID
	return a, nil
}

func (s *activityService) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

func (s *activityService) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	return s.activities.List(ctx)
}

// UpdateActivity applies a partial update. Date order is enforced, and a
// parent change is checked against the stored forest so the tree stays
// acyclic. A parent change without an explicit sort order appends the
// activity to its new sibling group.
func (s *activityService) UpdateActivity(ctx context.Context, id string, patch domain.ActivityPatch) (a *domain.Activity, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "activity.update",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	a, err = s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return a, nil
	}

	if patch.TouchesParent() {
		var newParent *string
		if !patch.ClearParent {
			newParent = patch.ParentID
		}
		if err = s.validateParent(ctx, id, newParent); err != nil {
			return nil, err
		}
		if patch.SortOrder == nil && !sameParent(a.ParentID, newParent) {
			var order int
			order, err = s.activities.NextSortOrder(ctx, newParent)
			if err != nil {
				return nil, err
			}
			patch.SortOrder = &order
		}
		fields["reparent"] = true
	}

	a.Apply(patch)
	if err = a.ValidateDates(); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now().UTC()
	if err = s.activities.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *activityService) validateParent(ctx context.Context, id string, newParent *string) error {
	all, err := s.activities.List(ctx)
	if err != nil {
		return err
	}
	if err := tree.ValidateParent(tree.Build(all), id, newParent); err != nil {
		return fmt.Errorf("reparenting activity: %w", err)
	}
	return nil
}

// DeleteActivity removes the activity; the store cascades to its
// descendants and to their dependencies and milestones.
func (s *activityService) DeleteActivity(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "activity.delete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"id": id},
		})
	}()

	err = s.activities.Delete(ctx, id)
	return err
}

// ApplyEdits commits a batch of structural edits in one transaction. The
// whole batch is validated against the forest it produces; any unknown id
// or resulting cycle rolls everything back.
func (s *activityService) ApplyEdits(ctx context.Context, edits []tree.Edit) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "activity.apply_edits",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"edit_count": len(edits)},
		})
	}()

	if len(edits) == 0 {
		return nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteActivityRepo(tx)

		all, err := txActivities.List(ctx)
		if err != nil {
			return err
		}
		before := tree.Build(all)
		for _, e := range edits {
			if !before.Has(e.ID) {
				return fmt.Errorf("edit for %s: %w", e.ID, tree.ErrUnknownActivity)
			}
			if e.ParentID != nil && !e.ClearParent && !before.Has(*e.ParentID) {
				return fmt.Errorf("edit for %s: parent %s: %w", e.ID, *e.ParentID, tree.ErrUnknownActivity)
			}
		}
		if err := checkAcyclic(tree.Apply(all, edits), edits); err != nil {
			return err
		}

		byID := make(map[string]*domain.Activity, len(all))
		for _, a := range all {
			byID[a.ID] = a
		}
		now := time.Now().UTC()
		for _, e := range edits {
			a := byID[e.ID].Clone()
			a.Apply(e.Patch())
			a.UpdatedAt = now
			if err := txActivities.Update(ctx, a); err != nil {
				return fmt.Errorf("applying edit for %s: %w", e.ID, err)
			}
		}
		return nil
	})
	return err
}

// checkAcyclic walks each edited activity's parent chain in the edited
// collection and fails if it returns to the activity.
func checkAcyclic(activities []*domain.Activity, edits []tree.Edit) error {
	parent := make(map[string]string, len(activities))
	for _, a := range activities {
		if a.ParentID != nil {
			parent[a.ID] = *a.ParentID
		}
	}
	for _, e := range edits {
		seen := map[string]bool{e.ID: true}
		for cur, ok := parent[e.ID]; ok; cur, ok = parent[cur] {
			if seen[cur] {
				return fmt.Errorf("edit for %s: %w", e.ID, tree.ErrCycle)
			}
			seen[cur] = true
		}
	}
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
