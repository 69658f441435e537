package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/google/uuid"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	activities repository.ActivityRepo
	observer   UseCaseObserver
}

func NewMilestoneService(
	milestones repository.MilestoneRepo,
	activities repository.ActivityRepo,
	observers ...UseCaseObserver,
) MilestoneService {
	return &milestoneService{
		milestones: milestones,
		activities: activities,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// CreateMilestone attaches a milestone to an existing activity. The date is
// truncated to its calendar day.
func (s *milestoneService) CreateMilestone(ctx context.Context, activityID, name string, date time.Time) (m *domain.Milestone, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"activity_id": activityID, "date": date.Format(domain.DateLayout)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "milestone.create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if date.IsZero() {
		return nil, fmt.Errorf("milestone date: %w", domain.ErrInvalidDate)
	}
	if _, err = s.activities.GetByID(ctx, activityID); err != nil {
		return nil, fmt.Errorf("resolving milestone owner: %w", err)
	}

	m = &domain.Milestone{
		ID:         uuid.New().String(),
		ActivityID: activityID,
		Name:       name,
		Date:       domain.DatePtr(date),
		CreatedAt:  time.Now().UTC(),
	}
	if err = s.milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	fields["id"] = m.ID
	return m, nil
}

func (s *milestoneService) GetMilestone(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *milestoneService) ListMilestones(ctx context.Context) ([]*domain.Milestone, error) {
	return s.milestones.List(ctx)
}

func (s *milestoneService) DeleteMilestone(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "milestone.delete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"id": id},
		})
	}()

	err = s.milestones.Delete(ctx, id)
	return err
}
