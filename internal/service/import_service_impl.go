package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

// importSchema persists the whole plan atomically. Imported top-level
// activities are appended after the existing ones.
func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"activity_count": len(schema.Activities)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	var plan *importer.Plan
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteActivityRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		base, err := txActivities.NextSortOrder(ctx, nil)
		if err != nil {
			return err
		}
		plan, err = importer.Convert(schema, base)
		if err != nil {
			return fmt.Errorf("converting import schema: %w", err)
		}

		for _, a := range plan.Activities {
			if err := txActivities.Create(ctx, a); err != nil {
				return fmt.Errorf("creating activity %q: %w", a.Name, err)
			}
		}
		for _, m := range plan.Milestones {
			if err := txMilestones.Create(ctx, m); err != nil {
				return fmt.Errorf("creating milestone %q: %w", m.Name, err)
			}
		}
		for _, d := range plan.Dependencies {
			if err := txDeps.Create(ctx, d); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["dependency_count"] = len(plan.Dependencies)
	fields["milestone_count"] = len(plan.Milestones)
	return &ImportResult{
		Activities:      plan.Activities,
		DependencyCount: len(plan.Dependencies),
		MilestoneCount:  len(plan.Milestones),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
