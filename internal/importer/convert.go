package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

// Plan holds the domain objects produced from a plan file, ready for
// persistence in declaration order.
type Plan struct {
	Activities   []*domain.Activity
	Dependencies []*domain.Dependency
	Milestones   []*domain.Milestone
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
//
// Siblings receive sort orders in file order. Top-level activities start at
// rootBase so an import appends below whatever is already on the board.
func Convert(schema *ImportSchema, rootBase int) (*Plan, error) {
	now := time.Now().UTC()

	refMap := make(map[string]string) // ref -> UUID
	nextOrder := make(map[string]int) // parent UUID ("" for roots) -> next sort order
	nextOrder[""] = rootBase

	plan := &Plan{
		Activities: make([]*domain.Activity, 0, len(schema.Activities)),
	}

	for _, a := range schema.Activities {
		realID := uuid.New().String()
		refMap[a.Ref] = realID

		var parentID *string
		if a.Parent != nil && *a.Parent != "" {
			pid, ok := refMap[*a.Parent]
			if !ok {
				return nil, fmt.Errorf("parent %q not found for activity %q", *a.Parent, a.Ref)
			}
			parentID = &pid
		}

		key := ""
		if parentID != nil {
			key = *parentID
		}
		order := nextOrder[key]
		nextOrder[key] = order + 1

		plan.Activities = append(plan.Activities, &domain.Activity{
			ID:        realID,
			ParentID:  parentID,
			Name:      a.Name,
			StartDate: parseOptionalDate(a.Start),
			EndDate:   parseOptionalDate(a.End),
			Collapsed: a.Collapsed,
			SortOrder: order,
			Color:     a.Color,
			CreatedAt: now,
			UpdatedAt: now,
		})

		for _, m := range a.Milestones {
			date := m.Date
			plan.Milestones = append(plan.Milestones, &domain.Milestone{
				ID:         uuid.New().String(),
				ActivityID: realID,
				Name:       m.Name,
				Date:       parseOptionalDate(&date),
				CreatedAt:  now,
			})
		}
	}

	for _, d := range schema.Dependencies {
		fromID, ok := refMap[d.From]
		if !ok {
			return nil, fmt.Errorf("from %q not found", d.From)
		}
		toID, ok := refMap[d.To]
		if !ok {
			return nil, fmt.Errorf("to %q not found", d.To)
		}
		typ, err := dependencyType(d.Type)
		if err != nil {
			return nil, err
		}
		plan.Dependencies = append(plan.Dependencies, &domain.Dependency{
			ID:             uuid.New().String(),
			FromActivityID: fromID,
			ToActivityID:   toID,
			Type:           typ,
			CreatedAt:      now,
		})
	}

	return plan, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}
