package importer

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ValidateImportSchema checks the plan for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	refs := make(map[string]bool)
	errs = append(errs, validateActivities(schema.Activities, refs)...)
	errs = append(errs, validateDependencies(schema.Dependencies, refs)...)

	return errs
}

func validateActivities(activities []ActivityImport, refs map[string]bool) []error {
	var errs []error

	if len(activities) == 0 {
		errs = append(errs, fmt.Errorf("activities: at least one activity is required"))
	}

	for i, a := range activities {
		prefix := fmt.Sprintf("activities[%d]", i)

		if a.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[a.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, a.Ref))
		}

		if a.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		// Parents must already be declared, which also rules out cycles.
		if a.Parent != nil && *a.Parent != "" {
			if *a.Parent == a.Ref {
				errs = append(errs, fmt.Errorf("%s.parent: activity %q cannot be its own parent", prefix, a.Ref))
			} else if !refs[*a.Parent] {
				errs = append(errs, fmt.Errorf("%s.parent: ref %q not found (must appear earlier in activities list)", prefix, *a.Parent))
			}
		}

		if a.Ref != "" {
			refs[a.Ref] = true
		}

		startErrs := validateOptionalDate(prefix+".start", a.Start)
		endErrs := validateOptionalDate(prefix+".end", a.End)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if len(startErrs) == 0 && len(endErrs) == 0 && a.Start != nil && a.End != nil &&
			*a.Start != "" && *a.End != "" {
			start, _ := domain.ParseDate(*a.Start)
			end, _ := domain.ParseDate(*a.End)
			if start.After(end) {
				errs = append(errs, fmt.Errorf("%s: start %q must not be after end %q", prefix, *a.Start, *a.End))
			}
		}

		for j, m := range a.Milestones {
			mp := fmt.Sprintf("%s.milestones[%d]", prefix, j)
			if m.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", mp))
			}
			if m.Date == "" {
				errs = append(errs, fmt.Errorf("%s.date is required", mp))
			} else {
				errs = append(errs, validateOptionalDate(mp+".date", &m.Date)...)
			}
		}
	}

	return errs
}

func validateDependencies(deps []DependencyImport, refs map[string]bool) []error {
	var errs []error

	type key struct{ from, to, typ string }
	seen := make(map[key]bool)

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if d.From == "" {
			errs = append(errs, fmt.Errorf("%s.from is required", prefix))
		} else if !refs[d.From] {
			errs = append(errs, fmt.Errorf("%s.from: ref %q not found in activities", prefix, d.From))
		}

		if d.To == "" {
			errs = append(errs, fmt.Errorf("%s.to is required", prefix))
		} else if !refs[d.To] {
			errs = append(errs, fmt.Errorf("%s.to: ref %q not found in activities", prefix, d.To))
		}

		if d.From != "" && d.From == d.To {
			errs = append(errs, fmt.Errorf("%s: self-dependency (from == to == %q)", prefix, d.From))
		}

		typ, err := dependencyType(d.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
			continue
		}

		k := key{d.From, d.To, string(typ)}
		if seen[k] {
			errs = append(errs, fmt.Errorf("%s: duplicate %s dependency %q -> %q", prefix, typ, d.From, d.To))
		}
		seen[k] = true
	}

	return errs
}

func dependencyType(s string) (domain.DependencyType, error) {
	if s == "" {
		return domain.FinishToStart, nil
	}
	return domain.ParseDependencyType(s)
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := domain.ParseDate(*dateStr); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}
