package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/alexanderramin/gantt/internal/domain"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// resolveActivity finds an activity by, in order: exact id, exact name
// (case-insensitive), or unique id prefix. Misses suggest the closest names.
func resolveActivity(ctx context.Context, app *App, input string) (*domain.Activity, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("activity reference is required")
	}
	activities, err := app.Activities.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	return matchActivity(activities, input)
}

func matchActivity(activities []*domain.Activity, input string) (*domain.Activity, error) {
	for _, a := range activities {
		if a.ID == input {
			return a, nil
		}
	}

	var byName []*domain.Activity
	for _, a := range activities {
		if strings.EqualFold(a.Name, input) {
			byName = append(byName, a)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("activity name %q is ambiguous (%d matches); use an id", input, len(byName))
	}

	var byPrefix []*domain.Activity
	for _, a := range activities {
		if strings.HasPrefix(a.ID, input) {
			byPrefix = append(byPrefix, a)
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("activity ID prefix %q is ambiguous (%d matches)", input, len(byPrefix))
	}

	names := make([]string, len(activities))
	for i, a := range activities {
		names[i] = a.Name
	}
	if s := suggest(input, names); len(s) > 0 {
		return nil, fmt.Errorf("activity not found: %q (did you mean %s?)", input, quoteJoin(s))
	}
	return nil, fmt.Errorf("activity not found: %q", input)
}

// suggest returns up to maxSuggestions candidates whose edit distance to
// input is at most half of input's length, closest first.
func suggest(input string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	limit := max(len([]rune(input))/2, 2)
	needle := strings.ToLower(input)

	seen := make(map[string]bool)
	var hits []scored
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if d <= limit {
			hits = append(hits, scored{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, maxSuggestions)
	for _, h := range hits {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, h.name)
	}
	return out
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

// resolveDependency finds a dependency by exact id or unique id prefix.
func resolveDependency(ctx context.Context, app *App, input string) (*domain.Dependency, error) {
	deps, err := app.Dependencies.ListDependencies(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Dependency
	for _, d := range deps {
		if d.ID == input {
			return d, nil
		}
		if strings.HasPrefix(d.ID, input) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("dependency not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("dependency ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveMilestone finds a milestone by exact id, exact name or unique id
// prefix.
func resolveMilestone(ctx context.Context, app *App, input string) (*domain.Milestone, error) {
	ms, err := app.Milestones.ListMilestones(ctx)
	if err != nil {
		return nil, err
	}
	var byName, byPrefix []*domain.Milestone
	for _, m := range ms {
		if m.ID == input {
			return m, nil
		}
		if strings.EqualFold(m.Name, input) {
			byName = append(byName, m)
		}
		if strings.HasPrefix(m.ID, input) {
			byPrefix = append(byPrefix, m)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return nil, fmt.Errorf("milestone name %q is ambiguous (%d matches); use an id", input, len(byName))
	}
	switch len(byPrefix) {
	case 0:
		return nil, fmt.Errorf("milestone not found: %q", input)
	case 1:
		return byPrefix[0], nil
	default:
		return nil, fmt.Errorf("milestone ID prefix %q is ambiguous (%d matches)", input, len(byPrefix))
	}
}

// activityNames maps ids to names for display.
func activityNames(activities []*domain.Activity) map[string]string {
	names := make(map[string]string, len(activities))
	for _, a := range activities {
		names[a.ID] = a.Name
	}
	return names
}
