package tree

import (
	"fmt"
	"math/rand"

	"github.com/alexanderramin/gantt/internal/domain"
)

func act(id string, parent string, order int) *domain.Activity {
	a := &domain.Activity{ID: id, Name: id, SortOrder: order}
	if parent != "" {
		p := parent
		a.ParentID = &p
	}
	return a
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Activity.ID
	}
	return out
}

// randomActivities builds a random acyclic forest: each activity picks a
// parent among the ones created before it, or none.
func randomActivities(rng *rand.Rand, n int) []*domain.Activity {
	out := make([]*domain.Activity, 0, n)
	for i := 0; i < n; i++ {
		parent := ""
		if i > 0 && rng.Intn(3) > 0 {
			parent = out[rng.Intn(i)].ID
		}
		a := act(fmt.Sprintf("a%02d", i), parent, rng.Intn(5))
		a.Collapsed = rng.Intn(4) == 0
		out = append(out, a)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
