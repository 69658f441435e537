package routing

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rowHeight = 16.0

// testRouter uses week columns of 40px starting Monday 2024-01-29.
func testRouter() Router {
	scale := timeline.NewScale(timeline.Range{
		Start: domain.MustDate("2024-01-29"),
		End:   domain.MustDate("2024-03-03"),
	}, 40, domain.GranularityWeek)
	return NewRouter(scale, rowHeight)
}

func date(s string) *time.Time {
	d := domain.MustDate(s)
	return &d
}

func dep(typ domain.DependencyType) *domain.Dependency {
	return &domain.Dependency{ID: "dep-1", FromActivityID: "a", ToActivityID: "b", Type: typ}
}

func assertPoints(t *testing.T, want, got []geom.Point) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-6, "point %d x", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-6, "point %d y", i)
	}
}

func TestRoute_FinishToStartLShape(t *testing.T) {
	r := testRouter()
	a := Endpoint{Row: 0, Start: date("2024-02-01"), End: date("2024-02-01")}
	b := Endpoint{Row: 2, Start: date("2024-02-05")}

	path, ok := r.Route(dep(domain.FinishToStart), a, b)
	require.True(t, ok)

	sx := 40.0 * 3 / 7
	assertPoints(t, []geom.Point{
		geom.Pt(sx, 8),
		geom.Pt(sx+15, 8),
		geom.Pt(sx+15, 40),
		geom.Pt(40, 40),
	}, path.Points)
	assert.Equal(t, "dep-1", path.DependencyID)
	assert.Equal(t, domain.FinishToStart, path.Type)
}

func TestRoute_FinishToStartAroundWhenTargetStartsEarly(t *testing.T) {
	r := testRouter()
	sx := 40 + 40.0*5/7
	a := Endpoint{Row: 0, Start: date("2024-02-05"), End: date("2024-02-10")}
	b := Endpoint{Row: 2, Start: date("2024-02-05")}

	path, ok := r.Route(dep(domain.FinishToStart), a, b)
	require.True(t, ok)
	assertPoints(t, []geom.Point{
		geom.Pt(sx, 8),
		geom.Pt(sx+15, 8),
		geom.Pt(sx+15, 16),
		geom.Pt(25, 16),
		geom.Pt(25, 40),
		geom.Pt(40, 40),
	}, path.Points)

	// Target above the source: the gap line sits on the source row's top edge.
	a.Row, b.Row = 2, 0
	path, ok = r.Route(dep(domain.FinishToStart), a, b)
	require.True(t, ok)
	require.Len(t, path.Points, 6)
	assert.InDelta(t, 32, path.Points[2].Y, 1e-6)
	assert.InDelta(t, 32, path.Points[3].Y, 1e-6)
}

func TestRoute_StartToStartExitsLeft(t *testing.T) {
	r := testRouter()
	a := Endpoint{Row: 0, Start: date("2024-02-05"), End: date("2024-02-09")}
	b := Endpoint{Row: 1, Start: date("2024-02-01")}

	path, ok := r.Route(dep(domain.StartToStart), a, b)
	require.True(t, ok)

	tx := 40.0 * 3 / 7
	assertPoints(t, []geom.Point{
		geom.Pt(40, 8),
		geom.Pt(tx-15, 8),
		geom.Pt(tx-15, 24),
		geom.Pt(tx, 24),
	}, path.Points)
}

func TestRoute_FinishToFinishExitsRight(t *testing.T) {
	r := testRouter()
	a := Endpoint{Row: 3, End: date("2024-02-05")}
	b := Endpoint{Row: 1, End: date("2024-02-12")}

	path, ok := r.Route(dep(domain.FinishToFinish), a, b)
	require.True(t, ok)
	assertPoints(t, []geom.Point{
		geom.Pt(40, 56),
		geom.Pt(95, 56),
		geom.Pt(95, 24),
		geom.Pt(80, 24),
	}, path.Points)
}

func TestRoute_SameRowIsStraight(t *testing.T) {
	r := testRouter()
	a := Endpoint{Row: 1, Start: date("2024-02-05"), End: date("2024-02-12")}
	b := Endpoint{Row: 1, Start: date("2024-02-01")}

	for _, typ := range []domain.DependencyType{domain.FinishToStart, domain.StartToStart} {
		path, ok := r.Route(dep(typ), a, b)
		require.True(t, ok)
		assert.Len(t, path.Points, 2, "type %s", typ)
	}
}

func TestRoute_MissingAnchorNotRendered(t *testing.T) {
	r := testRouter()
	a := Endpoint{Row: 0, Start: date("2024-02-05")}
	b := Endpoint{Row: 1, Start: date("2024-02-12")}

	_, ok := r.Route(dep(domain.FinishToStart), a, b)
	assert.False(t, ok, "source has no end date")

	_, ok = r.Route(dep(domain.FinishToFinish), a, b)
	assert.False(t, ok)

	_, ok = r.Route(dep(domain.StartToStart), a, b)
	assert.True(t, ok)

	_, ok = r.Route(dep("XX"), a, b)
	assert.False(t, ok)
}

func TestRoute_NeverCrossesSourceBar(t *testing.T) {
	r := testRouter()
	starts := []string{"2024-01-30", "2024-02-06", "2024-02-14", "2024-02-22"}
	for _, s := range starts {
		for _, e := range starts {
			if domain.MustDate(e).Before(domain.MustDate(s)) {
				continue
			}
			a := Endpoint{Row: 1, Start: date(s), End: date(e)}
			b := Endpoint{Row: 3, Start: date("2024-02-07"), End: date("2024-02-20")}
			left := r.Scale.PositionForDate(*a.Start)
			right := r.Scale.PositionForDate(*a.End)

			for _, typ := range domain.DependencyTypes {
				path, ok := r.Route(dep(typ), a, b)
				require.True(t, ok)
				// The first leg leaves the bar; no later vertical leg may pass
				// strictly inside the source bar's horizontal extent on its row.
				for i := 1; i < len(path.Points)-1; i++ {
					p := path.Points[i]
					if p.Y == path.Points[0].Y {
						assert.False(t, p.X > left && p.X < right, "%s %s..%s point %d inside bar", typ, s, e, i)
					}
				}
			}
		}
	}
}
