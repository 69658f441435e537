package board

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) *time.Time {
	d := domain.MustDate(s)
	return &d
}

func activity(id, parent string, order int, start, end string) *domain.Activity {
	a := &domain.Activity{ID: id, Name: id, SortOrder: order}
	if parent != "" {
		p := parent
		a.ParentID = &p
	}
	if start != "" {
		a.StartDate = date(start)
	}
	if end != "" {
		a.EndDate = date(end)
	}
	return a
}

// testLayout uses 40px week columns from Monday 2024-01-29.
func testLayout() Layout {
	return Layout{
		Scale: timeline.NewScale(timeline.Range{
			Start: domain.MustDate("2024-01-29"),
			End:   domain.MustDate("2024-03-03"),
		}, 40, domain.GranularityWeek),
		RowHeight: 16,
	}
}

func testSnapshot() *Snapshot {
	collapsed := activity("c", "", 2, "2024-02-19", "2024-02-23")
	collapsed.Collapsed = true
	return &Snapshot{
		Activities: []*domain.Activity{
			activity("a", "", 0, "2024-02-05", "2024-02-12"),
			activity("a1", "a", 0, "", ""),
			activity("b", "", 1, "2024-02-12", ""),
			collapsed,
			activity("c1", "c", 0, "2024-02-19", "2024-02-20"),
		},
		Dependencies: []*domain.Dependency{
			{ID: "fs", FromActivityID: "a", ToActivityID: "b", Type: domain.FinishToStart},
			{ID: "ff-missing", FromActivityID: "a", ToActivityID: "b", Type: domain.FinishToFinish},
			{ID: "hidden", FromActivityID: "a", ToActivityID: "c1", Type: domain.FinishToStart},
			{ID: "dangling", FromActivityID: "a", ToActivityID: "gone", Type: domain.StartToStart},
		},
		Milestones: []*domain.Milestone{
			{ID: "m1", ActivityID: "b", Name: "Ship", Date: date("2024-02-15")},
			{ID: "m-nodate", ActivityID: "b", Name: "Broken"},
			{ID: "m-hidden", ActivityID: "c1", Name: "Hidden", Date: date("2024-02-20")},
		},
	}
}

func TestCompose_RowsAndBars(t *testing.T) {
	v := Compose(testSnapshot(), testLayout())

	require.Len(t, v.Rows, 4)
	assert.Equal(t, []string{"a", "a1", "b", "c"}, []string{v.Rows[0].Activity.ID, v.Rows[1].Activity.ID, v.Rows[2].Activity.ID, v.Rows[3].Activity.ID})

	a, ok := v.Bar("a")
	require.True(t, ok)
	assert.True(t, a.Dated)
	assert.InDelta(t, 40, a.Left, 1e-9)
	assert.InDelta(t, 80, a.Right, 1e-9)

	undated, ok := v.Bar("a1")
	require.True(t, ok)
	assert.False(t, undated.Dated)

	b, _ := v.Bar("b")
	assert.InDelta(t, b.Left, b.Right, 1e-9, "single date collapses to a point")

	_, ok = v.Bar("c1")
	assert.False(t, ok, "collapsed child has no bar")
}

func TestCompose_SkipsLinksWithoutGeometry(t *testing.T) {
	v := Compose(testSnapshot(), testLayout())

	require.Len(t, v.Links, 1)
	assert.Equal(t, "fs", v.Links[0].DependencyID)
}

func TestCompose_Markers(t *testing.T) {
	v := Compose(testSnapshot(), testLayout())

	require.Len(t, v.Markers, 1)
	m := v.Markers[0]
	assert.Equal(t, "m1", m.MilestoneID)
	assert.Equal(t, 2, m.Row)
	assert.InDelta(t, 80+40.0*3/7, m.X, 1e-9)
}

func TestCompose_MarkerWeekFallback(t *testing.T) {
	l := testLayout()
	l.Scale.Granularity = ""
	v := Compose(testSnapshot(), l)

	require.Len(t, v.Markers, 1)
	assert.InDelta(t, 80+40.0*3/7, v.Markers[0].X, 1e-9)
}

func TestCompose_NilSnapshot(t *testing.T) {
	v := Compose(nil, testLayout())
	assert.Empty(t, v.Rows)
	assert.Equal(t, HitNone, v.HitTest(geom.Pt(10, 10)).Kind)
}

func TestNewLayout_PadsDateExtent(t *testing.T) {
	l := NewLayout(testSnapshot(), LayoutOptions{Granularity: domain.GranularityWeek, PaddingDays: 7})

	require.NotEmpty(t, l.Scale.Columns)
	first := l.Scale.Columns[0].Date
	last := l.Scale.Columns[len(l.Scale.Columns)-1].Date
	assert.False(t, first.After(domain.MustDate("2024-01-29")))
	assert.False(t, last.Before(domain.MustDate("2024-02-26")))
	assert.Equal(t, DefaultWeekWidth, l.Scale.ColumnWidth)
	assert.Equal(t, DefaultRowHeight, l.RowHeight)
}

func TestSnapshotCounts(t *testing.T) {
	s := testSnapshot()
	assert.Equal(t, 1, s.CountChildren("a"))
	assert.Equal(t, 4, s.CountLinks("a"))
	assert.Equal(t, 0, (*Snapshot)(nil).CountLinks("a"))
}
