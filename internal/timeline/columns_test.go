package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns_WeekAlignsToMonday(t *testing.T) {
	// 2024-02-07 is a Wednesday.
	cols := Columns(domain.MustDate("2024-02-07"), domain.MustDate("2024-02-20"), domain.GranularityWeek)

	require.Len(t, cols, 3)
	assert.Equal(t, "2024-02-05", cols[0].Date.Format(domain.DateLayout))
	assert.Equal(t, time.Monday, cols[0].Date.Weekday())
	assert.Equal(t, "2024-02-19", cols[2].Date.Format(domain.DateLayout))
	assert.Equal(t, "Feb 05", cols[0].Label)
}

func TestColumns_MonthStartsOnFirst(t *testing.T) {
	cols := Columns(domain.MustDate("2024-11-20"), domain.MustDate("2025-02-03"), domain.GranularityMonth)

	require.Len(t, cols, 4)
	assert.Equal(t, "2024-11-01", cols[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2025-02-01", cols[3].Date.Format(domain.DateLayout))
	assert.Equal(t, "Jan 2025", cols[2].Label)
}

func TestColumns_SwappedRangeAndDefaultGranularity(t *testing.T) {
	cols := Columns(domain.MustDate("2024-02-20"), domain.MustDate("2024-02-07"), "")
	require.Len(t, cols, 3)
	assert.Equal(t, time.Monday, cols[0].Date.Weekday())
}

func TestRangeFor(t *testing.T) {
	today := domain.MustDate("2024-05-01")

	r := RangeFor(nil, 7, today)
	assert.Equal(t, "2024-04-24", r.Start.Format(domain.DateLayout))
	assert.Equal(t, "2024-05-08", r.End.Format(domain.DateLayout))

	r = RangeFor([]time.Time{domain.MustDate("2024-03-10"), domain.MustDate("2024-01-05"), domain.MustDate("2024-02-01")}, 14, today)
	assert.Equal(t, "2023-12-22", r.Start.Format(domain.DateLayout))
	assert.Equal(t, "2024-03-24", r.End.Format(domain.DateLayout))
}
