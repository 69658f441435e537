package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekScale(t *testing.T, width float64) Scale {
	t.Helper()
	s := NewScale(Range{Start: domain.MustDate("2024-01-01"), End: domain.MustDate("2024-03-31")}, width, domain.GranularityWeek)
	require.NotEmpty(t, s.Columns)
	return s
}

func monthScale(t *testing.T, width float64) Scale {
	t.Helper()
	s := NewScale(Range{Start: domain.MustDate("2024-01-15"), End: domain.MustDate("2024-06-10")}, width, domain.GranularityMonth)
	require.Len(t, s.Columns, 6)
	return s
}

func TestPositionForDate_WeekInterpolates(t *testing.T) {
	s := weekScale(t, 70) // 10px per day

	assert.InDelta(t, 0, s.PositionForDate(domain.MustDate("2024-01-01")), 1e-9)
	assert.InDelta(t, 30, s.PositionForDate(domain.MustDate("2024-01-04")), 1e-9)
	assert.InDelta(t, 70, s.PositionForDate(domain.MustDate("2024-01-08")), 1e-9)
	assert.InDelta(t, 350, s.PositionForDate(domain.MustDate("2024-02-05")), 1e-9)
}

func TestPositionForDate_MonthUsesCalendarSpan(t *testing.T) {
	s := monthScale(t, 100)

	// February 2024 has 29 days.
	got := s.PositionForDate(domain.MustDate("2024-02-15"))
	assert.InDelta(t, 100+14.0/29.0*100, got, 1e-9)

	// Last column (June) spans its real 30 days.
	got = s.PositionForDate(domain.MustDate("2024-06-16"))
	assert.InDelta(t, 500+15.0/30.0*100, got, 1e-9)
}

func TestPositionForDate_ClampsOutsideColumns(t *testing.T) {
	s := weekScale(t, 70)

	assert.Equal(t, 0.0, s.PositionForDate(domain.MustDate("2023-12-01")))
	assert.Equal(t, s.Width(), s.PositionForDate(domain.MustDate("2025-01-01")))
}

func TestPositionForDate_LastWeekColumnClampsAtItsEnd(t *testing.T) {
	s := weekScale(t, 70)
	last := s.Columns[len(s.Columns)-1].Date
	lastLeft := s.Width() - 70

	assert.InDelta(t, lastLeft, s.PositionForDate(last), 1e-9)
	assert.InDelta(t, lastLeft+60, s.PositionForDate(last.AddDate(0, 0, 6)), 1e-9)
	assert.Equal(t, s.Width(), s.PositionForDate(last.AddDate(0, 0, 7)))
}

func TestPositionForDate_TotalOnDegenerateInput(t *testing.T) {
	assert.Equal(t, 0.0, PositionForDate(time.Now(), nil, 40, domain.GranularityWeek))
	assert.Equal(t, 0.0, PositionForDate(time.Now(), []Column{{Date: domain.MustDate("2024-01-01")}}, 0, domain.GranularityWeek))
	assert.True(t, DateForPosition(10, nil, 40, domain.GranularityWeek).IsZero())
}

func TestDateForPosition_ClampsOutOfRange(t *testing.T) {
	s := weekScale(t, 70)
	first := s.Columns[0].Date
	last := s.Columns[len(s.Columns)-1].Date

	assert.Equal(t, first, s.DateForPosition(-50))
	assert.Equal(t, first, s.DateForPosition(math.NaN()))
	assert.Equal(t, last, s.DateForPosition(s.Width()+1000))
	assert.Equal(t, last, s.DateForPosition(math.Inf(1)))
}

func TestRoundTrip_StaysInColumnWindow(t *testing.T) {
	cases := []struct {
		name  string
		scale Scale
	}{
		{"week even width", weekScale(t, 70)},
		{"week odd width", weekScale(t, 37)},
		{"month", monthScale(t, 90)},
		{"month narrow", monthScale(t, 13)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.scale
			for i := range s.Columns {
				start := s.Columns[i].Date
				end := columnEnd(s.Columns, i, s.Granularity)
				for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
					got := s.DateForPosition(s.PositionForDate(d))
					assert.False(t, got.Before(start), "date %s mapped before its window", d.Format(domain.DateLayout))
					assert.True(t, got.Before(end), "date %s mapped past its window", d.Format(domain.DateLayout))
				}
			}
		})
	}
}

func TestRoundTrip_ExactWhenColumnIsWholeDays(t *testing.T) {
	s := weekScale(t, 70)
	for d := domain.MustDate("2024-01-01"); d.Before(domain.MustDate("2024-03-01")); d = d.AddDate(0, 0, 1) {
		assert.Equal(t, d, s.DateForPosition(s.PositionForDate(d)))
	}
}

func TestDateForPosition_FreeFormWithinDay(t *testing.T) {
	s := weekScale(t, 70)
	// 34.9px is still inside day index 3 of the first week.
	assert.Equal(t, "2024-01-04", s.DateForPosition(34.9).Format(domain.DateLayout))
	assert.Equal(t, "2024-01-05", s.DateForPosition(40).Format(domain.DateLayout))
}
