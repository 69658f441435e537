package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-72 * time.Hour), "Feb 4, 2026"},
		{"future", now.Add(48 * time.Hour), "Feb 9, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestDateRange(t *testing.T) {
	a := &domain.Activity{
		StartDate: domain.DatePtr(domain.MustDate("2024-03-01")),
		EndDate:   domain.DatePtr(domain.MustDate("2024-03-10")),
	}
	got := DateRange(a)
	assert.Contains(t, got, "2024-03-01 → 2024-03-10")
	assert.Contains(t, got, "10 days")

	assert.Contains(t, DateRange(&domain.Activity{}), "unscheduled")
}

func TestDays(t *testing.T) {
	assert.Equal(t, "1 day", Days(1))
	assert.Equal(t, "3 days", Days(3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Design", Truncate("Design", 10))
	assert.Equal(t, "Desi…", Truncate("Design", 5))
	assert.Equal(t, "…", Truncate("Design", 1))
	assert.Equal(t, "", Truncate("Design", 0))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdefgh", ShortID("abcdefgh-1234"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestBarColor(t *testing.T) {
	assert.Equal(t, ColorBar, BarColor(""))
	assert.Equal(t, ColorBar, BarColor("teal"))
	assert.Equal(t, "#ff0000", string(BarColor("#ff0000")))
}
