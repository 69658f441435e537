// Package timeline maps calendar dates to horizontal pixel offsets over a
// list of week or month columns, and back.
package timeline

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// maxColumns bounds column generation for absurd ranges.
const maxColumns = 5000

// Column is one derived header cell of the timeline.
type Column struct {
	Date  time.Time
	Label string
}

// Range is an inclusive calendar range.
type Range struct {
	Start time.Time
	End   time.Time
}

// Columns generates the columns spanning [start, end] at granularity g.
// Week columns begin on the Monday on or before start; month columns on the
// first of start's month. Columns are regenerated, never mutated in place.
func Columns(start, end time.Time, g domain.Granularity) []Column {
	start, end = domain.Day(start), domain.Day(end)
	if end.Before(start) {
		start, end = end, start
	}

	var cursor time.Time
	switch g.OrDefault() {
	case domain.GranularityMonth:
		cursor = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		offset := (int(start.Weekday()) + 6) % 7 // days since Monday
		cursor = start.AddDate(0, 0, -offset)
	}

	var cols []Column
	for !cursor.After(end) && len(cols) < maxColumns {
		cols = append(cols, Column{Date: cursor, Label: label(cursor, g)})
		cursor = step(cursor, g)
	}
	return cols
}

func step(t time.Time, g domain.Granularity) time.Time {
	if g.OrDefault() == domain.GranularityMonth {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 7)
}

func label(t time.Time, g domain.Granularity) string {
	if g.OrDefault() == domain.GranularityMonth {
		return t.Format("Jan 2006")
	}
	return t.Format("Jan 02")
}

// RangeFor derives the displayed range from every known date plus padding
// on both sides. With no dates the range is centred on today.
func RangeFor(dates []time.Time, paddingDays int, today time.Time) Range {
	if paddingDays < 0 {
		paddingDays = 0
	}
	if len(dates) == 0 {
		t := domain.Day(today)
		return Range{Start: t.AddDate(0, 0, -paddingDays), End: t.AddDate(0, 0, paddingDays)}
	}
	lo, hi := domain.Day(dates[0]), domain.Day(dates[0])
	for _, d := range dates[1:] {
		d = domain.Day(d)
		if d.Before(lo) {
			lo = d
		}
		if d.After(hi) {
			hi = d
		}
	}
	return Range{Start: lo.AddDate(0, 0, -paddingDays), End: hi.AddDate(0, 0, paddingDays)}
}
