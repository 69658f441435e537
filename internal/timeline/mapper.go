package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// roundingSlack absorbs float error when flooring a fractional day offset.
const roundingSlack = 1e-6

// Scale bundles the inputs shared by every mapping call.
type Scale struct {
	Columns     []Column
	ColumnWidth float64
	Granularity domain.Granularity
}

// NewScale generates columns for r and wraps them in a Scale.
func NewScale(r Range, columnWidth float64, g domain.Granularity) Scale {
	return Scale{
		Columns:     Columns(r.Start, r.End, g),
		ColumnWidth: columnWidth,
		Granularity: g.OrDefault(),
	}
}

// Width is the total pixel width of all columns.
func (s Scale) Width() float64 {
	return float64(len(s.Columns)) * s.ColumnWidth
}

// PositionForDate maps d to a pixel offset on this scale.
func (s Scale) PositionForDate(d time.Time) float64 {
	return PositionForDate(d, s.Columns, s.ColumnWidth, s.Granularity)
}

// DateForPosition maps x back to a calendar date on this scale.
func (s Scale) DateForPosition(x float64) time.Time {
	return DateForPosition(x, s.Columns, s.ColumnWidth, s.Granularity)
}

// PositionForDate returns index*width + fraction*width for the column whose
// span [colStart, colEnd) contains date. Dates before the first column clamp
// to 0 and dates at or past the end of the last column clamp to the full
// width. Never panics.
func PositionForDate(date time.Time, columns []Column, columnWidth float64, g domain.Granularity) float64 {
	if len(columns) == 0 || columnWidth <= 0 {
		return 0
	}
	d := domain.Day(date)
	if d.Before(columns[0].Date) {
		return 0
	}
	full := float64(len(columns)) * columnWidth

	idx := columnIndex(d, columns)
	colStart := columns[idx].Date
	colEnd := columnEnd(columns, idx, g)
	if !d.Before(colEnd) {
		return full
	}
	span := colEnd.Sub(colStart).Hours()
	if span <= 0 {
		return float64(idx) * columnWidth
	}
	fraction := d.Sub(colStart).Hours() / span
	return float64(idx)*columnWidth + fraction*columnWidth
}

// DateForPosition is the inverse of PositionForDate. Out-of-range x clamps to
// the first or last column's date. The day offset inside a column is floored
// so a round trip lands in the same column window.
func DateForPosition(x float64, columns []Column, columnWidth float64, g domain.Granularity) time.Time {
	if len(columns) == 0 {
		return time.Time{}
	}
	if columnWidth <= 0 || math.IsNaN(x) || x <= 0 {
		return columns[0].Date
	}
	last := len(columns) - 1
	if x >= float64(len(columns))*columnWidth {
		return columns[last].Date
	}

	idx := int(math.Floor(x / columnWidth))
	if idx > last {
		idx = last
	}
	colStart := columns[idx].Date
	days := domain.DaysBetween(colStart, columnEnd(columns, idx, g))
	if days <= 0 {
		return colStart
	}

	fraction := (x - float64(idx)*columnWidth) / columnWidth
	offset := int(math.Floor(fraction*float64(days) + roundingSlack))
	if offset < 0 {
		offset = 0
	}
	if offset > days-1 {
		offset = days - 1
	}
	return colStart.AddDate(0, 0, offset)
}

// columnIndex returns the last column starting on or before d.
// Callers guarantee d is not before the first column.
func columnIndex(d time.Time, columns []Column) int {
	lo, hi := 0, len(columns)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if columns[mid].Date.After(d) {
			hi = mid - 1
		} else {
			lo = mid
		}
	}
	return lo
}

// columnEnd is the exclusive end of column i: 7 days for weeks; for months
// the next column's start, or the true end of the calendar month for the
// last column.
func columnEnd(columns []Column, i int, g domain.Granularity) time.Time {
	start := columns[i].Date
	if g.OrDefault() == domain.GranularityWeek {
		return start.AddDate(0, 0, 7)
	}
	if i+1 < len(columns) {
		return columns[i+1].Date
	}
	return time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}
