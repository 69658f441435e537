package board

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/routing"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// Layout defaults, in pixels.
const (
	DefaultRowHeight   = 16.0
	DefaultHandleWidth = 8.0
	DefaultPaddingDays = 14
	DefaultWeekWidth   = 56.0
	DefaultMonthWidth  = 80.0
)

// Layout holds everything needed to turn dates and rows into pixels.
type Layout struct {
	Scale       timeline.Scale
	RowHeight   float64
	HandleWidth float64
	Gap         float64
}

// LayoutOptions configures NewLayout. Zero values fall back to defaults.
type LayoutOptions struct {
	Granularity domain.Granularity
	ColumnWidth float64
	RowHeight   float64
	HandleWidth float64
	Gap         float64
	PaddingDays int
	Today       time.Time
}

// NewLayout derives the visible date range from every date in s plus
// padding, and builds the column scale for it.
func NewLayout(s *Snapshot, opts LayoutOptions) Layout {
	g := opts.Granularity.OrDefault()
	width := opts.ColumnWidth
	if width <= 0 {
		width = DefaultWeekWidth
		if g == domain.GranularityMonth {
			width = DefaultMonthWidth
		}
	}
	padding := opts.PaddingDays
	if padding == 0 {
		padding = DefaultPaddingDays
	}
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}

	l := Layout{
		Scale:       timeline.NewScale(timeline.RangeFor(s.Dates(), padding, today), width, g),
		RowHeight:   opts.RowHeight,
		HandleWidth: opts.HandleWidth,
		Gap:         opts.Gap,
	}
	return l.withDefaults()
}

func (l Layout) withDefaults() Layout {
	if l.RowHeight <= 0 {
		l.RowHeight = DefaultRowHeight
	}
	if l.HandleWidth <= 0 {
		l.HandleWidth = DefaultHandleWidth
	}
	if l.Gap <= 0 {
		l.Gap = routing.DefaultGap
	}
	return l
}

// Router returns a link router on this layout.
func (l Layout) Router() routing.Router {
	return routing.Router{Gap: l.Gap, RowHeight: l.RowHeight, Scale: l.Scale}
}

// RowTop is the y of the top edge of row.
func (l Layout) RowTop(row int) float64 {
	return float64(row) * l.RowHeight
}

// RowAt maps y to a row index. The result may be out of range.
func (l Layout) RowAt(y float64) int {
	if l.RowHeight <= 0 || y < 0 {
		return -1
	}
	return int(y / l.RowHeight)
}
