package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/gesture"
	"github.com/alexanderramin/gantt/internal/routing"
	"github.com/charmbracelet/lipgloss"
)

// Link joints: which neighbours a box-drawing cell connects to.
const (
	jointLeft uint8 = 1 << iota
	jointRight
	jointUp
	jointDown
)

var joints = map[uint8]rune{
	jointLeft:                                    '─',
	jointRight:                                   '─',
	jointLeft | jointRight:                       '─',
	jointUp:                                      '│',
	jointDown:                                    '│',
	jointUp | jointDown:                          '│',
	jointRight | jointDown:                       '┌',
	jointLeft | jointDown:                        '┐',
	jointRight | jointUp:                         '└',
	jointLeft | jointUp:                          '┘',
	jointLeft | jointRight | jointDown:           '┬',
	jointLeft | jointRight | jointUp:             '┴',
	jointUp | jointDown | jointRight:             '├',
	jointUp | jointDown | jointLeft:              '┤',
	jointLeft | jointRight | jointUp | jointDown: '┼',
}

var (
	styleSelected = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(lipgloss.Color("#504945")).Bold(true)
	styleDrop     = lipgloss.NewStyle().Foreground(formatter.ColorYellow).Underline(true)
	stylePreview  = lipgloss.NewStyle().Foreground(formatter.ColorYellow)
	styleHover    = lipgloss.NewStyle().Foreground(formatter.ColorYellow).Bold(true)
)

type glyph struct {
	r     rune
	style lipgloss.Style
	bits  uint8
}

// canvas is the timeline pane as a grid of styled cells.
type canvas struct {
	cells [][]glyph
}

func newCanvas(w, h int) *canvas {
	c := &canvas{cells: make([][]glyph, h)}
	for y := range c.cells {
		c.cells[y] = make([]glyph, w)
		for x := range c.cells[y] {
			c.cells[y][x] = glyph{r: ' ', style: formatter.StyleFg}
		}
	}
	return c
}

func (c *canvas) in(x, y int) bool {
	return y >= 0 && y < len(c.cells) && x >= 0 && x < len(c.cells[y])
}

func (c *canvas) set(x, y int, r rune, style lipgloss.Style) {
	if c.in(x, y) {
		c.cells[y][x] = glyph{r: r, style: style}
	}
}

func (c *canvas) join(x, y int, bits uint8, style lipgloss.Style) {
	if !c.in(x, y) {
		return
	}
	g := &c.cells[y][x]
	g.bits |= bits
	g.r = joints[g.bits]
	g.style = style
}

// line renders row y, batching runs of equal style.
func (c *canvas) line(y int) string {
	var b strings.Builder
	row := c.cells[y]
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		key := styleKey(row[i].style)
		for j < len(row) && styleKey(row[j].style) == key {
			run.WriteRune(row[j].r)
			j++
		}
		b.WriteString(row[i].style.Render(run.String()))
		i = j
	}
	return b.String()
}

// styleKey identifies a style by the properties the board sets.
func styleKey(s lipgloss.Style) string {
	return fmt.Sprint(s.GetForeground(), s.GetBackground(), s.GetBold(), s.GetUnderline())
}

func (m *boardModel) View() string {
	v := m.ctrl.View()
	rows := m.visibleRows()
	w := m.timelineCells()

	var b strings.Builder
	b.WriteString(m.renderHeader(v, w))

	c := newCanvas(w, rows)
	m.drawGrid(c, v)
	m.drawLinks(c, v)
	m.drawBars(c, v)
	m.drawMarkers(c, v)
	m.drawFeedback(c, v)

	fb := m.ctrl.Feedback()
	for i := range rows {
		row := m.scrollY + i
		b.WriteString(m.renderName(v, row, fb))
		b.WriteString(formatter.Dim("│"))
		b.WriteString(c.line(i))
		b.WriteString("\n")
	}

	if m.form != nil {
		b.WriteString(formatter.RenderBox("", m.form.View()))
		return b.String()
	}
	b.WriteString(m.renderStatus(v))
	b.WriteString("\n")
	b.WriteString(renderHints(m.keys.ShortHelp()))
	return b.String()
}

// screenCol maps a pixel x to a canvas column.
func (m *boardModel) screenCol(x float64) int {
	return int(math.Floor(x/m.cellPixels())) - m.scrollX
}

// screenLine maps a pixel y to a canvas line.
func (m *boardModel) screenLine(y float64, l board.Layout) int {
	return int(math.Floor(y/l.RowHeight)) - m.scrollY
}

// cellCenter is the pixel x at the middle of canvas column col.
func (m *boardModel) cellCenter(col int) float64 {
	return (float64(col+m.scrollX) + 0.5) * m.cellPixels()
}

func (m *boardModel) renderHeader(v *board.View, w int) string {
	labels := []rune(strings.Repeat(" ", w))
	rule := []rune(strings.Repeat("─", w))
	next := 0
	for i, col := range v.Layout.Scale.Columns {
		x := m.screenCol(float64(i) * v.Layout.Scale.ColumnWidth)
		if x < 0 || x >= w {
			continue
		}
		rule[x] = '┬'
		text := []rune(col.Label)
		if x < next || x+len(text) > w {
			continue
		}
		copy(labels[x:], text)
		next = x + len(text) + 1
	}

	title := lipgloss.NewStyle().Width(nameWidth).Render(formatter.StyleHeader.Render("ACTIVITIES ") + formatter.Dim(string(m.zoom)))
	return title + formatter.Dim("│") + formatter.StyleBlue.Render(string(labels)) + "\n" +
		formatter.Dim(strings.Repeat("─", nameWidth)+"┼"+string(rule)) + "\n"
}

func (m *boardModel) renderName(v *board.View, row int, fb gesture.Feedback) string {
	if row < 0 || row >= len(v.Rows) {
		return strings.Repeat(" ", nameWidth)
	}
	r := v.Rows[row]
	marker := " "
	if r.HasChildren {
		marker = "▾"
		if r.Activity.Collapsed {
			marker = "▸"
		}
	}
	name := r.Activity.Name
	if strings.TrimSpace(name) == "" {
		name = "(untitled)"
	}
	text := strings.Repeat(" ", 2*r.Depth) + marker + " " + name
	text = formatter.Truncate(text, nameWidth)
	text += strings.Repeat(" ", nameWidth-lipgloss.Width(text))

	switch {
	case fb.Kind == gesture.KindReorder && fb.DropRow == row:
		return styleDrop.Render(text)
	case r.Activity.ID == m.ctrl.Selected():
		return styleSelected.Render(text)
	default:
		return formatter.StyleFg.Render(text)
	}
}

func (m *boardModel) renderStatus(v *board.View) string {
	if m.status != "" {
		if m.statusErr {
			return formatter.StyleRed.Render("✖ " + m.status)
		}
		return formatter.StyleGreen.Render(m.status)
	}
	if a, ok := m.ctrl.Snapshot().Activity(m.ctrl.Selected()); ok {
		return formatter.Bold(a.Name) + "  " + formatter.DateRange(a)
	}
	return formatter.Dim("Click a bar to select it, drag it to reschedule, or drag from its edge dots to link.")
}

// drawGrid marks column boundaries.
func (m *boardModel) drawGrid(c *canvas, v *board.View) {
	for i := range v.Layout.Scale.Columns {
		x := m.screenCol(float64(i) * v.Layout.Scale.ColumnWidth)
		for y := range c.cells {
			if row := m.scrollY + y; row < len(v.Rows) {
				c.set(x, y, '·', formatter.StyleDim)
			}
		}
	}
}

func (m *boardModel) drawLinks(c *canvas, v *board.View) {
	// Hovered paths last, so the wider stroke lands on top.
	for _, hovered := range []bool{false, true} {
		for _, p := range v.Links {
			if p.Hovered == hovered {
				m.drawPath(c, v.Layout, p.Points, linkStyle(p))
			}
		}
	}
}

// linkStyle renders the hover stroke bold in the hover colour and every
// other path in its dependency type's colour.
func linkStyle(p routing.Path) lipgloss.Style {
	if p.Stroke() > routing.StrokeWidth {
		return styleHover
	}
	return formatter.TypeStyle(p.Type)
}

func (m *boardModel) drawPath(c *canvas, l board.Layout, pts []geom.Point, style lipgloss.Style) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		x1, y1 := m.screenCol(pts[i].X), m.screenLine(pts[i].Y, l)
		x2, y2 := m.screenCol(pts[i+1].X), m.screenLine(pts[i+1].Y, l)
		m.segment(c, x1, y1, x2, y1, style)
		m.segment(c, x2, y1, x2, y2, style)
	}

	a, z := pts[len(pts)-2], pts[len(pts)-1]
	y := m.screenLine(z.Y, l)
	cp := m.cellPixels()
	switch {
	case z.X > a.X:
		c.set(int(math.Ceil(z.X/cp))-1-m.scrollX, y, '▶', style)
	case z.X < a.X:
		c.set(m.screenCol(z.X), y, '◀', style)
	case z.Y > a.Y:
		c.set(m.screenCol(z.X), y, '▼', style)
	case z.Y < a.Y:
		c.set(m.screenCol(z.X), y, '▲', style)
	}
}

// segment joins the cells of one horizontal or vertical run.
func (m *boardModel) segment(c *canvas, x1, y1, x2, y2 int, style lipgloss.Style) {
	switch {
	case y1 == y2 && x1 != x2:
		lo, hi := min(x1, x2), max(x1, x2)
		for x := lo; x <= hi; x++ {
			var bits uint8
			if x > lo {
				bits |= jointLeft
			}
			if x < hi {
				bits |= jointRight
			}
			c.join(x, y1, bits, style)
		}
	case x1 == x2 && y1 != y2:
		lo, hi := min(y1, y2), max(y1, y2)
		for y := lo; y <= hi; y++ {
			var bits uint8
			if y > lo {
				bits |= jointUp
			}
			if y < hi {
				bits |= jointDown
			}
			c.join(x1, y, bits, style)
		}
	}
}

func (m *boardModel) drawBars(c *canvas, v *board.View) {
	fb := m.ctrl.Feedback()
	selected := m.ctrl.Selected()
	for y := range c.cells {
		row := m.scrollY + y
		if row >= len(v.Bars) {
			break
		}
		bar := v.Bars[row]
		if !bar.Dated {
			continue
		}
		if fb.Active() && fb.ActivityID == bar.ActivityID && fb.Kind != gesture.KindCreateLink && fb.Kind != gesture.KindReorder {
			continue
		}
		a := v.Rows[row].Activity
		style := lipgloss.NewStyle().Foreground(formatter.BarColor(a.Color))
		left, right := v.Extent(bar)
		m.fill(c, y, left, right, '█', style)

		if bar.ActivityID == selected {
			h := v.Layout.HandleWidth
			c.set(m.screenCol(left-h/2), y, '●', formatter.StyleHeader)
			c.set(m.screenCol(right+h/2), y, '●', formatter.StyleHeader)
		}
	}
}

// fill paints every cell whose center lies in [left, right).
func (m *boardModel) fill(c *canvas, y int, left, right float64, r rune, style lipgloss.Style) {
	if y < 0 || y >= len(c.cells) {
		return
	}
	for x := range c.cells[y] {
		if cx := m.cellCenter(x); cx >= left && cx < right {
			c.set(x, y, r, style)
		}
	}
}

func (m *boardModel) drawMarkers(c *canvas, v *board.View) {
	for _, mk := range v.Markers {
		c.set(m.screenCol(mk.X), mk.Row-m.scrollY, '◆', formatter.StyleYellow)
	}
}

func (m *boardModel) drawFeedback(c *canvas, v *board.View) {
	fb := m.ctrl.Feedback()
	switch fb.Kind {
	case gesture.KindMove, gesture.KindResizeLeft, gesture.KindResizeRight, gesture.KindCreateBar:
		row, ok := v.RowOf(fb.ActivityID)
		if !ok {
			return
		}
		right := math.Max(fb.Right, fb.Left+m.cellPixels())
		m.fill(c, row-m.scrollY, fb.Left, right, '▓', stylePreview)
		start := v.Layout.Scale.DateForPosition(fb.Left)
		label := []rune(" " + start.Format(domain.DateLayout) + " ")
		x := m.screenCol(right) + 1
		for i, r := range label {
			c.set(x+i, row-m.scrollY, r, formatter.StyleDim)
		}
	case gesture.KindCreateLink:
		l := v.Layout
		x1, y1 := m.screenCol(fb.LinkFrom.X), m.screenLine(fb.LinkFrom.Y, l)
		x2, y2 := m.screenCol(fb.LinkTo.X), m.screenLine(fb.LinkTo.Y, l)
		m.segment(c, x1, y1, x2, y1, stylePreview)
		m.segment(c, x2, y1, x2, y2, stylePreview)
		c.set(x2, y2, '◎', stylePreview)
	}
}
