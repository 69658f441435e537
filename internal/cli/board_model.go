package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/alexanderramin/gantt/internal/gesture"
	"github.com/alexanderramin/gantt/internal/routing"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Screen geometry of the board, in terminal cells.
const (
	nameWidth   = 24
	headerLines = 2
	footerLines = 2
	scrollStep  = 7

	doubleClickWindow = 400 * time.Millisecond
)

// promptKind is the input form currently open over the board.
type promptKind int

const (
	promptNone promptKind = iota
	promptConfirm
	promptActivity
	promptMilestone
)

// boardModel is the interactive timeline. It is the controller's event
// surface: a pointer press starts a gesture, and while the controller holds
// the capture every motion and release is routed to it.
type boardModel struct {
	app  *App
	ctx  context.Context
	ctrl *gesture.Controller
	keys boardKeyMap
	now  func() time.Time

	zoom          domain.Granularity
	width, height int
	scrollX       int
	scrollY       int

	capture   gesture.PointerHandler
	pointer   geom.Point
	hoverView *board.View

	lastClick struct {
		milestoneID string
		at          time.Time
	}

	prompt      promptKind
	form        *huh.Form
	answer      bool
	inputName   string
	inputDate   string
	milestoneOf string

	status    string
	statusErr bool
}

// newBoardModel loads the board and wires a controller to it.
func newBoardModel(ctx context.Context, app *App) (*boardModel, error) {
	m := &boardModel{
		app:    app,
		ctx:    ctx,
		keys:   newBoardKeyMap(),
		now:    time.Now,
		zoom:   app.Config.Zoom(),
		width:  120,
		height: 30,
	}
	cfg := app.Config
	m.ctrl = gesture.NewController(
		gesture.Ports{
			Activities:   app.Activities,
			Dependencies: app.Dependencies,
			Milestones:   app.Milestones,
			Loader:       app.Board,
			Observer:     app.Observer,
		},
		m,
		gesture.WithLayoutFunc(boardLayout(cfg, m.zoom)),
		gesture.WithThresholds(gesture.Thresholds{
			Click:       cfg.Gesture.ClickThreshold,
			MinBarWidth: cfg.Gesture.MinBarWidth,
			CreateBar:   cfg.Gesture.CreateThreshold,
		}),
	)
	if err := m.ctrl.Refresh(ctx); err != nil {
		return nil, err
	}
	m.ctrl.Focus()
	return m, nil
}

// Capture implements gesture.Surface.
func (m *boardModel) Capture(h gesture.PointerHandler) func() {
	m.capture = h
	return func() {
		if m.capture == h {
			m.capture = nil
		}
	}
}

func (m *boardModel) Init() tea.Cmd {
	return nil
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m, m.updatePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}
	m.syncHover()
	return m, m.openPending()
}

// View geometry

func (m *boardModel) cellPixels() float64 {
	if p := m.app.Config.UI.CellPixels; p > 0 {
		return p
	}
	return board.DefaultHandleWidth
}

func (m *boardModel) timelineLeft() int { return nameWidth + 1 }

func (m *boardModel) visibleRows() int {
	return max(m.height-headerLines-footerLines, 1)
}

func (m *boardModel) timelineCells() int {
	return max(m.width-m.timelineLeft(), 1)
}

// toPoint maps a terminal cell to board pixels: the center of the cell's
// timeline column and the center of its row.
func (m *boardModel) toPoint(x, y int) geom.Point {
	l := m.ctrl.View().Layout
	cp := m.cellPixels()
	col := x - m.timelineLeft() + m.scrollX
	row := y - headerLines + m.scrollY
	return geom.Pt((float64(col)+0.5)*cp, (float64(row)+0.5)*l.RowHeight)
}

// rowAt returns the visible row index under screen line y.
func (m *boardModel) rowAt(y int) (int, bool) {
	row := y - headerLines + m.scrollY
	if y < headerLines || y >= headerLines+m.visibleRows() {
		return row, false
	}
	return row, row >= 0 && row < len(m.ctrl.View().Rows)
}

func (m *boardModel) clampScroll() {
	v := m.ctrl.View()
	maxX := int(v.Width()/m.cellPixels()) - m.timelineCells() + 1
	m.scrollX = min(max(m.scrollX, 0), max(maxX, 0))
	maxY := len(v.Rows) - m.visibleRows()
	m.scrollY = min(max(m.scrollY, 0), max(maxY, 0))
}

// hoveredLink returns the path flagged by the last pointer motion.
func (m *boardModel) hoveredLink() (routing.Path, bool) {
	for _, p := range m.ctrl.View().Links {
		if p.Hovered {
			return p, true
		}
	}
	return routing.Path{}, false
}

// syncHover re-flags the link under the pointer once the controller has
// recomposed its view, since a fresh view has no path hovered.
func (m *boardModel) syncHover() {
	v := m.ctrl.View()
	if m.hoverView == nil || m.hoverView == v || m.capture != nil {
		return
	}
	routing.Hover(v.Links, m.pointer)
	m.hoverView = v
}

// Mouse

func (m *boardModel) handleMouse(msg tea.MouseMsg) {
	p := m.toPoint(msg.X, msg.Y)
	m.pointer = p

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			m.handleWheel(msg.Button)
			return
		}
		if m.capture != nil {
			return
		}
		m.press(msg.X, msg.Y, p)
	case tea.MouseActionMotion:
		if m.capture != nil {
			m.capture.PointerMove(p)
			return
		}
		v := m.ctrl.View()
		routing.Hover(v.Links, p)
		m.hoverView = v
	case tea.MouseActionRelease:
		h := m.capture
		if h == nil {
			return
		}
		out, err := h.PointerUp(m.ctx, p)
		m.capture = nil
		m.reportOutcome(out, err)
	}
}

func (m *boardModel) handleWheel(b tea.MouseButton) {
	switch b {
	case tea.MouseButtonWheelUp:
		m.scrollY--
	case tea.MouseButtonWheelDown:
		m.scrollY++
	case tea.MouseButtonWheelLeft:
		m.scrollX -= scrollStep
	case tea.MouseButtonWheelRight:
		m.scrollX += scrollStep
	}
	m.clampScroll()
}

// press dispatches a left-button press to the gesture it starts.
func (m *boardModel) press(x, y int, p geom.Point) {
	row, ok := m.rowAt(y)
	if !ok {
		return
	}
	v := m.ctrl.View()
	r := v.Rows[row]
	id := r.Activity.ID

	if x < nameWidth {
		if r.HasChildren && x == 2*r.Depth {
			m.setErr(m.ctrl.ToggleCollapse(m.ctx, id))
			return
		}
		m.setErr(m.ctrl.BeginReorder(id, p))
		return
	}
	if x == nameWidth {
		return
	}

	hit := v.HitTest(p)
	var err error
	switch hit.Kind {
	case board.HitLeftHandle:
		err = m.ctrl.BeginResize(hit.ActivityID, gesture.EdgeLeft, p)
	case board.HitRightHandle:
		err = m.ctrl.BeginResize(hit.ActivityID, gesture.EdgeRight, p)
	case board.HitStartConnector:
		err = m.ctrl.BeginLink(hit.ActivityID, gesture.LinkStart, p)
	case board.HitEndConnector:
		err = m.ctrl.BeginLink(hit.ActivityID, gesture.LinkEnd, p)
	case board.HitBar:
		err = m.ctrl.BeginMove(hit.ActivityID, p)
	case board.HitMilestone:
		err = m.clickMilestone(hit)
	case board.HitLink:
		err = m.ctrl.ClickDependency(hit.DependencyID)
	case board.HitRow:
		m.ctrl.Select(hit.ActivityID)
		if !v.Bars[row].Dated {
			err = m.ctrl.BeginCreateBar(hit.ActivityID, p)
		}
	}
	m.setErr(err)
}

// clickMilestone selects the owner on a single click and asks to delete the
// milestone on a double click.
func (m *boardModel) clickMilestone(hit board.Hit) error {
	now := m.now()
	last := m.lastClick
	m.lastClick.milestoneID, m.lastClick.at = hit.MilestoneID, now
	if last.milestoneID == hit.MilestoneID && now.Sub(last.at) <= doubleClickWindow {
		m.lastClick.milestoneID = ""
		return m.ctrl.DoubleClickMilestone(hit.MilestoneID)
	}
	m.ctrl.Select(hit.ActivityID)
	return nil
}

func (m *boardModel) reportOutcome(out gesture.Outcome, err error) {
	switch out.Kind {
	case gesture.OutcomeFailed:
		m.setErr(err)
	case gesture.OutcomeCommitted:
		if err != nil {
			m.setErr(err)
			return
		}
		m.setStatus(fmt.Sprintf("Saved %s", out.Session))
	case gesture.OutcomeReverted, gesture.OutcomeClick:
		m.setStatus("")
	}
}

// Keyboard

func (m *boardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	ctx := m.ctx
	var err error

	switch {
	case key.Matches(msg, k.Escape):
		if m.ctrl.Active() {
			m.ctrl.Abort()
			m.capture = nil
			return nil
		}
		_, err = m.ctrl.HandleKey(ctx, gesture.KeyEscape)
	case key.Matches(msg, k.Up):
		m.ctrl.SelectRelative(-1)
		m.followSelection()
	case key.Matches(msg, k.Down):
		m.ctrl.SelectRelative(1)
		m.followSelection()
	case key.Matches(msg, k.MoveUp):
		err = m.selectionKey(gesture.KeyMoveUp)
	case key.Matches(msg, k.MoveDown):
		err = m.selectionKey(gesture.KeyMoveDown)
	case key.Matches(msg, k.Indent):
		err = m.selectionKey(gesture.KeyIndent)
	case key.Matches(msg, k.Outdent):
		err = m.selectionKey(gesture.KeyOutdent)
	case key.Matches(msg, k.Collapse):
		err = m.selectionKey(gesture.KeyToggleCollapse)
	case key.Matches(msg, k.Delete):
		err = m.selectionKey(gesture.KeyDelete)
	case key.Matches(msg, k.Demote):
		err = m.withSelection(func(id string) error { return m.ctrl.Demote(ctx, id) })
	case key.Matches(msg, k.Promote):
		err = m.withSelection(func(id string) error { return m.ctrl.Promote(ctx, id) })
	case key.Matches(msg, k.Retype):
		link, ok := m.hoveredLink()
		if !ok {
			err = errors.New("hover over a dependency to change its type")
			break
		}
		err = m.ctrl.CycleDependencyType(ctx, link.DependencyID)
	case key.Matches(msg, k.New):
		return m.openInput(promptActivity)
	case key.Matches(msg, k.Milestone):
		id := m.ctrl.Selected()
		if id == "" {
			err = gesture.ErrNoSelection
			break
		}
		m.milestoneOf = id
		return m.openInput(promptMilestone)
	case key.Matches(msg, k.Zoom):
		err = m.toggleZoom()
	case key.Matches(msg, k.ScrollLeft):
		m.scrollX -= scrollStep
		m.clampScroll()
		return nil
	case key.Matches(msg, k.ScrollRight):
		m.scrollX += scrollStep
		m.clampScroll()
		return nil
	default:
		return nil
	}
	if err != nil {
		m.setErr(err)
		return nil
	}
	if !key.Matches(msg, k.Zoom) {
		m.setStatus("")
	}
	return nil
}

func (m *boardModel) selectionKey(k gesture.Key) error {
	if m.ctrl.Selected() == "" {
		return gesture.ErrNoSelection
	}
	_, err := m.ctrl.HandleKey(m.ctx, k)
	return err
}

func (m *boardModel) withSelection(fn func(id string) error) error {
	id := m.ctrl.Selected()
	if id == "" {
		return gesture.ErrNoSelection
	}
	return fn(id)
}

// followSelection scrolls vertically so the selected row stays on screen.
func (m *boardModel) followSelection() {
	row, ok := m.ctrl.View().RowOf(m.ctrl.Selected())
	if !ok {
		return
	}
	if row < m.scrollY {
		m.scrollY = row
	}
	if last := m.scrollY + m.visibleRows() - 1; row > last {
		m.scrollY = row - m.visibleRows() + 1
	}
	m.clampScroll()
}

// toggleZoom switches week and month columns and persists the choice.
func (m *boardModel) toggleZoom() error {
	m.zoom = m.zoom.Toggle()
	m.ctrl.SetLayoutFunc(boardLayout(m.app.Config, m.zoom))
	m.clampScroll()
	m.app.Config.UI.Zoom = string(m.zoom)
	if err := m.app.saveConfig(); err != nil {
		return fmt.Errorf("saving zoom: %w", err)
	}
	m.setStatus("Zoom: " + string(m.zoom))
	return nil
}

// Prompts

// openPending shows the confirmation overlay when the controller is
// waiting on a destructive action.
func (m *boardModel) openPending() tea.Cmd {
	req := m.ctrl.Pending()
	if req == nil || m.prompt != promptNone {
		return nil
	}
	m.answer = false
	m.form = confirmForm(req.Title, req.Message, &m.answer)
	m.prompt = promptConfirm
	return m.form.Init()
}

func (m *boardModel) openInput(kind promptKind) tea.Cmd {
	m.inputName = ""
	var fields []huh.Field
	switch kind {
	case promptActivity:
		fields = append(fields, huh.NewInput().Title("New activity").Placeholder("name").Value(&m.inputName))
	case promptMilestone:
		m.inputDate = m.defaultMilestoneDate()
		fields = append(fields,
			huh.NewInput().Title("Milestone").Placeholder("name").Value(&m.inputName),
			huh.NewInput().Title("Date").Placeholder(domain.DateLayout).Value(&m.inputDate).
				Validate(func(s string) error {
					_, err := domain.ParseDate(s)
					return err
				}),
		)
	}
	m.form = huh.NewForm(huh.NewGroup(fields...)).WithTheme(ganttHuhTheme()).WithShowHelp(false)
	m.prompt = kind
	return m.form.Init()
}

// defaultMilestoneDate is the date under the last pointer position, or
// the selected activity's start.
func (m *boardModel) defaultMilestoneDate() string {
	v := m.ctrl.View()
	if m.pointer.X > 0 {
		return v.Layout.Scale.DateForPosition(m.pointer.X).Format(domain.DateLayout)
	}
	if a, ok := m.ctrl.Snapshot().Activity(m.milestoneOf); ok && a.StartDate != nil {
		return domain.FormatDate(a.StartDate)
	}
	return domain.Day(m.now()).Format(domain.DateLayout)
}

func (m *boardModel) closePrompt() {
	m.prompt = promptNone
	m.form = nil
}

func (m *boardModel) updatePrompt(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		if m.prompt == promptConfirm {
			switch strings.ToLower(km.String()) {
			case "y":
				m.closePrompt()
				m.setErr(m.ctrl.Confirm(m.ctx))
				return nil
			case "n", "esc", "q":
				m.closePrompt()
				m.ctrl.Cancel()
				return nil
			}
		} else if km.Type == tea.KeyEsc {
			m.closePrompt()
			return nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.completePrompt()
		return nil
	case huh.StateAborted:
		if m.prompt == promptConfirm {
			m.ctrl.Cancel()
		}
		m.closePrompt()
		return nil
	}
	return cmd
}

func (m *boardModel) completePrompt() {
	kind := m.prompt
	m.closePrompt()

	switch kind {
	case promptConfirm:
		if m.answer {
			m.setErr(m.ctrl.Confirm(m.ctx))
		} else {
			m.ctrl.Cancel()
		}
	case promptActivity:
		name := strings.TrimSpace(m.inputName)
		if name == "" {
			return
		}
		if _, err := m.ctrl.CreateActivity(m.ctx, name); err != nil {
			m.setErr(err)
			return
		}
		m.followSelection()
	case promptMilestone:
		date, err := domain.ParseDate(strings.TrimSpace(m.inputDate))
		if err != nil {
			m.setErr(err)
			return
		}
		m.setErr(m.ctrl.AddMilestone(m.ctx, m.milestoneOf, strings.TrimSpace(m.inputName), date))
	}
}

func (m *boardModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *boardModel) setErr(err error) {
	if err == nil {
		return
	}
	m.status, m.statusErr = err.Error(), true
}
