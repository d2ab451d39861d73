// Package reader provides the Bubble Tea reading interface.
package reader

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ttbye/pageflick/internal/gesture"
	"github.com/ttbye/pageflick/internal/model"
	"github.com/ttbye/pageflick/internal/store"
)

const (
	tickInterval = 50 * time.Millisecond
	chromeHeight = 1
	footerHeight = 1
	minZoom      = 0.4
	maxZoom      = 1.0
)

type tickMsg time.Time

type gestureCount struct {
	count   int
	blocked int
}

// Model implements the Bubble Tea reading UI. All gesture input flows
// through the engine; the model only reacts to its callbacks.
type Model struct {
	bookPath string
	text     string
	store    *store.Store
	engine   *gesture.Engine

	width  int
	height int
	zoom   float64

	pages []Page
	page  int

	chromeVisible bool
	status        string

	startedAt     time.Time
	pagesForward  int
	pagesBackward int
	counts        map[string]*gestureCount

	mouseDown    bool
	downX, downY int
}

var (
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	chromeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a reading model for the given book text. The
// start page is clamped into range once the first window size arrives.
func NewModel(bookPath, text string, st *store.Store, gcfg gesture.Config, startPage int) *Model {
	m := &Model{
		bookPath:  bookPath,
		text:      text,
		store:     st,
		zoom:      maxZoom,
		page:      startPage,
		startedAt: time.Now(),
		counts:    map[string]*gestureCount{},
	}
	m.engine = gesture.New(gesture.Rect{}, m.callbacks(), gcfg)
	return m
}

func (m *Model) callbacks() gesture.Callbacks {
	return gesture.Callbacks{
		OnTap: func(x, y float64) {
			m.record("tap")
			m.chromeVisible = false
			m.status = ""
		},
		OnSwipe: func(dir gesture.SwipeDirection, distance, velocity float64) {
			m.record("swipe")
		},
		OnLongPress: func(x, y float64) {
			m.record("long_press")
		},
		OnShowNavigation: func() {
			m.chromeVisible = true
		},
		OnPageTurn: func(dir gesture.TurnDirection) {
			m.applyTurn(dir)
		},
		OnPinchZoom: func(scale, cx, cy float64) {
			m.record("pinch")
			m.setZoom(scale)
		},
		OnRotate: func(angle, cx, cy float64) {
			m.record("rotate")
			m.status = fmt.Sprintf("rotated %.0f°", angle)
		},
		OnDrag: func(dx, dy float64) {
			m.record("drag")
			m.status = fmt.Sprintf("dragged %+.0f,%+.0f", dx, dy)
		},
		OnEdgeReached: func(edge gesture.Edge) {
			m.recordBlocked()
			switch edge {
			case gesture.EdgeLeft, gesture.EdgeTop:
				m.status = "start of book"
			default:
				m.status = "end of book"
			}
		},
		AtBoundary: func(dir gesture.TurnDirection) bool {
			if dir == gesture.TurnPrev {
				return m.page <= 0
			}
			return m.page >= len(m.pages)-1
		},
		InteractiveAreas: func() []gesture.Rect {
			if !m.chromeVisible {
				return nil
			}
			return []gesture.Rect{{
				Max: gesture.Point{X: float64(m.width), Y: chromeHeight},
			}}
		},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.repaginate()
		m.engine.SetBounds(gesture.Rect{Max: gesture.Point{X: float64(m.width), Y: float64(m.height)}})
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tickMsg:
		m.engine.Tick(time.Time(msg))
		return m, m.tickWhileBusy()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.finishSession()
		m.engine.Close()
		return m, tea.Quit
	case "right", "pgdown", " ":
		m.directTurn(gesture.TurnNext)
		return m, nil
	case "left", "pgup":
		m.directTurn(gesture.TurnPrev)
		return m, nil
	case "m":
		m.chromeVisible = !m.chromeVisible
		return m, nil
	default:
		return m, nil
	}
}

// handleMouse translates terminal mouse input into the raw events the
// engine consumes. A release that barely moved additionally synthesizes
// a click so click-to-turn works with a mouse.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	now := time.Now()
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.directTurn(gesture.TurnNext)
		return nil
	case tea.MouseButtonWheelUp:
		m.directTurn(gesture.TurnPrev)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.mouseDown = true
		m.downX, m.downY = msg.X, msg.Y
		m.engine.Handle(gesture.MouseEvent(gesture.KindPress, x, y, now))
	case tea.MouseActionMotion:
		if !m.mouseDown {
			return nil
		}
		m.engine.Handle(gesture.MouseEvent(gesture.KindMove, x, y, now))
	case tea.MouseActionRelease:
		if !m.mouseDown {
			return nil
		}
		m.mouseDown = false
		m.engine.Handle(gesture.MouseEvent(gesture.KindRelease, x, y, now))
		if abs(msg.X-m.downX) <= 1 && abs(msg.Y-m.downY) <= 1 {
			m.engine.Handle(gesture.MouseEvent(gesture.KindClick, x, y, now))
		}
	}
	return m.tickWhileBusy()
}

func (m *Model) tickWhileBusy() tea.Cmd {
	if !m.engine.Busy() {
		return nil
	}
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// directTurn bypasses gesture classification for keys and the scroll
// wheel but keeps the same boundary accounting.
func (m *Model) directTurn(dir gesture.TurnDirection) {
	m.record("key")
	if dir == gesture.TurnPrev && m.page <= 0 {
		m.recordBlocked()
		m.status = "start of book"
		return
	}
	if dir == gesture.TurnNext && m.page >= len(m.pages)-1 {
		m.recordBlocked()
		m.status = "end of book"
		return
	}
	m.applyTurn(dir)
}

func (m *Model) applyTurn(dir gesture.TurnDirection) {
	if dir == gesture.TurnNext {
		if m.page < len(m.pages)-1 {
			m.page++
			m.pagesForward++
		}
		return
	}
	if m.page > 0 {
		m.page--
		m.pagesBackward++
	}
}

func (m *Model) setZoom(scale float64) {
	z := m.zoom / scale
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	if z == m.zoom {
		return
	}
	m.zoom = z
	m.repaginate()
	m.status = fmt.Sprintf("text width %d%%", int(m.zoom*100))
}

func (m *Model) repaginate() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentWidth := int(float64(m.width) * 0.80 * m.zoom)
	if contentWidth < 1 {
		contentWidth = 1
	}
	contentHeight := m.height - chromeHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.pages = Paginate(m.text, contentWidth, contentHeight)
	if m.page >= len(m.pages) {
		m.page = len(m.pages) - 1
	}
	if m.page < 0 {
		m.page = 0
	}
}

func (m *Model) record(name string) {
	entry, ok := m.counts[name]
	if !ok {
		entry = &gestureCount{}
		m.counts[name] = entry
	}
	entry.count++
}

// recordBlocked attributes a boundary rejection to the pathway that
// produced it.
func (m *Model) recordBlocked() {
	name := "swipe"
	if m.engine.Config().PageTurnMethod == gesture.MethodClick {
		name = "tap"
	}
	entry, ok := m.counts[name]
	if !ok {
		entry = &gestureCount{}
		m.counts[name] = entry
	}
	entry.blocked++
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 || len(m.pages) == 0 {
		return ""
	}
	content := m.renderPage(time.Now())
	bodyHeight := m.height - chromeHeight - footerHeight
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return m.renderChrome() + "\n" + body + "\n" + m.renderFooter()
}

// renderPage slides the incoming page in while a turn animation is in
// flight; otherwise it renders the current page.
func (m *Model) renderPage(now time.Time) string {
	page := m.page
	pad := 0
	padLeft := true
	if dir, frac, ok := m.engine.Progress(now); ok {
		pad = m.width - int(frac*float64(m.width))
		if pad < 0 {
			pad = 0
		}
		if dir == gesture.TurnNext {
			if page < len(m.pages)-1 {
				page++
			}
		} else {
			if page > 0 {
				page--
			}
			padLeft = false
		}
	}
	text := textStyle.Render(strings.Join(m.pages[page].Lines, "\n"))
	if pad == 0 {
		return text
	}
	style := lipgloss.NewStyle()
	if padLeft {
		style = style.PaddingLeft(pad)
	} else {
		style = style.PaddingRight(pad)
	}
	return style.Render(text)
}

func (m *Model) renderChrome() string {
	if !m.chromeVisible {
		return strings.Repeat(" ", m.width)
	}
	label := fmt.Sprintf(" %s · page %d/%d · q quit ", m.bookPath, m.page+1, len(m.pages))
	return chromeStyle.Width(m.width).Render(label)
}

func (m *Model) renderFooter() string {
	progress := 0
	if len(m.pages) > 0 {
		progress = int(float64(m.page+1) / float64(len(m.pages)) * 100)
	}
	segments := []string{fmt.Sprintf("%d/%d · %d%%", m.page+1, len(m.pages), progress)}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.status != "" {
		footer += "  " + statusStyle.Render(m.status)
	}
	return lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Center, footer)
}

// finishSession persists the session and the reading position.
func (m *Model) finishSession() {
	endedAt := time.Now()
	stats := model.SessionStats{
		StartedAt:     m.startedAt,
		EndedAt:       endedAt,
		BookPath:      m.bookPath,
		PagesForward:  m.pagesForward,
		PagesBackward: m.pagesBackward,
		DurationMs:    endedAt.Sub(m.startedAt).Milliseconds(),
	}
	gestures := make([]model.GestureStats, 0, len(m.counts))
	for name, entry := range m.counts {
		gestures = append(gestures, model.GestureStats{
			Gesture: name,
			Count:   entry.count,
			Blocked: entry.blocked,
		})
	}
	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, stats, gestures); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	if err := m.store.UpsertPosition(ctx, m.bookPath, m.page, len(m.pages)); err != nil {
		logErrf("failed to save position: %v\n", err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
