package editor

import (
	"reflect"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
	graphemeutil "github.com/iw2rmb/quill/internal/grapheme"
)

const defaultMenuMaxWidth = 48

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model
	xOffset  int
	layout   layoutCache

	menu MenuState

	mouseAnchor   buffer.Pos
	mouseDragging bool

	lastBufVersion  uint64
	lastBufRevision uint64
	lastCursor      buffer.Pos
}

func New(cfg Config) Model {
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	if reflect.DeepEqual(cfg.MenuKeyMap, MenuKeyMap{}) {
		cfg.MenuKeyMap = DefaultMenuKeyMap()
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = graphemeutil.DefaultTabWidth
	}
	if cfg.MenuMaxWidth <= 0 {
		cfg.MenuMaxWidth = defaultMenuMaxWidth
	}

	vp := viewport.New(0, 0)
	// Keys are handled by the editor; the viewport only scrolls on wheel.
	vp.KeyMap = viewport.KeyMap{}

	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		focused:  true,
		viewport: vp,
	}
	m.lastBufVersion = m.buf.Version()
	m.lastBufRevision = m.buf.Revision()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Width() int  { return m.viewport.Width }
func (m Model) Height() int { return m.viewport.Height }

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.menu = MenuState{}
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) ReadOnly() bool { return m.cfg.ReadOnly }

func (m Model) SetReadOnly(v bool) Model {
	m.cfg.ReadOnly = v
	return m
}

// Refresh re-synchronizes the view after the host mutated the buffer
// directly, follows the cursor, and emits OnChange if anything moved.
func (m Model) Refresh() Model {
	if m.syncFromBuffer() {
		m.followCursor()
	}
	return m
}

func (m Model) View() string {
	base := m.viewport.View()
	if !m.menu.Visible {
		return base
	}
	return m.renderMenuOverlay(base)
}

// syncFromBuffer rebuilds content and emits OnChange when the buffer
// version or cursor moved since the last sync.
func (m *Model) syncFromBuffer() (changed bool) {
	if m.buf == nil {
		return false
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	lastRev := m.lastBufRevision
	m.lastBufVersion = ver
	m.lastBufRevision = m.buf.Revision()
	m.lastCursor = cur
	m.rebuildContent()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, lastRev))
	}
	return true
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) visibleRows() int {
	return m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	lay := m.ensureLayout()
	cur := m.buf.Cursor()
	vrow, _ := lay.visualRowOf(cur)

	if m.cfg.WrapMode == WrapNone {
		if m.followCursorX(lay.lines[clampInt(cur.Row, 0, len(lay.lines)-1)].cellOf(cur.GraphemeCol)) {
			m.rebuildContent()
		}
	}

	h := m.visibleRows()
	if h <= 0 {
		return
	}
	y := m.viewport.YOffset
	if vrow < y {
		m.viewport.SetYOffset(vrow)
		return
	}
	if vrow >= y+h {
		m.viewport.SetYOffset(vrow - h + 1)
	}
}

// followCursorX keeps cell visible for unwrapped lines. Reports whether the
// horizontal offset changed.
func (m *Model) followCursorX(cell int) bool {
	w := m.contentWidth()
	if w <= 0 {
		if m.xOffset == 0 {
			return false
		}
		m.xOffset = 0
		return true
	}
	next := m.xOffset
	if cell < next {
		next = cell
	}
	if cell >= next+w {
		next = cell - w + 1
	}
	if next == m.xOffset {
		return false
	}
	m.xOffset = next
	return true
}
