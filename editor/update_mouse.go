package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
)

// updateMouse reports follow=false for wheel scrolling so manual scroll
// position is kept.
func (m Model) updateMouse(msg tea.MouseMsg) (_ Model, _ tea.Cmd, follow bool) {
	if isWheelMouse(msg) {
		var cmd tea.Cmd
		if !m.menu.Visible {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd, false
	}

	if !m.focused || m.buf == nil {
		return m, nil, true
	}

	if m.menu.Visible {
		if msg.Action != tea.MouseActionPress {
			return m, nil, true
		}
		if box, ok := m.menuPlacement(); ok {
			if i, hit := box.itemAt(msg.X, msg.Y); hit {
				if msg.Button != tea.MouseButtonLeft {
					return m, nil, true
				}
				mm, cmd := m.acceptMenu(i)
				return mm, cmd, true
			}
		}
		mm, cmd := m.dismissMenu()
		return mm, cmd, true
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil, true
		}
		p := m.screenToDocPos(msg.X, msg.Y)

		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonRight:
			if sel, ok := m.buf.Selection(); ok && sel.Contains(p) {
				out := ContextMenuMsg{Pos: p, X: msg.X, Y: msg.Y, Selection: sel}
				return m, func() tea.Msg { return out }, false
			}
			m.buf.SetCursor(p)
			m.buf.ClearSelection()
		case tea.MouseButtonLeft:
			if msg.Shift {
				anchor := m.buf.Cursor()
				if raw, ok := m.buf.SelectionRaw(); ok {
					anchor = raw.Start
				}
				m.mouseAnchor = anchor
				m.buf.SetCursor(p)
				m.buf.SetSelection(buffer.Range{Start: anchor, End: p})
			} else {
				m.mouseAnchor = p
				m.buf.SetCursor(p)
				m.buf.ClearSelection()
			}
			m.mouseDragging = true
		}

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil, true
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.screenToDocPos(x, y)
		m.buf.SetCursor(p)
		m.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: p})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, nil, true
}

func isWheelMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
