package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
)

func TestMouse_ClickAndDragSelects(t *testing.T) {
	m := New(Config{Text: "abc\ndef"})
	m = m.SetSize(10, 3)

	m, _ = m.Update(mousePress(tea.MouseButtonLeft, 2, 1))
	if got := m.buf.Cursor(); got != bufferPos(1, 2) {
		t.Fatalf("cursor after click: got %v, want %v", got, bufferPos(1, 2))
	}

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	r, ok := m.buf.Selection()
	if !ok || r != (buffer.Range{Start: bufferPos(0, 1), End: bufferPos(1, 2)}) {
		t.Fatalf("drag selection: got %v (%v)", r, ok)
	}

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if r2, _ := m.buf.Selection(); r2 != r {
		t.Fatalf("motion after release changed selection: %v", r2)
	}
}

func TestMouse_ShiftClickExtendsFromCursor(t *testing.T) {
	m := New(Config{Text: "hello"})
	m = m.SetSize(10, 1)

	msg := mousePress(tea.MouseButtonLeft, 3, 0)
	msg.Shift = true
	m, _ = m.Update(msg)
	r, ok := m.buf.Selection()
	if !ok || r != (buffer.Range{Start: bufferPos(0, 0), End: bufferPos(0, 3)}) {
		t.Fatalf("shift-click selection: got %v (%v)", r, ok)
	}
}

func TestMouse_RightClickInsideSelectionRequestsContextMenu(t *testing.T) {
	m := New(Config{Text: "hello world"})
	m = m.SetSize(20, 3)
	sel := buffer.Range{Start: bufferPos(0, 0), End: bufferPos(0, 5)}
	m.buf.SetSelection(sel)

	m, cmd := m.Update(mousePress(tea.MouseButtonRight, 2, 0))
	if cmd == nil {
		t.Fatalf("expected context menu command")
	}
	msg, ok := cmd().(ContextMenuMsg)
	if !ok {
		t.Fatalf("expected ContextMenuMsg")
	}
	if msg.Pos != bufferPos(0, 2) || msg.Selection != sel || msg.X != 2 || msg.Y != 0 {
		t.Fatalf("context menu msg: got %+v", msg)
	}
	if r, ok := m.buf.Selection(); !ok || r != sel {
		t.Fatalf("right-click changed selection: %v (%v)", r, ok)
	}
}

func TestMouse_RightClickOutsideSelectionMovesCursor(t *testing.T) {
	m := New(Config{Text: "hello world"})
	m = m.SetSize(20, 3)
	m.buf.SetSelection(buffer.Range{Start: bufferPos(0, 0), End: bufferPos(0, 5)})

	m, cmd := m.Update(mousePress(tea.MouseButtonRight, 8, 0))
	if cmd != nil {
		t.Fatalf("unexpected command for right-click outside selection")
	}
	if _, ok := m.buf.Selection(); ok {
		t.Fatalf("selection should be cleared")
	}
	if got := m.buf.Cursor(); got != bufferPos(0, 8) {
		t.Fatalf("cursor: got %v, want %v", got, bufferPos(0, 8))
	}
}

func TestMouse_OutOfBoundsPressIgnored(t *testing.T) {
	m := New(Config{Text: "abc"})
	m = m.SetSize(3, 1)

	m, _ = m.Update(mousePress(tea.MouseButtonLeft, 5, 5))
	if got := m.buf.Cursor(); got != bufferPos(0, 0) {
		t.Fatalf("out-of-bounds press moved cursor: %v", got)
	}
}

func TestMouse_WheelScrollsWithoutMovingCursor(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3\n4\n5"})
	m = m.SetSize(5, 2)

	m, _ = m.Update(mousePress(tea.MouseButtonWheelDown, 0, 0))
	if m.viewport.YOffset == 0 {
		t.Fatalf("wheel did not scroll")
	}
	if got := m.buf.Cursor(); got != bufferPos(0, 0) {
		t.Fatalf("wheel moved cursor: %v", got)
	}
}
