package editor

import "github.com/iw2rmb/quill/buffer"

type ChangeEvent struct {
	Version  uint64
	Revision uint64
	Cursor   buffer.Pos

	Selection struct {
		Range  buffer.Range
		Active bool
	}

	// Change is set when this event follows a text change.
	Change    buffer.Change
	HasChange bool

	// Simplest payload; host can diff if needed.
	Text string
}

func buildChangeEvent(b *buffer.Buffer, lastRevision uint64) ChangeEvent {
	ev := ChangeEvent{
		Version:  b.Version(),
		Revision: b.Revision(),
		Cursor:   b.Cursor(),
		Text:     b.Text(),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	if ev.Revision != lastRevision {
		if ch, ok := b.LastChange(); ok && ch.RevisionAfter == ev.Revision {
			ev.Change = ch
			ev.HasChange = true
		}
	}
	return ev
}

// ContextMenuMsg is emitted on a right-click inside the active selection.
// X and Y are viewport-local cells of the click.
type ContextMenuMsg struct {
	Pos       buffer.Pos
	X, Y      int
	Selection buffer.Range
}

// MenuSelectMsg is emitted when the user accepts a menu item.
type MenuSelectMsg struct {
	Tag   string
	Index int
	Item  MenuItem
}

// MenuDismissMsg is emitted when the user dismisses the menu.
type MenuDismissMsg struct {
	Tag string
}
