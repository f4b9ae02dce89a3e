package editor

import "github.com/iw2rmb/quill/buffer"

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Coordinates are in terminal cells relative to the editor's viewport:
// (0,0) is the top-left of the visible content region.
//
// Mapping rules:
// - gutter clicks map to the start of the visual row
// - clicks past the end of a wrapped row stay on that row
// - x/y are clamped into document bounds
func (m *Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	lay := m.ensureLayout()
	if len(lay.rows) == 0 {
		return buffer.Pos{}
	}

	ref := lay.rows[clampInt(m.viewport.YOffset+y, 0, len(lay.rows)-1)]
	line := lay.lines[ref.line]
	seg := line.segments[ref.seg]
	lastSeg := ref.seg == len(line.segments)-1

	vx := x - m.gutterWidth()
	if vx < 0 {
		return buffer.Pos{Row: ref.line, GraphemeCol: seg.StartCol}
	}

	cell := vx + maxInt(m.xOffset, 0)
	if m.cfg.WrapMode != WrapNone {
		cell = seg.StartCell + vx
	}
	col := line.colAtCell(seg, cell)
	if col == seg.EndCol && !lastSeg && seg.EndCol > seg.StartCol {
		col = seg.EndCol - 1
	}
	return buffer.Pos{Row: ref.line, GraphemeCol: col}
}

// DocToScreen maps a document position to viewport-local cell coordinates.
//
// ok is false when the position is scrolled out of the visible viewport.
func (m Model) DocToScreen(pos buffer.Pos) (x, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	lay := m.ensureLayout()
	if len(lay.lines) == 0 {
		return 0, 0, false
	}

	row := clampInt(pos.Row, 0, len(lay.lines)-1)
	vrow, seg := lay.visualRowOf(buffer.Pos{Row: row, GraphemeCol: pos.GraphemeCol})
	cell := lay.lines[row].cellOf(pos.GraphemeCol)

	x = m.gutterWidth()
	if m.cfg.WrapMode == WrapNone {
		x += cell - maxInt(m.xOffset, 0)
	} else {
		x += cell - seg.StartCell
	}
	y = vrow - m.viewport.YOffset

	if y < 0 {
		return x, y, false
	}
	if h := m.visibleRows(); h > 0 && y >= h {
		return x, y, false
	}
	if w := m.contentWidth(); w > 0 && (x < m.gutterWidth() || x >= m.gutterWidth()+w) {
		return x, y, false
	}
	return x, y, true
}
