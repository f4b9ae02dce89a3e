package editor

import "github.com/iw2rmb/quill/buffer"

type lineLayout struct {
	clusters []string
	widths   []int
	starts   []int
	segments []segment
	block    buffer.Block
	firstRow int
}

type visualRow struct {
	line int
	seg  int
}

type layoutKey struct {
	revision uint64
	width    int
	wrap     WrapMode
	tabWidth int
}

// layoutCache maps logical lines to visual rows. It is rebuilt when the
// buffer revision or any layout-affecting option changes.
type layoutCache struct {
	valid bool
	key   layoutKey
	lines []lineLayout
	rows  []visualRow
}

func (m *Model) contentWidth() int {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize() - m.gutterWidth()
	if w < 0 {
		return 0
	}
	return w
}

// wrapWidth leaves one cell for an end-of-line cursor.
func (m *Model) wrapWidth() int {
	w := m.contentWidth()
	if w <= 1 {
		return w
	}
	return w - 1
}

func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return digitCount(m.buf.LineCount()) + 1
}

func (m *Model) ensureLayout() *layoutCache {
	key := layoutKey{
		revision: m.buf.Revision(),
		width:    m.wrapWidth(),
		wrap:     m.cfg.WrapMode,
		tabWidth: m.cfg.TabWidth,
	}
	if m.layout.valid && m.layout.key == key {
		return &m.layout
	}

	blocks := m.buf.Blocks()
	lines := make([]lineLayout, m.buf.LineCount())
	rows := make([]visualRow, 0, len(lines))
	for row := range lines {
		clusters, widths, starts := lineCells(m.buf.Line(row), key.tabWidth)
		segs := wrapSegments(clusters, widths, starts, key.wrap, key.width)
		lines[row] = lineLayout{
			clusters: clusters,
			widths:   widths,
			starts:   starts,
			segments: segs,
			block:    blocks[row],
			firstRow: len(rows),
		}
		for i := range segs {
			rows = append(rows, visualRow{line: row, seg: i})
		}
	}
	m.layout = layoutCache{valid: true, key: key, lines: lines, rows: rows}
	return &m.layout
}

// visualRowOf returns the visual row index and segment for a document position.
func (l *layoutCache) visualRowOf(p buffer.Pos) (int, segment) {
	if len(l.lines) == 0 {
		return 0, segment{}
	}
	row := clampInt(p.Row, 0, len(l.lines)-1)
	ll := l.lines[row]
	i := segmentForCol(ll.segments, p.GraphemeCol)
	return ll.firstRow + i, ll.segments[i]
}

// cellOf returns the line-relative cell of a grapheme column.
func (ll lineLayout) cellOf(col int) int {
	return ll.starts[clampInt(col, 0, len(ll.clusters))]
}

// colAtCell returns the grapheme column whose cell span contains cell,
// clamped to the segment.
func (ll lineLayout) colAtCell(s segment, cell int) int {
	for col := s.StartCol; col < s.EndCol; col++ {
		if cell < ll.starts[col]+ll.widths[col] {
			return col
		}
	}
	return s.EndCol
}

func digitCount(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
