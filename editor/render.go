package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/buffer"
)

type cellKind uint8

const (
	cellPlain cellKind = iota
	cellSelected
	cellCursor
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}
	lay := m.ensureLayout()

	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()
	digits := 0
	if m.cfg.ShowLineNums {
		digits = digitCount(len(lay.lines))
	}

	contentWidth := m.contentWidth()
	leftNoWrap := maxInt(m.xOffset, 0)
	rightNoWrap := math.MaxInt
	if m.cfg.WrapMode == WrapNone && contentWidth > 0 {
		rightNoWrap = leftNoWrap + contentWidth
	}

	out := make([]string, 0, len(lay.rows))
	for _, ref := range lay.rows {
		line := lay.lines[ref.line]
		seg := line.segments[ref.seg]
		lastSeg := ref.seg == len(line.segments)-1

		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && ref.line == cursor.Row && ref.seg == 0 {
				numStyle = m.cfg.Style.LineNumActive
			}
			num := fmt.Sprintf("%*s", digits, "")
			if ref.seg == 0 {
				num = fmt.Sprintf("%*d", digits, ref.line+1)
			}
			sb.WriteString(numStyle.Render(num))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		left, right := leftNoWrap, rightNoWrap
		if m.cfg.WrapMode != WrapNone {
			left = seg.StartCell
			right = seg.StartCell + seg.Cells + 1
		}

		cursorCol := -1
		if m.focused && cursor.Row == ref.line && segmentForCol(line.segments, cursor.GraphemeCol) == ref.seg {
			cursorCol = cursor.GraphemeCol
		}
		selStart, selEnd, selEOL := selectionCols(sel, selOK, ref.line, len(line.clusters))

		sb.WriteString(m.renderSegment(line, seg, left, right, cursorCol, selStart, selEnd))

		// End-of-line placeholder: cursor after the last grapheme, or a
		// selected newline.
		if lastSeg {
			eolCell := line.starts[len(line.clusters)]
			if eolCell >= left && eolCell < right {
				switch {
				case cursorCol == len(line.clusters):
					sb.WriteString(m.cfg.Style.Cursor.Render(" "))
				case selEOL:
					sb.WriteString(m.cfg.Style.Selection.Render(" "))
				}
			}
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// selectionCols returns the selected column span [start, end) on row and
// whether the row's newline is selected too.
func selectionCols(sel buffer.Range, ok bool, row, lineLen int) (start, end int, eol bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = sel.Start.GraphemeCol
	}
	if row == sel.End.Row {
		end = sel.End.GraphemeCol
	}
	return start, end, row < sel.End.Row
}

// renderSegment draws the clusters of seg that fit within cells [left, right).
// Wide clusters cut by the edge become spaces.
func (m *Model) renderSegment(line lineLayout, seg segment, left, right, cursorCol, selStart, selEnd int) string {
	base := m.cfg.Style.blockStyle(line.block)
	styles := [...]lipgloss.Style{
		cellPlain:    base,
		cellSelected: m.cfg.Style.Selection.Inherit(base),
		cellCursor:   m.cfg.Style.Cursor.Inherit(base),
	}

	var sb, run strings.Builder
	runKind := cellPlain
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(styles[runKind].Render(run.String()))
		run.Reset()
	}

	for col := seg.StartCol; col < seg.EndCol; col++ {
		start, w := line.starts[col], line.widths[col]
		end := start + w
		if end <= left || start >= right {
			continue
		}

		kind := cellPlain
		switch {
		case col == cursorCol:
			kind = cellCursor
		case col >= selStart && col < selEnd:
			kind = cellSelected
		}
		if kind != runKind {
			flush()
			runKind = kind
		}

		if start < left || end > right {
			run.WriteString(strings.Repeat(" ", minInt(end, right)-maxInt(start, left)))
			continue
		}
		run.WriteString(displayCluster(line.clusters[col], w))
	}
	flush()
	return sb.String()
}
