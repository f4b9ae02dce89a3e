package editor

import graphemeutil "github.com/iw2rmb/quill/internal/grapheme"

// segment is one visual row of a logical line: grapheme columns
// [StartCol, EndCol) starting at line cell StartCell.
type segment struct {
	StartCol  int
	EndCol    int
	StartCell int
	Cells     int
}

// wrapSegments splits a line into visual rows no wider than width cells.
// A non-positive width or WrapNone yields a single segment.
func wrapSegments(clusters []string, widths []int, starts []int, mode WrapMode, width int) []segment {
	n := len(clusters)
	if n == 0 || mode == WrapNone || width <= 0 {
		return []segment{{StartCol: 0, EndCol: n, StartCell: 0, Cells: starts[n]}}
	}

	var out []segment
	start := 0
	for start < n {
		used := 0
		i := start
		for i < n && (i == start || used+widths[i] <= width) {
			used += widths[i]
			i++
		}
		end := i
		if end < n && mode == WrapWord && !graphemeutil.IsSpace(clusters[end]) {
			if brk := wordBreak(clusters, start, end); brk > start {
				end = brk
			}
		}
		out = append(out, segment{
			StartCol:  start,
			EndCol:    end,
			StartCell: starts[start],
			Cells:     starts[end] - starts[start],
		})
		start = end
	}
	return out
}

// wordBreak returns the column just after the last whitespace run in
// [start, overflow), or start when the row holds a single long word.
func wordBreak(clusters []string, start, overflow int) int {
	for i := overflow - 1; i > start; i-- {
		if graphemeutil.IsSpace(clusters[i-1]) && !graphemeutil.IsSpace(clusters[i]) {
			return i
		}
	}
	return start
}

// segmentForCol picks the visual row holding col. A column on a wrap
// boundary belongs to the following row.
func segmentForCol(segs []segment, col int) int {
	for i, s := range segs {
		if col < s.EndCol {
			return i
		}
	}
	return len(segs) - 1
}
