package editor

import (
	"strings"

	graphemeutil "github.com/iw2rmb/quill/internal/grapheme"
)

// lineCells splits a logical line into grapheme clusters and returns each
// cluster's cell width and starting cell. starts has len(clusters)+1 entries;
// the last one is the line's total width.
func lineCells(text string, tabWidth int) (clusters []string, widths []int, starts []int) {
	clusters = graphemeutil.Split(text)
	widths = make([]int, len(clusters))
	starts = make([]int, len(clusters)+1)
	col := 0
	for i, c := range clusters {
		w := graphemeutil.Width(c, col, tabWidth)
		widths[i] = w
		starts[i] = col
		col += w
	}
	starts[len(clusters)] = col
	return clusters, widths, starts
}

// displayCluster returns the printable form of a cluster of width w.
func displayCluster(c string, w int) string {
	if c == "\t" {
		return strings.Repeat(" ", w)
	}
	return c
}

// sanitizeSingleLine flattens host-provided labels for one-row rendering.
func sanitizeSingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\t", " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
