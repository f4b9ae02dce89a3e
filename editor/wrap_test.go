package editor

import "testing"

func segmentsFor(text string, mode WrapMode, width int) []segment {
	clusters, widths, starts := lineCells(text, 4)
	return wrapSegments(clusters, widths, starts, mode, width)
}

func assertSegments(t *testing.T, got []segment, want ...[2]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("segments: got %d (%+v), want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i].StartCol != w[0] || got[i].EndCol != w[1] {
			t.Fatalf("segment %d: got [%d,%d), want [%d,%d)", i, got[i].StartCol, got[i].EndCol, w[0], w[1])
		}
	}
}

func TestWrapSegments_NoneOrNoWidthIsSingleSegment(t *testing.T) {
	assertSegments(t, segmentsFor("hello world", WrapNone, 3), [2]int{0, 11})
	assertSegments(t, segmentsFor("hello world", WrapWord, 0), [2]int{0, 11})
}

func TestWrapSegments_Grapheme_CoversLineAndRespectsWidth(t *testing.T) {
	segs := segmentsFor("abcdef", WrapGrapheme, 4)
	assertSegments(t, segs, [2]int{0, 4}, [2]int{4, 6})
	if segs[1].StartCell != 4 || segs[1].Cells != 2 {
		t.Fatalf("second segment cells: got start=%d cells=%d, want 4/2", segs[1].StartCell, segs[1].Cells)
	}
}

func TestWrapSegments_Word_BreaksAfterWhitespace(t *testing.T) {
	assertSegments(t, segmentsFor("hello world foo", WrapWord, 6), [2]int{0, 6}, [2]int{6, 12}, [2]int{12, 15})
	assertSegments(t, segmentsFor("ab cdefg", WrapWord, 5), [2]int{0, 3}, [2]int{3, 8})
}

func TestWrapSegments_Word_LongTokenFallsBackToGraphemes(t *testing.T) {
	assertSegments(t, segmentsFor("abcdefgh", WrapWord, 3), [2]int{0, 3}, [2]int{3, 6}, [2]int{6, 8})
}

func TestWrapSegments_WideClustersNeverSplit(t *testing.T) {
	assertSegments(t, segmentsFor("日本語", WrapGrapheme, 3), [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3})
}

func TestWrapSegments_EmptyLine(t *testing.T) {
	assertSegments(t, segmentsFor("", WrapWord, 5), [2]int{0, 0})
}

func TestSegmentForCol_BoundaryBelongsToNextRow(t *testing.T) {
	segs := segmentsFor("hello world", WrapWord, 6)
	cases := []struct {
		col  int
		want int
	}{
		{0, 0},
		{5, 0},
		{6, 1},
		{11, 1},
	}
	for _, tc := range cases {
		if got := segmentForCol(segs, tc.col); got != tc.want {
			t.Fatalf("segmentForCol(%d): got %d, want %d", tc.col, got, tc.want)
		}
	}
}

func TestParseWrapMode(t *testing.T) {
	cases := map[string]WrapMode{"none": WrapNone, "word": WrapWord, "grapheme": WrapGrapheme, "": WrapWord}
	for in, want := range cases {
		if got := ParseWrapMode(in); got != want {
			t.Fatalf("ParseWrapMode(%q): got %v, want %v", in, got, want)
		}
	}
}
