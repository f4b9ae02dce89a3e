package editor

import "testing"

func TestLineCells_TabUsesTabStops(t *testing.T) {
	clusters, widths, starts := lineCells("a\tb", 4)
	if len(clusters) != 3 {
		t.Fatalf("clusters: got %d, want %d", len(clusters), 3)
	}
	wantW := []int{1, 3, 1}
	wantS := []int{0, 1, 4, 5}
	for i, w := range wantW {
		if widths[i] != w {
			t.Fatalf("widths[%d]: got %d, want %d", i, widths[i], w)
		}
	}
	for i, s := range wantS {
		if starts[i] != s {
			t.Fatalf("starts[%d]: got %d, want %d", i, starts[i], s)
		}
	}
}

func TestLineCells_UnicodeBoundariesAndWidths(t *testing.T) {
	clusters, widths, starts := lineCells("日a\U0001F468\u200d\U0001F469", 4)
	if len(clusters) != 3 {
		t.Fatalf("clusters: got %d (%q), want %d", len(clusters), clusters, 3)
	}
	if widths[0] != 2 || widths[1] != 1 {
		t.Fatalf("widths: got %v, want [2 1 ...]", widths)
	}
	if widths[2] < 1 {
		t.Fatalf("zwj cluster width: got %d, want >= 1", widths[2])
	}
	if starts[3] != widths[0]+widths[1]+widths[2] {
		t.Fatalf("total width: got %d, want %d", starts[3], widths[0]+widths[1]+widths[2])
	}
}

func TestLineCells_Empty(t *testing.T) {
	clusters, widths, starts := lineCells("", 4)
	if len(clusters) != 0 || len(widths) != 0 {
		t.Fatalf("empty line: got %d clusters", len(clusters))
	}
	if len(starts) != 1 || starts[0] != 0 {
		t.Fatalf("starts: got %v, want [0]", starts)
	}
}

func TestSanitizeSingleLine(t *testing.T) {
	if got := sanitizeSingleLine("a\r\nb\nc\td"); got != "a b c d" {
		t.Fatalf("sanitize: got %q, want %q", got, "a b c d")
	}
}
