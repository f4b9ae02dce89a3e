package assist

import (
	"strings"

	"github.com/iw2rmb/quill/buffer"
)

var offsets = buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp}

// Selection is the immutable snapshot a command is built from.
type Selection struct {
	Range buffer.Range
	// Start and End are flat rune offsets of Range.
	Start, End int
	Text       string
	// Revision is the buffer revision at capture time.
	Revision uint64
}

// CaptureSelection snapshots the active selection of b. With no active
// selection the snapshot is empty (and blank).
func CaptureSelection(b *buffer.Buffer) Selection {
	r, ok := b.Selection()
	if !ok {
		cur := b.Cursor()
		r = buffer.Range{Start: cur, End: cur}
	}
	return CaptureRange(b, r)
}

// CaptureRange snapshots an arbitrary range of b.
func CaptureRange(b *buffer.Buffer, r buffer.Range) Selection {
	r = buffer.NormalizeRange(r)
	start, end, _ := b.RuneOffsetsFromRange(r, offsets)
	// Re-derive the range from clamped offsets so Range and Text agree.
	r, _ = b.RangeFromRuneOffsets(start, end, offsets)
	return Selection{
		Range:    r,
		Start:    start,
		End:      end,
		Text:     b.TextInRange(r),
		Revision: b.Revision(),
	}
}

// CaptureOffsets snapshots the flat rune span [start, end) of b.
func CaptureOffsets(b *buffer.Buffer, start, end int) Selection {
	r, _ := b.RangeFromRuneOffsets(start, end, offsets)
	return CaptureRange(b, r)
}

// IsBlank reports whether the captured text is empty or whitespace-only.
func (s Selection) IsBlank() bool {
	return strings.TrimSpace(s.Text) == ""
}
