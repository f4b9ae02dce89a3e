package buffer

import "unicode/utf8"

// OffsetClampMode selects what conversions do with out-of-bounds input.
type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

// ConvertPolicy controls offset <-> Pos conversion. Newlines always count as
// a single unit.
type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// unit measures one grapheme cluster in the flat addressing in use.
type unit func(cluster string) int

func runeUnit(cluster string) int { return utf8.RuneCountInString(cluster) }

func byteUnit(cluster string) int { return len(cluster) }

func (b *Buffer) PosFromRuneOffset(off int, p ConvertPolicy) (Pos, bool) {
	return b.posFromOffset(off, p, runeUnit)
}

func (b *Buffer) RuneOffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	return b.offsetFromPos(pos, p, runeUnit)
}

func (b *Buffer) PosFromByteOffset(off int, p ConvertPolicy) (Pos, bool) {
	return b.posFromOffset(off, p, byteUnit)
}

func (b *Buffer) ByteOffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	return b.offsetFromPos(pos, p, byteUnit)
}

// RangeFromRuneOffsets converts a flat [start, end) rune span into a Range.
func (b *Buffer) RangeFromRuneOffsets(start, end int, p ConvertPolicy) (Range, bool) {
	s, ok := b.PosFromRuneOffset(start, p)
	if !ok {
		return Range{}, false
	}
	e, ok := b.PosFromRuneOffset(end, p)
	if !ok {
		return Range{}, false
	}
	return NormalizeRange(Range{Start: s, End: e}), true
}

// RuneOffsetsFromRange converts r into a flat [start, end) rune span.
func (b *Buffer) RuneOffsetsFromRange(r Range, p ConvertPolicy) (start, end int, ok bool) {
	r = NormalizeRange(r)
	if start, ok = b.RuneOffsetFromPos(r.Start, p); !ok {
		return 0, 0, false
	}
	if end, ok = b.RuneOffsetFromPos(r.End, p); !ok {
		return 0, 0, false
	}
	return start, end, true
}

// RuneLen returns the document length in runes, newlines included.
func (b *Buffer) RuneLen() int { return b.docLen(runeUnit) }

func (b *Buffer) docLen(u unit) int {
	total := 0
	for row, line := range b.lines {
		for _, cluster := range line {
			total += u(cluster)
		}
		if row < len(b.lines)-1 {
			total++
		}
	}
	return total
}

func (b *Buffer) posFromOffset(off int, p ConvertPolicy, u unit) (Pos, bool) {
	max := b.docLen(u)
	switch p.ClampMode {
	case OffsetError:
		if off < 0 || off > max {
			return Pos{}, false
		}
	case OffsetClamp:
		off = clampInt(off, 0, max)
	default:
		return Pos{}, false
	}

	cur := 0
	for row, line := range b.lines {
		if off == cur {
			return Pos{Row: row}, true
		}
		for col, cluster := range line {
			next := cur + u(cluster)
			if off > cur && off < next {
				// Inside a cluster: only valid when clamping, snapping left.
				if p.ClampMode == OffsetClamp {
					return Pos{Row: row, GraphemeCol: col}, true
				}
				return Pos{}, false
			}
			cur = next
			if off == cur {
				return Pos{Row: row, GraphemeCol: col + 1}, true
			}
		}
		if row < len(b.lines)-1 {
			cur++
		}
	}
	return Pos{}, false
}

func (b *Buffer) offsetFromPos(pos Pos, p ConvertPolicy, u unit) (int, bool) {
	clamped := b.clampPos(pos)
	switch p.ClampMode {
	case OffsetError:
		if clamped != pos {
			return 0, false
		}
	case OffsetClamp:
	default:
		return 0, false
	}

	off := 0
	for row := 0; row < clamped.Row; row++ {
		for _, cluster := range b.lines[row] {
			off += u(cluster)
		}
		off++
	}
	for col := 0; col < clamped.GraphemeCol; col++ {
		off += u(b.lines[clamped.Row][col])
	}
	return off, true
}
