package buffer

import "strings"

// BlockKind is the closed set of block kinds a line can belong to.
//
// Kinds are derived from line markers, so the document stays plain text and
// every edit path (typing, undo, rewrites) keeps block structure for free.
type BlockKind uint8

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockBullet
	BlockTask
	BlockQuote
	BlockCode
	BlockCallout
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockBullet:
		return "bullet"
	case BlockTask:
		return "task"
	case BlockQuote:
		return "quote"
	case BlockCode:
		return "code"
	case BlockCallout:
		return "callout"
	default:
		return "unknown"
	}
}

// CalloutType tags a callout block.
type CalloutType uint8

const (
	CalloutInfo CalloutType = iota
	CalloutBestPractice
	CalloutWarning
	CalloutError
)

var calloutNames = map[string]CalloutType{
	"info":          CalloutInfo,
	"best-practice": CalloutBestPractice,
	"warning":       CalloutWarning,
	"error":         CalloutError,
}

func (c CalloutType) String() string {
	switch c {
	case CalloutBestPractice:
		return "best-practice"
	case CalloutWarning:
		return "warning"
	case CalloutError:
		return "error"
	default:
		return "info"
	}
}

// Block describes the block a single line belongs to.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1..3) for BlockHeading.
	Level int
	// Checked is set for completed BlockTask items.
	Checked bool
	// Callout is the callout tag for BlockCallout.
	Callout CalloutType
	// Header is true for the line that opens a callout or a code fence.
	Header bool
}

// ParseBlock classifies one line without context. Code fence bodies and
// callout continuation lines need the surrounding lines; see Blocks.
func ParseBlock(line string) Block {
	switch {
	case strings.HasPrefix(line, "```"):
		return Block{Kind: BlockCode, Header: true}
	case strings.HasPrefix(line, "> [!"):
		if end := strings.IndexByte(line, ']'); end > len("> [!") {
			name := strings.ToLower(line[len("> [!"):end])
			if t, ok := calloutNames[name]; ok {
				return Block{Kind: BlockCallout, Callout: t, Header: true}
			}
		}
		return Block{Kind: BlockQuote}
	case line == ">" || strings.HasPrefix(line, "> "):
		return Block{Kind: BlockQuote}
	case strings.HasPrefix(line, "- [ ] "):
		return Block{Kind: BlockTask}
	case strings.HasPrefix(line, "- [x] "), strings.HasPrefix(line, "- [X] "):
		return Block{Kind: BlockTask, Checked: true}
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return Block{Kind: BlockBullet}
	}

	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level >= 1 && level <= 3 && len(line) > level && line[level] == ' ' {
		return Block{Kind: BlockHeading, Level: level}
	}
	return Block{Kind: BlockParagraph}
}

// Blocks classifies every line of the document in order.
func (b *Buffer) Blocks() []Block {
	out := make([]Block, len(b.lines))
	inCode := false
	var callout *Block
	for row := range b.lines {
		blk := ParseBlock(b.Line(row))
		switch {
		case inCode:
			blk = Block{Kind: BlockCode, Header: blk.Kind == BlockCode && blk.Header}
			if blk.Header {
				inCode = false
			}
		case blk.Kind == BlockCode:
			inCode = true
		}

		if blk.Kind == BlockQuote && callout != nil {
			blk = Block{Kind: BlockCallout, Callout: callout.Callout}
		}
		out[row] = blk

		switch {
		case blk.Kind == BlockCallout && blk.Header:
			callout = &out[row]
		case blk.Kind != BlockCallout:
			callout = nil
		}
	}
	return out
}

// BlockAt returns the block kind of row, or a paragraph when row is out of
// range.
func (b *Buffer) BlockAt(row int) Block {
	if row < 0 || row >= len(b.lines) {
		return Block{Kind: BlockParagraph}
	}
	return b.Blocks()[row]
}
