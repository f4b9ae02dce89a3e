package editor

// WrapMode controls how long logical lines are displayed.
//
// WrapNone renders one logical line per visual row and uses horizontal scrolling
// to keep the cursor visible. WrapWord and WrapGrapheme use soft wrapping.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapGrapheme
)

func (w WrapMode) String() string {
	switch w {
	case WrapWord:
		return "word"
	case WrapGrapheme:
		return "grapheme"
	default:
		return "none"
	}
}

// ParseWrapMode maps a config value to a WrapMode; unknown values select
// WrapWord.
func ParseWrapMode(s string) WrapMode {
	switch s {
	case "none":
		return WrapNone
	case "grapheme":
		return WrapGrapheme
	default:
		return WrapWord
	}
}
