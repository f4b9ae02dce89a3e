package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/buffer"
)

// Style controls the editor's rendering.
//
// Block styles are laid under the cursor and selection styles; they should
// avoid layout-affecting options (padding/margin/width).
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Heading  [3]lipgloss.Style
	Bullet   lipgloss.Style
	Task     lipgloss.Style
	TaskDone lipgloss.Style
	Quote    lipgloss.Style
	Code     lipgloss.Style
	Callout  map[buffer.CalloutType]lipgloss.Style

	MenuTitle    lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuDisabled lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),

		Heading: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("177")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		},
		Bullet:   lipgloss.NewStyle(),
		Task:     lipgloss.NewStyle(),
		TaskDone: lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true),
		Quote:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Code:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Background(lipgloss.Color("235")),
		Callout: map[buffer.CalloutType]lipgloss.Style{
			buffer.CalloutInfo:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			buffer.CalloutBestPractice: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			buffer.CalloutWarning:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			buffer.CalloutError:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},

		MenuTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")).Bold(true),
		MenuItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		MenuSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true),
		MenuDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")),
	}
}

// blockStyle resolves the base style for a line of the given block kind.
func (st Style) blockStyle(blk buffer.Block) lipgloss.Style {
	var s lipgloss.Style
	switch blk.Kind {
	case buffer.BlockHeading:
		s = st.Heading[clampInt(blk.Level, 1, len(st.Heading))-1]
	case buffer.BlockBullet:
		s = st.Bullet
	case buffer.BlockTask:
		s = st.Task
		if blk.Checked {
			s = st.TaskDone
		}
	case buffer.BlockQuote:
		s = st.Quote
	case buffer.BlockCode:
		s = st.Code
	case buffer.BlockCallout:
		s = st.Callout[blk.Callout]
	default:
		return st.Text
	}
	return s.Inherit(st.Text)
}
