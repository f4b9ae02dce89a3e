package editor

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style
	WrapMode     WrapMode
	// TabWidth defaults to 4.
	TabWidth int

	// Zero-value key maps select the defaults.
	KeyMap     KeyMap
	MenuKeyMap MenuKeyMap

	// MenuMaxWidth caps the popup width in cells (default 48).
	MenuMaxWidth int

	// Clipboard enables copy/cut/paste. Nil disables them.
	Clipboard Clipboard

	// ReadOnly rejects every text mutation; movement and selection still work.
	ReadOnly bool

	// OnChange is called after any observable state change (text, cursor,
	// selection).
	OnChange func(ChangeEvent)

	// Forwarded to buffer.Options.
	HistoryLimit int
}
