package assist

import (
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/rewrite"
)

var (
	ErrEmptySelection   = errors.Base("empty selection")
	ErrEmptyInstruction = errors.Base("empty instruction")
	ErrBusy             = errors.Base("command in flight")
	ErrStaleSelection   = errors.Base("document changed since selection")
)

// UserMessage maps err to the inline message shown at the invoking site.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptySelection):
		return "Select some text first."
	case errors.Is(err, ErrEmptyInstruction):
		return "Enter an instruction."
	case errors.Is(err, ErrBusy):
		return "A rewrite is already in progress."
	case errors.Is(err, ErrStaleSelection):
		return "The document changed while the AI was working. Select the text and try again."
	default:
		return rewrite.UserMessage(err)
	}
}
