package rewrite

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrMissingCredential = errors.Base("missing credential")
	ErrTransport         = errors.Base("transport error")
	ErrMalformedResponse = errors.Base("malformed response")
	ErrEmptyResult       = errors.Base("empty result")
	ErrQuotaExceeded     = errors.Base("quota exceeded")
)

// Kind classifies a rewrite failure.
type Kind uint8

const (
	KindNone Kind = iota
	KindMissingCredential
	KindTransport
	KindMalformedResponse
	KindEmptyResult
	KindQuotaExceeded
	KindCanceled
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingCredential:
		return "missing-credential"
	case KindTransport:
		return "transport"
	case KindMalformedResponse:
		return "malformed-response"
	case KindEmptyResult:
		return "empty-result"
	case KindQuotaExceeded:
		return "quota-exceeded"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Retryable reports whether a call that failed with k may be attempted again.
// Only transport and quota failures qualify.
func (k Kind) Retryable() bool {
	return k == KindTransport || k == KindQuotaExceeded
}

// KindOf classifies err. A nil error is KindNone.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrMissingCredential):
		return KindMissingCredential
	case errors.Is(err, ErrQuotaExceeded):
		return KindQuotaExceeded
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrEmptyResult):
		return KindEmptyResult
	default:
		return KindUnknown
	}
}

// UserMessage maps err to the message shown next to the invoking control.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindMissingCredential:
		return "API key is not configured. Please check your environment variables."
	case KindTransport:
		return "AI service error. The request could not be completed."
	case KindMalformedResponse:
		return "Failed to parse the AI response."
	case KindEmptyResult:
		return "The AI returned an empty response. Please try again."
	case KindQuotaExceeded:
		return "API quota exceeded. Please try again later."
	case KindCanceled:
		return "Request cancelled."
	default:
		return "An unexpected error occurred with the AI service."
	}
}
