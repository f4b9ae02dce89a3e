package rewrite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/rewrite"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want rewrite.Kind
	}{
		{name: "nil", err: nil, want: rewrite.KindNone},
		{name: "credential", err: errors.Errorf("%w: unset", rewrite.ErrMissingCredential), want: rewrite.KindMissingCredential},
		{name: "transport", err: errors.Errorf("%w: status 500", rewrite.ErrTransport), want: rewrite.KindTransport},
		{name: "malformed", err: errors.WithStack(rewrite.ErrMalformedResponse), want: rewrite.KindMalformedResponse},
		{name: "empty", err: rewrite.ErrEmptyResult, want: rewrite.KindEmptyResult},
		{name: "quota", err: errors.Errorf("calling: %w", rewrite.ErrQuotaExceeded), want: rewrite.KindQuotaExceeded},
		{name: "canceled", err: errors.WithStack(context.Canceled), want: rewrite.KindCanceled},
		{name: "deadline", err: context.DeadlineExceeded, want: rewrite.KindCanceled},
		{name: "other", err: errors.New("boom"), want: rewrite.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite.KindOf(tt.err))
		})
	}
}

func TestUserMessage_DistinctPerKind(t *testing.T) {
	errs := []error{
		rewrite.ErrMissingCredential,
		rewrite.ErrTransport,
		rewrite.ErrMalformedResponse,
		rewrite.ErrEmptyResult,
		rewrite.ErrQuotaExceeded,
	}
	seen := map[string]bool{}
	for _, err := range errs {
		msg := rewrite.UserMessage(err)
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message %q", msg)
		seen[msg] = true
	}
	assert.Empty(t, rewrite.UserMessage(nil))
	assert.Contains(t, rewrite.UserMessage(rewrite.ErrQuotaExceeded), "quota")
}

func TestKind_Retryable(t *testing.T) {
	assert.True(t, rewrite.KindTransport.Retryable())
	assert.True(t, rewrite.KindQuotaExceeded.Retryable())
	for _, k := range []rewrite.Kind{
		rewrite.KindMissingCredential,
		rewrite.KindMalformedResponse,
		rewrite.KindEmptyResult,
		rewrite.KindCanceled,
		rewrite.KindUnknown,
	} {
		assert.False(t, k.Retryable(), "%s must not be retried", k)
	}
}
