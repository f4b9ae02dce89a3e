package rewrite

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultAttempts = 2
	DefaultDelay    = time.Second
)

// Policy bounds retries: at most Attempts calls with a fixed Delay between
// them. Only retryable kinds (transport, quota) are attempted again.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: DefaultAttempts, Delay: DefaultDelay}
}

type retrying struct {
	next   Rewriter
	policy Policy
}

// WithRetry wraps r with p. Attempts <= 0 selects DefaultAttempts; a negative
// Delay is treated as zero.
func WithRetry(r Rewriter, p Policy) Rewriter {
	if p.Attempts <= 0 {
		p.Attempts = DefaultAttempts
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return &retrying{next: r, policy: p}
}

func (r *retrying) Rewrite(ctx context.Context, instruction, contextText string) (string, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	for attempt := 1; attempt <= r.policy.Attempts; attempt++ {
		if attempt > 1 {
			if err := wait(ctx, r.policy.Delay); err != nil {
				return "", err
			}
		}

		text, err := r.next.Rewrite(ctx, instruction, contextText)
		if err == nil {
			return text, nil
		}
		lastErr = err

		kind := KindOf(err)
		logger.Debug().Err(err).Int("attempt", attempt).Stringer("kind", kind).Msg("rewrite attempt failed")
		if !kind.Retryable() {
			return "", err
		}
	}
	return "", lastErr
}

func wait(ctx context.Context, d time.Duration) error {
	if d == 0 {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-t.C:
		return nil
	}
}
