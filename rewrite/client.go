package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill"
)

const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com"
	DefaultModel     = "gemini-2.0-flash"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultTimeout   = 60 * time.Second

	endpointPath = "/v1beta/models/{model}:generateContent"
	maxBodyBytes = 1 << 20
)

// Rewriter maps (instruction, context text) to replacement text.
type Rewriter interface {
	Rewrite(ctx context.Context, instruction, contextText string) (string, error)
}

// RewriterFunc adapts a function to Rewriter.
type RewriterFunc func(ctx context.Context, instruction, contextText string) (string, error)

func (f RewriterFunc) Rewrite(ctx context.Context, instruction, contextText string) (string, error) {
	return f(ctx, instruction, contextText)
}

// Options configures a Gemini client. Zero values select defaults.
type Options struct {
	BaseURL   string
	Model     string
	APIKeyEnv string
	Timeout   time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	// Getenv reads the credential; defaults to os.Getenv.
	Getenv func(string) string
}

func (o *Options) defaults() {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.APIKeyEnv == "" {
		o.APIKeyEnv = DefaultAPIKeyEnv
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
}

// Gemini calls the Generative Language generateContent endpoint.
type Gemini struct {
	opts Options
	url  string
	do   func(*http.Request) (*http.Response, error)
}

func NewGemini(opts Options) *Gemini {
	opts.defaults()
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	path := strings.ReplaceAll(endpointPath, "{model}", url.PathEscape(opts.Model))
	return &Gemini{
		opts: opts,
		url:  strings.TrimRight(opts.BaseURL, "/") + path,
		do:   hc.Do,
	}
}

func (g *Gemini) Model() string { return g.opts.Model }

// Rewrite reads the credential at call time, so a key exported after startup
// is picked up without restarting. A missing key fails before any request.
func (g *Gemini) Rewrite(ctx context.Context, instruction, contextText string) (string, error) {
	logger := zerolog.Ctx(ctx).With().Str("component", "rewrite").Str("model", g.opts.Model).Logger()

	key := strings.TrimSpace(g.opts.Getenv(g.opts.APIKeyEnv))
	if key == "" {
		return "", errors.Errorf("%w: %s is not set", ErrMissingCredential, g.opts.APIKeyEnv)
	}

	body, err := json.Marshal(newRequest(instruction, contextText))
	if err != nil {
		return "", errors.Errorf("encoding request: %w", err)
	}

	u, err := url.Parse(g.url)
	if err != nil {
		return "", errors.Errorf("%w: invalid url: %s", ErrTransport, err.Error())
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", errors.Errorf("%w: new request: %s", ErrTransport, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", quill.UserAgent())

	start := time.Now()
	resp, err := g.do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.WithStack(ctxErr)
		}
		logger.Warn().Err(redact(err, key)).Dur("latency", time.Since(start)).Msg("rewrite request failed")
		return "", errors.Errorf("%w: %s", ErrTransport, redact(err, key).Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.WithStack(ctxErr)
		}
		return "", errors.Errorf("%w: reading body: %s", ErrTransport, err.Error())
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("rewrite response")

	if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode/100 != 2 && isQuotaBody(raw)) {
		return "", errors.Errorf("%w: status %d", ErrQuotaExceeded, resp.StatusCode)
	}
	if resp.StatusCode/100 != 2 {
		return "", errors.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, errorMessage(raw))
	}

	return parseText(raw)
}

// redact keeps the key out of errors that echo the request URL.
func redact(err error, key string) error {
	msg := err.Error()
	if !strings.Contains(msg, key) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, key, "REDACTED"))
}
