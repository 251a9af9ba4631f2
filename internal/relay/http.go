package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pairing/internal/domain"
	"pairing/internal/retry"
)

// DefaultTimeout bounds a single attempt.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a non-2xx body is read for diagnostics.
const maxErrorBody = 64 << 10

// HTTP talks JSON over HTTP to the session directory at Base.
type HTTP struct {
	Base         string
	NewTransport domain.TransportFactory
	Runner       *retry.Runner
	Log          zerolog.Logger
}

// Option configures an HTTP client.
type Option func(*HTTP)

// WithTransport sets the factory used to build a transport for each call.
func WithTransport(f domain.TransportFactory) Option {
	return func(c *HTTP) { c.NewTransport = f }
}

// WithTimeout builds a fresh *http.Client with the given per-attempt timeout
// for each call.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTP) { c.NewTransport = clientFactory(d) }
}

// WithPolicy replaces the retry policy.
func WithPolicy(p retry.Policy) Option {
	return func(c *HTTP) { c.Runner = retry.NewRunner(p) }
}

// WithRunner replaces the retry runner, including its clock.
func WithRunner(r *retry.Runner) Option {
	return func(c *HTTP) { c.Runner = r }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *HTTP) { c.Log = l }
}

// NewHTTP returns a client for the directory at base.
func NewHTTP(base string, opts ...Option) *HTTP {
	c := &HTTP{
		Base:         base,
		NewTransport: clientFactory(DefaultTimeout),
		Runner:       retry.NewRunner(retry.DefaultPolicy()),
		Log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func clientFactory(timeout time.Duration) domain.TransportFactory {
	return func() domain.Transport { return &http.Client{Timeout: timeout} }
}

// endpoint joins path onto Base.
func (c *HTTP) endpoint(path string) (string, error) {
	base := strings.TrimRight(c.Base, "/") + "/"
	u, err := url.Parse(base + path)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("relay base %q is not an absolute URL", c.Base)
	}
	return u.String(), nil
}

// post sends in as JSON to path under the retry policy and decodes a 2xx body
// into out. A nil out discards the body.
func (c *HTTP) post(ctx context.Context, op, path string, in, out any) error {
	log := c.Log.With().Str("op", op).Logger()

	u, err := c.endpoint(path)
	if err != nil {
		return &domain.NetworkingError{HTTPStatus: domain.UnknownHTTPStatus, Message: err.Error()}
	}
	body, err := json.Marshal(in)
	if err != nil {
		return &domain.NetworkingError{
			HTTPStatus: domain.UnknownHTTPStatus,
			Message:    fmt.Sprintf("encode %s request: %v", op, err),
		}
	}

	// One transport per call; nothing is shared between concurrent calls.
	transport := c.NewTransport()
	runner := *c.runner()
	runner.OnRetry = func(attempt int, delay time.Duration, err error) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", delay).Msg("relay unreachable, retrying")
	}

	resp, rep, err := retry.Run(ctx, &runner, func(ctx context.Context) (*http.Response, retry.Failure, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return nil, retry.FailureTransient, err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := transport.Do(req)
		if err != nil {
			return nil, retry.FailureTransient, err
		}
		if resp.StatusCode/100 != 2 {
			return resp, retry.FailureRejected, nil
		}
		return resp, retry.FailureNone, nil
	})
	if err != nil {
		log.Error().Err(err).Int("attempts", rep.Attempts).Dur("elapsed", rep.Elapsed).Msg("relay request failed")
		return &domain.NetworkingError{HTTPStatus: domain.UnknownHTTPStatus, Message: err.Error()}
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Int("attempts", rep.Attempts).Msg("relay responded")

	if rep.Outcome == retry.RemoteRejected {
		return rejection(resp, log)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Info().Err(err).Msg("relay response did not parse")
		return &domain.NetworkingError{
			HTTPStatus: domain.UnknownHTTPStatus,
			Message:    fmt.Sprintf("relay %s: malformed response: %v", op, err),
		}
	}
	return nil
}

func (c *HTTP) runner() *retry.Runner {
	if c.Runner == nil {
		return retry.NewRunner(retry.DefaultPolicy())
	}
	return c.Runner
}

// rejection turns a non-2xx response into a NetworkingError. The structured
// error body is decoded for the message only; the status always comes from
// the response.
func rejection(resp *http.Response, log zerolog.Logger) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body domain.ErrorResponse
	msg := resp.Status
	if err := json.Unmarshal(raw, &body); err == nil && body.Msg != "" {
		msg = fmt.Sprintf("%s: %s", resp.Status, body.Msg)
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		msg = fmt.Sprintf("%s: %s", resp.Status, text)
	}
	log.Info().Int("status", resp.StatusCode).Str("msg", body.Msg).Msg("relay rejected request")
	return &domain.NetworkingError{HTTPStatus: resp.StatusCode, Message: msg}
}
