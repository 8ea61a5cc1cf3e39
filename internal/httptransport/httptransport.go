// Package httptransport is the default implementation of the small
// request/response collaborator sioclient.Doer names. spec.md §1
// explicitly excludes connection pooling, TLS, and chunked decoding from
// the core's scope: this package is where that excluded functionality
// actually lives, built on net/http rather than reimplemented, so the
// core never has to think about it.
package httptransport

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Default dial/pool tuning for the shared transport. Mirrors the values
// a long-poll client wants: modest idle-connection limits (at most a
// handful of sessions per process), generous per-request timeouts since
// a long poll is expected to block for seconds, and HTTP/1.1 keep-alive
// so the GET/POST pair for one session reuses its connection.
const (
	DefaultDialTimeout         = 10 * time.Second
	DefaultKeepAlive           = 30 * time.Second
	DefaultTLSHandshakeTimeout = 10 * time.Second
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultMaxIdleConns        = 16
	DefaultMaxIdleConnsPerHost = 4
)

// DefaultUserAgent is the User-Agent header NewClient injects unless
// overridden or disabled.
const DefaultUserAgent = "go-sioclient/1.0"

// Doer is the interface the core client consumes. *http.Client satisfies
// it directly; so does anything else with this one method.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewTransport builds an *http.Transport with the pool/timeout defaults
// above. Exposed separately from NewClient so callers can further
// customize it (e.g. wrap it in their own RoundTripper) before handing
// it to an *http.Client.
func NewTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   DefaultDialTimeout,
			KeepAlive: DefaultKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout: DefaultTLSHandshakeTimeout,
		IdleConnTimeout:     DefaultIdleConnTimeout,
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
	}
}

// ClientOption configures NewClient.
type ClientOption func(*clientConfig)

type clientConfig struct {
	timeout       time.Duration
	userAgent     string
	skipUserAgent bool
	transport     *http.Transport
	retryCount    int
	retryDelay    time.Duration
	logger        *slog.Logger
}

// WithTimeout overrides the overall per-request timeout. The zero value
// from NewClient's default (no timeout) lets a long poll block for as
// long as the server's ping-timeout-derived deadline requires; pass a
// non-zero timeout here only for the handshake/post clients, which
// should fail fast rather than hang against an unreachable server.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) { c.timeout = d }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) { c.userAgent = ua }
}

// WithoutUserAgent disables the automatic User-Agent roundtripper,
// leaving whatever net/http sets by default (or whatever the caller set
// on the request directly) untouched.
func WithoutUserAgent() ClientOption {
	return func(c *clientConfig) { c.skipUserAgent = true }
}

// WithRetry enables automatic retry on transient connection errors (no
// route to host, network unreachable, connection refused) — the errors
// a flaky device-to-server link actually produces. Retries only happen
// when the request body, if any, can be rewound via req.GetBody.
func WithRetry(count int, delay time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.retryCount = count
		c.retryDelay = delay
	}
}

// WithLogger sets a logger used to report retry attempts.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *clientConfig) { c.logger = l }
}

// NewClient builds an *http.Client ready to use as a Doer. Each of the
// three lazily-created transport handles a Session owns (handshake,
// poll, post) should get its own *http.Client from this constructor so
// their timeouts can differ — the poll client in particular is built
// with no fixed timeout, since its deadline is derived from the
// server's ping-timeout once the handshake completes (see session.go
// and poll.go).
func NewClient(opts ...ClientOption) *http.Client {
	cfg := &clientConfig{userAgent: DefaultUserAgent}
	for _, o := range opts {
		o(cfg)
	}

	t := cfg.transport
	if t == nil {
		t = NewTransport()
	}

	var rt http.RoundTripper = t
	if !cfg.skipUserAgent {
		rt = &userAgentTransport{base: rt, ua: cfg.userAgent}
	}
	if cfg.retryCount > 0 {
		rt = &retryTransport{base: rt, count: cfg.retryCount, delay: cfg.retryDelay, logger: cfg.logger}
	}

	return &http.Client{Timeout: cfg.timeout, Transport: rt}
}

// userAgentTransport injects the User-Agent header on every request
// unless one is already set.
type userAgentTransport struct {
	base http.RoundTripper
	ua   string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.ua)
	}
	return t.base.RoundTrip(req)
}

// retryTransport wraps a RoundTripper and retries on transient
// connection errors. It only retries when the request body (if any)
// supports rewinding via GetBody.
type retryTransport struct {
	base   http.RoundTripper
	count  int
	delay  time.Duration
	logger *slog.Logger
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err == nil || !isRetryableError(err) {
		return resp, err
	}
	if req.Body != nil && req.GetBody == nil {
		return resp, err
	}

	for attempt := 1; attempt <= t.count; attempt++ {
		if t.logger != nil {
			t.logger.Warn("retrying request after transient error",
				"method", req.Method, "url", req.URL.String(),
				"attempt", attempt, "max_retries", t.count, "error", err)
		}

		timer := time.NewTimer(t.delay)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}

		if req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("httptransport: rewinding request body for retry: %w", bodyErr)
			}
			req.Body = body
		}

		resp, err = t.base.RoundTrip(req)
		if err == nil || !isRetryableError(err) {
			return resp, err
		}
	}
	return resp, err
}

// isRetryableError reports whether err is a transient connection-level
// failure worth retrying rather than a permanent one.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EHOSTUNREACH, syscall.ENETUNREACH, syscall.ECONNREFUSED:
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.As(opErr.Err, &errno) {
			switch errno {
			case syscall.EHOSTUNREACH, syscall.ENETUNREACH, syscall.ECONNREFUSED:
				return true
			}
		}
	}

	return false
}
