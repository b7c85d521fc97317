package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error

type options struct {
	client         *http.Client
	rt             http.RoundTripper
	requestTimeout *time.Duration
	connectTimeout *time.Duration
	userAgent      string
	instrument     bool
	tracer         trace.Tracer
	logger         *slog.Logger
}

// WithClient replaces the default [http.Client] used by the [Client].
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithRequestTimeout bounds each round trip end to end. An elapsed
// timeout surfaces as a taxonomy error of kind [KindClientTimeout].
func WithRequestTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("request timeout must not be negative")
		}
		c.requestTimeout = &d
		return nil
	}
}

// WithConnectTimeout bounds connection establishment. It configures
// the dialer of the default transport and is therefore incompatible
// with WithTransport or a client that carries its own transport.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("connect timeout must not be negative")
		}
		c.connectTimeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithTracer records a span around every executed request. Without it
// a no-op tracer is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *options) error {
		c.tracer = tracer
		return nil
	}
}

// WithInstrumentedTransport wraps the base transport in
// [otelhttp.NewTransport], propagating trace context on the wire and
// recording client metrics/spans via the global otel providers.
func WithInstrumentedTransport() Option {
	return func(c *options) error {
		c.instrument = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
