package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Client executes calls against the remote origin. It wraps a shared
// *http.Client whose connection pool is safe for concurrent use by any
// number of in-flight calls.
type Client struct {
	c      *http.Client
	logger *slog.Logger
	tracer trace.Tracer
}

// Build creates a [Client] with the provided options. Redirects are
// always capped at a fixed hop limit so a redirect loop surfaces as a
// [KindTooManyRedirects] taxonomy error.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying transport option: %w", err)
		}
	}

	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("no-op tracer"),
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.requestTimeout != nil {
		client.c.Timeout = *opts.requestTimeout
	}

	client.c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return errTooManyRedirects
		}
		return nil
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}

	if opts.connectTimeout != nil {
		if opts.rt != nil || (opts.client != nil && opts.client.Transport != nil) {
			return nil, fmt.Errorf("connect timeout requires the default transport")
		}
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.DialContext = (&net.Dialer{Timeout: *opts.connectTimeout}).DialContext
		transport = t
	}

	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.instrument {
		transport = otelhttp.NewTransport(transport)
	}
	client.c.Transport = transport

	return client, nil
}

// Execute performs one round trip: it builds the absolute URL from
// base + options, issues the call, and returns any received response
// as-is, regardless of status code. Interpreting the status code is
// the caller's job; see [Client.Do] for the blocking interpretation.
//
// A failure to complete the round trip never returns a response: it is
// always classified into an [*Error] of the matching kind.
//
// The response body is drained into memory before Execute returns, so
// the returned response can be read without holding a live connection.
func (c *Client) Execute(ctx context.Context, base string, headers http.Header, opts RequestOptions) (*http.Response, error) {
	reqURL := base + opts.Path
	if len(opts.Query) > 0 {
		reqURL += "?" + opts.Query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, spanName(opts))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", opts.Method),
		attribute.String("url.path", opts.Path),
	)

	var body io.Reader
	if opts.hasBody() && len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, reqURL, body)
	if err != nil {
		return nil, classify(fmt.Errorf("building request: %w", err))
	}
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	if opts.hasBody() {
		c.logger.Debug("request",
			"operation", opts.Operation, "method", opts.Method, "url", reqURL, "payload", string(opts.Body))
	} else {
		c.logger.Debug("request",
			"operation", opts.Operation, "method", opts.Method, "url", reqURL)
	}

	res, err := c.c.Do(req)
	if err != nil {
		return nil, classify(err)
	}

	raw, err := io.ReadAll(res.Body)
	closeErr := res.Body.Close()
	if err != nil {
		return nil, classify(err)
	}
	if closeErr != nil {
		c.logger.Debug("closing response body", "error", closeErr)
	}
	res.Body = io.NopCloser(bytes.NewReader(raw))

	c.logger.Debug("response", "operation", opts.Operation, "status", res.StatusCode, "body", string(raw))

	return res, nil
}

// Do is the blocking call style: it runs [Client.Execute] and, unlike
// the asynchronous path, raises on any non-2xx status, returning an
// [*Error] of kind [KindServerError] (>= 500) or [KindClientError]
// that carries the response body text as its message.
func (c *Client) Do(ctx context.Context, base string, headers http.Header, opts RequestOptions) (*http.Response, error) {
	res, err := c.Execute(ctx, base, headers, opts)
	if err != nil {
		return nil, err
	}

	if !is2xx(res.StatusCode) {
		raw, _ := io.ReadAll(res.Body)

		text := noBodyText
		if len(raw) > 0 {
			text = string(raw)
		}

		kind := KindClientError
		if res.StatusCode >= 500 {
			kind = KindServerError
		}

		return nil, &Error{Kind: kind, Message: text, StatusCode: res.StatusCode}
	}

	return res, nil
}

// Deferred exists for parity with transports that support a deferred
// call style. This transport does not.
func (c *Client) Deferred(RequestOptions) (*http.Response, error) {
	return nil, newError(KindDeferredNotImplemented, nil)
}

func spanName(opts RequestOptions) string {
	if opts.Operation != "" {
		return "transport." + strings.ToLower(opts.Operation)
	}
	return "transport.execute"
}
