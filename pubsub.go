// Package pubsub ties a validated [config.Config] to the transport
// layer, exposing the two call styles of the client: blocking calls
// via [Client.Do] and callback-driven calls via [Client.Dispatch].
//
// Endpoint builders produce the [transport.RequestOptions] for
// specific API operations; this package only threads the configured
// origin, headers, and timeouts through to the dispatch engine.
package pubsub

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/emberline/pubsub/config"
	"github.com/emberline/pubsub/transport"
)

// Client is the top-level handle for one configured pub/sub instance.
type Client struct {
	cfg *config.Config
	t   *transport.Client
}

// New validates cfg and builds a Client. Additional transport options
// are applied after the ones derived from cfg, so they win on
// conflict. Callers needing a custom base transport should use
// [transport.Build] directly, since cfg's connect timeout configures
// the default transport's dialer.
func New(cfg *config.Config, opts ...transport.Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	base := []transport.Option{
		transport.WithConnectTimeout(cfg.ConnectTimeout),
		transport.WithRequestTimeout(cfg.RequestTimeout),
	}

	t, err := transport.Build(append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, t: t}, nil
}

// Transport exposes the underlying dispatch engine.
func (c *Client) Transport() *transport.Client {
	return c.t
}

// Do performs a blocking call against the configured origin. A non-2xx
// response or transport failure is returned as a [*transport.Error].
func (c *Client) Do(ctx context.Context, opts transport.RequestOptions) (*http.Response, error) {
	return c.t.Do(ctx, c.cfg.SchemeAndHost(), c.cfg.Headers(), c.withIdentity(opts))
}

// Dispatch performs a callback-driven call against the configured
// origin, returning the handle immediately.
func (c *Client) Dispatch(ctx context.Context, opts transport.RequestOptions, cb transport.Callback, call *transport.Call) *transport.Call {
	return c.t.Dispatch(ctx, c.cfg.SchemeAndHost(), c.cfg.Headers(), c.withIdentity(opts), cb, call)
}

// withIdentity stamps the configured uuid and auth_key onto the query
// without mutating the caller's options.
func (c *Client) withIdentity(opts transport.RequestOptions) transport.RequestOptions {
	query := make(url.Values, len(opts.Query)+2)
	for k, v := range opts.Query {
		query[k] = v
	}
	if _, ok := query["uuid"]; !ok {
		query["uuid"] = []string{c.cfg.UUID}
	}
	if c.cfg.AuthKey != "" {
		if _, ok := query["auth_key"]; !ok {
			query["auth_key"] = []string{c.cfg.AuthKey}
		}
	}
	opts.Query = query
	return opts
}
