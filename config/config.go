// Package config holds the client-side settings shared by every call:
// keys, origin, identity, and timeouts. A Config is validated once and
// then treated as read-only by the transport layer.
package config

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Default connection settings, applied by New.
const (
	DefaultOrigin           = "ps.pndsn.com"
	DefaultConnectTimeout   = 5 * time.Second
	DefaultRequestTimeout   = 10 * time.Second
	DefaultSubscribeTimeout = 310 * time.Second
)

// Config describes one client instance. Fields carry validate tags
// checked by [Config.Validate]; the zero value is not usable, use
// [New].
type Config struct {
	// SubscribeKey identifies the keyset for read operations.
	SubscribeKey string `json:"subscribe_key" validate:"required"`
	// PublishKey identifies the keyset for write operations. Optional
	// for read-only clients.
	PublishKey string `json:"publish_key"`
	// SecretKey grants access-management rights. Optional.
	SecretKey string `json:"secret_key"`
	// CipherKey, when set, enables symmetric payload encryption.
	CipherKey string `json:"cipher_key"`
	// AuthKey is sent as the auth_key query parameter on every call.
	AuthKey string `json:"auth_key"`
	// UUID identifies this client to the service.
	UUID string `json:"uuid" validate:"required"`
	// Origin is the service host, without scheme.
	Origin string `json:"origin" validate:"required,hostname_port|hostname_rfc1123"`
	// Secure selects https when true.
	Secure bool `json:"secure"`

	// ConnectTimeout bounds connection establishment.
	ConnectTimeout time.Duration `json:"connect_timeout" validate:"gt=0"`
	// RequestTimeout bounds each non-subscribe round trip.
	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`
	// SubscribeTimeout bounds long-poll subscribe round trips.
	SubscribeTimeout time.Duration `json:"subscribe_timeout" validate:"gt=0"`
}

// New returns a Config for the given keyset with default origin,
// timeouts, and a random UUID.
func New(subscribeKey, publishKey string) *Config {
	return &Config{
		SubscribeKey:     subscribeKey,
		PublishKey:       publishKey,
		UUID:             uuid.NewString(),
		Origin:           DefaultOrigin,
		Secure:           true,
		ConnectTimeout:   DefaultConnectTimeout,
		RequestTimeout:   DefaultRequestTimeout,
		SubscribeTimeout: DefaultSubscribeTimeout,
	}
}

// SchemeAndHost returns the base URL for requests, honoring Secure.
func (c *Config) SchemeAndHost() string {
	if c.Secure {
		return "https://" + c.Origin
	}
	return "http://" + c.Origin
}

// Headers returns the default headers sent with every request.
func (c *Config) Headers() http.Header {
	return http.Header{
		"User-Agent": []string{"Go-pubsub"},
	}
}
