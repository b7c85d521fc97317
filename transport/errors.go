package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
)

// Kind identifies the class of a transport or protocol failure. Every
// error surfaced by this package carries exactly one Kind; raw errors
// from the underlying HTTP stack never leak past [Client.Execute].
type Kind int

const (
	// KindUnknown covers any transport failure that matches no other kind.
	KindUnknown Kind = iota
	// KindConnectionError means the round trip could not complete:
	// connection refused or reset, DNS failure, or an unexpected EOF.
	KindConnectionError
	// KindHTTPError means the peer spoke unparseable or invalid HTTP.
	KindHTTPError
	// KindClientTimeout means the configured timeout or the caller's
	// context deadline elapsed before a response arrived.
	KindClientTimeout
	// KindTooManyRedirects means the redirect hop limit was exceeded.
	KindTooManyRedirects
	// KindServerError is a received response with status >= 500.
	KindServerError
	// KindClientError is a received non-2xx response with status < 500.
	KindClientError
	// KindDeferredNotImplemented marks the deferred call style, which
	// this transport does not support.
	KindDeferredNotImplemented
)

// kindMessages holds the default message for each kind, used when a
// more specific message is unavailable.
var kindMessages = map[Kind]string{
	KindUnknown:                "unknown error",
	KindConnectionError:        "connection error",
	KindHTTPError:              "http error",
	KindClientTimeout:          "client timeout",
	KindTooManyRedirects:       "too many redirects",
	KindServerError:            "server responded with an error",
	KindClientError:            "client request invalid",
	KindDeferredNotImplemented: "deferred execution is not implemented by this transport",
}

func (k Kind) String() string {
	switch k {
	case KindConnectionError:
		return "ConnectionError"
	case KindHTTPError:
		return "HTTPError"
	case KindClientTimeout:
		return "ClientTimeout"
	case KindTooManyRedirects:
		return "TooManyRedirects"
	case KindServerError:
		return "ServerError"
	case KindClientError:
		return "ClientError"
	case KindDeferredNotImplemented:
		return "DeferredNotImplemented"
	default:
		return "UnknownError"
	}
}

// Error is the taxonomy error surfaced to callers: a failure kind, a
// human-readable message, and, when a response was received, its HTTP
// status code. StatusCode is zero for pure transport failures.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = kindMessages[e.Kind]
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, cause error) *Error {
	msg := kindMessages[kind]
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// errTooManyRedirects is returned by the CheckRedirect hook installed
// in Build so the classifier can match it with errors.Is instead of
// string inspection.
var errTooManyRedirects = errors.New("stopped after maximum redirects")

// classify maps a failure from the underlying HTTP stack to exactly
// one taxonomy kind. The mapping is total: anything unrecognized
// becomes KindUnknown rather than propagating unclassified.
func classify(err error) *Error {
	switch {
	case errors.Is(err, errTooManyRedirects):
		return newError(KindTooManyRedirects, err)
	case errors.Is(err, context.DeadlineExceeded):
		return newError(KindClientTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindClientTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if isConnectionFailure(err) {
			return newError(KindConnectionError, err)
		}
		// A url.Error that is neither a dial/read failure nor a timeout
		// means the round trip started but the exchange itself was
		// invalid HTTP.
		return newError(KindHTTPError, err)
	}

	if isConnectionFailure(err) {
		return newError(KindConnectionError, err)
	}

	return newError(KindUnknown, err)
}

func isConnectionFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed)
}
