package transport

import (
	"net/http"
)

// StatusCategory is the coarse outcome classification delivered to
// asynchronous callbacks. It is derived from the HTTP status code or,
// when no response was received, from the taxonomy error kind, and is
// deliberately coarser than the raw status code.
type StatusCategory int

const (
	// CategoryUnknown is the fallback for any response status that has
	// no dedicated category. Note that this includes 5xx responses:
	// only 403 and 400 map to specific categories on the async path.
	CategoryUnknown StatusCategory = iota
	// CategoryAcknowledged is the success category for 2xx responses.
	CategoryAcknowledged
	// CategoryAccessDenied corresponds to HTTP 403.
	CategoryAccessDenied
	// CategoryBadRequest corresponds to HTTP 400, and is also the
	// fallback category for transport failures that are neither
	// connection losses nor timeouts.
	CategoryBadRequest
	// CategoryTimeout corresponds to a client-side timeout.
	CategoryTimeout
	// CategoryUnexpectedDisconnect corresponds to a connection failure.
	CategoryUnexpectedDisconnect
)

func (s StatusCategory) String() string {
	switch s {
	case CategoryAcknowledged:
		return "Acknowledged"
	case CategoryAccessDenied:
		return "AccessDenied"
	case CategoryBadRequest:
		return "BadRequest"
	case CategoryTimeout:
		return "Timeout"
	case CategoryUnexpectedDisconnect:
		return "UnexpectedDisconnect"
	default:
		return "Unknown"
	}
}

// categoryForStatus derives the category for a completed response.
// Only 403 and 400 get specific failure categories; every other
// non-2xx status falls through to CategoryUnknown.
func categoryForStatus(code int) StatusCategory {
	switch {
	case is2xx(code):
		return CategoryAcknowledged
	case code == http.StatusForbidden:
		return CategoryAccessDenied
	case code == http.StatusBadRequest:
		return CategoryBadRequest
	default:
		return CategoryUnknown
	}
}

// categoryForError derives the category for a transport failure where
// no response was received.
func categoryForError(err *Error) StatusCategory {
	switch err.Kind {
	case KindConnectionError:
		return CategoryUnexpectedDisconnect
	case KindClientTimeout:
		return CategoryTimeout
	default:
		return CategoryBadRequest
	}
}

func is2xx(code int) bool {
	return code >= 200 && code <= 299
}

// ResponseInfo carries metadata about a completed call, extracted from
// the request that was actually sent on the wire. Immutable once
// constructed.
type ResponseInfo struct {
	// StatusCode is the numeric HTTP status of the response.
	StatusCode int
	// TLSEnabled reports whether the request went over https.
	TLSEnabled bool
	// Origin is the resolved host the request was sent to.
	Origin string
	// UUID is the value of the request's "uuid" query parameter, or
	// empty when absent.
	UUID string
	// AuthKey is the value of the request's "auth_key" query
	// parameter, or empty when absent.
	AuthKey string
	// ClientRequest references the underlying request for diagnostics.
	ClientRequest *http.Request
}

// newResponseInfo builds ResponseInfo from a received response. The
// uuid and auth_key values come from the outgoing request's final URL,
// not from anything the server returned.
func newResponseInfo(res *http.Response) *ResponseInfo {
	req := res.Request
	query := req.URL.Query()

	return &ResponseInfo{
		StatusCode:    res.StatusCode,
		TLSEnabled:    req.URL.Scheme == "https",
		Origin:        req.URL.Hostname(),
		UUID:          query.Get("uuid"),
		AuthKey:       query.Get("auth_key"),
		ClientRequest: req,
	}
}
