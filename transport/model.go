package transport

import (
	"net/http"
	"net/url"
)

// noBodyText is the sentinel message used when an error response
// carries no readable body.
const noBodyText = "N/A"

// maxRedirects caps the number of redirect hops followed before the
// call fails with KindTooManyRedirects.
const maxRedirects = 10

// RequestOptions describes one call against the remote origin. It is
// built and owned by the caller; the dispatch engine only reads it.
type RequestOptions struct {
	// Method is the HTTP method, e.g. http.MethodGet.
	Method string
	// Path is appended verbatim to the base URL.
	Path string
	// Query holds the query parameters to encode onto the URL.
	Query url.Values
	// Body is the request payload. It is sent only for body-bearing
	// methods and ignored otherwise.
	Body []byte
	// Operation names the call for diagnostics: log records, span
	// names, and goroutine identification.
	Operation string
}

// hasBody reports whether the method carries a request payload.
func (o RequestOptions) hasBody() bool {
	switch o.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// Callback receives the terminal outcome of an asynchronous call:
// a coarse status category, the JSON-decoded response body (nil when
// no response was received or the body was not valid JSON), response
// metadata (nil on pure transport failure), and the taxonomy error
// (nil on success).
//
// The callback runs on the call's own goroutine, never on the thread
// that invoked [Client.Dispatch], and fires at most once per call.
type Callback func(category StatusCategory, body any, info *ResponseInfo, err error)
