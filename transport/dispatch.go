package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// dispatchSeq distinguishes concurrent calls in log records. Purely
// diagnostic; no uniqueness guarantee beyond process lifetime.
var dispatchSeq atomic.Int64

// Dispatch runs the request on its own goroutine and returns the
// handle immediately; the caller's goroutine never blocks. Each call
// gets an independent goroutine: there is no shared worker pool and no
// bound on concurrent in-flight calls, trading memory for the
// guarantee that one slow call never delays another.
//
// The callback fires exactly once with the call's terminal outcome, or
// not at all when the handle was canceled before completion. A nil
// handle is replaced with a fresh one.
func (c *Client) Dispatch(ctx context.Context, base string, headers http.Header, opts RequestOptions, cb Callback, call *Call) *Call {
	if call == nil {
		call = NewCall()
	}
	call.start()

	seq := dispatchSeq.Add(1)
	c.logger.Debug("dispatching", "operation", opts.Operation, "call", seq)

	go c.runCall(ctx, base, headers, opts, cb, call)

	return call
}

// runCall is the body of one call's goroutine.
func (c *Client) runCall(ctx context.Context, base string, headers http.Header, opts RequestOptions, cb Callback, call *Call) {
	defer call.finish()

	// Canceled before the round trip ever started: exit silently,
	// leaving Executed false.
	if call.Canceled() {
		return
	}

	res, err := c.Execute(ctx, base, headers, opts)
	if err != nil {
		var terr *Error
		if !errors.As(err, &terr) {
			// Execute's contract is to return taxonomy errors only.
			// Anything else is a programming fault and must not be
			// coerced into a status category.
			panic(fmt.Sprintf("transport: non-taxonomy error from Execute: %v", err))
		}

		cb(categoryForError(terr), nil, nil, terr)
		call.markExecuted()
		return
	}

	// The round trip cannot be aborted once handed to the transport;
	// a response arriving after cancellation is simply dropped.
	if call.Canceled() {
		return
	}

	info := newResponseInfo(res)
	raw, _ := io.ReadAll(res.Body)
	body := decodeBody(raw)
	category := categoryForStatus(res.StatusCode)

	if !is2xx(res.StatusCode) {
		text := noBodyText
		if len(raw) > 0 {
			text = string(raw)
		}

		kind := KindClientError
		if res.StatusCode >= 500 {
			kind = KindServerError
		}

		cb(category, body, info, &Error{Kind: kind, Message: text, StatusCode: res.StatusCode})
		call.markExecuted()
		return
	}

	cb(category, body, info, nil)
	call.markExecuted()
}

// decodeBody parses the response payload as JSON. The remote API
// answers JSON on every endpoint; a body that fails to parse (or an
// empty body) is delivered as nil rather than aborting the callback.
func decodeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
