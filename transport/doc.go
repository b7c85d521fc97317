// Package transport implements the request-dispatch engine used by the
// pub/sub client: it executes HTTP calls against a remote origin, in
// both blocking and callback-driven styles, and normalizes every
// transport-level failure into a typed error taxonomy.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := transport.Build(
//		transport.WithRequestTimeout(10 * time.Second),
//		transport.WithUserAgent("myapp/1.0"),
//	)
//
// # Synchronous Calls
//
// [Client.Do] blocks until the round trip completes. A non-2xx response
// is returned as an [*Error] carrying the response body as its message:
//
//	res, err := c.Do(ctx, "https://ps.example.net", headers, transport.RequestOptions{
//		Method:    http.MethodGet,
//		Path:      "/time/0",
//		Operation: "Time",
//	})
//
// # Asynchronous Calls
//
// [Client.Dispatch] returns a [*Call] immediately and runs the round
// trip on its own goroutine, delivering the outcome to the callback
// exactly once:
//
//	call := c.Dispatch(ctx, base, headers, opts,
//		func(category transport.StatusCategory, body any, info *transport.ResponseInfo, err error) {
//			// runs on the call's goroutine
//		}, nil)
//
// Cancellation is advisory: [Call.Cancel] cannot abort a round trip
// already handed to the transport, it only suppresses delivery of the
// callback once the call completes. The network side effect may still
// have happened. [Call.Join] blocks until the goroutine has exited.
package transport
