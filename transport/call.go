package transport

import (
	"sync/atomic"
)

// Call is the caller-visible handle for one asynchronous request. It
// exposes cancellation and completion observation; all flags are safe
// for concurrent use between the caller and the call's goroutine.
//
// A Call is single-use: it is bound to one [Client.Dispatch] invocation
// and discarded once the callback has fired or been suppressed.
type Call struct {
	started  atomic.Bool
	canceled atomic.Bool
	executed atomic.Bool
	done     chan struct{}
}

// NewCall returns a handle ready to be passed to [Client.Dispatch].
func NewCall() *Call {
	return &Call{done: make(chan struct{})}
}

// Cancel requests suppression of the callback. It is idempotent and
// returns immediately.
//
// Cancel cannot abort a round trip already handed to the transport:
// the network side effect (for example a publish reaching the server)
// may still occur. The only guarantee is that once the call completes,
// its callback is not delivered, provided cancellation won the race
// with completion.
func (c *Call) Cancel() {
	c.canceled.Store(true)
}

// Canceled reports whether Cancel has been called.
func (c *Call) Canceled() bool {
	return c.canceled.Load()
}

// Executed reports whether the callback has fired. It stays false for
// a call whose callback was suppressed by cancellation, so callers
// distinguishing "suppressed" from "still running" must also check
// Canceled and Join.
func (c *Call) Executed() bool {
	return c.executed.Load()
}

// Join blocks until the call's goroutine has exited, whether it
// delivered the callback or was suppressed. Join returns immediately
// when the handle was never dispatched.
func (c *Call) Join() {
	if !c.started.Load() {
		return
	}
	<-c.done
}

// start marks the handle as bound to a running goroutine. It happens
// on the dispatching thread, before Dispatch returns, so a Join that
// follows Dispatch always observes the goroutine.
func (c *Call) start() {
	c.started.Store(true)
}

// finish releases Join waiters. Deferred by the call's goroutine.
func (c *Call) finish() {
	close(c.done)
}

// markExecuted records that the callback fired. Set at most once,
// right after the callback returns.
func (c *Call) markExecuted() {
	c.executed.Store(true)
}
