package pubsub_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emberline/pubsub"
	"github.com/emberline/pubsub/config"
	"github.com/emberline/pubsub/transport"
)

func ExampleNew() {
	cfg := config.New("demo-sub-key", "demo-pub-key")

	c, err := pubsub.New(cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_ = c
	fmt.Println("client built")
	// Output: client built
}

// Dispatching a call returns immediately; the callback runs on the
// call's own goroutine once the round trip completes.
func ExampleClient_Dispatch() {
	cfg := config.New("demo-sub-key", "demo-pub-key")

	c, err := pubsub.New(cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	call := c.Dispatch(context.Background(), transport.RequestOptions{
		Method:    http.MethodGet,
		Path:      "/time/0",
		Operation: "Time",
	}, func(category transport.StatusCategory, body any, info *transport.ResponseInfo, err error) {
		// Handle the outcome. Exactly one of body/err is meaningful.
	}, nil)

	// Give up on the outcome; the callback is suppressed but the
	// network call itself cannot be aborted.
	call.Cancel()
	call.Join()
}
