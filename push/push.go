package push

import (
	"context"
)

// Message is one push payload addressed to all of a user's registered
// devices at once.
type Message struct {
	Title  string
	Body   string
	Data   map[string]string
	Tokens []string
}

// Result carries the aggregate outcome of one multicast send. Per-token
// error detail is not consumed by the pipeline.
type Result struct {
	SuccessCount int
	FailureCount int
}

// Sender delivers push messages. Delivery is best effort: per-token
// failures are reported in the Result, not as an error.
type Sender interface {
	Send(ctx context.Context, msg Message) (Result, error)
}
