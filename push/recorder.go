package push

import (
	"context"
	"sync"
)

// Recorder is a Sender that records every message instead of delivering
// it. Tests use it to assert on fanout behavior.
type Recorder struct {
	// Err, when set, is returned from every Send.
	Err error
	// Failures marks this many tokens per send as failed.
	Failures int

	mu   sync.Mutex
	sent []Message
}

func (r *Recorder) Send(ctx context.Context, msg Message) (Result, error) {
	if r.Err != nil {
		return Result{}, r.Err
	}
	r.mu.Lock()
	r.sent = append(r.sent, msg)
	r.mu.Unlock()

	failed := r.Failures
	if failed > len(msg.Tokens) {
		failed = len(msg.Tokens)
	}
	return Result{
		SuccessCount: len(msg.Tokens) - failed,
		FailureCount: failed,
	}, nil
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}
