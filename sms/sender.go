package sms

import "context"

// Sender delivers outbound SMS. Sends are fire-and-forget for the
// command pipeline: a failed send is logged, never rolled back into the
// already-committed state change.
type Sender interface {
	Send(ctx context.Context, to string, body string) error
}
