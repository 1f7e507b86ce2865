package email

import "context"

// Message is one notification to a single student.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers notification emails. Implementations must be safe
// for concurrent use; delivery is best-effort and callers treat a
// failed send as a logged event, not an operation failure.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
