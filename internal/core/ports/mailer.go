package ports

import "context"

// Message is an outbound email. From and ReplyTo fall back to the
// transport's configured sender when empty.
type Message struct {
	Subject string
	HTML    string
	To      string
	From    string
	ReplyTo string
}

// Mailer delivers a single message and returns a delivery identifier.
// Failures are terminal for the request; nothing retries.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
