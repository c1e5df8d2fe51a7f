package email

import "context"

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
