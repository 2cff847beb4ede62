package sammelband

import "context"

// Message is an outgoing email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Attachment is a file attached to a Message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
