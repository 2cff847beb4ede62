// Package smtp delivers sammelband mail over SMTP using go-mail.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sammelband/sammelband"
	"github.com/wneessen/go-mail"
)

// DefaultPort is the submission port used when Config.Port is zero.
const DefaultPort = 587

// Ensure Mailer implements sammelband.Mailer at compile time.
var _ sammelband.Mailer = (*Mailer)(nil)

// Config holds the SMTP server settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender hands messages to an SMTP server. *mail.Client implements it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer implements sammelband.Mailer.
type Mailer struct {
	from   string
	sender Sender
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithSender replaces the SMTP client messages are handed to.
func WithSender(s Sender) Option {
	return func(m *Mailer) {
		m.sender = s
	}
}

// NewMailer creates a Mailer for cfg. STARTTLS is used when the server
// offers it; port 465 connects over implicit TLS.
func NewMailer(cfg Config, opts ...Option) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, sammelband.Errorf(sammelband.EINVALID, "smtp host required")
	}
	if cfg.From == "" {
		return nil, sammelband.Errorf(sammelband.EINVALID, "smtp sender required")
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	m := &Mailer{from: cfg.From}
	for _, opt := range opts {
		opt(m)
	}
	if m.sender != nil {
		return m, nil
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Port == 465 {
		clientOpts = append(clientOpts, mail.WithSSL())
	}
	if cfg.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}
	m.sender = client
	return m, nil
}

// Send delivers msg. ctx bounds the whole SMTP exchange.
func (m *Mailer) Send(ctx context.Context, msg *sammelband.Message) error {
	if msg.To == "" {
		return sammelband.Errorf(sammelband.EINVALID, "recipient required")
	}
	if strings.ContainsAny(msg.To, "\r\n") || strings.ContainsAny(msg.Subject, "\r\n") {
		return sammelband.Errorf(sammelband.EINVALID, "mail headers must not contain line breaks")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := NewMessage(m.from, msg)
	if err != nil {
		return err
	}
	if err := m.sender.DialAndSendWithContext(ctx, out); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// NewMessage builds the outgoing message for msg. The HTML body and every
// attachment are base64 encoded; attachments make it multipart/mixed.
func NewMessage(from string, msg *sammelband.Message) (*mail.Msg, error) {
	out := mail.NewMsg(mail.WithEncoding(mail.EncodingB64))
	if err := out.From(from); err != nil {
		return nil, sammelband.Errorf(sammelband.EINVALID, "invalid sender %q", from)
	}
	if err := out.To(msg.To); err != nil {
		return nil, sammelband.Errorf(sammelband.EINVALID, "invalid recipient %q", msg.To)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)

	for _, a := range msg.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := out.AttachReader(a.Filename, bytes.NewReader(a.Content),
			mail.WithFileContentType(mail.ContentType(contentType))); err != nil {
			return nil, fmt.Errorf("attaching %s: %w", a.Filename, err)
		}
	}
	return out, nil
}
