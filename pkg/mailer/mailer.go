package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Attachment is one file to include with the dispatch email.
type Attachment struct {
	Filename string
	Body     []byte
}

// Message is a fully assembled submission email.
type Message struct {
	Subject     string
	Body        string
	Recipient   string // overrides Config.Recipient when set (dev mode)
	Attachments []Attachment
}

// Dispatcher sends submission emails. The submission pipeline depends on this
// interface so tests can swap a recorder in for the SMTP client.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// SMTPDispatcher sends messages through an SSL SMTP session authenticated
// with the configured app password.
type SMTPDispatcher struct {
	cfg Config
}

// NewSMTPDispatcher validates the credentials and returns a ready dispatcher.
func NewSMTPDispatcher(cfg Config) (*SMTPDispatcher, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SMTPDispatcher{cfg: cfg}, nil
}

// Dispatch sends the message synchronously. The call blocks on network I/O;
// callers surface failures to the user rather than retrying.
func (d *SMTPDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if ctx == nil {
		return fmt.Errorf("mailer: context is required")
	}

	recipient := msg.Recipient
	if recipient == "" {
		recipient = d.cfg.Recipient
	}

	m := mail.NewMsg()
	if err := m.From(d.cfg.Address); err != nil {
		return fmt.Errorf("mailer: set sender: %w", err)
	}
	if err := m.To(recipient); err != nil {
		return fmt.Errorf("mailer: set recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	for _, att := range msg.Attachments {
		if err := m.AttachReader(att.Filename, bytes.NewReader(att.Body)); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", att.Filename, err)
		}
	}

	client, err := mail.NewClient(d.cfg.SMTPHost,
		mail.WithPort(d.cfg.SMTPPort),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(d.cfg.Address),
		mail.WithPassword(d.cfg.AppPassword),
	)
	if err != nil {
		return fmt.Errorf("mailer: configure client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
