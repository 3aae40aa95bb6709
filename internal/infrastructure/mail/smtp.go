// Package mail delivers transactional email over SMTP. A fresh
// authenticated client is dialed per message; the caller treats any
// failure as terminal for the request.
package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// Config captures SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the default sender and reply-to address.
	From string
}

// SMTPMailer implements ports.Mailer against an SMTP relay.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send dials, authenticates, and delivers one message, returning its
// Message-ID. There is no connection pooling: each call is an independent
// transport session.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Message) (string, error) {
	from := msg.From
	if from == "" {
		from = m.cfg.From
	}
	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = from
	}

	out := gomail.NewMsg()
	if err := out.From(from); err != nil {
		return "", fmt.Errorf("%w: invalid sender: %s", domain.ErrEmailNotSent, err)
	}
	if err := out.To(msg.To); err != nil {
		return "", fmt.Errorf("%w: invalid recipient: %s", domain.ErrEmailNotSent, err)
	}
	if err := out.ReplyTo(replyTo); err != nil {
		return "", fmt.Errorf("%w: invalid reply-to: %s", domain.ErrEmailNotSent, err)
	}

	id := deliveryID()
	out.SetMessageIDWithValue(id)
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrEmailNotSent, err)
	}

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrEmailNotSent, err)
	}
	return id, nil
}

func deliveryID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
