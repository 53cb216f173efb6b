// Package email sends transactional mail (booking confirmations, reminders,
// password resets) through SendGrid.
package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Config holds SendGrid settings.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Message is one email to deliver.
type Message struct {
	To       string
	ToName   string
	Subject  string
	Text     string
	HTML     string
}

// Sender delivers email. Implemented by the SendGrid client and by fakes in
// tests.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Client sends email via SendGrid. A client with an empty API key logs and
// drops messages, so development environments work without credentials.
type Client struct {
	config Config
	send   *sendgrid.Client
}

// NewClient creates a SendGrid email client.
func NewClient(config Config) *Client {
	c := &Client{config: config}
	if config.APIKey != "" {
		c.send = sendgrid.NewSendClient(config.APIKey)
	}
	return c
}

// Send delivers one message.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if c.send == nil {
		log.Warn().Str("to", msg.To).Str("subject", msg.Subject).
			Msg("SendGrid not configured, dropping email")
		return nil
	}

	from := mail.NewEmail(c.config.FromName, c.config.FromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := c.send.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed with status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
