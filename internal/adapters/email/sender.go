// Package email delivers outbound mail through an external provider.
package email

import (
	"context"
	"errors"
	"time"
)

// ErrNoRecipients is returned for a request without a To address.
var ErrNoRecipients = errors.New("email: no recipients")

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address; empty uses the sender's default
	Subject string
	HTML    string // HTML body
	ReplyTo string
	Ref     string // stable reference (outbox entry ID) so clients do not thread retries together
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// Validate checks the fields every provider needs.
func (r SendRequest) Validate() error {
	if len(r.To) == 0 {
		return ErrNoRecipients
	}
	if r.Subject == "" {
		return errors.New("email: subject is required")
	}
	return nil
}
