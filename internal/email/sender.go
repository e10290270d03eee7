package email

import (
	"context"
	"errors"
	"strings"
)

// Sender is the interface that all email providers must implement.
// Send makes exactly one delivery attempt; retries are the caller's business.
type Sender interface {
	// Send sends an email to the specified recipient.
	Send(ctx context.Context, msg Message) error
}

// Message represents an email message to be sent.
type Message struct {
	To       string // recipient email address
	Subject  string // email subject
	HTMLBody string // HTML email body
	TextBody string // plain-text fallback body
}

var errHeaderInjection = errors.New("header values must not contain line breaks")

// checkHeaders rejects values that would break out of a MIME header line.
func (m Message) checkHeaders() error {
	if m.To == "" {
		return errors.New("recipient is empty")
	}
	if strings.ContainsAny(m.To, "\r\n") || strings.ContainsAny(m.Subject, "\r\n") {
		return errHeaderInjection
	}
	return nil
}
