package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridMailEndpoint = "/v3/mail/send"

// SendGridConfig holds the configuration for the SendGrid sender.
type SendGridConfig struct {
	APIKey        string
	SenderAddress string
	SenderName    string
	// BaseURL overrides https://api.sendgrid.com
	BaseURL string
}

// SendGridSender implements Sender using the SendGrid v3 mail API.
type SendGridSender struct {
	cfg SendGridConfig
}

// NewSendGridSender creates a new SendGridSender.
func NewSendGridSender(cfg SendGridConfig) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid: api key is required")
	}
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("sendgrid: sender address is required")
	}
	return &SendGridSender{cfg: cfg}, nil
}

// Send sends an email via SendGrid. Any status >= 400 is returned as an error.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if err := msg.checkHeaders(); err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}

	from := mail.NewEmail(s.cfg.SenderName, s.cfg.SenderAddress)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.TextBody, msg.HTMLBody)

	// a fresh request per send: sendgrid.Client mutates its embedded request body
	request := sendgrid.GetRequest(s.cfg.APIKey, sendGridMailEndpoint, s.cfg.BaseURL)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	return nil
}
