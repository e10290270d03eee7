package email

import (
	"context"

	"github.com/storefront/storefront/internal/logger"
)

// LogSender writes messages to the log instead of delivering them.
// It backs the "log" provider for deployments without a mail transport.
type LogSender struct {
	log           *logger.Logger
	senderAddress string
}

// NewLogSender creates a new LogSender
func NewLogSender(log *logger.Logger, senderAddress string) *LogSender {
	return &LogSender{
		log:           log.WithComponent("email_log"),
		senderAddress: senderAddress,
	}
}

// Send logs the message and always succeeds for well-formed headers.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.checkHeaders(); err != nil {
		return err
	}

	s.log.Info().
		Str("from", s.senderAddress).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTMLBody)).
		Msg("email not delivered: log provider")

	s.log.Debug().Str("body", msg.TextBody).Msg("email body")
	return nil
}
