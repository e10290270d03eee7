package email

import (
	"context"
	"fmt"

	"github.com/storefront/storefront/internal/config"
	"github.com/storefront/storefront/internal/logger"
)

// NewSender builds the Sender selected by cfg.Provider.
func NewSender(ctx context.Context, cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	var (
		sender Sender
		err    error
	)

	switch cfg.Provider {
	case config.ProviderLog, "":
		sender = NewLogSender(log, cfg.SenderAddress)
	case config.ProviderSendGrid:
		var s *SendGridSender
		s, err = NewSendGridSender(SendGridConfig{
			APIKey:        cfg.SendGrid.APIKey,
			SenderAddress: cfg.SenderAddress,
			SenderName:    cfg.SenderName,
			BaseURL:       cfg.SendGrid.BaseURL,
		})
		sender = s
	case config.ProviderSMTP:
		var s *SMTPSender
		s, err = NewSMTPSender(SMTPConfig{
			Host:          cfg.SMTP.Host,
			Port:          cfg.SMTP.Port,
			Username:      cfg.SMTP.Username,
			Password:      cfg.SMTP.Password,
			TLSPolicy:     cfg.SMTP.TLSPolicy,
			Timeout:       cfg.SMTP.Timeout,
			SenderAddress: cfg.SenderAddress,
			SenderName:    cfg.SenderName,
		})
		sender = s
	case config.ProviderGmail:
		var s *GmailSender
		s, err = NewGmailSender(ctx, GmailConfig{
			CredentialsJSON: cfg.Gmail.CredentialsJSON,
			ClientID:        cfg.Gmail.ClientID,
			ClientSecret:    cfg.Gmail.ClientSecret,
			RefreshToken:    cfg.Gmail.RefreshToken,
			SenderAddress:   cfg.SenderAddress,
			SenderName:      cfg.SenderName,
		})
		sender = s
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}
	return sender, nil
}
