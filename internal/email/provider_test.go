package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront/internal/config"
	"github.com/storefront/storefront/internal/logger"
)

func TestNewSender(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()

	sender, err := NewSender(ctx, config.EmailConfig{Provider: config.ProviderLog}, log)
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, sender)

	sender, err = NewSender(ctx, config.EmailConfig{
		Provider:      config.ProviderSendGrid,
		SenderAddress: "shop@example.com",
		SendGrid:      config.SendGridEmailConfig{APIKey: "SG.key"},
	}, log)
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, sender)

	sender, err = NewSender(ctx, config.EmailConfig{
		Provider:      config.ProviderSMTP,
		SenderAddress: "shop@example.com",
		SMTP:          config.SMTPEmailConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"},
	}, log)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)
}

func TestNewSender_Errors(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()

	sender, err := NewSender(ctx, config.EmailConfig{Provider: "carrier-pigeon"}, log)
	assert.Error(t, err)
	assert.Nil(t, sender)

	sender, err = NewSender(ctx, config.EmailConfig{Provider: config.ProviderSendGrid, SenderAddress: "shop@example.com"}, log)
	assert.Error(t, err)
	assert.Nil(t, sender)
}

func TestLogSender_Send(t *testing.T) {
	sender := NewLogSender(logger.Nop(), "shop@example.com")

	assert.NoError(t, sender.Send(context.Background(), Message{To: "a@x.com", Subject: "Order Confirmed"}))
	assert.Error(t, sender.Send(context.Background(), Message{Subject: "Order Confirmed"}))
}
