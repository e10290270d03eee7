package email

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the configuration for the SMTP sender.
type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	TLSPolicy     string // "mandatory" (default), "opportunistic" or "none"
	Timeout       time.Duration
	SenderAddress string
	SenderName    string
}

// SMTPSender implements Sender over an authenticated SMTP relay (for example
// Gmail with an app password).
type SMTPSender struct {
	cfg  SMTPConfig
	opts []mail.Option
}

// NewSMTPSender creates a new SMTPSender. Connections are dialed per message.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp: host is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp: username and password are required")
	}
	if cfg.SenderAddress == "" {
		cfg.SenderAddress = cfg.Username
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	policy, err := tlsPolicy(cfg.TLSPolicy)
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(policy),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	// surface option errors at startup rather than on the first order
	if _, err := mail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("smtp: invalid client options: %w", err)
	}

	return &SMTPSender{cfg: cfg, opts: opts}, nil
}

func tlsPolicy(name string) (mail.TLSPolicy, error) {
	switch name {
	case "", "mandatory":
		return mail.TLSMandatory, nil
	case "opportunistic":
		return mail.TLSOpportunistic, nil
	case "none":
		return mail.NoTLS, nil
	default:
		return mail.TLSMandatory, fmt.Errorf("smtp: unknown tls policy %q", name)
	}
}

// buildMessage converts msg into a go-mail message with the configured sender.
func (s *SMTPSender) buildMessage(msg Message) (*mail.Msg, error) {
	if err := msg.checkHeaders(); err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if s.cfg.SenderName != "" {
		if err := m.FromFormat(s.cfg.SenderName, s.cfg.SenderAddress); err != nil {
			return nil, fmt.Errorf("invalid sender address: %w", err)
		}
	} else if err := m.From(s.cfg.SenderAddress); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	}

	return m, nil
}

// Send dials the relay, authenticates and delivers one message.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	client, err := mail.NewClient(s.cfg.Host, s.opts...)
	if err != nil {
		return fmt.Errorf("smtp: failed to create client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: failed to send email: %w", err)
	}

	return nil
}
