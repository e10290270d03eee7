package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailConfig holds the configuration for the Gmail email sender.
// Either CredentialsJSON (service account with domain-wide delegation) or the
// ClientID/ClientSecret/RefreshToken triple must be set.
type GmailConfig struct {
	CredentialsJSON string
	ClientID        string
	ClientSecret    string
	RefreshToken    string
	// SenderAddress is the mailbox emails are sent from.
	SenderAddress string
	// SenderName is the display name for the sender.
	SenderName string
}

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	service       *gmail.Service
	senderAddress string
	senderName    string
}

// NewGmailSender creates a new GmailSender.
func NewGmailSender(ctx context.Context, cfg GmailConfig) (*GmailSender, error) {
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("gmail: sender address is required")
	}

	var opt option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), gmail.GmailSendScope)
		if err != nil {
			return nil, fmt.Errorf("gmail: failed to parse credentials: %w", err)
		}
		// impersonate the sender mailbox
		jwtConfig.Subject = cfg.SenderAddress
		opt = option.WithHTTPClient(jwtConfig.Client(ctx))
	case cfg.RefreshToken != "":
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		}
		opt = option.WithHTTPClient(oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken}))
	default:
		return nil, fmt.Errorf("gmail: credentials JSON or refresh token is required")
	}

	svc, err := gmail.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		senderAddress: cfg.SenderAddress,
		senderName:    cfg.SenderName,
	}, nil
}

// Send sends an email via the Gmail API.
func (g *GmailSender) Send(ctx context.Context, msg Message) error {
	raw, err := buildMIME(g.from(), msg)
	if err != nil {
		return fmt.Errorf("gmail: %w", err)
	}

	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := g.service.Users.Messages.Send("me", gmailMsg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail: failed to send email: %w", err)
	}

	return nil
}

func (g *GmailSender) from() string {
	if g.senderName == "" {
		return g.senderAddress
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", g.senderName), g.senderAddress)
}

// buildMIME renders msg as an RFC 5322 message, multipart/alternative when both
// bodies are set. Bodies are quoted-printable and the boundary is random.
func buildMIME(from string, msg Message) (string, error) {
	if err := msg.checkHeaders(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + msg.To + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTMLBody == "" || msg.TextBody == "" {
		contentType, body := "text/plain; charset=UTF-8", msg.TextBody
		if msg.HTMLBody != "" {
			contentType, body = "text/html; charset=UTF-8", msg.HTMLBody
		}
		buf.WriteString("Content-Type: " + contentType + "\r\n")
		buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		if err := writeQuotedPrintable(&buf, body); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	var parts bytes.Buffer
	mw := multipart.NewWriter(&parts)
	buf.WriteString("Content-Type: multipart/alternative; boundary=" + mw.Boundary() + "\r\n\r\n")

	for _, part := range []struct{ contentType, body string }{
		{"text/plain; charset=UTF-8", msg.TextBody},
		{"text/html; charset=UTF-8", msg.HTMLBody},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return "", err
		}
		if err := writeQuotedPrintable(w, part.body); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	buf.Write(parts.Bytes())
	return buf.String(), nil
}

func writeQuotedPrintable(w io.Writer, body string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}
