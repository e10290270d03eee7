package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	path   string
	auth   string
	method string
	body   map[string]interface{}
}

func newSendGridServer(t *testing.T, status int, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.method = r.Method
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.body)
		w.WriteHeader(status)
		if status >= 400 {
			w.Write([]byte(`{"errors":[{"message":"The provided authorization grant is invalid"}]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewSendGridSender_RequiresConfig(t *testing.T) {
	_, err := NewSendGridSender(SendGridConfig{SenderAddress: "shop@example.com"})
	assert.Error(t, err)

	_, err = NewSendGridSender(SendGridConfig{APIKey: "SG.key"})
	assert.Error(t, err)
}

func TestSendGridSender_Send(t *testing.T) {
	var captured capturedRequest
	srv := newSendGridServer(t, http.StatusAccepted, &captured)

	sender, err := NewSendGridSender(SendGridConfig{
		APIKey:        "SG.key",
		SenderAddress: "shop@example.com",
		SenderName:    "Storefront",
		BaseURL:       srv.URL,
	})
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{
		To:       "a@x.com",
		Subject:  "Order Confirmed",
		HTMLBody: "<p>hi</p>",
		TextBody: "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/v3/mail/send", captured.path)
	assert.Equal(t, "Bearer SG.key", captured.auth)
	assert.Equal(t, "Order Confirmed", captured.body["subject"])

	from := captured.body["from"].(map[string]interface{})
	assert.Equal(t, "shop@example.com", from["email"])

	personalizations := captured.body["personalizations"].([]interface{})
	require.Len(t, personalizations, 1)
	to := personalizations[0].(map[string]interface{})["to"].([]interface{})
	assert.Equal(t, "a@x.com", to[0].(map[string]interface{})["email"])

	content := captured.body["content"].([]interface{})
	require.Len(t, content, 2)
	assert.Equal(t, "text/html", content[1].(map[string]interface{})["type"])
}

func TestSendGridSender_ErrorStatus(t *testing.T) {
	var captured capturedRequest
	srv := newSendGridServer(t, http.StatusUnauthorized, &captured)

	sender, err := NewSendGridSender(SendGridConfig{
		APIKey:        "SG.bad",
		SenderAddress: "shop@example.com",
		BaseURL:       srv.URL,
	})
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{To: "a@x.com", Subject: "Order Confirmed", HTMLBody: "<p>hi</p>", TextBody: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestSendGridSender_RejectsHeaderInjection(t *testing.T) {
	sender, err := NewSendGridSender(SendGridConfig{APIKey: "SG.key", SenderAddress: "shop@example.com", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{To: "a@x.com\r\nBcc: everyone@x.com", Subject: "Order Confirmed"})
	assert.ErrorIs(t, err, errHeaderInjection)
}
