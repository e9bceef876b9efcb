package mail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Potism/studiomain/internal/config"
	"github.com/Potism/studiomain/internal/mail"
)

func TestSendPostsResendPayload(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := mail.NewClient(config.MailConfig{
		APIKey:    "re_test_key",
		FromEmail: "noreply@example.com",
		FromName:  "Studio",
	})
	require.NoError(t, err)

	err = client.WithBaseURL(srv.URL).Send(context.Background(), mail.Message{
		To:      []string{"owner@example.com"},
		Subject: "hello",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "Studio <noreply@example.com>", gotPayload["from"])
	assert.Equal(t, []any{"owner@example.com"}, gotPayload["to"])
	assert.Equal(t, "hello", gotPayload["subject"])
}

func TestSendReportsProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client, err := mail.NewClient(config.MailConfig{APIKey: "k", FromEmail: "a@b.co"})
	require.NoError(t, err)

	err = client.WithBaseURL(srv.URL).Send(context.Background(), mail.Message{To: []string{"x@y.co"}})
	assert.ErrorContains(t, err, "422")
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := mail.NewClient(config.MailConfig{FromEmail: "a@b.co"})
	assert.Error(t, err)
}

func TestNilClientDropsMail(t *testing.T) {
	var client *mail.Client
	assert.NoError(t, client.Send(context.Background(), mail.Message{To: []string{"x@y.co"}}))
}
