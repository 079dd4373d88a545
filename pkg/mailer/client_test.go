package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "site@inspec.test", body["from"])
		assert.Equal(t, []any{"ops@inspec.test"}, body["to"])
		assert.Equal(t, "New message", body["subject"])
		assert.Equal(t, "jane@example.com", body["reply_to"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	c := NewClient("re_test", "site@inspec.test", WithBaseURL(srv.URL))
	id, err := c.Send(context.Background(), Message{
		To:      []string{"ops@inspec.test"},
		Subject: "New message",
		Text:    "hello",
		ReplyTo: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)
}

func TestClient_Send_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	}))
	defer srv.Close()

	c := NewClient("re_test", "bad", WithBaseURL(srv.URL))
	_, err := c.Send(context.Background(), Message{To: []string{"ops@inspec.test"}, Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid from field")
}

func TestClient_Send_NotConfigured(t *testing.T) {
	c := NewClient("", "site@inspec.test")
	_, err := c.Send(context.Background(), Message{To: []string{"ops@inspec.test"}})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestClient_Send_NoRecipient(t *testing.T) {
	c := NewClient("re_test", "site@inspec.test")
	_, err := c.Send(context.Background(), Message{Subject: "x"})
	assert.Error(t, err)
}
