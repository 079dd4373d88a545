package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "anon-key", WithTimeout(2*time.Second))
}

func TestClient_Insert_SendsRepresentationRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/newsletter", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "a@b.com", body[0]["email"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"42","email":"a@b.com"}]`))
	})

	var out []row
	err := c.Insert(context.Background(), "newsletter", map[string]any{"email": "a@b.com"}, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "42", out[0].ID)
}

func TestClient_Insert_UniqueViolation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","details":"Key (email)=(a@b.com) already exists.","hint":null,"message":"duplicate key value violates unique constraint \"newsletter_email_key\""}`))
	})

	var out []row
	err := c.Insert(context.Background(), "newsletter", map[string]any{"email": "a@b.com"}, &out)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "duplicate key")
}

func TestClient_Select_BuildsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/contacts", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("select"))
		assert.Equal(t, "created_at.desc", q.Get("order"))
		assert.Equal(t, "eq.quotation", q.Get("type"))
		assert.Equal(t, "5", q.Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","email":"x@y.com"},{"id":"2","email":"z@y.com"}]`))
	})

	var out []row
	err := c.Select(context.Background(), "contacts", Query{
		Eq:    map[string]string{"type": "quotation"},
		Order: "created_at.desc",
		Limit: 5,
	}, &out)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestClient_Select_APIErrorMessagePassesThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"42P01","message":"relation \"public.contacts\" does not exist"}`))
	})

	var out []row
	err := c.Select(context.Background(), "contacts", Query{}, &out)
	require.Error(t, err)
	assert.Equal(t, `relation "public.contacts" does not exist`, err.Error())
	assert.False(t, IsUniqueViolation(err))
}

func TestClient_Delete_FiltersByColumn(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rest/v1/newsletter", r.URL.Path)
		assert.Equal(t, "eq.a@b.com", r.URL.Query().Get("email"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "newsletter", map[string]string{"email": "a@b.com"}))
	assert.True(t, called)
}

func TestClient_Delete_RequiresFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an unfiltered delete")
	})
	assert.Error(t, c.Delete(context.Background(), "newsletter", nil))
}

func TestClient_Ping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/"+ProbeTable, r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_Ping_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "anon-key", WithTimeout(time.Second))
	err := c.Ping(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not look like API errors")
}
