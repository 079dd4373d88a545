package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hicham1970/inspec/pkg/supabase"
)

type mockDB struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockDB) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func storageCheck(t *testing.T, h *Handler) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/test-supabase", nil)
	rec := httptest.NewRecorder()
	h.StorageCheck(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec, body
}

func TestHealth_OK(t *testing.T) {
	// Health never touches storage, so a nil DB is fine.
	h := New(nil, "http://localhost:5173")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "OK" {
		t.Errorf("expected status=OK, got %q", resp.Status)
	}
	if resp.Message != "Backend is running!" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestStorageCheck_NotConfigured(t *testing.T) {
	rec, body := storageCheck(t, New(nil, ""))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "database not configured" {
		t.Errorf("unexpected error %v", body["error"])
	}
	if body["hasCredentials"] != false {
		t.Errorf("expected hasCredentials=false, got %v", body["hasCredentials"])
	}
}

func TestStorageCheck_Connected(t *testing.T) {
	rec, body := storageCheck(t, New(&mockDB{}, ""))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "connected" {
		t.Errorf("expected status=connected, got %v", body["status"])
	}
	if _, ok := body["tableError"]; ok {
		t.Error("tableError should be omitted on success")
	}
}

func TestStorageCheck_TableErrorStillConnected(t *testing.T) {
	db := &mockDB{pingFunc: func(ctx context.Context) error {
		return &supabase.APIError{Status: 404, Code: "42P01", Message: `relation "public.information" does not exist`}
	}}
	rec, body := storageCheck(t, New(db, ""))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "connected" {
		t.Errorf("expected status=connected, got %v", body["status"])
	}
	if body["tableError"] == nil || body["hint"] == nil {
		t.Errorf("expected tableError and hint, got %v", body)
	}
}

func TestStorageCheck_TransportError(t *testing.T) {
	db := &mockDB{pingFunc: func(ctx context.Context) error {
		return errors.New("dial tcp: connection refused")
	}}
	rec, body := storageCheck(t, New(db, ""))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "dial tcp: connection refused" {
		t.Errorf("unexpected error %v", body["error"])
	}
	if body["credentialsLoaded"] != true {
		t.Errorf("expected credentialsLoaded=true, got %v", body["credentialsLoaded"])
	}
}
