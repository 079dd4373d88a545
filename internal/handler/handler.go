package handler

import (
	"net/http"

	"github.com/Hicham1970/inspec/internal/repository"
)

// Handler serves the endpoints that are not tied to a resource: health,
// storage diagnostics and CORS.
type Handler struct {
	db            repository.DB
	allowedOrigin string
}

// New creates a Handler. db is nil when no storage backend is configured.
func New(db repository.DB, allowedOrigin string) *Handler {
	return &Handler{db: db, allowedOrigin: allowedOrigin}
}

// CORS allows the configured frontend origin with credentials. Without a
// configured origin any origin is allowed and credentials are not.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.allowedOrigin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", h.allowedOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
