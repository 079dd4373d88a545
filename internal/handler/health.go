package handler

import (
	"errors"
	"net/http"

	"github.com/Hicham1970/inspec/pkg/supabase"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health reports that the process is up. It does not touch the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "OK",
		Message: "Backend is running!",
	})
}

type storageCheckResponse struct {
	Status            string `json:"status,omitempty"`
	Message           string `json:"message,omitempty"`
	Error             string `json:"error,omitempty"`
	TableError        string `json:"tableError,omitempty"`
	Hint              string `json:"hint,omitempty"`
	HasCredentials    *bool  `json:"hasCredentials,omitempty"`
	CredentialsLoaded bool   `json:"credentialsLoaded"`
}

// StorageCheck handles GET /api/test-supabase. An error answered by the
// backend itself (for instance a missing probe table) still proves
// connectivity and is reported with 200.
func (h *Handler) StorageCheck(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		hasCredentials := false
		writeJSON(w, http.StatusInternalServerError, storageCheckResponse{
			Error:          "database not configured",
			HasCredentials: &hasCredentials,
		})
		return
	}

	err := h.db.Ping(r.Context())
	var apiErr *supabase.APIError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, storageCheckResponse{
			Status:            "connected",
			Message:           "database connection established",
			CredentialsLoaded: true,
		})
	case errors.As(err, &apiErr):
		writeJSON(w, http.StatusOK, storageCheckResponse{
			Status:            "connected",
			Message:           "database connection established",
			TableError:        apiErr.Error(),
			Hint:              "create the " + supabase.ProbeTable + " table in your project (see migrations/)",
			CredentialsLoaded: true,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, storageCheckResponse{
			Error:             err.Error(),
			CredentialsLoaded: true,
		})
	}
}
