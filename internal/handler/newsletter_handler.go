package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/Hicham1970/inspec/internal/service"
	"github.com/Hicham1970/inspec/internal/validate"
)

const (
	msgEmailRequired     = "email is required"
	msgAlreadySubscribed = "already subscribed"
	msgSubscribed        = "newsletter subscription successful"
	msgUnsubscribed      = "unsubscribed successfully"
)

// NewsletterHandler handles newsletter subscription endpoints.
type NewsletterHandler struct {
	newsletterService service.NewsletterService
}

// NewNewsletterHandler creates a NewsletterHandler with the given service.
func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, msgEmailRequired)
		return
	}
	if !validate.IsValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}

	sub, err := h.newsletterService.Subscribe(r.Context(), req.Email)
	if errors.Is(err, service.ErrAlreadySubscribed) {
		writeError(w, http.StatusBadRequest, msgAlreadySubscribed)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: msgSubscribed, Data: sub})
}

// List handles GET /api/newsletter.
func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.newsletterService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if subs == nil {
		subs = []*model.Subscriber{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// Unsubscribe handles DELETE /api/newsletter/{email} and DELETE /api/newsletter?email=.
// It succeeds whether or not the address was subscribed.
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		email = r.URL.Query().Get("email")
	}
	if strings.TrimSpace(email) == "" {
		writeError(w, http.StatusBadRequest, msgEmailRequired)
		return
	}

	if err := h.newsletterService.Unsubscribe(r.Context(), email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgUnsubscribed})
}
