package handler

import (
	"errors"
	"net/http"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/Hicham1970/inspec/internal/service"
	"github.com/Hicham1970/inspec/internal/validate"
)

const (
	msgRequiredFields = "required fields: name, email, message"
	msgInvalidEmail   = "invalid email format"
	msgInvalidPhone   = "invalid phone format"
	msgMessageTooLong = "message must not exceed 5000 characters"
	msgQuotationSent  = "quotation request sent successfully"
	msgMessageSent    = "message sent successfully"
)

// ContactHandler handles contact and quotation form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Message     string  `json:"message"`
	Type        string  `json:"type"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	Subject     *string `json:"subject"`
	ServiceType *string `json:"service_type"`
	VesselName  *string `json:"vessel_name"`
	Port        *string `json:"port"`
	PlannedDate *string `json:"planned_date"`
}

// Submit handles POST /api/contact.
// name, email and message are required; message max 5000 chars.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}
	if !validate.IsValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}
	if req.Phone != nil && !validate.IsValidPhone(*req.Phone) {
		writeError(w, http.StatusBadRequest, msgInvalidPhone)
		return
	}
	if validate.Length(req.Message) > validate.MaxMessageLength {
		writeError(w, http.StatusBadRequest, msgMessageTooLong)
		return
	}

	msg, err := h.contactService.Submit(r.Context(), service.ContactInput{
		Name:        req.Name,
		Email:       req.Email,
		Message:     req.Message,
		Type:        req.Type,
		Phone:       req.Phone,
		Company:     req.Company,
		Subject:     req.Subject,
		ServiceType: req.ServiceType,
		VesselName:  req.VesselName,
		Port:        req.Port,
		PlannedDate: req.PlannedDate,
	})
	if errors.Is(err, service.ErrRequiredFields) {
		writeError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	text := msgMessageSent
	if msg.IsQuotation() {
		text = msgQuotationSent
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: text, Data: msg})
}

// List handles GET /api/contact.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, messages)
}
