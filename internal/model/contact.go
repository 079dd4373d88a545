package model

import "time"

// ContactType distinguishes a plain contact message from a quotation request.
type ContactType string

const (
	ContactTypeContact   ContactType = "contact"
	ContactTypeQuotation ContactType = "quotation"
)

// ParseContactType returns ContactTypeQuotation only for the exact string
// "quotation". Any other value, including the empty string, is a contact.
func ParseContactType(s string) ContactType {
	if s == string(ContactTypeQuotation) {
		return ContactTypeQuotation
	}
	return ContactTypeContact
}

// ContactSubmission is a message submitted via the contact or quotation form.
// The quotation fields (ServiceType, VesselName, Port, PlannedDate) are only
// filled in when Type is "quotation".
type ContactSubmission struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       *string     `json:"phone"`
	Company     *string     `json:"company"`
	Subject     *string     `json:"subject"`
	Message     string      `json:"message"`
	Type        ContactType `json:"type"`
	ServiceType *string     `json:"service_type"`
	VesselName  *string     `json:"vessel_name"`
	Port        *string     `json:"port"`
	PlannedDate *string     `json:"planned_date"`
	CreatedAt   time.Time   `json:"created_at"`
}

// IsQuotation reports whether the submission is a quotation request.
func (c *ContactSubmission) IsQuotation() bool {
	return c.Type == ContactTypeQuotation
}
