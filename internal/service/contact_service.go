package service

import (
	"context"

	"github.com/Hicham1970/inspec/internal/model"
)

// ContactInput is a contact or quotation form as received from the client,
// after format validation and before sanitization.
type ContactInput struct {
	Name        string
	Email       string
	Message     string
	Type        string
	Phone       *string
	Company     *string
	Subject     *string
	ServiceType *string
	VesselName  *string
	Port        *string
	PlannedDate *string
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit sanitizes in, stores it and returns the stored submission.
	// A notification is attempted afterwards; its failure does not fail Submit.
	Submit(ctx context.Context, in ContactInput) (*model.ContactSubmission, error)

	// List returns every submission, newest first.
	List(ctx context.Context) ([]*model.ContactSubmission, error)
}

// Notifier is told about every stored submission.
type Notifier interface {
	NotifyContact(ctx context.Context, msg *model.ContactSubmission) error
}
