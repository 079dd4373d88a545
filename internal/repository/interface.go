package repository

import (
	"context"

	"github.com/Hicham1970/inspec/internal/model"
)

// DB reports whether the storage backend is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository persists contact and quotation submissions.
type ContactRepository interface {
	// Save inserts msg and fills in msg.ID and msg.CreatedAt from the stored row.
	Save(ctx context.Context, msg *model.ContactSubmission) error
	// List returns every submission, newest first.
	List(ctx context.Context) ([]*model.ContactSubmission, error)
}

// SubscriberRepository persists newsletter subscriptions.
type SubscriberRepository interface {
	// Create inserts sub and fills in sub.ID and sub.CreatedAt. It returns
	// ErrAlreadyExists when the email is already subscribed.
	Create(ctx context.Context, sub *model.Subscriber) error
	// List returns every subscriber, newest first.
	List(ctx context.Context) ([]*model.Subscriber, error)
	// DeleteByEmail removes the subscriptions for email. Deleting an unknown
	// email is not an error.
	DeleteByEmail(ctx context.Context, email string) error
}
