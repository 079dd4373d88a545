package service

import (
	"context"

	"github.com/Hicham1970/inspec/internal/model"
)

// NewsletterService manages newsletter subscriptions.
type NewsletterService interface {
	// Subscribe adds email to the newsletter, confirmed immediately. It returns
	// ErrAlreadySubscribed when the address is already present.
	Subscribe(ctx context.Context, email string) (*model.Subscriber, error)

	// List returns every subscriber, newest first.
	List(ctx context.Context) ([]*model.Subscriber, error)

	// Unsubscribe removes email. Unknown addresses are not an error.
	Unsubscribe(ctx context.Context, email string) error
}
