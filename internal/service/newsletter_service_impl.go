package service

import (
	"context"
	"errors"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/Hicham1970/inspec/internal/repository"
	"github.com/Hicham1970/inspec/internal/validate"
)

type newsletterServiceImpl struct {
	repo repository.SubscriberRepository
}

// NewNewsletterService creates a NewsletterService. repo may be nil when no
// backend is configured.
func NewNewsletterService(repo repository.SubscriberRepository) NewsletterService {
	return &newsletterServiceImpl{repo: repo}
}

// Subscribe relies on the storage unique constraint rather than a prior
// lookup, so concurrent requests for one address yield a single row.
func (s *newsletterServiceImpl) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	sub := &model.Subscriber{
		Email:     validate.NormalizeEmail(email),
		Confirmed: true,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return sub, nil
}

func (s *newsletterServiceImpl) List(ctx context.Context) ([]*model.Subscriber, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	return s.repo.List(ctx)
}

func (s *newsletterServiceImpl) Unsubscribe(ctx context.Context, email string) error {
	if s.repo == nil {
		return ErrNotConfigured
	}
	return s.repo.DeleteByEmail(ctx, validate.NormalizeEmail(email))
}
