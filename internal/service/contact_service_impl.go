package service

import (
	"context"
	"log/slog"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/Hicham1970/inspec/internal/repository"
	"github.com/Hicham1970/inspec/internal/validate"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier Notifier
}

// NewContactService creates a ContactService backed by the given repository.
// repo may be nil when no backend is configured; every call then fails with
// ErrNotConfigured. notifier may be nil to disable notifications.
func NewContactService(repo repository.ContactRepository, notifier Notifier) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier}
}

func (s *contactServiceImpl) Submit(ctx context.Context, in ContactInput) (*model.ContactSubmission, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}

	msg := sanitizeContact(in)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, ErrRequiredFields
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, msg); err != nil {
			// the submission is already stored
			slog.Warn("contact notification failed", "contact_id", msg.ID, "error", err)
		}
	}
	return msg, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	return s.repo.List(ctx)
}

func sanitizeContact(in ContactInput) *model.ContactSubmission {
	return &model.ContactSubmission{
		Name:        validate.SanitizeString(in.Name),
		Email:       validate.NormalizeEmail(in.Email),
		Phone:       validate.SanitizeOptional(in.Phone),
		Company:     validate.SanitizeOptional(in.Company),
		Subject:     validate.SanitizeOptional(in.Subject),
		Message:     validate.SanitizeText(in.Message, validate.MaxMessageLength),
		Type:        model.ParseContactType(in.Type),
		ServiceType: validate.SanitizeOptional(in.ServiceType),
		VesselName:  validate.SanitizeOptional(in.VesselName),
		Port:        validate.SanitizeOptional(in.Port),
		PlannedDate: validate.SanitizeOptional(in.PlannedDate),
	}
}
