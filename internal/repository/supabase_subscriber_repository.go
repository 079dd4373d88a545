package repository

import (
	"context"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/Hicham1970/inspec/pkg/supabase"
)

const newsletterTable = "newsletter"

// SupabaseSubscriberRepository stores newsletter subscriptions through the Supabase REST API.
type SupabaseSubscriberRepository struct {
	client *supabase.Client
}

// NewSupabaseSubscriberRepository creates a SupabaseSubscriberRepository using client.
func NewSupabaseSubscriberRepository(client *supabase.Client) *SupabaseSubscriberRepository {
	return &SupabaseSubscriberRepository{client: client}
}

var _ SubscriberRepository = (*SupabaseSubscriberRepository)(nil)

type subscriberRow struct {
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

// Create inserts a newsletter row; a unique-constraint conflict reported by
// PostgREST is translated to ErrAlreadyExists.
func (r *SupabaseSubscriberRepository) Create(ctx context.Context, sub *model.Subscriber) error {
	var stored []model.Subscriber
	err := r.client.Insert(ctx, newsletterTable, subscriberRow{Email: sub.Email, Confirmed: sub.Confirmed}, &stored)
	if supabase.IsUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return supabase.ErrNoRows
	}
	sub.ID = stored[0].ID
	sub.CreatedAt = stored[0].CreatedAt
	return nil
}

func (r *SupabaseSubscriberRepository) List(ctx context.Context) ([]*model.Subscriber, error) {
	var rows []*model.Subscriber
	if err := r.client.Select(ctx, newsletterTable, supabase.Query{Order: "created_at.desc"}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SupabaseSubscriberRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.client.Delete(ctx, newsletterTable, map[string]string{"email": email})
}
