package repository

import (
	"context"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/Hicham1970/inspec/pkg/supabase"
)

const contactsTable = "contacts"

// SupabaseContactRepository stores contact submissions through the Supabase REST API.
type SupabaseContactRepository struct {
	client *supabase.Client
}

// NewSupabaseContactRepository creates a SupabaseContactRepository using client.
func NewSupabaseContactRepository(client *supabase.Client) *SupabaseContactRepository {
	return &SupabaseContactRepository{client: client}
}

var _ ContactRepository = (*SupabaseContactRepository)(nil)

// contactRow is the insert payload; id and created_at are assigned by the database.
type contactRow struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       *string           `json:"phone"`
	Company     *string           `json:"company"`
	Subject     *string           `json:"subject"`
	Message     string            `json:"message"`
	Type        model.ContactType `json:"type"`
	ServiceType *string           `json:"service_type"`
	VesselName  *string           `json:"vessel_name"`
	Port        *string           `json:"port"`
	PlannedDate *string           `json:"planned_date"`
}

func (r *SupabaseContactRepository) Save(ctx context.Context, msg *model.ContactSubmission) error {
	var stored []model.ContactSubmission
	err := r.client.Insert(ctx, contactsTable, contactRow{
		Name:        msg.Name,
		Email:       msg.Email,
		Phone:       msg.Phone,
		Company:     msg.Company,
		Subject:     msg.Subject,
		Message:     msg.Message,
		Type:        msg.Type,
		ServiceType: msg.ServiceType,
		VesselName:  msg.VesselName,
		Port:        msg.Port,
		PlannedDate: msg.PlannedDate,
	}, &stored)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return supabase.ErrNoRows
	}
	msg.ID = stored[0].ID
	msg.CreatedAt = stored[0].CreatedAt
	return nil
}

func (r *SupabaseContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	var rows []*model.ContactSubmission
	if err := r.client.Select(ctx, contactsTable, supabase.Query{Order: "created_at.desc"}, &rows); err != nil {
		return nil, err
	}
	for _, m := range rows {
		m.Type = model.ParseContactType(string(m.Type))
	}
	return rows, nil
}
