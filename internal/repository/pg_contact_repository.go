package repository

import (
	"context"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const contactColumns = `id::text, name, email, phone, company, subject, message, type,
	service_type, vessel_name, port, planned_date, created_at`

// Save inserts a new contacts row and populates msg.ID and msg.CreatedAt
// from the RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, phone, company, subject, message, type,
		                       service_type, vessel_name, port, planned_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id::text, created_at`,
		msg.Name, msg.Email, msg.Phone, msg.Company, msg.Subject, msg.Message, string(msg.Type),
		msg.ServiceType, msg.VesselName, msg.Port, msg.PlannedDate,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// List returns all contact submissions, newest first.
func (r *PgContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ContactSubmission
	for rows.Next() {
		var m model.ContactSubmission
		var typ string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Company, &m.Subject, &m.Message, &typ,
			&m.ServiceType, &m.VesselName, &m.Port, &m.PlannedDate, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Type = model.ParseContactType(typ)
		out = append(out, &m)
	}
	return out, rows.Err()
}
