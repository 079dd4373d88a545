package repository

import (
	"context"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSubscriberRepository is the PostgreSQL implementation of SubscriberRepository.
type PgSubscriberRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubscriberRepository creates a PgSubscriberRepository backed by the given pool.
func NewPgSubscriberRepository(pool *pgxpool.Pool) *PgSubscriberRepository {
	return &PgSubscriberRepository{pool: pool}
}

var _ SubscriberRepository = (*PgSubscriberRepository)(nil)

// Create inserts a newsletter row. The unique index on email decides whether
// the address is already subscribed.
func (r *PgSubscriberRepository) Create(ctx context.Context, sub *model.Subscriber) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO newsletter (email, confirmed)
		 VALUES ($1, $2)
		 RETURNING id::text, created_at`,
		sub.Email, sub.Confirmed,
	).Scan(&sub.ID, &sub.CreatedAt)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

// List returns all subscribers, newest first.
func (r *PgSubscriberRepository) List(ctx context.Context) ([]*model.Subscriber, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, email, confirmed, created_at FROM newsletter ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Confirmed, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// DeleteByEmail removes every row for email.
func (r *PgSubscriberRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM newsletter WHERE email = $1`, email)
	return err
}
