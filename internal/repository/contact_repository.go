package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Potism/studiomain/internal/domain"
)

// ContactRepository defines persistence access for contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, submission *domain.ContactSubmission) error
	List(ctx context.Context) ([]domain.ContactSubmission, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository returns a Postgres-backed implementation.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, submission *domain.ContactSubmission) error {
	const query = `
        INSERT INTO contact_submissions
            (name, email, phone, company, service, budget, message, preferred_date, preferred_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		submission.Name,
		submission.Email,
		submission.Phone,
		submission.Company,
		submission.Service,
		submission.Budget,
		submission.Message,
		submission.PreferredDate,
		submission.PreferredTime,
	).Scan(&submission.ID, &submission.CreatedAt)
}

func (r *contactRepository) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	const query = `
        SELECT id, name, email, phone, company, service, budget, message,
               preferred_date, preferred_time, created_at
        FROM contact_submissions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []domain.ContactSubmission
	for rows.Next() {
		var s domain.ContactSubmission
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.Phone,
			&s.Company,
			&s.Service,
			&s.Budget,
			&s.Message,
			&s.PreferredDate,
			&s.PreferredTime,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
