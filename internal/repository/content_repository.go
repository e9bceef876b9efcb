package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Potism/studiomain/internal/domain"
)

// ContentRepository defines persistence access for editable site copy.
type ContentRepository interface {
	ListAll(ctx context.Context) ([]domain.ContentEntry, error)
	Upsert(ctx context.Context, entry *domain.ContentEntry) error
}

type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository returns a Postgres-backed implementation.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

func (r *contentRepository) ListAll(ctx context.Context) ([]domain.ContentEntry, error) {
	const query = `
        SELECT section, key, value, updated_by, updated_at
        FROM website_content ORDER BY section, key`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ContentEntry
	for rows.Next() {
		var entry domain.ContentEntry
		if err := rows.Scan(
			&entry.Section,
			&entry.Key,
			&entry.Value,
			&entry.UpdatedBy,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *contentRepository) Upsert(ctx context.Context, entry *domain.ContentEntry) error {
	const query = `
        INSERT INTO website_content (section, key, value, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (section, key)
        DO UPDATE SET value=EXCLUDED.value, updated_by=EXCLUDED.updated_by, updated_at=NOW()
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		entry.Section,
		entry.Key,
		entry.Value,
		entry.UpdatedBy,
	).Scan(&entry.UpdatedAt)
}
