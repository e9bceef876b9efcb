package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Potism/studiomain/internal/domain"
)

// AdminRepository is the admin registry. Login consults it after the
// credential check; a verified identity absent from this table has no
// admin access.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	Create(ctx context.Context, admin *domain.AdminUser) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const query = `
        SELECT id, email, name, role, created_at, updated_at
        FROM admin_users WHERE lower(email)=lower($1)`

	var admin domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(
		&admin.ID,
		&admin.Email,
		&admin.Name,
		&admin.Role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	const query = `
        INSERT INTO admin_users (email, name, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		admin.Email,
		admin.Name,
		admin.Role,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}
