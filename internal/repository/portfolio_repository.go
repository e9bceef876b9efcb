package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Potism/studiomain/internal/domain"
)

// PortfolioRepository defines persistence access for portfolio items.
type PortfolioRepository interface {
	Create(ctx context.Context, item *domain.PortfolioItem) error
	CreateBatch(ctx context.Context, items []*domain.PortfolioItem) error
	Update(ctx context.Context, item *domain.PortfolioItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error)
	List(ctx context.Context) ([]domain.PortfolioItem, error)
	ListFileURLs(ctx context.Context) ([]string, error)
}

type portfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository returns a Postgres-backed implementation.
func NewPortfolioRepository(pool *pgxpool.Pool) PortfolioRepository {
	return &portfolioRepository{pool: pool}
}

const portfolioColumns = `
        id, title, description, category, file_url, file_type, file_size,
        blob_pathname, thumbnail_url, is_featured, sort_order, created_at, updated_at`

func (r *portfolioRepository) Create(ctx context.Context, item *domain.PortfolioItem) error {
	const query = `
        INSERT INTO portfolio_items
            (title, description, category, file_url, file_type, file_size,
             blob_pathname, thumbnail_url, is_featured, sort_order)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.Category,
		item.FileURL,
		item.FileType,
		item.FileSize,
		item.BlobPathname,
		item.ThumbnailURL,
		item.IsFeatured,
		item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *portfolioRepository) CreateBatch(ctx context.Context, items []*domain.PortfolioItem) error {
	for _, item := range items {
		if err := r.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *portfolioRepository) Update(ctx context.Context, item *domain.PortfolioItem) error {
	const query = `
        UPDATE portfolio_items
        SET title=$1, description=$2, category=$3, is_featured=$4, sort_order=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.Category,
		item.IsFeatured,
		item.SortOrder,
		item.ID,
	).Scan(&item.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM portfolio_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *portfolioRepository) GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items WHERE id=$1`

	var item domain.PortfolioItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Category,
		&item.FileURL,
		&item.FileType,
		&item.FileSize,
		&item.BlobPathname,
		&item.ThumbnailURL,
		&item.IsFeatured,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *portfolioRepository) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + `
        FROM portfolio_items
        ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PortfolioItem
	for rows.Next() {
		var item domain.PortfolioItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Category,
			&item.FileURL,
			&item.FileType,
			&item.FileSize,
			&item.BlobPathname,
			&item.ThumbnailURL,
			&item.IsFeatured,
			&item.SortOrder,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *portfolioRepository) ListFileURLs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT file_url FROM portfolio_items`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
