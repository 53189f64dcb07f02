package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopbot/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// ListByBrand returns the categories of a brand in insertion order.
func (r *CategoryRepo) ListByBrand(ctx context.Context, brand string) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT c.id, c.brand_id, c.name
  FROM categories c
  JOIN brands b ON b.id = c.brand_id
  WHERE b.name = ?
  ORDER BY c.id
`), brand)
	return out, err
}

// GetOrCreate returns the id of (brandID, name), inserting it when missing.
func (r *CategoryRepo) GetOrCreate(ctx context.Context, brandID int64, name string) (int64, error) {
	id, err := r.id(ctx, brandID, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO categories(brand_id, name) VALUES (?, ?)
		ON CONFLICT(brand_id, name) DO NOTHING
	`), brandID, name); err != nil {
		return 0, err
	}
	return r.id(ctx, brandID, name)
}

func (r *CategoryRepo) id(ctx context.Context, brandID int64, name string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, r.db.Rebind(`SELECT id FROM categories WHERE brand_id = ? AND name = ?`), brandID, name)
	return id, err
}
