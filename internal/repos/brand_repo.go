package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopbot/internal/domain"
)

type BrandRepo struct{ db *sqlx.DB }

func NewBrandRepo(db *sqlx.DB) *BrandRepo { return &BrandRepo{db: db} }

// List returns brands in insertion order.
func (r *BrandRepo) List(ctx context.Context) ([]domain.Brand, error) {
	var out []domain.Brand
	err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM brands ORDER BY id`)
	return out, err
}

// GetOrCreate returns the id of the named brand, inserting it when missing.
// A concurrent insert of the same name is absorbed by the UNIQUE constraint.
func (r *BrandRepo) GetOrCreate(ctx context.Context, name string) (int64, error) {
	id, err := r.idByName(ctx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO brands(name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`), name); err != nil {
		return 0, err
	}
	return r.idByName(ctx, name)
}

func (r *BrandRepo) idByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, r.db.Rebind(`SELECT id FROM brands WHERE name = ?`), name)
	return id, err
}
