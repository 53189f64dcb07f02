package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"shopbot/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    p.id, p.category_id, p.name, p.channel_message_ref,
    p.ozon_link, p.wb_link, p.ym_link, p.date_added,
    p.stored_file_ref, p.stored_file_type, p.caption, p.photo_ref`

// ListByCategory returns the products of (brand, category) in insertion order.
func (r *ProductRepo) ListByCategory(ctx context.Context, brand, category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT`+productCols+`
  FROM products p
  JOIN categories c ON c.id = p.category_id
  JOIN brands b ON b.id = c.brand_id
  WHERE b.name = ? AND c.name = ?
  ORDER BY p.id
`), brand, category)
	return out, err
}

// Find returns sql.ErrNoRows when the triple does not exist.
func (r *ProductRepo) Find(ctx context.Context, brand, category, name string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`
  SELECT`+productCols+`
  FROM products p
  JOIN categories c ON c.id = p.category_id
  JOIN brands b ON b.id = c.brand_id
  WHERE b.name = ? AND c.name = ? AND p.name = ?
`), brand, category, name)
	return p, err
}

// Upsert writes the product for (categoryID, name), replacing every field of an
// existing row. Stored content is reset and refilled by enrichment.
func (r *ProductRepo) Upsert(ctx context.Context, categoryID int64, in domain.ProductInput, dateAdded string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO products(
			category_id, name, channel_message_ref, ozon_link, wb_link, ym_link,
			date_added, stored_file_ref, stored_file_type, caption, photo_ref
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, '', '', '', ?)
		ON CONFLICT(category_id, name) DO UPDATE SET
			channel_message_ref = excluded.channel_message_ref,
			ozon_link = excluded.ozon_link,
			wb_link = excluded.wb_link,
			ym_link = excluded.ym_link,
			date_added = excluded.date_added,
			stored_file_ref = '',
			stored_file_type = '',
			caption = '',
			photo_ref = excluded.photo_ref
	`), categoryID, in.Name, in.ChannelMessageRef, in.OzonLink, in.WBLink, in.YMLink, dateAdded, in.PhotoRef)
	return err
}

// Delete removes the product identified by names and reports how many rows went.
func (r *ProductRepo) Delete(ctx context.Context, brand, category, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM products
		WHERE id IN (
			SELECT p.id
			FROM products p
			JOIN categories c ON c.id = p.category_id
			JOIN brands b ON b.id = c.brand_id
			WHERE b.name = ? AND c.name = ? AND p.name = ?
		)
	`), brand, category, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateContentByMessageRef stores archived content on every product built from
// the archive message ref.
func (r *ProductRepo) UpdateContentByMessageRef(ctx context.Context, ref int64, c domain.ArchivedContent) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE products
		SET stored_file_ref = ?, stored_file_type = ?, caption = ?
		WHERE channel_message_ref = ?
	`), c.FileRef, c.FileType, c.Caption, ref)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// ListAll returns every product with its brand and category, grouped in catalog order.
func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.CatalogEntry, error) {
	var out []domain.CatalogEntry
	err := r.db.SelectContext(ctx, &out, `
  SELECT b.name AS brand, c.name AS category,`+productCols+`
  FROM products p
  JOIN categories c ON c.id = p.category_id
  JOIN brands b ON b.id = c.brand_id
  ORDER BY b.id, c.id, p.id
`)
	return out, err
}
