package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	applog "shopbot/internal/log"
)

// OpenDB connects to the catalog database and makes sure the schema is current.
// driver is "sqlite" (modernc) or "postgres" (lib/pq).
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// One connection: keeps :memory: databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := upgradeSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS brands(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY,
  brand_id INTEGER NOT NULL REFERENCES brands(id),
  name TEXT NOT NULL,
  UNIQUE(brand_id, name)
);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY,
  category_id INTEGER NOT NULL REFERENCES categories(id),
  name TEXT NOT NULL,
  channel_message_ref INTEGER NOT NULL,
  ozon_link TEXT NOT NULL DEFAULT '',
  wb_link TEXT NOT NULL DEFAULT '',
  ym_link TEXT NOT NULL DEFAULT '',
  date_added TEXT NOT NULL DEFAULT '',
  stored_file_ref TEXT NOT NULL DEFAULT '',
  stored_file_type TEXT NOT NULL DEFAULT '',
  caption TEXT NOT NULL DEFAULT '',
  photo_ref TEXT NOT NULL DEFAULT '',
  UNIQUE(category_id, name)
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS brands(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS categories(
  id BIGSERIAL PRIMARY KEY,
  brand_id BIGINT NOT NULL REFERENCES brands(id),
  name TEXT NOT NULL,
  UNIQUE(brand_id, name)
);

CREATE TABLE IF NOT EXISTS products(
  id BIGSERIAL PRIMARY KEY,
  category_id BIGINT NOT NULL REFERENCES categories(id),
  name TEXT NOT NULL,
  channel_message_ref BIGINT NOT NULL,
  ozon_link TEXT NOT NULL DEFAULT '',
  wb_link TEXT NOT NULL DEFAULT '',
  ym_link TEXT NOT NULL DEFAULT '',
  date_added TEXT NOT NULL DEFAULT '',
  stored_file_ref TEXT NOT NULL DEFAULT '',
  stored_file_type TEXT NOT NULL DEFAULT '',
  caption TEXT NOT NULL DEFAULT '',
  photo_ref TEXT NOT NULL DEFAULT '',
  UNIQUE(category_id, name)
);
`

// productColumns were added after the first shopbot release; shopbot databases
// created before that get them on open. Tables written by other tools are not
// converted.
var productColumns = []struct{ name, ddl string }{
	{"ozon_link", "TEXT NOT NULL DEFAULT ''"},
	{"wb_link", "TEXT NOT NULL DEFAULT ''"},
	{"ym_link", "TEXT NOT NULL DEFAULT ''"},
	{"stored_file_ref", "TEXT NOT NULL DEFAULT ''"},
	{"stored_file_type", "TEXT NOT NULL DEFAULT ''"},
	{"caption", "TEXT NOT NULL DEFAULT ''"},
	{"photo_ref", "TEXT NOT NULL DEFAULT ''"},
}

func ensureSchema(db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == "postgres" {
		schema = postgresSchema
	}
	_, err := db.Exec(schema)
	return err
}

func upgradeSchema(db *sqlx.DB) error {
	if db.DriverName() == "postgres" {
		for _, c := range productColumns {
			if _, err := db.Exec(fmt.Sprintf(`ALTER TABLE products ADD COLUMN IF NOT EXISTS %s %s`, c.name, c.ddl)); err != nil {
				return err
			}
		}
		_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_products_message_ref ON products(channel_message_ref)`)
		return err
	}

	var cols []struct {
		CID     int     `db:"cid"`
		Name    string  `db:"name"`
		Type    string  `db:"type"`
		NotNull int     `db:"notnull"`
		Default *string `db:"dflt_value"`
		PK      int     `db:"pk"`
	}
	if err := db.Select(&cols, `PRAGMA table_info(products)`); err != nil {
		return err
	}
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c.Name] = true
	}
	if !have["channel_message_ref"] {
		return errors.New("products table has no channel_message_ref column; not a shopbot database")
	}
	for _, c := range productColumns {
		if have[c.name] {
			continue
		}
		applog.Info(context.Background(), "db.schema.add_column", map[string]any{"table": "products", "column": c.name})
		if _, err := db.Exec(fmt.Sprintf(`ALTER TABLE products ADD COLUMN %s %s`, c.name, c.ddl)); err != nil {
			return err
		}
	}
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_products_message_ref ON products(channel_message_ref)`)
	return err
}
