package storage

import (
	"context"
	"fmt"
	"log"
)

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGSERIAL PRIMARY KEY,
		category TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS menu_items_category_title_idx ON menu_items (category, title)`,
	`CREATE TABLE IF NOT EXISTS cafe_tables (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		seats INT NOT NULL CHECK (seats > 0),
		zone TEXT NOT NULL DEFAULT 'main',
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		table_id BIGINT NOT NULL REFERENCES cafe_tables(id),
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		guests INT NOT NULL CHECK (guests > 0),
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (end_at > start_at),
		CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
			table_id WITH =,
			tstzrange(start_at, end_at, '[)') WITH &&
		) WHERE (status IN ('pending', 'confirmed'))
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		scheduled_for TIMESTAMPTZ,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT,
		comment TEXT NOT NULL DEFAULT '',
		total_cents BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		menu_item_id BIGINT NOT NULL REFERENCES menu_items(id),
		title TEXT NOT NULL DEFAULT '',
		qty INT NOT NULL CHECK (qty > 0),
		unit_price_cents BIGINT NOT NULL,
		comment TEXT NOT NULL DEFAULT ''
	)`,
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedIfEmpty inserts the default floor plan and, on an empty menu, the
// reference menu.
func (r *PostgresRepository) SeedIfEmpty(ctx context.Context) error {
	for _, t := range SeedTables() {
		if _, err := r.DB.ExecContext(ctx, `
			INSERT INTO cafe_tables (code, seats, zone) VALUES ($1, $2, $3)
			ON CONFLICT (code) DO NOTHING
		`, t.Code, t.Seats, t.Zone); err != nil {
			return fmt.Errorf("seed table %s: %w", t.Code, err)
		}
	}

	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, it := range ReferenceMenu() {
		if _, err := r.DB.ExecContext(ctx, `
			INSERT INTO menu_items (category, title, description, price_cents) VALUES ($1, $2, $3, $4)
		`, it.Category, it.Title, it.Description, it.PriceCents); err != nil {
			return fmt.Errorf("seed menu item %q: %w", it.Title, err)
		}
	}
	log.Printf("Seeded %d menu items", len(ReferenceMenu()))
	return nil
}

// ApplyReferenceMenu deactivates the whole menu and then reactivates or
// inserts every reference item. Old rows stay so historical orders resolve.
func (r *PostgresRepository) ApplyReferenceMenu(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE menu_items SET is_active = FALSE`); err != nil {
		return err
	}

	for _, it := range ReferenceMenu() {
		res, err := tx.ExecContext(ctx, `
			UPDATE menu_items SET description = $3, price_cents = $4, is_active = TRUE
			WHERE id = (SELECT id FROM menu_items WHERE category = $1 AND title = $2 ORDER BY id LIMIT 1)
		`, it.Category, it.Title, it.Description, it.PriceCents)
		if err != nil {
			return fmt.Errorf("update reference item %q: %w", it.Title, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO menu_items (category, title, description, price_cents, is_active)
			VALUES ($1, $2, $3, $4, TRUE)
		`, it.Category, it.Title, it.Description, it.PriceCents); err != nil {
			return fmt.Errorf("insert reference item %q: %w", it.Title, err)
		}
	}

	return tx.Commit()
}
