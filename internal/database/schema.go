package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the storefront. Statements are idempotent so
// Migrate can run on every start.
const Schema = `
	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		subcategories TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		images TEXT[] NOT NULL DEFAULT '{}',
		category_id UUID NOT NULL REFERENCES categories(id),
		subcategory TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL DEFAULT 0,
		discount NUMERIC(10, 2) NOT NULL DEFAULT 0,
		features TEXT[] NOT NULL DEFAULT '{}',
		rating NUMERIC(3, 2) NOT NULL DEFAULT 4.5,
		num_reviews INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		rating INT NOT NULL,
		comment TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		customer_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		total_amount NUMERIC(12, 2) NOT NULL,
		amount_due NUMERIC(12, 2) NOT NULL,
		amount_paid NUMERIC(12, 2) NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'INR',
		gateway_order_id TEXT NOT NULL UNIQUE,
		payment_id TEXT NOT NULL DEFAULT '',
		payment_status TEXT NOT NULL DEFAULT 'pending',
		status TEXT NOT NULL DEFAULT 'created',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL,
		price NUMERIC(10, 2) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cart_items (
		user_id TEXT NOT NULL,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INT NOT NULL,
		PRIMARY KEY (user_id, product_id)
	);

	CREATE TABLE IF NOT EXISTS wishlist_items (
		user_id TEXT NOT NULL,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		added_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, product_id)
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);
	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
