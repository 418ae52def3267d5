package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/model"
)

func (db *Postgres) EnsureProductSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			image TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS products_category_idx ON products(category)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const productColumns = `id, name, description, price, image, category, is_featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Category,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (db *Postgres) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	query := `
		INSERT INTO products (name, description, price, image, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + productColumns
	var p model.Product
	err := scanProduct(db.Pool.QueryRow(ctx, query, req.Name, req.Description, req.Price, req.Image, req.Category), &p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (db *Postgres) GetProductList(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return db.queryProducts(ctx, query)
}

func (db *Postgres) GetFeaturedProducts(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_featured ORDER BY created_at DESC`
	return db.queryProducts(ctx, query)
}

func (db *Postgres) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`
	return db.queryProducts(ctx, query, category)
}

func (db *Postgres) ToggleFeaturedProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		UPDATE products
		SET is_featured = NOT is_featured, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns
	var p model.Product
	if err := scanProduct(db.Pool.QueryRow(ctx, query, id), &p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (db *Postgres) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Postgres) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Product{}
	}
	return list, nil
}
