// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package postgres provides PostgreSQL repositories for the catalog.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/holomush/shopfront/internal/catalog"
	"github.com/holomush/shopfront/internal/store"
)

// ProductRepository implements catalog.ProductRepository.
type ProductRepository struct {
	pool store.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool store.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns every product, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price, category, image, description, created_at
		FROM products
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, oops.Code("PRODUCT_QUERY_FAILED").
			With("operation", "list products").
			Wrap(err)
	}
	defer rows.Close()

	products := make([]catalog.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, oops.Code("PRODUCT_SCAN_FAILED").Wrap(err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PRODUCT_ITERATE_FAILED").Wrap(err)
	}
	return products, nil
}

// Create inserts p and returns the stored product.
func (r *ProductRepository) Create(ctx context.Context, p catalog.NewProduct) (*catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, category, image, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, price, category, image, description, created_at
	`, p.Name, p.Price, p.Category, p.Image, p.Description)

	product, err := scanProduct(row)
	if err != nil {
		return nil, oops.Code("PRODUCT_CREATE_FAILED").
			With("operation", "insert product").
			With("name", p.Name).
			Wrap(err)
	}
	return product, nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Description, &p.CreatedAt); err != nil {
		return nil, err //nolint:wrapcheck // callers attach context
	}
	return &p, nil
}

// Compile-time interface check.
var _ catalog.ProductRepository = (*ProductRepository)(nil)
