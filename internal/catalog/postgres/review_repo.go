// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/holomush/shopfront/internal/catalog"
	"github.com/holomush/shopfront/internal/store"
)

// ReviewRepository implements catalog.ReviewRepository.
type ReviewRepository struct {
	pool store.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(pool store.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// List returns reviews newest first. A non-nil productID restricts the
// result to that product.
func (r *ReviewRepository) List(ctx context.Context, productID *int64) ([]catalog.Review, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if productID != nil {
		rows, err = r.pool.Query(ctx, `
			SELECT id, product_id, author_name, rating, comment, created_at
			FROM reviews
			WHERE product_id = $1
			ORDER BY created_at DESC, id DESC
		`, *productID)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, product_id, author_name, rating, comment, created_at
			FROM reviews
			ORDER BY created_at DESC, id DESC
		`)
	}
	if err != nil {
		return nil, oops.Code("REVIEW_QUERY_FAILED").
			With("operation", "list reviews").
			Wrap(err)
	}
	defer rows.Close()

	reviews := make([]catalog.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, oops.Code("REVIEW_SCAN_FAILED").Wrap(err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("REVIEW_ITERATE_FAILED").Wrap(err)
	}
	return reviews, nil
}

// Create inserts rv. A missing product surfaces as catalog.ErrNotFound.
func (r *ReviewRepository) Create(ctx context.Context, rv catalog.NewReview) (*catalog.Review, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (product_id, author_name, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, author_name, rating, comment, created_at
	`, rv.ProductID, rv.AuthorName, rv.Rating, rv.Comment)

	review, err := scanReview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, oops.Code("REVIEW_PRODUCT_MISSING").
				With("product_id", rv.ProductID).
				Wrap(catalog.ErrNotFound)
		}
		return nil, oops.Code("REVIEW_CREATE_FAILED").
			With("operation", "insert review").
			With("product_id", rv.ProductID).
			Wrap(err)
	}
	return review, nil
}

func scanReview(row pgx.Row) (*catalog.Review, error) {
	var rv catalog.Review
	if err := row.Scan(&rv.ID, &rv.ProductID, &rv.AuthorName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
		return nil, err //nolint:wrapcheck // callers attach context
	}
	return &rv, nil
}

// Compile-time interface check.
var _ catalog.ReviewRepository = (*ReviewRepository)(nil)
