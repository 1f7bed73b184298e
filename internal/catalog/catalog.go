// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package catalog provides the product catalog and product reviews.
package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// Error codes attached to catalog service failures.
const (
	CodeMissingFields   = "CATALOG_MISSING_FIELDS"
	CodeInvalidRating   = "CATALOG_INVALID_RATING"
	CodeProductNotFound = "CATALOG_PRODUCT_NOT_FOUND"
	CodeListFailed      = "CATALOG_LIST_FAILED"
	CodeCreateFailed    = "CATALOG_CREATE_FAILED"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Product is a catalog entry.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProduct is the payload for creating a product.
// Description is optional and defaults to the empty string.
type NewProduct struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty"`
}

// Review is a customer review of a product.
type Review struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewReview is the payload for creating a review.
type NewReview struct {
	ProductID  int64  `json:"product_id"`
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// ProductRepository persists products.
type ProductRepository interface {
	// List returns all products, newest first.
	List(ctx context.Context) ([]Product, error)

	// Create stores p and returns the stored row.
	Create(ctx context.Context, p NewProduct) (*Product, error)
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	// List returns reviews newest first, restricted to productID when non-nil.
	List(ctx context.Context, productID *int64) ([]Review, error)

	// Create stores r and returns the stored row. Returns an error wrapping
	// ErrNotFound when the product does not exist.
	Create(ctx context.Context, r NewReview) (*Review, error)
}
