// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// ProductService lists and creates products.
type ProductService struct {
	repo   ProductRepository
	logger *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(repo ProductRepository, logger *slog.Logger) (*ProductService, error) {
	if repo == nil {
		return nil, oops.Code("CATALOG_INVALID_CONFIG").Errorf("product repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{repo: repo, logger: logger}, nil
}

// List returns every product, newest first.
func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		// Not wrapped: oops reports the deepest code in a chain, and the
		// repository codes would hide this one.
		return nil, oops.Code(CodeListFailed).
			With("operation", "list products").
			With("cause", err.Error()).
			Errorf("list products: %v", err)
	}
	return products, nil
}

// Create validates p and stores it. Name, price, category and image are
// required; an empty string or zero price counts as missing.
func (s *ProductService) Create(ctx context.Context, p NewProduct) (*Product, error) {
	if p.Name == "" || p.Price == 0 || p.Category == "" || p.Image == "" {
		return nil, oops.Code(CodeMissingFields).Errorf("missing required fields")
	}

	product, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, oops.Code(CodeCreateFailed).
			With("operation", "create product").
			With("name", p.Name).
			With("cause", err.Error()).
			Errorf("create product: %v", err)
	}
	s.logger.InfoContext(ctx, "product created", "product_id", product.ID, "category", product.Category)
	return product, nil
}

// ReviewService lists and creates reviews.
type ReviewService struct {
	repo   ReviewRepository
	logger *slog.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(repo ReviewRepository, logger *slog.Logger) (*ReviewService, error) {
	if repo == nil {
		return nil, oops.Code("CATALOG_INVALID_CONFIG").Errorf("review repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{repo: repo, logger: logger}, nil
}

// List returns reviews newest first, optionally for one product.
func (s *ReviewService) List(ctx context.Context, productID *int64) ([]Review, error) {
	reviews, err := s.repo.List(ctx, productID)
	if err != nil {
		e := oops.Code(CodeListFailed).With("operation", "list reviews").With("cause", err.Error())
		if productID != nil {
			e = e.With("product_id", *productID)
		}
		return nil, e.Errorf("list reviews: %v", err)
	}
	return reviews, nil
}

// Create validates r and stores it. Every field is required and the rating
// must lie in [MinRating, MaxRating].
func (s *ReviewService) Create(ctx context.Context, r NewReview) (*Review, error) {
	if r.ProductID == 0 || r.AuthorName == "" || r.Rating == 0 || r.Comment == "" {
		return nil, oops.Code(CodeMissingFields).Errorf("missing required fields")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return nil, oops.Code(CodeInvalidRating).
			With("rating", r.Rating).
			Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}

	review, err := s.repo.Create(ctx, r)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeProductNotFound).
				With("product_id", r.ProductID).
				Errorf("product not found")
		}
		return nil, oops.Code(CodeCreateFailed).
			With("operation", "create review").
			With("product_id", r.ProductID).
			With("cause", err.Error()).
			Errorf("create review: %v", err)
	}
	s.logger.InfoContext(ctx, "review created", "review_id", review.ID, "product_id", review.ProductID)
	return review, nil
}
