// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/samber/oops"

	"github.com/holomush/shopfront/internal/catalog"
)

// ProductCatalog lists and creates products.
type ProductCatalog interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, p catalog.NewProduct) (*catalog.Product, error)
}

// ReviewCatalog lists and creates reviews.
type ReviewCatalog interface {
	List(ctx context.Context, productID *int64) ([]catalog.Review, error)
	Create(ctx context.Context, r catalog.NewReview) (*catalog.Review, error)
}

// ProductsResponse is the body of a product listing.
type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

// ProductResponse is the body of a created product.
type ProductResponse struct {
	Product *catalog.Product `json:"product"`
}

// ReviewsResponse is the body of a review listing.
type ReviewsResponse struct {
	Reviews []catalog.Review `json:"reviews"`
}

// ReviewResponse is the body of a created review.
type ReviewResponse struct {
	Review *catalog.Review `json:"review"`
}

// ProductsHandler serves the product catalog. Creating a product needs a
// valid session unless the admin requirement is switched off.
type ProductsHandler struct {
	products ProductCatalog
	sessions SessionValidator
	body     *bodyDecoder
	opts     options
}

// NewProductsHandler creates a ProductsHandler. sessions may be nil only
// when WithRequireAdmin(false) is given.
func NewProductsHandler(products ProductCatalog, sessions SessionValidator, opts ...Option) (*ProductsHandler, error) {
	if products == nil {
		return nil, oops.Code("GATEWAY_INVALID_CONFIG").Errorf("product catalog is required")
	}
	o := buildOptions(opts)
	if o.requireAdmin && sessions == nil {
		return nil, oops.Code("GATEWAY_INVALID_CONFIG").Errorf("session validator is required when admin is required")
	}
	return &ProductsHandler{
		products: products,
		sessions: sessions,
		body:     mustBodyDecoder("product", &catalog.NewProduct{}),
		opts:     o,
	}, nil
}

// Handle dispatches on the request method.
func (h *ProductsHandler) Handle(ctx context.Context, e Event) Response {
	switch e.Method {
	case http.MethodOptions:
		return h.opts.cors.preflight(e, "GET, POST, OPTIONS", "Content-Type, "+SessionHeader)
	case http.MethodGet:
		products, err := h.products.List(ctx)
		if err != nil {
			return fail(ctx, h.opts.logger, h.opts.cors, e, err)
		}
		if products == nil {
			products = []catalog.Product{}
		}
		return respond(h.opts.cors, e, http.StatusOK, ProductsResponse{Products: products})
	case http.MethodPost:
		return h.handleCreate(ctx, e)
	default:
		return respondError(h.opts.cors, e, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	}
}

func (h *ProductsHandler) handleCreate(ctx context.Context, e Event) Response {
	if h.opts.requireAdmin {
		token, _ := e.Header(SessionHeader)
		username, ok := h.sessions.Validate(token)
		if !ok {
			return respondError(h.opts.cors, e, http.StatusUnauthorized, MsgUnauthorized)
		}
		h.opts.logger.DebugContext(ctx, "product write authorized", "username", username)
	}

	var p catalog.NewProduct
	if err := h.body.Decode(e.Body, &p); err != nil {
		return fail(ctx, h.opts.logger, h.opts.cors, e, err)
	}
	product, err := h.products.Create(ctx, p)
	if err != nil {
		return fail(ctx, h.opts.logger, h.opts.cors, e, err)
	}
	return respond(h.opts.cors, e, http.StatusCreated, ProductResponse{Product: product})
}

// ReviewsHandler serves product reviews. Anyone may post a review.
type ReviewsHandler struct {
	reviews ReviewCatalog
	body    *bodyDecoder
	opts    options
}

// NewReviewsHandler creates a ReviewsHandler.
func NewReviewsHandler(reviews ReviewCatalog, opts ...Option) (*ReviewsHandler, error) {
	if reviews == nil {
		return nil, oops.Code("GATEWAY_INVALID_CONFIG").Errorf("review catalog is required")
	}
	return &ReviewsHandler{
		reviews: reviews,
		body:    mustBodyDecoder("review", &catalog.NewReview{}),
		opts:    buildOptions(opts),
	}, nil
}

// Handle dispatches on the request method.
func (h *ReviewsHandler) Handle(ctx context.Context, e Event) Response {
	switch e.Method {
	case http.MethodOptions:
		return h.opts.cors.preflight(e, "GET, POST, OPTIONS", "Content-Type")
	case http.MethodGet:
		return h.handleList(ctx, e)
	case http.MethodPost:
		var r catalog.NewReview
		if err := h.body.Decode(e.Body, &r); err != nil {
			return fail(ctx, h.opts.logger, h.opts.cors, e, err)
		}
		review, err := h.reviews.Create(ctx, r)
		if err != nil {
			return fail(ctx, h.opts.logger, h.opts.cors, e, err)
		}
		return respond(h.opts.cors, e, http.StatusCreated, ReviewResponse{Review: review})
	default:
		return respondError(h.opts.cors, e, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	}
}

func (h *ReviewsHandler) handleList(ctx context.Context, e Event) Response {
	var productID *int64
	if raw, ok := e.Query("product_id"); ok && raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respondError(h.opts.cors, e, http.StatusBadRequest, MsgInvalidProductID)
		}
		productID = &id
	}

	reviews, err := h.reviews.List(ctx, productID)
	if err != nil {
		return fail(ctx, h.opts.logger, h.opts.cors, e, err)
	}
	if reviews == nil {
		reviews = []catalog.Review{}
	}
	return respond(h.opts.cors, e, http.StatusOK, ReviewsResponse{Reviews: reviews})
}
