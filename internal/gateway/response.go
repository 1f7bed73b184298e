// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/holomush/shopfront/internal/auth"
	"github.com/holomush/shopfront/internal/catalog"
	"github.com/holomush/shopfront/pkg/errutil"
)

// Client-facing error messages.
const (
	MsgCredentialsRequired = "Username and password required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgUnauthorized        = "Unauthorized"
	MsgMissingFields       = "Missing required fields"
	MsgInvalidRating       = "Rating must be between 1 and 5"
	MsgInvalidProductID    = "Invalid product_id"
	MsgProductNotFound     = "Product not found"
	MsgInvalidBody         = "Invalid request body"
	MsgNotFound            = "Not found"
	MsgInternal            = "Internal server error"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// respond renders body as JSON with the CORS headers for e. A nil body
// produces an empty response without a Content-Type.
func respond(cors *CORS, e Event, status int, body any) Response {
	headers := cors.headers(e)
	if body == nil {
		return Response{StatusCode: status, Headers: headers}
	}

	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"` + MsgInternal + `"}`)
	}
	headers["Content-Type"] = "application/json"
	return Response{StatusCode: status, Headers: headers, Body: string(data)}
}

func respondError(cors *CORS, e Event, status int, msg string) Response {
	return respond(cors, e, status, ErrorBody{Error: msg})
}

// classify maps err to a status code and client message. Only errors
// created directly with a known code are mapped; anything else is a 500
// carrying the error's own message.
func classify(err error) (int, string) {
	switch errutil.Code(err) {
	case auth.CodeInvalidInput:
		return http.StatusBadRequest, MsgCredentialsRequired
	case auth.CodeInvalidCredentials:
		return http.StatusUnauthorized, MsgInvalidCredentials
	case catalog.CodeMissingFields:
		return http.StatusBadRequest, MsgMissingFields
	case catalog.CodeInvalidRating:
		return http.StatusBadRequest, MsgInvalidRating
	case catalog.CodeProductNotFound:
		return http.StatusNotFound, MsgProductNotFound
	case CodeInvalidBody:
		return http.StatusBadRequest, MsgInvalidBody
	}

	msg := err.Error()
	if msg == "" {
		msg = MsgInternal
	}
	return http.StatusInternalServerError, msg
}

// fail renders err, logging server-side failures.
func fail(ctx context.Context, logger *slog.Logger, cors *CORS, e Event, err error) Response {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		errutil.LogErrorContext(ctx, logger, "request failed", err)
	}
	return respondError(cors, e, status, msg)
}
