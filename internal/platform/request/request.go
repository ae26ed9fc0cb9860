// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/ctxutil"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
	"github.com/taibuivan/gamelibrary/internal/platform/validate"
)

// maxBodyBytes caps the size of JSON payloads accepted by [DecodeJSON].
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return validate.ErrEmptyBody
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID parses a named URL parameter as a positive 64-bit identifier.

Returns:
  - int64: The parsed identifier
  - error: apperr.ValidationError when the segment is not a positive integer
*/
func IntID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredUserID returns the ID of the user the bearer token was issued to.
*/
func RequiredUserID(request *http.Request) (int64, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
