// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rookery/internal/platform/apperr"
	"github.com/taibuivan/rookery/internal/platform/ctxutil"
	"github.com/taibuivan/rookery/internal/platform/form"
	"github.com/taibuivan/rookery/internal/platform/sec"
	"github.com/taibuivan/rookery/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeForm parses a form-encoded body and groups its flat dotted keys into a
nested [form.Tree] (e.g. "person.email_address" under the "person" group).

Returns:
  - *form.Tree: The grouped payload
  - error: apperr.ValidationError if the body cannot be parsed
*/
func DecodeForm(request *http.Request) (*form.Tree, error) {
	if err := request.ParseForm(); err != nil {
		return nil, apperr.ValidationError("Invalid form payload")
	}
	return form.Decode(request.PostForm), nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated person claims from the request context.

Returns nil if the request is anonymous.
*/
func Claims(request *http.Request) *sec.PersonClaims {
	return ctxutil.GetPerson(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the claims.

Returns:
  - *sec.PersonClaims: The authenticated person claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.PersonClaims, error) {

	// Get person claims
	claims := ctxutil.GetPerson(request.Context())

	// If the person is not signed in, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredPersonID returns the Person ID of the currently signed-in person.

Returns:
  - string: Person UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredPersonID(request *http.Request) (string, error) {

	// Get person claims
	claims, err := RequiredClaims(request)

	// If the person is not signed in, return an error
	if err != nil {
		return "", err
	}

	return claims.PersonID, nil
}
