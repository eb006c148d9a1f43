// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package accommodation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rookery/internal/platform/respond"
)

// Handler implements the accommodation listing endpoint the registration
// form uses to populate its lodging selector.
type Handler struct {
	repository Repository
}

// NewHandler constructs a new [Handler].
func NewHandler(repository Repository) *Handler {
	return &Handler{repository: repository}
}

// Routes returns a [chi.Router] with the accommodation routes.
//
// # Endpoints
//   - GET / : Lists accommodations with at least one bed available.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	return router
}

/*
list returns the available accommodation options.

GET /api/v1/accommodations

Response:
  - 200: []Accommodation (beds_available >= 1 only)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	accommodations, err := handler.repository.ListAvailable(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, accommodations)
}
