// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rookery/internal/platform/middleware"
	requestutil "github.com/taibuivan/rookery/internal/platform/request"
	"github.com/taibuivan/rookery/internal/platform/respond"
)

// Handler implements the invoice read endpoints. Invoices are never created
// through this surface; they are produced by reconciliation when a
// registration is created or edited.
type Handler struct {
	invoices InvoiceRepository
}

// NewHandler constructs a new [Handler].
func NewHandler(invoices InvoiceRepository) *Handler {
	return &Handler{invoices: invoices}
}

// Routes returns a [chi.Router] with the invoice routes. All routes require
// authentication; a person can only see their own invoices.
//
// # Endpoints
//   - GET /        : Lists the signed-in person's invoice history.
//   - GET /latest  : Returns the signed-in person's current invoice.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
		r.Get("/latest", handler.latest)
	})

	return router
}

/*
list returns the signed-in person's full invoice history, oldest first.

GET /api/v1/invoices

Response:
  - 200: []Invoice with items
  - 401: Not authenticated
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.RequiredPersonID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	invoices, err := handler.invoices.ListByPersonID(request.Context(), personID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, invoices)
}

/*
latest returns the signed-in person's most recently issued invoice.

GET /api/v1/invoices/latest

Response:
  - 200: Invoice with items
  - 401: Not authenticated
  - 404: No invoices yet
*/
func (handler *Handler) latest(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.RequiredPersonID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	invoice, err := handler.invoices.LatestByPersonID(request.Context(), personID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, invoice)
}
