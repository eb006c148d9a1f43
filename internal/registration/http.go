// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rookery/internal/platform/form"
	"github.com/taibuivan/rookery/internal/platform/middleware"
	requestutil "github.com/taibuivan/rookery/internal/platform/request"
	"github.com/taibuivan/rookery/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the registration intake endpoints.
type Handler struct {
	registrationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{registrationService: service}
}

// Routes returns a [chi.Router] configured with registration routes.
//
// # Endpoints
//   - POST /  : Submits a registration (anonymous or authenticated).
//   - PUT  /  : Re-saves the signed-in person's registration.
//   - GET  /  : Returns the signed-in person's registration.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Anonymous submissions create the account in the same request, so the
	// create route stays public; the variant is picked from the session.
	router.Post("/", handler.create)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.mine)
		r.Put("/", handler.edit)
	})

	return router
}

// conflictCodes are the validation failures that map to 409 rather than 400:
// the submission is well-formed but collides with persisted state.
var conflictCodes = []form.Code{
	CodeDuplicateEmail,
	CodeDuplicateHandle,
	CodeAlreadyRegistered,
}

// formErrorStatus picks the HTTP status for a validation error tree.
func formErrorStatus(tree *form.ErrorTree) int {
	for _, code := range conflictCodes {
		if tree.HasCode(code) {
			return http.StatusConflict
		}
	}
	return http.StatusBadRequest
}

/*
create handles a registration submission.

POST /api/v1/registrations

Request:
  - Body: form-encoded nested payload ("person.email_address",
    "registration.type", repeated keys for multi-selects). Anonymous
    requests must include the person group; authenticated requests submit
    the registration group only.

Response:
  - 201: Outcome (person, registration, invoice)
  - 400: Validation error tree
  - 409: Duplicate account or already registered (tree carries the code)
  - 423: Another submission for this person is in progress
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.DecodeForm(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var (
		outcome *Outcome
		errTree *form.ErrorTree
	)

	if claims := requestutil.Claims(request); claims != nil {
		outcome, errTree, err = handler.registrationService.CreateForPerson(request.Context(), input, claims.PersonID)
	} else {
		outcome, errTree, err = handler.registrationService.CreateNew(request.Context(), input)
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if errTree != nil {
		respond.FormErrors(writer, formErrorStatus(errTree), errTree)
		return
	}

	respond.Created(writer, outcome)
}

/*
edit re-saves the signed-in person's registration and reconciles the invoice.

PUT /api/v1/registrations

Request:
  - Body: form-encoded nested payload (registration group).

Response:
  - 200: Outcome (person, registration, reconciled invoice)
  - 400: Validation error tree
  - 401: Not authenticated
  - 404: No registration to edit
  - 423: Another submission for this person is in progress
*/
func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.RequiredPersonID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := requestutil.DecodeForm(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	outcome, errTree, err := handler.registrationService.Edit(request.Context(), input, personID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if errTree != nil {
		respond.FormErrors(writer, formErrorStatus(errTree), errTree)
		return
	}

	respond.OK(writer, outcome)
}

/*
mine returns the signed-in person's registration.

GET /api/v1/registrations

Response:
  - 200: Registration
  - 401: Not authenticated
  - 404: Not registered yet
*/
func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.RequiredPersonID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	registration, err := handler.registrationService.Registration(request.Context(), personID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, registration)
}
