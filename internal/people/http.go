// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package people provides the HTTP delivery layer for person accounts.

This layer is strictly responsible for transport concerns (status codes,
headers, JSON). Validation here covers only the flat sign-in payload; the
nested registration forms are validated by the registration schema layer.
*/
package people

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rookery/internal/platform/middleware"
	requestutil "github.com/taibuivan/rookery/internal/platform/request"
	"github.com/taibuivan/rookery/internal/platform/respond"
	"github.com/taibuivan/rookery/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements account-related HTTP endpoints.
type Handler struct {
	peopleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{peopleService: service}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a JWT.
//   - GET  /me    : Returns the signed-in person's profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.profile)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	Person      *Person `json:"person"`
}

/*
login handles an authentication attempt.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Login, Password)

Response:
  - 200: loginResponse with a signed JWT
  - 400: Validation failure
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.peopleService.Login(request.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		Person:      session.Person,
	})
}

/*
profile returns the signed-in person's account details.

GET /api/v1/auth/me

Response:
  - 200: Person
  - 401: Not authenticated
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.RequiredPersonID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.peopleService.Profile(request.Context(), personID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, person)
}
