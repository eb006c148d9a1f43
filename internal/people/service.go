// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package people

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/rookery/internal/platform/apperr"
	"github.com/taibuivan/rookery/internal/platform/constants"
	"github.com/taibuivan/rookery/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given person.
	GenerateAccessToken(personID, handle string, timeToLive time.Duration) (string, error)
}

// Service implements sign-in and profile use cases for person accounts.
//
// Account creation is deliberately absent: new Persons are only ever created
// by the registration intake flow, which validates uniqueness and builds the
// first invoice in the same serialized sequence.
type Service struct {
	repository    Repository
	tokenProvider TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, tokenProvider TokenProvider) *Service {
	return &Service{
		repository:    repository,
		tokenProvider: tokenProvider,
	}
}

// # Sign-In Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be the handle or the email address
	Password string
}

// LoginSession represents a successfully established sign-in.
type LoginSession struct {
	AccessToken string
	Person      *Person
}

/*
Login validates person credentials and issues an access token.

Description: Verifies identity by email or handle, performs constant-time
password comparison, and returns a signed JWT carrying the person claims
the registration endpoints use to pick their schema variant.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// Flexible login: look up by email address or handle
	person, err := service.repository.FindByEmail(context, input.Login)
	if err != nil {
		person, err = service.repository.FindByHandle(context, input.Login)
	}

	// If (err != nil) the person does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, person.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(person.ID, person.Handle, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("people_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		Person:      person,
	}, nil
}

// # Profile

/*
Profile returns the account details of a signed-in person.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - *Person: Hydrated entity
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Profile(context context.Context, personID string) (*Person, error) {
	person, err := service.repository.FindByID(context, personID)
	if err != nil {
		return nil, err
	}
	return person, nil
}
