// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package people implements the registrant identity layer.

It defines the Person entity and the sign-in flow used to bind a submitted
registration form to an existing account.

# Architecture

Entities defined here have no delivery-layer dependencies. The uniqueness of
email address and handle across all Persons is a business invariant enforced
by the registration schema's cross-entity rules (read-before-write under the
per-person lock) and backed by unique indexes in storage.
*/
package people

import "time"

// # Domain Entities

// Person represents an account holder: someone who has registered, or is
// registering, for the conference.
type Person struct {
	ID           string    `json:"id"`
	EmailAddress string    `json:"email_address"`
	Handle       string    `json:"handle"`
	Fullname     string    `json:"fullname"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	URLHash      string    `json:"-"` // Opaque token used in confirmation-email links.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the people domain.
const (
	FieldEmailAddress    = "email_address"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldFullname        = "fullname"
	FieldHandle          = "handle"
	FieldLogin           = "login"
)
