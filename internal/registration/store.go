// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import "context"

// # Registration Data Access

// Repository defines the data access contract for registrations.
type Repository interface {

	/*
		FindByPersonID returns the registration owned by the given person.

		Parameters:
		  - context: context.Context
		  - personID: string

		Returns:
		  - *Registration: Hydrated entity
		  - error: apperr.NotFound when the person has no registration, or
		    database retrieval failures
	*/
	FindByPersonID(context context.Context, personID string) (*Registration, error)

	/*
		Create persists a brand-new registration to the storage.

		Parameters:
		  - context: context.Context
		  - registration: *Registration

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, registration *Registration) error

	/*
		Update persists changes to an existing registration.

		Parameters:
		  - context: context.Context
		  - registration: *Registration

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, registration *Registration) error
}
