// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package people

import "context"

// # Person Data Access

// Repository defines the data access contract for person accounts.
type Repository interface {

	/*
		FindByID returns the person with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Person: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Person, error)

	/*
		FindByEmail returns the person with the given email address.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Person: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Person, error)

	/*
		FindByHandle returns the person with the given display handle.

		Parameters:
		  - context: context.Context
		  - handle: string

		Returns:
		  - *Person: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByHandle(context context.Context, handle string) (*Person, error)

	/*
		Create persists a brand-new person account to the storage.

		Parameters:
		  - context: context.Context
		  - person: *Person

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, person *Person) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - person: *Person

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, person *Person) error
}
