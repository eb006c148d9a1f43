// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package accommodation

import "context"

// # Accommodation Data Access

// Repository defines the data access contract for the lodging catalogue.
type Repository interface {

	/*
		FindByID returns the accommodation with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Accommodation: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Accommodation, error)

	/*
		ListAvailable returns all accommodations with at least one bed left,
		ordered by name for stable form rendering.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Accommodation: Available options
		  - error: Database retrieval failures
	*/
	ListAvailable(context context.Context) ([]*Accommodation, error)
}
