// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package accommodation implements the bookable lodging catalogue.

A Registration references at most one Accommodation, or none at all when the
registrant is self-catered (the "own" sentinel on the form). Nightly cost is
stored in integer cents.
*/
package accommodation

import "time"

// Accommodation is a bookable lodging option offered to registrants.
type Accommodation struct {
	ID string `json:"id"`

	// Name identifies the venue ("Hostel", "University Hall").
	Name string `json:"name"`

	// Option is a sub-option label within the venue ("twin share").
	// Empty when the venue has a single room class.
	Option string `json:"option,omitempty"`

	// CostPerNightCents is the nightly rate in integer cents.
	CostPerNightCents int64 `json:"cost_per_night_cents"`

	// BedsAvailable is the remaining capacity. Listings only surface
	// accommodations with at least one bed left.
	BedsAvailable int `json:"beds_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName renders the name with its sub-option label, matching the
// description used on invoice line items.
func (a *Accommodation) DisplayName() string {
	if a.Option != "" {
		return a.Name + " (" + a.Option + ")"
	}
	return a.Name
}
