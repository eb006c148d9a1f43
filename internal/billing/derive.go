// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"github.com/taibuivan/rookery/internal/accommodation"
)

// ChargeSource captures the billable slice of a registration's current
// state. It is built by the registration service after validation, so
// derivation never depends on the registration package or re-validates.
type ChargeSource struct {
	// RegistrationType selects the base fee (Professional, Hobbyist,
	// Concession).
	RegistrationType string

	// DinnerTickets is the count of additional conference dinner tickets.
	DinnerTickets int

	// Accommodation is the resolved lodging choice, nil when self-catered.
	Accommodation *accommodation.Accommodation

	// Checkin and Checkout are day offsets; their difference is the number
	// of nights billed.
	Checkin  int
	Checkout int
}

// Nights returns the billed night count for the accommodation line.
func (source ChargeSource) Nights() int {
	return source.Checkout - source.Checkin
}

// DeriveLineItems deterministically computes the invoice line items implied
// by the registration's current choices, in fixed order:
//
//  1. Base registration fee by type. Professional additionally carries a
//     zero-cost "dinner included" line.
//  2. Additional dinner tickets, only when the count is positive.
//  3. Accommodation nights, only when an accommodation is booked.
//
// The function is pure: calling it twice with the same source yields the
// same items, which is what makes reconciliation idempotent.
//
// An unrecognized type emits a bare base line (no description, no cost)
// rather than failing; the schema layer validates the type as a closed set,
// so this branch only fires on data written before that rule existed.
func DeriveLineItems(source ChargeSource) []InvoiceItem {
	items := make([]InvoiceItem, 0, 4)

	switch source.RegistrationType {
	case TypeProfessional:
		items = append(items,
			InvoiceItem{Description: descProfessional, Quantity: 1, UnitCostCents: ProfessionalFeeCents},
			InvoiceItem{Description: descIncludedDinner, Quantity: 1, UnitCostCents: 0},
		)
	case TypeHobbyist:
		items = append(items,
			InvoiceItem{Description: descHobbyist, Quantity: 1, UnitCostCents: HobbyistFeeCents},
		)
	case TypeConcession:
		items = append(items,
			InvoiceItem{Description: descConcession, Quantity: 1, UnitCostCents: ConcessionFeeCents},
		)
	default:
		items = append(items, InvoiceItem{Quantity: 1})
	}

	if source.DinnerTickets > 0 {
		items = append(items, InvoiceItem{
			Description:   descExtraDinner,
			Quantity:      source.DinnerTickets,
			UnitCostCents: DinnerTicketCents,
		})
	}

	if source.Accommodation != nil {
		items = append(items, InvoiceItem{
			Description:   descAccommodation + source.Accommodation.DisplayName(),
			Quantity:      source.Nights(),
			UnitCostCents: source.Accommodation.CostPerNightCents,
		})
	}

	return items
}
