// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

// # Registration Types
//
// The registration type set is owned by billing because each type is
// defined by its fee. The registration schema validates submitted types
// against [RegistrationTypes] up front, so derivation normally never sees
// an unknown value.

const (
	TypeProfessional = "Professional"
	TypeHobbyist     = "Hobbyist"
	TypeConcession   = "Concession"
)

// RegistrationTypes returns the closed set of valid registration types in
// display order.
func RegistrationTypes() []string {
	return []string{TypeProfessional, TypeHobbyist, TypeConcession}
}

// # Fees (integer cents)

const (
	// ProfessionalFeeCents includes one conference dinner ticket.
	ProfessionalFeeCents int64 = 69000

	// HobbyistFeeCents is the standard non-corporate rate.
	HobbyistFeeCents int64 = 30000

	// ConcessionFeeCents is the student/concession rate.
	ConcessionFeeCents int64 = 9900

	// DinnerTicketCents is the per-ticket rate for additional dinner tickets.
	DinnerTicketCents int64 = 6000
)

// # Line Item Descriptions

const (
	descProfessional   = "Professional registration"
	descHobbyist       = "Hobbyist registration"
	descConcession     = "Student/Concession registration"
	descIncludedDinner = "Penguin Dinner ticket (included in registration)"
	descExtraDinner    = "Additional Penguin dinner tickets"
	descAccommodation  = "Accommodation - "
)
