// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rookery/internal/accommodation"
	"github.com/taibuivan/rookery/internal/billing"
)

/*
TestDeriveLineItems_ProfessionalFullStay checks the full derivation:
Professional base fee with its included dinner, two extra dinner tickets,
and a three-night hostel stay.
*/
func TestDeriveLineItems_ProfessionalFullStay(t *testing.T) {
	hostel := &accommodation.Accommodation{
		ID:                "acc-1",
		Name:              "Hostel",
		CostPerNightCents: 4000,
	}

	items := billing.DeriveLineItems(billing.ChargeSource{
		RegistrationType: billing.TypeProfessional,
		DinnerTickets:    2,
		Accommodation:    hostel,
		Checkin:          3,
		Checkout:         6,
	})

	require.Len(t, items, 4)

	assert.Equal(t, "Professional registration", items[0].Description)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(69000), items[0].UnitCostCents)

	assert.Equal(t, "Penguin Dinner ticket (included in registration)", items[1].Description)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, int64(0), items[1].UnitCostCents)

	assert.Equal(t, "Additional Penguin dinner tickets", items[2].Description)
	assert.Equal(t, 2, items[2].Quantity)
	assert.Equal(t, int64(6000), items[2].UnitCostCents)

	assert.Equal(t, "Accommodation - Hostel", items[3].Description)
	assert.Equal(t, 3, items[3].Quantity)
	assert.Equal(t, int64(4000), items[3].UnitCostCents)
}

/*
TestDeriveLineItems_ConcessionBare checks the minimal derivation: concession
fee only, no dinner, self-catered.
*/
func TestDeriveLineItems_ConcessionBare(t *testing.T) {
	items := billing.DeriveLineItems(billing.ChargeSource{
		RegistrationType: billing.TypeConcession,
		DinnerTickets:    0,
		Accommodation:    nil,
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Student/Concession registration", items[0].Description)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(9900), items[0].UnitCostCents)
}

/*
TestDeriveLineItems_HobbyistNoIncludedDinner checks that only Professional
carries the zero-cost included-dinner line.
*/
func TestDeriveLineItems_HobbyistNoIncludedDinner(t *testing.T) {
	items := billing.DeriveLineItems(billing.ChargeSource{
		RegistrationType: billing.TypeHobbyist,
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Hobbyist registration", items[0].Description)
	assert.Equal(t, int64(30000), items[0].UnitCostCents)
}

/*
TestDeriveLineItems_SubOptionLabel checks the accommodation description
includes the sub-option label when present.
*/
func TestDeriveLineItems_SubOptionLabel(t *testing.T) {
	items := billing.DeriveLineItems(billing.ChargeSource{
		RegistrationType: billing.TypeHobbyist,
		Accommodation: &accommodation.Accommodation{
			ID:                "acc-2",
			Name:              "University Hall",
			Option:            "twin share",
			CostPerNightCents: 5500,
		},
		Checkin:  1,
		Checkout: 2,
	})

	require.Len(t, items, 2)
	assert.Equal(t, "Accommodation - University Hall (twin share)", items[1].Description)
	assert.Equal(t, 1, items[1].Quantity)
}

/*
TestDeriveLineItems_UnknownTypeFallback checks the defensive bare line for a
type value that slipped past validation.
*/
func TestDeriveLineItems_UnknownTypeFallback(t *testing.T) {
	items := billing.DeriveLineItems(billing.ChargeSource{
		RegistrationType: "Lifetime",
	})

	require.Len(t, items, 1)
	assert.Empty(t, items[0].Description)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(0), items[0].UnitCostCents)
}

/*
TestDeriveLineItems_Deterministic checks that repeated derivation from the
same source yields identical items, the property reconciliation relies on.
*/
func TestDeriveLineItems_Deterministic(t *testing.T) {
	source := billing.ChargeSource{
		RegistrationType: billing.TypeProfessional,
		DinnerTickets:    1,
	}

	assert.Equal(t, billing.DeriveLineItems(source), billing.DeriveLineItems(source))
}
