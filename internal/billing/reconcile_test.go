// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rookery/internal/billing"
	"github.com/taibuivan/rookery/internal/platform/apperr"
)

// memoryInvoiceRepository is an in-memory InvoiceRepository for reconciler
// tests. Invoices keep their append order, which matches issue order.
type memoryInvoiceRepository struct {
	invoices []*billing.Invoice
}

func (repository *memoryInvoiceRepository) LatestByPersonID(_ context.Context, personID string) (*billing.Invoice, error) {
	for index := len(repository.invoices) - 1; index >= 0; index-- {
		if repository.invoices[index].PersonID == personID {
			return repository.invoices[index], nil
		}
	}
	return nil, apperr.NotFound("Invoice")
}

func (repository *memoryInvoiceRepository) ListByPersonID(_ context.Context, personID string) ([]*billing.Invoice, error) {
	matches := make([]*billing.Invoice, 0)
	for _, invoice := range repository.invoices {
		if invoice.PersonID == personID {
			matches = append(matches, invoice)
		}
	}
	return matches, nil
}

func (repository *memoryInvoiceRepository) Create(_ context.Context, invoice *billing.Invoice) error {
	repository.invoices = append(repository.invoices, invoice)
	return nil
}

func (repository *memoryInvoiceRepository) ReplaceItems(_ context.Context, invoiceID string, items []billing.InvoiceItem) error {
	for _, invoice := range repository.invoices {
		if invoice.ID == invoiceID {
			invoice.Items = append([]billing.InvoiceItem(nil), items...)
			return nil
		}
	}
	return apperr.NotFound("Invoice")
}

func (repository *memoryInvoiceRepository) MarkPaid(_ context.Context, invoiceID string, paidAt time.Time) error {
	for _, invoice := range repository.invoices {
		if invoice.ID == invoiceID {
			if invoice.PaidAt != nil {
				return apperr.Conflict("Invoice is already paid")
			}
			invoice.PaidAt = &paidAt
			return nil
		}
	}
	return apperr.NotFound("Invoice")
}

func professionalSource() billing.ChargeSource {
	return billing.ChargeSource{
		RegistrationType: billing.TypeProfessional,
		DinnerTickets:    2,
	}
}

/*
TestReconcile_CreatesFirstInvoice checks that a person with no invoice
history gets a fresh invoice carrying the derived items.
*/
func TestReconcile_CreatesFirstInvoice(t *testing.T) {
	repository := &memoryInvoiceRepository{}
	reconciler := billing.NewReconciler(repository)

	invoice, err := reconciler.Reconcile(context.Background(), "person-1", professionalSource())
	require.NoError(t, err)

	require.Len(t, repository.invoices, 1)
	assert.Equal(t, "person-1", invoice.PersonID)
	assert.Len(t, invoice.Items, 3)
	assert.False(t, invoice.Paid())
}

/*
TestReconcile_Idempotent checks the core property: reconciling twice for the
same unpaid state yields exactly one invoice with exactly the derived items.
*/
func TestReconcile_Idempotent(t *testing.T) {
	repository := &memoryInvoiceRepository{}
	reconciler := billing.NewReconciler(repository)

	first, err := reconciler.Reconcile(context.Background(), "person-1", professionalSource())
	require.NoError(t, err)

	second, err := reconciler.Reconcile(context.Background(), "person-1", professionalSource())
	require.NoError(t, err)

	require.Len(t, repository.invoices, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Items, second.Items)
}

/*
TestReconcile_RegeneratesUnpaidItems checks that editing the billable state
rewrites the unpaid invoice's items wholesale instead of appending.
*/
func TestReconcile_RegeneratesUnpaidItems(t *testing.T) {
	repository := &memoryInvoiceRepository{}
	reconciler := billing.NewReconciler(repository)

	_, err := reconciler.Reconcile(context.Background(), "person-1", professionalSource())
	require.NoError(t, err)

	downgraded, err := reconciler.Reconcile(context.Background(), "person-1", billing.ChargeSource{
		RegistrationType: billing.TypeConcession,
	})
	require.NoError(t, err)

	require.Len(t, repository.invoices, 1)
	require.Len(t, downgraded.Items, 1)
	assert.Equal(t, "Student/Concession registration", downgraded.Items[0].Description)
	assert.Equal(t, int64(9900), downgraded.TotalCents())
}

/*
TestReconcile_PaidInvoiceIsImmutable checks that once the latest invoice is
paid, a subsequent edit issues a second invoice and leaves the paid ledger
entry untouched.
*/
func TestReconcile_PaidInvoiceIsImmutable(t *testing.T) {
	repository := &memoryInvoiceRepository{}
	reconciler := billing.NewReconciler(repository)

	paid, err := reconciler.Reconcile(context.Background(), "person-1", professionalSource())
	require.NoError(t, err)
	require.NoError(t, repository.MarkPaid(context.Background(), paid.ID, time.Now()))

	originalItems := append([]billing.InvoiceItem(nil), paid.Items...)

	fresh, err := reconciler.Reconcile(context.Background(), "person-1", billing.ChargeSource{
		RegistrationType: billing.TypeHobbyist,
	})
	require.NoError(t, err)

	require.Len(t, repository.invoices, 2)
	assert.NotEqual(t, paid.ID, fresh.ID)
	assert.Equal(t, originalItems, repository.invoices[0].Items)
	assert.Equal(t, "Hobbyist registration", fresh.Items[0].Description)
}

/*
TestReconcile_PerPersonIsolation checks invoices never cross person
boundaries.
*/
func TestReconcile_PerPersonIsolation(t *testing.T) {
	repository := &memoryInvoiceRepository{}
	reconciler := billing.NewReconciler(repository)

	_, err := reconciler.Reconcile(context.Background(), "person-1", professionalSource())
	require.NoError(t, err)

	_, err = reconciler.Reconcile(context.Background(), "person-2", billing.ChargeSource{
		RegistrationType: billing.TypeConcession,
	})
	require.NoError(t, err)

	require.Len(t, repository.invoices, 2)

	history, err := repository.ListByPersonID(context.Background(), "person-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Professional registration", history[0].Items[0].Description)
}
