// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"time"
)

// # Invoice Data Access

// InvoiceRepository defines the data access contract for invoices and their
// line items. Items are owned by their invoice; they have no independent
// identity.
type InvoiceRepository interface {

	/*
		LatestByPersonID returns the most recently issued invoice for a person,
		with items hydrated in order.

		Parameters:
		  - context: context.Context
		  - personID: string

		Returns:
		  - *Invoice: Hydrated entity
		  - error: apperr.NotFound when the person has no invoices, or
		    database retrieval failures
	*/
	LatestByPersonID(context context.Context, personID string) (*Invoice, error)

	/*
		ListByPersonID returns every invoice for a person, oldest first,
		with items hydrated in order.

		Parameters:
		  - context: context.Context
		  - personID: string

		Returns:
		  - []*Invoice: Invoice history
		  - error: Database retrieval failures
	*/
	ListByPersonID(context context.Context, personID string) ([]*Invoice, error)

	/*
		Create persists a new invoice together with its items.

		Parameters:
		  - context: context.Context
		  - invoice: *Invoice

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, invoice *Invoice) error

	/*
		ReplaceItems atomically drops an invoice's existing items and inserts
		the given replacements in order. Only ever called for unpaid invoices.

		Parameters:
		  - context: context.Context
		  - invoiceID: string
		  - items: []InvoiceItem

		Returns:
		  - error: Persistence failures
	*/
	ReplaceItems(context context.Context, invoiceID string, items []InvoiceItem) error

	/*
		MarkPaid records payment on an invoice. Fails if payment was already
		recorded; a paid invoice is immutable.

		Parameters:
		  - context: context.Context
		  - invoiceID: string
		  - paidAt: time.Time

		Returns:
		  - error: apperr.Conflict if already paid, or persistence failures
	*/
	MarkPaid(context context.Context, invoiceID string, paidAt time.Time) error
}
