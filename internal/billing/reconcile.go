// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/rookery/internal/platform/ctxutil"
	"github.com/taibuivan/rookery/internal/platform/dberr"
	"github.com/taibuivan/rookery/pkg/uuidv7"
)

// Reconciler keeps a person's invoice history in sync with their
// registration's current billable state.
//
// # Contract
//
// The caller guarantees the registration has already passed validation and
// that the whole validate-through-commit sequence is serialized per person.
// Reconcile has no independent error channel: persistence failures are
// fatal to the request (there is no compensating-transaction logic for a
// half-written invoice).
type Reconciler struct {
	invoices InvoiceRepository
}

// NewReconciler constructs a [Reconciler].
func NewReconciler(invoices InvoiceRepository) *Reconciler {
	return &Reconciler{invoices: invoices}
}

/*
Reconcile regenerates the person's current invoice from the registration's
billable state. Safe to call after every create and every edit.

Description: Selects the target invoice — none yet → create; latest paid →
create a new one (paid invoices are immutable ledger entries); latest
unpaid → discard and regenerate its items wholesale. Repeating the call for
the same state yields the same single invoice with the same items.

Parameters:
  - context: context.Context
  - personID: string (Owner of the invoice history)
  - source: ChargeSource (Billable slice of the registration)

Returns:
  - *Invoice: The committed invoice reflecting the current state
  - error: Persistence failures (fatal to the caller)
*/
func (reconciler *Reconciler) Reconcile(context context.Context, personID string, source ChargeSource) (*Invoice, error) {
	items := DeriveLineItems(source)

	latest, err := reconciler.invoices.LatestByPersonID(context, personID)
	if err != nil && !dberr.IsNotFound(err) {
		return nil, fmt.Errorf("billing_reconcile_lookup_failed: %w", err)
	}

	// Reuse path: the latest invoice is unpaid, so its items are fully
	// regenerated in place.
	if err == nil && !latest.Paid() {
		if err := reconciler.invoices.ReplaceItems(context, latest.ID, items); err != nil {
			return nil, fmt.Errorf("billing_reconcile_replace_failed: %w", err)
		}
		latest.Items = items

		ctxutil.GetLogger(context).Info("invoice_reconciled",
			slog.String("invoice_id", latest.ID),
			slog.String("person_id", personID),
			slog.Int("items", len(items)),
		)
		return latest, nil
	}

	// Create path: no invoice history yet, or the latest is a paid ledger
	// entry that must never be rewritten.
	invoice := &Invoice{
		ID:       uuidv7.New(),
		PersonID: personID,
		IssuedAt: time.Now(),
		Items:    items,
	}

	if err := reconciler.invoices.Create(context, invoice); err != nil {
		return nil, fmt.Errorf("billing_reconcile_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("invoice_issued",
		slog.String("invoice_id", invoice.ID),
		slog.String("person_id", personID),
		slog.Int("items", len(items)),
	)

	return invoice, nil
}
