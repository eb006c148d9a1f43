// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package billing implements invoices and the reconciliation engine that keeps
them in sync with a person's registration choices.

# Architecture

  - Derivation: [DeriveLineItems] is a pure function from registration
    choices to line items. No storage, no clock, no side effects.
  - Reconciliation: [Reconciler] selects the target invoice (create new,
    reuse unpaid, never touch paid) and persists the derived items.
  - Ledger rule: a paid invoice is an immutable ledger entry. Edits after
    payment produce a new invoice; they never rewrite history.

All monetary amounts are integer cents.
*/
package billing

import "time"

// # Domain Entities

// Invoice is an ordered collection of charges issued to one person.
type Invoice struct {
	ID       string    `json:"id"`
	PersonID string    `json:"person_id"`
	IssuedAt time.Time `json:"issued_at"`

	// PaidAt is set exactly once when payment is recorded. A non-nil PaidAt
	// freezes the invoice from this engine's perspective.
	PaidAt *time.Time `json:"paid_at,omitempty"`

	// Items are ordered; reconciliation regenerates them wholesale for
	// unpaid invoices, so ordering is deterministic per derivation.
	Items []InvoiceItem `json:"items"`
}

// Paid reports whether payment has been recorded for this invoice.
func (invoice *Invoice) Paid() bool {
	return invoice.PaidAt != nil
}

// TotalCents sums all line totals.
func (invoice *Invoice) TotalCents() int64 {
	var total int64
	for _, item := range invoice.Items {
		total += item.LineTotalCents()
	}
	return total
}

// InvoiceItem is a pure value object: one charge line on an invoice.
type InvoiceItem struct {
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	UnitCostCents int64  `json:"unit_cost_cents"`
}

// LineTotalCents returns quantity × unit cost.
func (item InvoiceItem) LineTotalCents() int64 {
	return int64(item.Quantity) * item.UnitCostCents
}
