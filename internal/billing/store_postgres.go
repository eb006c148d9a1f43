// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rookery/internal/platform/apperr"
)

// PostgresInvoiceRepository implements the InvoiceRepository interface using pgx.
//
// # Atomicity
//
// Writes that span the invoice and its items (Create, ReplaceItems) run
// inside a single transaction, so an invoice is never observable with a
// partial item set.
type PostgresInvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new PostgreSQL implementation of the InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{pool: pool}
}

/*
LatestByPersonID returns the most recently issued invoice with its items.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - *Invoice: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresInvoiceRepository) LatestByPersonID(context context.Context, personID string) (*Invoice, error) {
	const query = `
		SELECT id, person_id, issued_at, paid_at
		FROM billing.invoice
		WHERE person_id = $1
		ORDER BY issued_at DESC, id DESC
		LIMIT 1`

	invoice := &Invoice{}
	err := repository.pool.QueryRow(context, query, personID).Scan(
		&invoice.ID,
		&invoice.PersonID,
		&invoice.IssuedAt,
		&invoice.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Invoice")
		}
		return nil, fmt.Errorf("postgres_invoice_repo_latest_failed: %w", err)
	}

	items, err := repository.loadItems(context, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items

	return invoice, nil
}

/*
ListByPersonID returns the person's full invoice history, oldest first.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - []*Invoice: Invoice history with items hydrated
  - error: Database retrieval failures
*/
func (repository *PostgresInvoiceRepository) ListByPersonID(context context.Context, personID string) ([]*Invoice, error) {
	const query = `
		SELECT id, person_id, issued_at, paid_at
		FROM billing.invoice
		WHERE person_id = $1
		ORDER BY issued_at ASC, id ASC`

	rows, err := repository.pool.Query(context, query, personID)
	if err != nil {
		return nil, fmt.Errorf("postgres_invoice_repo_list_failed: %w", err)
	}
	defer rows.Close()

	invoices := make([]*Invoice, 0)
	for rows.Next() {
		invoice := &Invoice{}
		if err := rows.Scan(&invoice.ID, &invoice.PersonID, &invoice.IssuedAt, &invoice.PaidAt); err != nil {
			return nil, fmt.Errorf("postgres_invoice_repo_scan_failed: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_invoice_repo_rows_failed: %w", err)
	}

	for _, invoice := range invoices {
		items, err := repository.loadItems(context, invoice.ID)
		if err != nil {
			return nil, err
		}
		invoice.Items = items
	}

	return invoices, nil
}

/*
Create persists a new invoice together with its items in one transaction.

Parameters:
  - context: context.Context
  - invoice: *Invoice

Returns:
  - error: Persistence failures
*/
func (repository *PostgresInvoiceRepository) Create(context context.Context, invoice *Invoice) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_invoice_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const insertInvoice = `
		INSERT INTO billing.invoice (id, person_id, issued_at, paid_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := transaction.Exec(context, insertInvoice,
		invoice.ID,
		invoice.PersonID,
		invoice.IssuedAt,
		invoice.PaidAt,
	); err != nil {
		return fmt.Errorf("postgres_invoice_repo_create_failed: %w", err)
	}

	if err := insertItems(context, transaction, invoice.ID, invoice.Items); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_invoice_repo_commit_failed: %w", err)
	}

	return nil
}

/*
ReplaceItems drops an invoice's items and inserts the replacements, all in
one transaction.

Parameters:
  - context: context.Context
  - invoiceID: string
  - items: []InvoiceItem

Returns:
  - error: Persistence failures
*/
func (repository *PostgresInvoiceRepository) ReplaceItems(context context.Context, invoiceID string, items []InvoiceItem) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_invoice_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const deleteItems = `DELETE FROM billing.invoice_item WHERE invoice_id = $1`

	if _, err := transaction.Exec(context, deleteItems, invoiceID); err != nil {
		return fmt.Errorf("postgres_invoice_repo_delete_items_failed: %w", err)
	}

	if err := insertItems(context, transaction, invoiceID, items); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_invoice_repo_commit_failed: %w", err)
	}

	return nil
}

/*
MarkPaid records payment on an unpaid invoice.

Parameters:
  - context: context.Context
  - invoiceID: string
  - paidAt: time.Time

Returns:
  - error: apperr.Conflict when payment was already recorded,
    apperr.NotFound for an unknown invoice, or persistence failures
*/
func (repository *PostgresInvoiceRepository) MarkPaid(context context.Context, invoiceID string, paidAt time.Time) error {
	const query = `
		UPDATE billing.invoice
		SET paid_at = $2
		WHERE id = $1 AND paid_at IS NULL`

	commandTag, err := repository.pool.Exec(context, query, invoiceID, paidAt)
	if err != nil {
		return fmt.Errorf("postgres_invoice_repo_mark_paid_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		// Either the invoice doesn't exist or payment was already recorded.
		const exists = `SELECT 1 FROM billing.invoice WHERE id = $1`
		var one int
		if err := repository.pool.QueryRow(context, exists, invoiceID).Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Invoice")
			}
			return fmt.Errorf("postgres_invoice_repo_mark_paid_check_failed: %w", err)
		}
		return apperr.Conflict("Invoice is already paid")
	}

	return nil
}

// loadItems hydrates an invoice's items in their stored order.
func (repository *PostgresInvoiceRepository) loadItems(context context.Context, invoiceID string) ([]InvoiceItem, error) {
	const query = `
		SELECT description, quantity, unit_cost_cents
		FROM billing.invoice_item
		WHERE invoice_id = $1
		ORDER BY position ASC`

	rows, err := repository.pool.Query(context, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("postgres_invoice_repo_load_items_failed: %w", err)
	}
	defer rows.Close()

	items := make([]InvoiceItem, 0)
	for rows.Next() {
		var item InvoiceItem
		if err := rows.Scan(&item.Description, &item.Quantity, &item.UnitCostCents); err != nil {
			return nil, fmt.Errorf("postgres_invoice_repo_item_scan_failed: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_invoice_repo_item_rows_failed: %w", err)
	}

	return items, nil
}

// insertItems writes items with explicit positions to preserve ordering.
func insertItems(context context.Context, transaction pgx.Tx, invoiceID string, items []InvoiceItem) error {
	const insertItem = `
		INSERT INTO billing.invoice_item (invoice_id, position, description, quantity, unit_cost_cents)
		VALUES ($1, $2, $3, $4, $5)`

	for position, item := range items {
		if _, err := transaction.Exec(context, insertItem,
			invoiceID,
			position,
			item.Description,
			item.Quantity,
			item.UnitCostCents,
		); err != nil {
			return fmt.Errorf("postgres_invoice_repo_insert_item_failed: %w", err)
		}
	}

	return nil
}
