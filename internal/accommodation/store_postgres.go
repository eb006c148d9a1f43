// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package accommodation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rookery/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accommodationColumns = `id, name, option_label, cost_per_night_cents, beds_available, created_at, updated_at`

func scanAccommodation(row pgx.Row) (*Accommodation, error) {
	accommodation := &Accommodation{}
	err := row.Scan(
		&accommodation.ID,
		&accommodation.Name,
		&accommodation.Option,
		&accommodation.CostPerNightCents,
		&accommodation.BedsAvailable,
		&accommodation.CreatedAt,
		&accommodation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return accommodation, nil
}

/*
FindByID retrieves an accommodation by its unique ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Accommodation: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Accommodation, error) {
	const query = `
		SELECT ` + accommodationColumns + `
		FROM core.accommodation
		WHERE id = $1`

	accommodation, err := scanAccommodation(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Accommodation")
		}
		return nil, fmt.Errorf("postgres_accommodation_repo_find_by_id_failed: %w", err)
	}

	return accommodation, nil
}

/*
ListAvailable returns accommodations with at least one bed remaining.

Parameters:
  - context: context.Context

Returns:
  - []*Accommodation: Available options ordered by name
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListAvailable(context context.Context) ([]*Accommodation, error) {
	const query = `
		SELECT ` + accommodationColumns + `
		FROM core.accommodation
		WHERE beds_available >= 1
		ORDER BY name, option_label`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_accommodation_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accommodations := make([]*Accommodation, 0)
	for rows.Next() {
		accommodation, err := scanAccommodation(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_accommodation_repo_scan_failed: %w", err)
		}
		accommodations = append(accommodations, accommodation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_accommodation_repo_rows_failed: %w", err)
	}

	return accommodations, nil
}
