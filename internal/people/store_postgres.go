// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package people — PostgreSQL implementation of the person repository.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package people

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const personColumns = `id, email_address, handle, fullname, password_hash, url_hash, created_at, updated_at`

func scanPerson(row pgx.Row) (*Person, error) {
	person := &Person{}
	err := row.Scan(
		&person.ID,
		&person.EmailAddress,
		&person.Handle,
		&person.Fullname,
		&person.PasswordHash,
		&person.URLHash,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return person, nil
}

/*
Create persists a new person record into the core.person table.

Parameters:
  - context: context.Context
  - person: *Person (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, person *Person) error {
	const query = `
		INSERT INTO core.person (
			id, email_address, handle, fullname, password_hash, url_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		person.ID,
		person.EmailAddress,
		person.Handle,
		person.Fullname,
		person.PasswordHash,
		person.URLHash,
		person.CreatedAt,
		person.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_person_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a person record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Person: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Person, error) {
	const query = `
		SELECT ` + personColumns + `
		FROM core.person
		WHERE lower(email_address) = lower($1)`

	person, err := scanPerson(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Person with this email address")
		}
		return nil, fmt.Errorf("postgres_person_repo_find_by_email_failed: %w", err)
	}

	return person, nil
}

/*
FindByHandle retrieves a person record by their unique display handle.

Parameters:
  - context: context.Context
  - handle: string

Returns:
  - *Person: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByHandle(context context.Context, handle string) (*Person, error) {
	const query = `
		SELECT ` + personColumns + `
		FROM core.person
		WHERE lower(handle) = lower($1)`

	person, err := scanPerson(repository.pool.QueryRow(context, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Person with this handle")
		}
		return nil, fmt.Errorf("postgres_person_repo_find_by_handle_failed: %w", err)
	}

	return person, nil
}

/*
FindByID retrieves a person record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Person: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Person, error) {
	const query = `
		SELECT ` + personColumns + `
		FROM core.person
		WHERE id = $1`

	person, err := scanPerson(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Person")
		}
		return nil, fmt.Errorf("postgres_person_repo_find_by_id_failed: %w", err)
	}

	return person, nil
}

/*
Update persists changes to mutable profile fields.

Parameters:
  - context: context.Context
  - person: *Person

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, person *Person) error {
	const query = `
		UPDATE core.person
		SET email_address = $2, handle = $3, fullname = $4, password_hash = $5, updated_at = $6
		WHERE id = $1`

	person.UpdatedAt = time.Now()

	commandTag, err := repository.pool.Exec(context, query,
		person.ID,
		person.EmailAddress,
		person.Handle,
		person.Fullname,
		person.PasswordHash,
		person.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_person_repo_update_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Person")
	}

	return nil
}
