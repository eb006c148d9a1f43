// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rookery/internal/platform/apperr"
	"github.com/taibuivan/rookery/pkg/optionset"
)

// PostgresRepository implements the Repository interface using pgx.
//
// Option sets (prevconf, miniconf) are stored as text[] columns and decoded
// back into presence sets on read.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const registrationColumns = `
	id, person_id,
	address1, address2, city, state, country, postcode, phone, company,
	shell, shelltext, editor, editortext, distro, distrotext, silly_description,
	prevconf, type, discount_code, teesize,
	dinner, diet, special, miniconf, openday,
	partner_email, kids_0_3, kids_4_6, kids_7_9, kids_10,
	accommodation_id, checkin, checkout,
	lasignup, announcesignup, delegatesignup,
	created_at, updated_at`

func scanRegistration(row pgx.Row) (*Registration, error) {
	registration := &Registration{}
	var prevconf, miniconf []string

	err := row.Scan(
		&registration.ID,
		&registration.PersonID,
		&registration.Address1,
		&registration.Address2,
		&registration.City,
		&registration.State,
		&registration.Country,
		&registration.Postcode,
		&registration.Phone,
		&registration.Company,
		&registration.Shell,
		&registration.Shelltext,
		&registration.Editor,
		&registration.Editortext,
		&registration.Distro,
		&registration.Distrotext,
		&registration.SillyDescription,
		&prevconf,
		&registration.Type,
		&registration.DiscountCode,
		&registration.Teesize,
		&registration.Dinner,
		&registration.Diet,
		&registration.Special,
		&miniconf,
		&registration.Openday,
		&registration.PartnerEmail,
		&registration.Kids0_3,
		&registration.Kids4_6,
		&registration.Kids7_9,
		&registration.Kids10,
		&registration.AccommodationID,
		&registration.Checkin,
		&registration.Checkout,
		&registration.LaSignup,
		&registration.AnnounceSignup,
		&registration.DelegateSignup,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	registration.Prevconf = optionset.Decode(prevconf)
	registration.Miniconf = optionset.Decode(miniconf)

	return registration, nil
}

/*
FindByPersonID retrieves the registration owned by the given person.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - *Registration: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByPersonID(context context.Context, personID string) (*Registration, error) {
	const query = `
		SELECT ` + registrationColumns + `
		FROM core.registration
		WHERE person_id = $1`

	registration, err := scanRegistration(repository.pool.QueryRow(context, query, personID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Registration")
		}
		return nil, fmt.Errorf("postgres_registration_repo_find_failed: %w", err)
	}

	return registration, nil
}

/*
Create persists a new registration record into the core.registration table.

Parameters:
  - context: context.Context
  - registration: *Registration

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, registration *Registration) error {
	const query = `
		INSERT INTO core.registration (
			id, person_id,
			address1, address2, city, state, country, postcode, phone, company,
			shell, shelltext, editor, editortext, distro, distrotext, silly_description,
			prevconf, type, discount_code, teesize,
			dinner, diet, special, miniconf, openday,
			partner_email, kids_0_3, kids_4_6, kids_7_9, kids_10,
			accommodation_id, checkin, checkout,
			lasignup, announcesignup, delegatesignup,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39
		)`

	now := time.Now()
	if registration.CreatedAt.IsZero() {
		registration.CreatedAt = now
	}
	registration.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		registration.ID,
		registration.PersonID,
		registration.Address1,
		registration.Address2,
		registration.City,
		registration.State,
		registration.Country,
		registration.Postcode,
		registration.Phone,
		registration.Company,
		registration.Shell,
		registration.Shelltext,
		registration.Editor,
		registration.Editortext,
		registration.Distro,
		registration.Distrotext,
		registration.SillyDescription,
		registration.Prevconf.Encode(),
		registration.Type,
		registration.DiscountCode,
		registration.Teesize,
		registration.Dinner,
		registration.Diet,
		registration.Special,
		registration.Miniconf.Encode(),
		registration.Openday,
		registration.PartnerEmail,
		registration.Kids0_3,
		registration.Kids4_6,
		registration.Kids7_9,
		registration.Kids10,
		registration.AccommodationID,
		registration.Checkin,
		registration.Checkout,
		registration.LaSignup,
		registration.AnnounceSignup,
		registration.DelegateSignup,
		registration.CreatedAt,
		registration.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_registration_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to an existing registration.

Parameters:
  - context: context.Context
  - registration: *Registration

Returns:
  - error: apperr.NotFound when the row is gone, or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, registration *Registration) error {
	const query = `
		UPDATE core.registration
		SET
			address1 = $2, address2 = $3, city = $4, state = $5, country = $6,
			postcode = $7, phone = $8, company = $9,
			shell = $10, shelltext = $11, editor = $12, editortext = $13,
			distro = $14, distrotext = $15, silly_description = $16,
			prevconf = $17, type = $18, discount_code = $19, teesize = $20,
			dinner = $21, diet = $22, special = $23, miniconf = $24, openday = $25,
			partner_email = $26, kids_0_3 = $27, kids_4_6 = $28, kids_7_9 = $29, kids_10 = $30,
			accommodation_id = $31, checkin = $32, checkout = $33,
			lasignup = $34, announcesignup = $35, delegatesignup = $36,
			updated_at = $37
		WHERE id = $1`

	registration.UpdatedAt = time.Now()

	commandTag, err := repository.pool.Exec(context, query,
		registration.ID,
		registration.Address1,
		registration.Address2,
		registration.City,
		registration.State,
		registration.Country,
		registration.Postcode,
		registration.Phone,
		registration.Company,
		registration.Shell,
		registration.Shelltext,
		registration.Editor,
		registration.Editortext,
		registration.Distro,
		registration.Distrotext,
		registration.SillyDescription,
		registration.Prevconf.Encode(),
		registration.Type,
		registration.DiscountCode,
		registration.Teesize,
		registration.Dinner,
		registration.Diet,
		registration.Special,
		registration.Miniconf.Encode(),
		registration.Openday,
		registration.PartnerEmail,
		registration.Kids0_3,
		registration.Kids4_6,
		registration.Kids7_9,
		registration.Kids10,
		registration.AccommodationID,
		registration.Checkin,
		registration.Checkout,
		registration.LaSignup,
		registration.AnnounceSignup,
		registration.DelegateSignup,
		registration.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_registration_repo_update_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Registration")
	}

	return nil
}
