// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/rookery/internal/accommodation"
	"github.com/taibuivan/rookery/internal/billing"
	"github.com/taibuivan/rookery/internal/people"
	"github.com/taibuivan/rookery/internal/platform/constants"
	"github.com/taibuivan/rookery/internal/platform/ctxutil"
	"github.com/taibuivan/rookery/internal/platform/form"
	"github.com/taibuivan/rookery/internal/platform/lock"
	"github.com/taibuivan/rookery/internal/platform/sec"
	"github.com/taibuivan/rookery/pkg/uuidv7"
)

// Notifier delivers the registration confirmation email. Send-and-forget:
// invoked only after the write sequence has committed, and a failure is
// logged, never propagated.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Outcome is the committed result of an intake operation.
type Outcome struct {
	Person       *people.Person   `json:"person"`
	Registration *Registration    `json:"registration"`
	Invoice      *billing.Invoice `json:"invoice"`
}

// # Definitions & Constructors

// Service orchestrates the intake pipeline: acquire the person lock,
// validate, persist, reconcile the invoice, then notify.
type Service struct {
	schema         *Schema
	persons        people.Repository
	registrations  Repository
	accommodations accommodation.Repository
	reconciler     *billing.Reconciler
	locker         lock.Locker
	notifier       Notifier
	baseURL        string
}

// NewService constructs a [Service]. The notifier may be nil, in which case
// no confirmation email is attempted.
func NewService(
	schema *Schema,
	persons people.Repository,
	registrations Repository,
	accommodations accommodation.Repository,
	reconciler *billing.Reconciler,
	locker lock.Locker,
	notifier Notifier,
	baseURL string,
) *Service {
	return &Service{
		schema:         schema,
		persons:        persons,
		registrations:  registrations,
		accommodations: accommodations,
		reconciler:     reconciler,
		locker:         locker,
		notifier:       notifier,
		baseURL:        baseURL,
	}
}

// StoreQueries adapts the three repositories into the schema's [Queries]
// lookup surface.
type StoreQueries struct {
	Persons        people.Repository
	Registrations  Repository
	Accommodations accommodation.Repository
}

func (q StoreQueries) FindPersonByEmail(ctx context.Context, email string) (*people.Person, error) {
	return q.Persons.FindByEmail(ctx, email)
}

func (q StoreQueries) FindPersonByHandle(ctx context.Context, handle string) (*people.Person, error) {
	return q.Persons.FindByHandle(ctx, handle)
}

func (q StoreQueries) FindRegistrationByPersonID(ctx context.Context, personID string) (*Registration, error) {
	return q.Registrations.FindByPersonID(ctx, personID)
}

func (q StoreQueries) FindAccommodationByID(ctx context.Context, id string) (*accommodation.Accommodation, error) {
	return q.Accommodations.FindByID(ctx, id)
}

// # Intake Operations

/*
CreateNew handles an anonymous submission: validates person + registration
together, creates both, and issues the first invoice.

Description: The lock key is the lowered submitted email address, so two
concurrent submissions of the same address serialize and the second one
fails the uniqueness rule instead of double-creating the account.

Parameters:
  - ctx: context.Context
  - input: *form.Tree (Decoded nested payload)

Returns:
  - *Outcome: Committed person, registration, and invoice
  - *form.ErrorTree: Validation failures, nil on success
  - error: Lock contention or persistence failures
*/
func (service *Service) CreateNew(ctx context.Context, input *form.Tree) (*Outcome, *form.ErrorTree, error) {
	lockKey := strings.ToLower(strings.TrimSpace(input.Group(GroupPerson).Get(people.FieldEmailAddress)))

	release, err := service.locker.Acquire(ctx, lockKey)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	result, errTree, err := service.schema.ValidateNew(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	if errTree != nil {
		return nil, errTree, nil
	}

	person, err := service.createPerson(ctx, result.Person)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := service.commitRegistration(ctx, person, result, true)
	if err != nil {
		return nil, nil, err
	}

	return outcome, nil, nil
}

/*
CreateForPerson handles a submission by an authenticated person who has an
account but no registration yet.

Parameters:
  - ctx: context.Context
  - input: *form.Tree
  - personID: string

Returns:
  - *Outcome: Committed registration and invoice, with the existing person
  - *form.ErrorTree: Validation failures, nil on success
  - error: Lock contention or persistence failures
*/
func (service *Service) CreateForPerson(ctx context.Context, input *form.Tree, personID string) (*Outcome, *form.ErrorTree, error) {
	release, err := service.locker.Acquire(ctx, personID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	result, errTree, err := service.schema.ValidateExistingPerson(ctx, input, personID)
	if err != nil {
		return nil, nil, err
	}
	if errTree != nil {
		return nil, errTree, nil
	}

	person, err := service.persons.FindByID(ctx, personID)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := service.commitRegistration(ctx, person, result, true)
	if err != nil {
		return nil, nil, err
	}

	return outcome, nil, nil
}

/*
Edit handles a re-save of an existing registration and reconciles the
invoice to the new billable state.

Parameters:
  - ctx: context.Context
  - input: *form.Tree
  - personID: string

Returns:
  - *Outcome: Committed registration and the reconciled invoice
  - *form.ErrorTree: Validation failures, nil on success
  - error: apperr.NotFound when no registration exists, lock contention,
    or persistence failures
*/
func (service *Service) Edit(ctx context.Context, input *form.Tree, personID string) (*Outcome, *form.ErrorTree, error) {
	release, err := service.locker.Acquire(ctx, personID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	existing, err := service.registrations.FindByPersonID(ctx, personID)
	if err != nil {
		return nil, nil, err
	}

	result, errTree, err := service.schema.ValidateEdit(ctx, input, personID)
	if err != nil {
		return nil, nil, err
	}
	if errTree != nil {
		return nil, errTree, nil
	}

	// Identity and provenance survive the edit; everything else is replaced
	// by the validated submission.
	updated := result.Registration
	updated.ID = existing.ID
	updated.PersonID = existing.PersonID
	updated.CreatedAt = existing.CreatedAt

	if err := service.registrations.Update(ctx, updated); err != nil {
		return nil, nil, err
	}

	invoice, err := service.reconciler.Reconcile(ctx, personID, chargeSource(result))
	if err != nil {
		return nil, nil, err
	}

	person, err := service.persons.FindByID(ctx, personID)
	if err != nil {
		return nil, nil, err
	}

	ctxutil.GetLogger(ctx).Info("registration_edited",
		slog.String("registration_id", updated.ID),
		slog.String("person_id", personID),
	)

	return &Outcome{Person: person, Registration: updated, Invoice: invoice}, nil, nil
}

/*
Registration returns the signed-in person's registration.

Parameters:
  - ctx: context.Context
  - personID: string

Returns:
  - *Registration: The person's registration
  - error: apperr.NotFound when none exists
*/
func (service *Service) Registration(ctx context.Context, personID string) (*Registration, error) {
	return service.registrations.FindByPersonID(ctx, personID)
}

// # Internals

// createPerson materializes a new account from the validated person input.
func (service *Service) createPerson(ctx context.Context, input *PersonInput) (*people.Person, error) {
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("registration_service_hash_failed: %w", err)
	}

	urlHash, err := sec.GenerateSecureToken(constants.URLHashLength)
	if err != nil {
		return nil, fmt.Errorf("registration_service_url_hash_failed: %w", err)
	}

	person := &people.Person{
		ID:           uuidv7.New(),
		EmailAddress: input.EmailAddress,
		Handle:       input.Handle,
		Fullname:     input.Fullname,
		PasswordHash: passwordHash,
		URLHash:      urlHash,
	}

	if err := service.persons.Create(ctx, person); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).Info("person_created",
		slog.String("person_id", person.ID),
	)

	return person, nil
}

// commitRegistration persists a new registration for the person, reconciles
// the invoice, and fires the confirmation email.
func (service *Service) commitRegistration(ctx context.Context, person *people.Person, result *Result, notify bool) (*Outcome, error) {
	registration := result.Registration
	registration.ID = uuidv7.New()
	registration.PersonID = person.ID

	if err := service.registrations.Create(ctx, registration); err != nil {
		return nil, err
	}

	invoice, err := service.reconciler.Reconcile(ctx, person.ID, chargeSource(result))
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).Info("registration_created",
		slog.String("registration_id", registration.ID),
		slog.String("person_id", person.ID),
		slog.Int64("invoice_total_cents", invoice.TotalCents()),
	)

	if notify {
		service.sendConfirmation(ctx, person, invoice)
	}

	return &Outcome{Person: person, Registration: registration, Invoice: invoice}, nil
}

// chargeSource extracts the billable slice of a validated result.
func chargeSource(result *Result) billing.ChargeSource {
	return billing.ChargeSource{
		RegistrationType: result.Registration.Type,
		DinnerTickets:    result.Registration.Dinner,
		Accommodation:    result.Accommodation,
		Checkin:          result.Registration.Checkin,
		Checkout:         result.Registration.Checkout,
	}
}

// sendConfirmation delivers the confirmation email. Runs only after the
// write sequence committed; a delivery failure is logged and swallowed so
// the registration is never reverted by a mail problem.
func (service *Service) sendConfirmation(ctx context.Context, person *people.Person, invoice *billing.Invoice) {
	if service.notifier == nil {
		return
	}

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your conference registration has been received.\n"+
			"Your invoice total is $%.2f.\n\n"+
			"Manage your registration at:\n%s/registration/%s\n",
		person.Fullname,
		float64(invoice.TotalCents())/100,
		service.baseURL,
		person.URLHash,
	)

	if err := service.notifier.Send(ctx, person.EmailAddress, "Your conference registration", body); err != nil {
		ctxutil.GetLogger(ctx).Error("confirmation_email_failed",
			slog.String("person_id", person.ID),
			slog.String("error", err.Error()),
		)
	}
}

// Interface guard.
var _ Queries = StoreQueries{}
