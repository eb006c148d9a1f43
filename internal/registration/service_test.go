// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rookery/internal/accommodation"
	"github.com/taibuivan/rookery/internal/billing"
	"github.com/taibuivan/rookery/internal/people"
	"github.com/taibuivan/rookery/internal/platform/apperr"
	"github.com/taibuivan/rookery/internal/platform/form"
	"github.com/taibuivan/rookery/internal/platform/lock"
	"github.com/taibuivan/rookery/internal/platform/sec"
	"github.com/taibuivan/rookery/internal/registration"
)

// # In-Memory Repositories

type memoryPersonRepository struct {
	persons []*people.Person
}

func (r *memoryPersonRepository) FindByID(_ context.Context, id string) (*people.Person, error) {
	for _, person := range r.persons {
		if person.ID == id {
			return person, nil
		}
	}
	return nil, apperr.NotFound("Person")
}

func (r *memoryPersonRepository) FindByEmail(_ context.Context, email string) (*people.Person, error) {
	for _, person := range r.persons {
		if strings.EqualFold(person.EmailAddress, email) {
			return person, nil
		}
	}
	return nil, apperr.NotFound("Person with this email address")
}

func (r *memoryPersonRepository) FindByHandle(_ context.Context, handle string) (*people.Person, error) {
	for _, person := range r.persons {
		if strings.EqualFold(person.Handle, handle) {
			return person, nil
		}
	}
	return nil, apperr.NotFound("Person with this handle")
}

func (r *memoryPersonRepository) Create(_ context.Context, person *people.Person) error {
	r.persons = append(r.persons, person)
	return nil
}

func (r *memoryPersonRepository) Update(_ context.Context, person *people.Person) error {
	for index, existing := range r.persons {
		if existing.ID == person.ID {
			r.persons[index] = person
			return nil
		}
	}
	return apperr.NotFound("Person")
}

type memoryRegistrationRepository struct {
	registrations []*registration.Registration
}

func (r *memoryRegistrationRepository) FindByPersonID(_ context.Context, personID string) (*registration.Registration, error) {
	for _, existing := range r.registrations {
		if existing.PersonID == personID {
			return existing, nil
		}
	}
	return nil, apperr.NotFound("Registration")
}

func (r *memoryRegistrationRepository) Create(_ context.Context, entity *registration.Registration) error {
	r.registrations = append(r.registrations, entity)
	return nil
}

func (r *memoryRegistrationRepository) Update(_ context.Context, entity *registration.Registration) error {
	for index, existing := range r.registrations {
		if existing.ID == entity.ID {
			r.registrations[index] = entity
			return nil
		}
	}
	return apperr.NotFound("Registration")
}

type memoryAccommodationRepository struct {
	accommodations map[string]*accommodation.Accommodation
}

func (r *memoryAccommodationRepository) FindByID(_ context.Context, id string) (*accommodation.Accommodation, error) {
	if found, ok := r.accommodations[id]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("Accommodation")
}

func (r *memoryAccommodationRepository) ListAvailable(_ context.Context) ([]*accommodation.Accommodation, error) {
	listed := make([]*accommodation.Accommodation, 0, len(r.accommodations))
	for _, found := range r.accommodations {
		if found.BedsAvailable >= 1 {
			listed = append(listed, found)
		}
	}
	return listed, nil
}

type invoiceStore struct {
	invoices []*billing.Invoice
}

func (s *invoiceStore) LatestByPersonID(_ context.Context, personID string) (*billing.Invoice, error) {
	for index := len(s.invoices) - 1; index >= 0; index-- {
		if s.invoices[index].PersonID == personID {
			return s.invoices[index], nil
		}
	}
	return nil, apperr.NotFound("Invoice")
}

func (s *invoiceStore) ListByPersonID(_ context.Context, personID string) ([]*billing.Invoice, error) {
	matches := make([]*billing.Invoice, 0)
	for _, invoice := range s.invoices {
		if invoice.PersonID == personID {
			matches = append(matches, invoice)
		}
	}
	return matches, nil
}

func (s *invoiceStore) Create(_ context.Context, invoice *billing.Invoice) error {
	s.invoices = append(s.invoices, invoice)
	return nil
}

func (s *invoiceStore) ReplaceItems(_ context.Context, invoiceID string, items []billing.InvoiceItem) error {
	for _, invoice := range s.invoices {
		if invoice.ID == invoiceID {
			invoice.Items = append([]billing.InvoiceItem(nil), items...)
			return nil
		}
	}
	return apperr.NotFound("Invoice")
}

func (s *invoiceStore) MarkPaid(_ context.Context, invoiceID string, paidAt time.Time) error {
	for _, invoice := range s.invoices {
		if invoice.ID == invoiceID {
			invoice.PaidAt = &paidAt
			return nil
		}
	}
	return apperr.NotFound("Invoice")
}

// recordingNotifier captures outbound confirmation email.
type recordingNotifier struct {
	recipients []string
	fail       bool
}

func (n *recordingNotifier) Send(_ context.Context, recipient, _, _ string) error {
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.recipients = append(n.recipients, recipient)
	return nil
}

// # Harness

type serviceHarness struct {
	service        *registration.Service
	persons        *memoryPersonRepository
	registrations  *memoryRegistrationRepository
	accommodations *memoryAccommodationRepository
	invoices       *invoiceStore
	notifier       *recordingNotifier
}

func newServiceHarness() *serviceHarness {
	harness := &serviceHarness{
		persons:        &memoryPersonRepository{},
		registrations:  &memoryRegistrationRepository{},
		accommodations: &memoryAccommodationRepository{accommodations: make(map[string]*accommodation.Accommodation)},
		invoices:       &invoiceStore{},
		notifier:       &recordingNotifier{},
	}

	schema := registration.NewSchema(registration.StoreQueries{
		Persons:        harness.persons,
		Registrations:  harness.registrations,
		Accommodations: harness.accommodations,
	}, nil)

	harness.service = registration.NewService(
		schema,
		harness.persons,
		harness.registrations,
		harness.accommodations,
		billing.NewReconciler(harness.invoices),
		lock.NewMemoryLocker(),
		harness.notifier,
		"https://rookery.app",
	)

	return harness
}

// # Anonymous Create

/*
TestService_CreateNew checks the full anonymous pipeline: account creation
with a hashed password, registration, first invoice, confirmation email.
*/
func TestService_CreateNew(t *testing.T) {
	harness := newServiceHarness()

	outcome, errTree, err := harness.service.CreateNew(context.Background(), newRegistrationTree())
	require.NoError(t, err)
	require.Nil(t, errTree)
	require.NotNil(t, outcome)

	// Person committed with a bcrypt hash, never the plaintext.
	require.Len(t, harness.persons.persons, 1)
	person := harness.persons.persons[0]
	assert.Equal(t, "tux@example.org", person.EmailAddress)
	assert.NotEqual(t, "hunter22", person.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter22", person.PasswordHash))
	assert.NotEmpty(t, person.URLHash)

	// Registration bound to the new person.
	require.Len(t, harness.registrations.registrations, 1)
	assert.Equal(t, person.ID, harness.registrations.registrations[0].PersonID)
	assert.Equal(t, outcome.Registration.ID, harness.registrations.registrations[0].ID)

	// First invoice issued: Professional base + included dinner.
	require.Len(t, harness.invoices.invoices, 1)
	assert.Equal(t, int64(69000), outcome.Invoice.TotalCents())

	// Confirmation sent after commit.
	assert.Equal(t, []string{"tux@example.org"}, harness.notifier.recipients)
}

/*
TestService_CreateNew_DuplicateEmail checks a colliding submission writes
nothing and surfaces the error tree.
*/
func TestService_CreateNew_DuplicateEmail(t *testing.T) {
	harness := newServiceHarness()
	harness.persons.persons = append(harness.persons.persons, &people.Person{
		ID:           "person-1",
		EmailAddress: "tux@example.org",
		Handle:       "other",
	})

	outcome, errTree, err := harness.service.CreateNew(context.Background(), newRegistrationTree())
	require.NoError(t, err)
	require.NotNil(t, errTree)
	assert.Nil(t, outcome)

	assert.True(t, errTree.HasCode(registration.CodeDuplicateEmail))
	assert.Len(t, harness.persons.persons, 1)
	assert.Empty(t, harness.registrations.registrations)
	assert.Empty(t, harness.invoices.invoices)
	assert.Empty(t, harness.notifier.recipients)
}

/*
TestService_CreateNew_NotifierFailureIsSwallowed checks a failed email never
reverts the committed registration.
*/
func TestService_CreateNew_NotifierFailureIsSwallowed(t *testing.T) {
	harness := newServiceHarness()
	harness.notifier.fail = true

	outcome, errTree, err := harness.service.CreateNew(context.Background(), newRegistrationTree())
	require.NoError(t, err)
	require.Nil(t, errTree)
	require.NotNil(t, outcome)

	assert.Len(t, harness.persons.persons, 1)
	assert.Len(t, harness.registrations.registrations, 1)
	assert.Len(t, harness.invoices.invoices, 1)
}

// # Authenticated Create

/*
TestService_CreateForPerson checks the authenticated variant binds the
registration to the known identity and rejects a second attempt.
*/
func TestService_CreateForPerson(t *testing.T) {
	harness := newServiceHarness()
	harness.persons.persons = append(harness.persons.persons, &people.Person{
		ID:           "person-1",
		EmailAddress: "tux@example.org",
		Handle:       "tux",
	})

	input := registrationFields(form.NewTree())

	outcome, errTree, err := harness.service.CreateForPerson(context.Background(), input, "person-1")
	require.NoError(t, err)
	require.Nil(t, errTree)
	assert.Equal(t, "person-1", outcome.Registration.PersonID)
	assert.Equal(t, "person-1", outcome.Person.ID)

	// Second submission trips the already-registered rule.
	_, errTree, err = harness.service.CreateForPerson(context.Background(), input, "person-1")
	require.NoError(t, err)
	require.NotNil(t, errTree)
	assert.True(t, errTree.HasCode(registration.CodeAlreadyRegistered))
	assert.Len(t, harness.registrations.registrations, 1)
}

// # Edit

/*
TestService_Edit checks a re-save keeps the registration identity, applies
the new choices, and regenerates the unpaid invoice in place.
*/
func TestService_Edit(t *testing.T) {
	harness := newServiceHarness()
	harness.persons.persons = append(harness.persons.persons, &people.Person{
		ID:           "person-1",
		EmailAddress: "tux@example.org",
		Handle:       "tux",
	})

	created, errTree, err := harness.service.CreateForPerson(context.Background(), registrationFields(form.NewTree()), "person-1")
	require.NoError(t, err)
	require.Nil(t, errTree)

	// Downgrade the ticket and add dinner tickets.
	edit := registrationFields(form.NewTree())
	edit.Group(registration.GroupRegistration).Set(registration.FieldType, "Concession")
	edit.Group(registration.GroupRegistration).Set(registration.FieldDinner, "2")

	edited, errTree, err := harness.service.Edit(context.Background(), edit, "person-1")
	require.NoError(t, err)
	require.Nil(t, errTree)

	assert.Equal(t, created.Registration.ID, edited.Registration.ID)
	assert.Equal(t, "Concession", edited.Registration.Type)
	assert.Equal(t, 2, edited.Registration.Dinner)

	// Still a single invoice, items fully regenerated.
	require.Len(t, harness.invoices.invoices, 1)
	assert.Equal(t, created.Invoice.ID, edited.Invoice.ID)
	assert.Equal(t, int64(9900+2*6000), edited.Invoice.TotalCents())
}

/*
TestService_Edit_PaidInvoiceGetsSuccessor checks an edit after payment
issues a new invoice and leaves the paid one untouched.
*/
func TestService_Edit_PaidInvoiceGetsSuccessor(t *testing.T) {
	harness := newServiceHarness()
	harness.persons.persons = append(harness.persons.persons, &people.Person{
		ID:           "person-1",
		EmailAddress: "tux@example.org",
		Handle:       "tux",
	})

	created, _, err := harness.service.CreateForPerson(context.Background(), registrationFields(form.NewTree()), "person-1")
	require.NoError(t, err)
	require.NoError(t, harness.invoices.MarkPaid(context.Background(), created.Invoice.ID, time.Now()))

	edit := registrationFields(form.NewTree())
	edit.Group(registration.GroupRegistration).Set(registration.FieldType, "Hobbyist")

	edited, errTree, err := harness.service.Edit(context.Background(), edit, "person-1")
	require.NoError(t, err)
	require.Nil(t, errTree)

	require.Len(t, harness.invoices.invoices, 2)
	assert.NotEqual(t, created.Invoice.ID, edited.Invoice.ID)
	assert.Equal(t, int64(30000), edited.Invoice.TotalCents())
}

/*
TestService_Edit_RequiresExistingRegistration checks editing without a
registration is a not-found error, not a validation failure.
*/
func TestService_Edit_RequiresExistingRegistration(t *testing.T) {
	harness := newServiceHarness()

	_, errTree, err := harness.service.Edit(context.Background(), registrationFields(form.NewTree()), "person-1")
	require.Error(t, err)
	assert.Nil(t, errTree)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
