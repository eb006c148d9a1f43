// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"fmt"
	"net"
	"net/mail"
	"strconv"
	"strings"

	"github.com/taibuivan/rookery/internal/accommodation"
	"github.com/taibuivan/rookery/internal/billing"
	"github.com/taibuivan/rookery/internal/people"
	"github.com/taibuivan/rookery/internal/platform/dberr"
	"github.com/taibuivan/rookery/internal/platform/form"
	"github.com/taibuivan/rookery/pkg/optionset"
)

// # Validation Codes
//
// Structural codes (MISSING_FIELD, INVALID_FORMAT, INVALID_EMAIL,
// UNRESOLVABLE_DOMAIN) live in the form package; the codes below are the
// cross-field and cross-entity failures owned by this domain.

const (
	// CodePasswordMismatch marks password and confirmation that differ.
	CodePasswordMismatch form.Code = "PASSWORD_MISMATCH"

	// CodeDuplicateEmail marks an email address already held by a person.
	CodeDuplicateEmail form.Code = "DUPLICATE_EMAIL"

	// CodeDuplicateHandle marks a handle already held by a person.
	CodeDuplicateHandle form.Code = "DUPLICATE_HANDLE"

	// CodeAlreadyRegistered marks a person who already owns a registration.
	CodeAlreadyRegistered form.Code = "ALREADY_REGISTERED"

	// CodeUnknownAccommodation marks an accommodation ID that resolves to
	// nothing.
	CodeUnknownAccommodation form.Code = "UNKNOWN_ACCOMMODATION"

	// CodeInvalidChoice marks a value outside a closed option set.
	CodeInvalidChoice form.Code = "INVALID_CHOICE"

	// CodeInvalidStay marks a checkout on or before the checkin day while an
	// accommodation is booked.
	CodeInvalidStay form.Code = "INVALID_STAY"
)

// # Query Interface

// Queries is the read-only lookup surface the cross-entity rules run
// against. Lookups return a dberr-style not-found error when the entity does
// not exist; any other error is treated as fatal to the validation call.
type Queries interface {
	FindPersonByEmail(ctx context.Context, email string) (*people.Person, error)
	FindPersonByHandle(ctx context.Context, handle string) (*people.Person, error)
	FindRegistrationByPersonID(ctx context.Context, personID string) (*Registration, error)
	FindAccommodationByID(ctx context.Context, id string) (*accommodation.Accommodation, error)
}

// DomainResolver answers whether an email domain resolves in DNS. A nil
// resolver on the schema skips the check entirely (syntax-only validation).
type DomainResolver interface {
	Resolvable(ctx context.Context, domain string) bool
}

// DNSResolver implements [DomainResolver] against live DNS: a domain is
// resolvable when it has MX records or, failing that, any address record.
type DNSResolver struct {
	resolver *net.Resolver
}

// NewDNSResolver creates a [DomainResolver] backed by the default resolver.
func NewDNSResolver() *DNSResolver {
	return &DNSResolver{resolver: net.DefaultResolver}
}

// Resolvable checks MX first, then falls back to host records.
func (d *DNSResolver) Resolvable(ctx context.Context, domain string) bool {
	if records, err := d.resolver.LookupMX(ctx, domain); err == nil && len(records) > 0 {
		return true
	}
	addresses, err := d.resolver.LookupHost(ctx, domain)
	return err == nil && len(addresses) > 0
}

// # Schema Variants

// Variant selects which rule set a validation call composes. The three
// variants share every field validator and differ only in their cross-entity
// rules.
type Variant int

const (
	// VariantNew validates person + registration together for an anonymous
	// submitter. Runs both the account-uniqueness and already-registered
	// rules.
	VariantNew Variant = iota

	// VariantExistingPerson validates the registration only, for an
	// authenticated submitter. Runs the already-registered rule against the
	// known person identity; no account-uniqueness check.
	VariantExistingPerson

	// VariantEdit validates the registration only and skips the
	// already-registered rule, so an existing registrant can re-save their
	// own registration. This asymmetry with the create paths is deliberate.
	VariantEdit
)

// # Results

// PersonInput is the validated person sub-form of a new registration. The
// password is still plaintext here; the service hashes it before persisting.
type PersonInput struct {
	EmailAddress string
	Password     string
	Handle       string
	Fullname     string
}

// Result is the typed output of a successful validation call. Person is nil
// except for the new-registrant variant. Accommodation is the resolved
// booking, nil when self-catered.
type Result struct {
	Person        *PersonInput
	Registration  *Registration
	Accommodation *accommodation.Accommodation
}

// # Schema

// Schema validates nested registration form payloads. Construct once and
// share; it holds no per-call state.
type Schema struct {
	queries  Queries
	resolver DomainResolver
}

// NewSchema constructs a [Schema]. Pass a nil resolver to validate email
// syntax only, without DNS lookups.
func NewSchema(queries Queries, resolver DomainResolver) *Schema {
	return &Schema{queries: queries, resolver: resolver}
}

/*
ValidateNew validates an anonymous submission: person and registration
together, with account-uniqueness and already-registered rules.

Parameters:
  - ctx: context.Context
  - input: *form.Tree (Decoded nested payload)

Returns:
  - *Result: Typed person + registration, only when the error tree is nil
  - *form.ErrorTree: Validation failures mirroring the input shape
  - error: Fatal lookup failures (database unreachable)
*/
func (schema *Schema) ValidateNew(ctx context.Context, input *form.Tree) (*Result, *form.ErrorTree, error) {
	return schema.validate(ctx, input, VariantNew, "")
}

/*
ValidateExistingPerson validates a submission by an authenticated person:
registration only, with the already-registered rule bound to that identity.

Parameters:
  - ctx: context.Context
  - input: *form.Tree
  - personID: string (The authenticated person)

Returns:
  - *Result: Typed registration, only when the error tree is nil
  - *form.ErrorTree: Validation failures mirroring the input shape
  - error: Fatal lookup failures
*/
func (schema *Schema) ValidateExistingPerson(ctx context.Context, input *form.Tree, personID string) (*Result, *form.ErrorTree, error) {
	return schema.validate(ctx, input, VariantExistingPerson, personID)
}

/*
ValidateEdit validates a re-save of an existing registration: registration
only, with no already-registered rule.

Parameters:
  - ctx: context.Context
  - input: *form.Tree
  - personID: string (The authenticated person)

Returns:
  - *Result: Typed registration, only when the error tree is nil
  - *form.ErrorTree: Validation failures mirroring the input shape
  - error: Fatal lookup failures
*/
func (schema *Schema) ValidateEdit(ctx context.Context, input *form.Tree, personID string) (*Result, *form.ErrorTree, error) {
	return schema.validate(ctx, input, VariantEdit, personID)
}

// validate runs the variant's composed rule set. Exactly one of the result
// and the error tree is meaningful: a non-nil tree means the result must not
// be used.
func (schema *Schema) validate(ctx context.Context, input *form.Tree, variant Variant, personID string) (*Result, *form.ErrorTree, error) {
	errs := form.NewErrorTree()
	result := &Result{}

	if variant == VariantNew {
		person, err := schema.validatePerson(ctx, input.Group(GroupPerson), errs.Group(GroupPerson))
		if err != nil {
			return nil, nil, err
		}
		result.Person = person
	}

	registration, booked, err := schema.validateRegistration(ctx, input.Group(GroupRegistration), errs.Group(GroupRegistration))
	if err != nil {
		return nil, nil, err
	}
	result.Registration = registration
	result.Accommodation = booked

	// Already-registered is entity-state-dependent: it runs against the
	// current database, keyed on the identified person. The edit variant
	// skips it; the anonymous variant has no identity yet, so it passes
	// vacuously (duplicate-account rules cover that path).
	if variant != VariantEdit && personID != "" {
		if err := schema.notExistingRegistration(ctx, personID, errs.Group(GroupRegistration)); err != nil {
			return nil, nil, err
		}
	}

	if !errs.Empty() {
		return nil, errs, nil
	}
	return result, nil, nil
}

// # Person Sub-Schema

// validatePerson validates the person group for a new account: field rules,
// the password cross-field rule, then account uniqueness.
func (schema *Schema) validatePerson(ctx context.Context, input *form.Tree, errs *form.ErrorTree) (*PersonInput, error) {
	reader := &fieldReader{in: input, errs: errs}

	person := &PersonInput{
		EmailAddress: schema.email(ctx, reader, people.FieldEmailAddress, true),
		Password:     reader.required(people.FieldPassword),
		Handle:       reader.required(people.FieldHandle),
		Fullname:     reader.required(people.FieldFullname),
	}
	passwordConfirm := reader.required(people.FieldPasswordConfirm)

	// Cross-field: both passwords present but different. Attached at the
	// person node since no single field owns the failure.
	if person.Password != "" && passwordConfirm != "" && person.Password != passwordConfirm {
		errs.AddNode(CodePasswordMismatch, "Password and confirmation do not match")
	}

	if err := schema.notExistingAccount(ctx, person, errs); err != nil {
		return nil, err
	}

	return person, nil
}

// notExistingAccount enforces global account uniqueness. Email is checked
// before handle, and only the first violation is reported.
func (schema *Schema) notExistingAccount(ctx context.Context, person *PersonInput, errs *form.ErrorTree) error {
	if person.EmailAddress != "" {
		_, err := schema.queries.FindPersonByEmail(ctx, person.EmailAddress)
		switch {
		case err == nil:
			errs.AddField(people.FieldEmailAddress, CodeDuplicateEmail, "A person with this email address is already registered")
			return nil
		case !dberr.IsNotFound(err):
			return fmt.Errorf("registration_schema_email_lookup_failed: %w", err)
		}
	}

	if person.Handle != "" {
		_, err := schema.queries.FindPersonByHandle(ctx, person.Handle)
		switch {
		case err == nil:
			errs.AddField(people.FieldHandle, CodeDuplicateHandle, "A person with this handle is already registered")
		case !dberr.IsNotFound(err):
			return fmt.Errorf("registration_schema_handle_lookup_failed: %w", err)
		}
	}

	return nil
}

// notExistingRegistration fails when the identified person already owns a
// registration. Aggregate failure: attached at the registration node.
func (schema *Schema) notExistingRegistration(ctx context.Context, personID string, errs *form.ErrorTree) error {
	_, err := schema.queries.FindRegistrationByPersonID(ctx, personID)
	switch {
	case err == nil:
		errs.AddNode(CodeAlreadyRegistered, "This person is already registered")
	case !dberr.IsNotFound(err):
		return fmt.Errorf("registration_schema_registration_lookup_failed: %w", err)
	}
	return nil
}

// # Registration Sub-Schema

// validateRegistration validates the registration group and resolves its
// accommodation reference.
func (schema *Schema) validateRegistration(ctx context.Context, input *form.Tree, errs *form.ErrorTree) (*Registration, *accommodation.Accommodation, error) {
	reader := &fieldReader{in: input, errs: errs}

	registration := &Registration{
		Address1: reader.required(FieldAddress1),
		Address2: reader.optional(FieldAddress2),
		City:     reader.required(FieldCity),
		State:    reader.optional(FieldState),
		Country:  reader.required(FieldCountry),
		Postcode: reader.required(FieldPostcode),
		Phone:    reader.optional(FieldPhone),
		Company:  reader.optional(FieldCompany),

		Shell:            reader.optional(FieldShell),
		Shelltext:        reader.optional(FieldShelltext),
		Editor:           reader.optional(FieldEditor),
		Editortext:       reader.optional(FieldEditortext),
		Distro:           reader.optional(FieldDistro),
		Distrotext:       reader.optional(FieldDistrotext),
		SillyDescription: reader.optional(FieldSillyDescription),

		Prevconf: optionset.Decode(input.Values(FieldPrevconf)),
		Miniconf: optionset.Decode(input.Values(FieldMiniconf)),

		Type:         reader.choice(FieldType, billing.RegistrationTypes()),
		DiscountCode: reader.optional(FieldDiscountCode),
		Teesize:      reader.required(FieldTeesize),

		Dinner:  reader.integer(FieldDinner),
		Diet:    reader.optional(FieldDiet),
		Special: reader.optional(FieldSpecial),
		Openday: reader.integer(FieldOpenday),

		PartnerEmail: schema.email(ctx, reader, FieldPartnerEmail, false),
		Kids0_3:      reader.integer(FieldKids0_3),
		Kids4_6:      reader.integer(FieldKids4_6),
		Kids7_9:      reader.integer(FieldKids7_9),
		Kids10:       reader.integer(FieldKids10),

		Checkin:  reader.integer(FieldCheckin),
		Checkout: reader.integer(FieldCheckout),

		LaSignup:       reader.boolean(FieldLaSignup),
		AnnounceSignup: reader.boolean(FieldAnnounceSignup),
		DelegateSignup: reader.boolean(FieldDelegateSignup),
	}

	booked, err := schema.resolveAccommodation(ctx, reader)
	if err != nil {
		return nil, nil, err
	}
	if booked != nil {
		registration.AccommodationID = &booked.ID

		// A booked stay must span at least one night.
		if registration.Checkout <= registration.Checkin {
			errs.AddField(FieldCheckout, CodeInvalidStay, "Checkout must be after checkin")
		}
	}

	return registration, booked, nil
}

// resolveAccommodation decodes the accommodation field. The sentinel "own"
// (or an absent field) means self-catered; any other value must resolve to a
// real accommodation by identity.
func (schema *Schema) resolveAccommodation(ctx context.Context, reader *fieldReader) (*accommodation.Accommodation, error) {
	raw := reader.optional(FieldAccommodation)
	if raw == "" || raw == AccommodationOwnSentinel {
		return nil, nil
	}

	booked, err := schema.queries.FindAccommodationByID(ctx, raw)
	if err != nil {
		if dberr.IsNotFound(err) {
			reader.errs.AddField(FieldAccommodation, CodeUnknownAccommodation, "Unknown accommodation selection")
			return nil, nil
		}
		return nil, fmt.Errorf("registration_schema_accommodation_lookup_failed: %w", err)
	}

	return booked, nil
}

// # Field Readers
//
// fieldReader applies one field-level validator per call, accumulating
// failures into the error node for its group. Failed fields yield zero
// values so the caller can keep building the result unconditionally; the
// final Empty() check decides whether the result is usable.

type fieldReader struct {
	in   *form.Tree
	errs *form.ErrorTree
}

// required trims and returns the value, recording MISSING_FIELD when empty.
func (reader *fieldReader) required(name string) string {
	value := strings.TrimSpace(reader.in.Get(name))
	if value == "" {
		reader.errs.AddField(name, form.CodeMissingField, "Please enter a value")
	}
	return value
}

// optional trims and returns the value, empty when absent.
func (reader *fieldReader) optional(name string) string {
	return strings.TrimSpace(reader.in.Get(name))
}

// integer parses an optional integer field, defaulting to zero when absent.
func (reader *fieldReader) integer(name string) int {
	raw := strings.TrimSpace(reader.in.Get(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		reader.errs.AddField(name, form.CodeInvalidFormat, "Please enter an integer value")
		return 0
	}
	return value
}

// boolean parses a checkbox-style field: absent means false, "on" means
// checked, and the usual literal spellings are accepted.
func (reader *fieldReader) boolean(name string) bool {
	raw := strings.ToLower(strings.TrimSpace(reader.in.Get(name)))
	switch raw {
	case "", "false", "0", "no", "off":
		return false
	case "on", "true", "1", "yes":
		return true
	}
	reader.errs.AddField(name, form.CodeInvalidFormat, "Please enter a yes/no value")
	return false
}

// choice validates a required field against a closed option set.
func (reader *fieldReader) choice(name string, options []string) string {
	value := reader.required(name)
	if value == "" {
		return ""
	}
	for _, option := range options {
		if value == option {
			return value
		}
	}
	reader.errs.AddField(name, CodeInvalidChoice, "Value must be one of: "+strings.Join(options, ", "))
	return ""
}

// email validates address syntax and, when the schema carries a resolver,
// that the domain resolves in DNS. Returns the normalized address, or ""
// on any failure.
func (schema *Schema) email(ctx context.Context, reader *fieldReader, name string, required bool) string {
	raw := strings.TrimSpace(reader.in.Get(name))
	if raw == "" {
		if required {
			reader.errs.AddField(name, form.CodeMissingField, "Please enter a value")
		}
		return ""
	}

	address, err := mail.ParseAddress(raw)
	if err != nil || address.Address != raw {
		reader.errs.AddField(name, form.CodeInvalidEmail, "Please enter a valid email address")
		return ""
	}

	if schema.resolver != nil {
		domain := raw[strings.LastIndex(raw, "@")+1:]
		if !schema.resolver.Resolvable(ctx, domain) {
			reader.errs.AddField(name, form.CodeUnresolvableDomain, "The email domain could not be resolved")
			return ""
		}
	}

	return raw
}
