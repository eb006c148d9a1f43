// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registration implements the conference-registration intake pipeline.

A nested, untyped form payload describing a person and/or their registration
is validated against field-level, cross-field, and cross-entity rules, the
resulting entities are persisted, and billing reconciliation regenerates the
person's current invoice from the registration's billable choices.

# Architecture

The package splits along the usual feature-slice layout:

  - schema.go validates a [form.Tree] into typed results or an error tree
    mirroring the input shape.
  - service.go orchestrates lock-validate-persist-reconcile-notify.
  - store*.go persist the Registration aggregate.
  - http.go is the chi delivery layer.
*/
package registration

import (
	"time"

	"github.com/taibuivan/rookery/pkg/optionset"
)

// # Domain Entities

// Registration is a person's submitted set of conference attendance choices.
// A person owns at most one Registration; the rule is enforced at validation
// time against current database state, not by the storage layer.
type Registration struct {
	ID       string `json:"id"`
	PersonID string `json:"person_id"`

	// Contact and address block.
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`

	// Preferences. The *text variants carry the free-form answer when the
	// selector was "other".
	Shell            string `json:"shell,omitempty"`
	Shelltext        string `json:"shelltext,omitempty"`
	Editor           string `json:"editor,omitempty"`
	Editortext       string `json:"editortext,omitempty"`
	Distro           string `json:"distro,omitempty"`
	Distrotext       string `json:"distrotext,omitempty"`
	SillyDescription string `json:"silly_description,omitempty"`

	// Prevconf holds which past conferences the registrant attended.
	Prevconf optionset.Set `json:"prevconf"`

	// Type selects the base fee (Professional, Hobbyist, Concession).
	Type string `json:"type"`

	DiscountCode string `json:"discount_code,omitempty"`
	Teesize      string `json:"teesize"`

	// Dinner is the count of additional conference dinner tickets.
	Dinner  int    `json:"dinner"`
	Diet    string `json:"diet,omitempty"`
	Special string `json:"special,omitempty"`

	// Miniconf holds which miniconf sessions the registrant will attend.
	Miniconf optionset.Set `json:"miniconf"`

	// Openday is the number of open-day guest passes requested.
	Openday int `json:"openday"`

	// Partner and family attendance block.
	PartnerEmail string `json:"partner_email,omitempty"`
	Kids0_3      int    `json:"kids_0_3"`
	Kids4_6      int    `json:"kids_4_6"`
	Kids7_9      int    `json:"kids_7_9"`
	Kids10       int    `json:"kids_10"`

	// AccommodationID is nil when the registrant is self-catered (the "own"
	// sentinel on the form).
	AccommodationID *string `json:"accommodation_id"`

	// Checkin and Checkout are day offsets within the conference period.
	Checkin  int `json:"checkin"`
	Checkout int `json:"checkout"`

	// Mailing list opt-ins.
	LaSignup       bool `json:"lasignup"`
	AnnounceSignup bool `json:"announcesignup"`
	DelegateSignup bool `json:"delegatesignup"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SelfCatered reports whether the registrant booked no accommodation.
func (r *Registration) SelfCatered() bool {
	return r.AccommodationID == nil
}

// # Field Identifiers

// Form field names in the registration group. The person group reuses the
// people package field constants.
const (
	FieldAddress1         = "address1"
	FieldAddress2         = "address2"
	FieldCity             = "city"
	FieldState            = "state"
	FieldCountry          = "country"
	FieldPostcode         = "postcode"
	FieldPhone            = "phone"
	FieldCompany          = "company"
	FieldShell            = "shell"
	FieldShelltext        = "shelltext"
	FieldEditor           = "editor"
	FieldEditortext       = "editortext"
	FieldDistro           = "distro"
	FieldDistrotext       = "distrotext"
	FieldSillyDescription = "silly_description"
	FieldPrevconf         = "prevconf"
	FieldType             = "type"
	FieldDiscountCode     = "discount_code"
	FieldTeesize          = "teesize"
	FieldDinner           = "dinner"
	FieldDiet             = "diet"
	FieldSpecial          = "special"
	FieldMiniconf         = "miniconf"
	FieldOpenday          = "openday"
	FieldPartnerEmail     = "partner_email"
	FieldKids0_3          = "kids_0_3"
	FieldKids4_6          = "kids_4_6"
	FieldKids7_9          = "kids_7_9"
	FieldKids10           = "kids_10"
	FieldAccommodation    = "accommodation"
	FieldCheckin          = "checkin"
	FieldCheckout         = "checkout"
	FieldLaSignup         = "lasignup"
	FieldAnnounceSignup   = "announcesignup"
	FieldDelegateSignup   = "delegatesignup"
)

// GroupPerson and GroupRegistration are the top-level payload groups the
// schema validates ("person.email_address", "registration.type").
const (
	GroupPerson       = "person"
	GroupRegistration = "registration"
)

// AccommodationOwnSentinel is the reserved accommodation field value meaning
// "no accommodation booked" (self-catered), distinct from a normal ID.
const AccommodationOwnSentinel = "own"
