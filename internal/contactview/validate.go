// Package contactview holds the pure display-side contact logic: draft
// validation, search filtering, and sort ordering. Nothing here performs I/O,
// so the package is usable both by handlers and by any future client.
package contactview

import (
	"regexp"
	"strings"

	"github.com/contactbook/backend/internal/model"
)

const (
	maxNameLength  = 100
	maxEmailLength = 255
)

var (
	// user@domain.tld shape; intentionally loose beyond that.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// At least six characters drawn from digits, spaces, hyphens, parens.
	phonePattern = regexp.MustCompile(`^[\d\s\-()]{6,}$`)
)

// Field error messages shown inline next to form inputs.
const (
	MsgNameRequired  = "Name is required"
	MsgNameTooLong   = "Name must be less than 100 characters"
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please enter a valid email address"
	MsgEmailTooLong  = "Email must be less than 255 characters"
	MsgPhoneRequired = "Phone number is required"
	MsgPhoneInvalid  = "Please enter a valid phone number"
)

// Validate checks a draft and returns a map of field name to message. An
// empty map
// means the draft is submittable. Only name, email, and phone are
// constrained; the remaining fields are free text.
func Validate(d model.ContactDraft) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(d.Name)
	switch {
	case name == "":
		errs["name"] = MsgNameRequired
	case len([]rune(name)) > maxNameLength:
		errs["name"] = MsgNameTooLong
	}

	email := strings.TrimSpace(d.Email)
	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs["email"] = MsgEmailInvalid
	case len(email) > maxEmailLength:
		errs["email"] = MsgEmailTooLong
	}

	phone := strings.TrimSpace(d.Phone)
	switch {
	case phone == "":
		errs["phone"] = MsgPhoneRequired
	case !phonePattern.MatchString(phone):
		errs["phone"] = MsgPhoneInvalid
	}

	return errs
}

// ValidateUpdate applies the same per-field rules to a partial update,
// checking only the fields that were supplied.
func ValidateUpdate(u model.ContactUpdate) map[string]string {
	errs := make(map[string]string)

	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		switch {
		case name == "":
			errs["name"] = MsgNameRequired
		case len([]rune(name)) > maxNameLength:
			errs["name"] = MsgNameTooLong
		}
	}

	if u.Email != nil {
		email := strings.TrimSpace(*u.Email)
		switch {
		case email == "":
			errs["email"] = MsgEmailRequired
		case !emailPattern.MatchString(email):
			errs["email"] = MsgEmailInvalid
		case len(email) > maxEmailLength:
			errs["email"] = MsgEmailTooLong
		}
	}

	if u.Phone != nil {
		phone := strings.TrimSpace(*u.Phone)
		switch {
		case phone == "":
			errs["phone"] = MsgPhoneRequired
		case !phonePattern.MatchString(phone):
			errs["phone"] = MsgPhoneInvalid
		}
	}

	return errs
}
