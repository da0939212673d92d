// Package validation holds the pure field checks run before any store access.
//
// Every check returns nil or one of the *Error sentinels below; the message of
// a sentinel is the exact text shown to API clients.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Error is a user-correctable validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrEmptyFields      = &Error{Field: "", Message: "Empty input fields!"}
	ErrInvalidName      = &Error{Field: "name", Message: "Invalid name entered!"}
	ErrInvalidEmail     = &Error{Field: "email", Message: "Invalid email entered!"}
	ErrInvalidBirthDate = &Error{Field: "dateOfBirth", Message: "Invalid date of birth entered"}
	ErrPasswordTooShort = &Error{Field: "password", Message: "Password is too short!"}
	ErrPasswordTooLong  = &Error{Field: "password", Message: "Password is too long!"}
	ErrInvalidPhone     = &Error{Field: "phone", Message: "Invalid phone number entered!"}
	ErrInvalidZipCode   = &Error{Field: "zipCode", Message: "Invalid zip code entered!"}
)

// MinPasswordLength is counted in characters of the plaintext.
const MinPasswordLength = 8

// MaxPasswordBytes is bcrypt's input limit, counted in UTF-8 bytes.
const MaxPasswordBytes = 72

var (
	nameRe  = regexp.MustCompile(`^[\p{L} ]+$`)
	emailRe = regexp.MustCompile(`^[\wæøåÆØÅ.]+@([\w-]+\.)+[\w-]{2,4}$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]+$`)
	zipRe   = regexp.MustCompile(`^[0-9]{4}$`)
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// Rule is one step of an ordered validation.
type Rule func() error

// First runs rules in order and returns the first failure.
func First(rules ...Rule) error {
	for _, r := range rules {
		if err := r(); err != nil {
			return err
		}
	}
	return nil
}

// NotEmpty fails when any value is blank after trimming.
func NotEmpty(values ...string) Rule {
	return func() error {
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				return ErrEmptyFields
			}
		}
		return nil
	}
}

func Name(s string) Rule {
	return func() error {
		s = strings.TrimSpace(s)
		if s == "" || !nameRe.MatchString(s) {
			return ErrInvalidName
		}
		return nil
	}
}

func Email(s string) Rule {
	return func() error {
		if s == "" || !emailRe.MatchString(s) {
			return ErrInvalidEmail
		}
		return nil
	}
}

func DateOfBirth(s string) Rule {
	return func() error {
		if _, err := ParseDate(s); err != nil {
			return ErrInvalidBirthDate
		}
		return nil
	}
}

func Password(s string) Rule {
	return func() error {
		if utf8.RuneCountInString(s) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(s) > MaxPasswordBytes {
			return ErrPasswordTooLong
		}
		return nil
	}
}

// Phone accepts an empty value; the field is optional.
func Phone(s string) Rule {
	return func() error {
		if s != "" && !phoneRe.MatchString(s) {
			return ErrInvalidPhone
		}
		return nil
	}
}

// ZipCode accepts an empty value; the field is optional.
func ZipCode(s string) Rule {
	return func() error {
		if s != "" && !zipRe.MatchString(s) {
			return ErrInvalidZipCode
		}
		return nil
	}
}

// ParseDate parses a calendar date in one of the accepted layouts.
// time.Parse rejects impossible dates such as 2023-02-30.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
