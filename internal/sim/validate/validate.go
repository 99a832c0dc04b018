// Package validate holds the small field validators shared between
// simulators: email syntax, phone normalization, and strict E.164 checks.
package validate

import (
	"regexp"
	"strings"

	"mimic/internal/api"
)

var (
	emailRe      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneDigitRe = regexp.MustCompile(`^[0-9]{7,15}$`)
	strictE164Re = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)
)

// Email checks basic email syntax and returns a ValidationError naming the
// offending field on failure.
func Email(field, value string) error {
	if !emailRe.MatchString(value) {
		return api.NewFieldValidationError(field, "%q is not a valid email address", value)
	}
	return nil
}

// NormalizePhone strips common formatting characters from a phone number
// and returns its canonical form: a leading "+" if one was present,
// followed by 7 to 15 digits. The second return is false when the input
// cannot be normalized.
func NormalizePhone(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	hasPlus := strings.HasPrefix(s, "+")
	if hasPlus {
		s = s[1:]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// formatting, dropped
		default:
			return "", false
		}
	}

	digits := b.String()
	if !phoneDigitRe.MatchString(digits) {
		return "", false
	}
	if hasPlus {
		return "+" + digits, true
	}
	return digits, true
}

// StrictE164 reports whether value is already in strict E.164 form:
// a "+" followed by 7 to 15 digits, no formatting allowed.
func StrictE164(value string) bool {
	return strictE164Re.MatchString(value)
}

// SanitizeName trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces. Returns a ValidationError when the result
// is empty.
func SanitizeName(field, value string) (string, error) {
	cleaned := strings.Join(strings.Fields(value), " ")
	if cleaned == "" {
		return "", api.NewFieldValidationError(field, "must be a non-empty string")
	}
	return cleaned, nil
}
