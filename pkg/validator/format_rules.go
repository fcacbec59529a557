package validator

import (
	"regexp"
	"strings"
)

var (
	// Email regex - local@domain.tld shape with no surrounding whitespace.
	// Deliberately lenient: authoritative validation happens server-side.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidEmail validates that a string looks like a deliverable email address:
// a non-empty local part, an @, and a domain containing at least one dot.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// MatchRegexp validates that a string matches the given pattern.
func MatchRegexp(field, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "has an invalid format",
		},
	}
}
