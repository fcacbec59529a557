package validator

import (
	"strings"
	"time"
)

// ValidDateString validates that a string parses with the given layout.
func ValidDateString(field, value, layout string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(layout, strings.TrimSpace(value))
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid date",
		},
	}
}

// NotFutureDateString validates that a date string does not fall after the
// current calendar date. Today is accepted: the parsed value carries no time
// of day, so it never sorts after the current instant. Unparseable values
// fail the check.
func NotFutureDateString(field, value, layout string) Rule {
	return Rule{
		Check: func() bool {
			d, err := time.Parse(layout, strings.TrimSpace(value))
			if err != nil {
				return false
			}
			return !d.After(time.Now())
		},
		Error: ValidationError{
			Field:   field,
			Message: "date must not be in the future",
		},
	}
}

func PastDate(field string, value time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.Before(time.Now())
		},
		Error: ValidationError{
			Field:   field,
			Message: "date must be in the past",
		},
	}
}

func FutureDate(field string, value time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.After(time.Now())
		},
		Error: ValidationError{
			Field:   field,
			Message: "date must be in the future",
		},
	}
}
