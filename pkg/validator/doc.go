// Package validator provides composable validation rules that collect
// field-bound errors instead of failing on the first problem.
//
// Rules are plain values pairing a check with the error to report when the
// check fails, which keeps rule tables declarative and easy to share between
// different validation call sites:
//
//	err := validator.Apply(
//	    validator.RequiredString("name", name),
//	    validator.MinLenString("name", name, 2),
//	    validator.ValidEmail("email", email),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//	    fieldErrors := errs.AsFieldMap() // map[string][]string
//	}
//
// ApplyFirst stops at the first failing rule, matching per-field display
// surfaces that only show a single message at a time.
package validator
