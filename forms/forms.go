package forms

import (
	"fmt"
	"strings"

	"github.com/a-la-firme/librarysystem/pkg/validator"
	"github.com/a-la-firme/librarysystem/ui"
)

// Kind tags an input with its validation rule set. Name, title, author and
// genre share the required-text rules and differ only in maximum length;
// email, phone, isbn and publication date each have bespoke rules.
type Kind string

const (
	KindName            Kind = "name"
	KindTitle           Kind = "title"
	KindAuthor          Kind = "author"
	KindGenre           Kind = "genre"
	KindEmail           Kind = "email"
	KindPhone           Kind = "phone"
	KindISBN            Kind = "isbn"
	KindPublicationDate Kind = "publication_date"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// User-facing validation messages. The page is Spanish; messages match the
// wording users already know from the server.
const (
	msgRequired      = "Este campo es obligatorio"
	msgMinChars      = "Mínimo %d caracteres"
	msgMaxChars      = "Máximo %d caracteres"
	msgEmailRequired = "El email es obligatorio"
	msgEmailInvalid  = "Email inválido"
	msgPhoneRequired = "El teléfono es obligatorio"
	msgISBNRequired  = "El ISBN es obligatorio"
	msgISBNLength    = "ISBN debe tener entre 10 y 13 caracteres"
	msgDateRequired  = "La fecha es obligatoria"
	msgDateInvalid   = "Fecha inválida"
	msgDateFuture    = "La fecha no puede ser futura"
)

// maxTextLen holds the per-kind maximum for the shared required-text rules.
var maxTextLen = map[Kind]int{
	KindName:   100,
	KindTitle:  200,
	KindAuthor: 100,
	KindGenre:  50,
}

// Rules returns the ordered rule list for a field of the given kind.
// Input is trimmed before any rule runs, so whitespace-only values fail the
// required check and length limits apply to visible characters.
func Rules(kind Kind, field, value string) []validator.Rule {
	value = strings.TrimSpace(value)

	switch kind {
	case KindName, KindTitle, KindAuthor, KindGenre:
		return []validator.Rule{
			validator.Required(field, value).WithMessage(msgRequired),
			validator.MinLen(field, value, 2).WithMessage(fmt.Sprintf(msgMinChars, 2)),
			validator.MaxLen(field, value, maxTextLen[kind]).WithMessage(fmt.Sprintf(msgMaxChars, maxTextLen[kind])),
		}

	case KindEmail:
		return []validator.Rule{
			validator.Required(field, value).WithMessage(msgEmailRequired),
			validator.ValidEmail(field, value).WithMessage(msgEmailInvalid),
		}

	case KindPhone:
		return []validator.Rule{
			validator.Required(field, value).WithMessage(msgPhoneRequired),
			validator.MinLen(field, value, 8).WithMessage(fmt.Sprintf(msgMinChars, 8)),
			validator.MaxLen(field, value, 20).WithMessage(fmt.Sprintf(msgMaxChars, 20)),
		}

	case KindISBN:
		return []validator.Rule{
			validator.Required(field, value).WithMessage(msgISBNRequired),
			validator.LenBetweenString(field, value, 10, 13).WithMessage(msgISBNLength),
		}

	case KindPublicationDate:
		return []validator.Rule{
			validator.Required(field, value).WithMessage(msgDateRequired),
			validator.ValidDateString(field, value, DateLayout).WithMessage(msgDateInvalid),
			validator.NotFutureDateString(field, value, DateLayout).WithMessage(msgDateFuture),
		}
	}

	return nil
}

// Validate checks a single value against its kind's rules and returns the
// first failing message. The display surface shows one message per field,
// so later failures are not collected.
func Validate(kind Kind, value string) (bool, string) {
	err := validator.ApplyFirst(Rules(kind, string(kind), value)...)
	if err == nil {
		return true, ""
	}

	errs := validator.ExtractValidationErrors(err)
	if len(errs) == 0 {
		return false, ""
	}
	return false, errs[0].Message
}

// FieldRule binds a form field name to its validation kind.
type FieldRule struct {
	Field string
	Kind  Kind
}

// Spec is the ordered validation plan for one form, shared between blur-time
// and submit-time validation.
type Spec []FieldRule

// UserForm is the validation plan for the create-user form.
var UserForm = Spec{
	{Field: "name", Kind: KindName},
	{Field: "email", Kind: KindEmail},
	{Field: "phone", Kind: KindPhone},
}

// BookForm is the validation plan for the create-book form.
var BookForm = Spec{
	{Field: "title", Kind: KindTitle},
	{Field: "author", Kind: KindAuthor},
	{Field: "isbn", Kind: KindISBN},
	{Field: "genre", Kind: KindGenre},
	{Field: "publication_date", Kind: KindPublicationDate},
}

// ValidateField validates one field and pushes the result onto the form.
// This is the blur-time entry point.
func ValidateField(f ui.Form, field string, kind Kind) bool {
	ok, msg := Validate(kind, f.Values()[field])
	if ok {
		f.SetFieldValid(field)
	} else {
		f.SetFieldInvalid(field, msg)
	}
	return ok
}

// Check validates every field of the spec, pushing feedback for each one,
// and reports whether the whole form passed. All fields are validated even
// after a failure so the user sees every problem at once.
func Check(f ui.Form, spec Spec) bool {
	values := f.Values()
	allValid := true

	for _, fr := range spec {
		ok, msg := Validate(fr.Kind, values[fr.Field])
		if ok {
			f.SetFieldValid(fr.Field)
		} else {
			f.SetFieldInvalid(fr.Field, msg)
			allValid = false
		}
	}

	return allValid
}

// ApplyServerErrors maps a server field-error response onto the form using
// the same inline feedback channel as local validation. Only the first
// message per field is displayed.
func ApplyServerErrors(f ui.Form, errs map[string][]string) {
	for field, messages := range errs {
		if len(messages) == 0 {
			continue
		}
		f.SetFieldInvalid(field, messages[0])
	}
}
