package editor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField indicates a field name that is not part of the form.
var ErrUnknownField = errors.New("editor: unknown field")

// Field identifies one of the form's text inputs.
type Field int

const (
	FieldFirstName Field = iota // First name input.
	FieldLastName               // Last name input.
	FieldPhone                  // Phone number input.
)

// Fields returns all form fields in display order.
func Fields() []Field {
	return []Field{FieldFirstName, FieldLastName, FieldPhone}
}

var fieldByStructName = map[string]Field{
	"FirstName": FieldFirstName,
	"LastName":  FieldLastName,
	"Phone":     FieldPhone,
}

// String returns the short command name of the field.
func (f Field) String() string {
	switch f {
	case FieldFirstName:
		return "first"
	case FieldLastName:
		return "last"
	case FieldPhone:
		return "phone"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Label returns the human-readable label shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldPhone:
		return "Phone Number"
	default:
		return f.String()
	}
}

// ParseField maps a field name to a Field. Accepted names are the short
// forms (first, last, phone) and the camel-case forms (firstName, lastName).
// Matching is case-insensitive.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first", "firstname":
		return FieldFirstName, nil
	case "last", "lastname":
		return FieldLastName, nil
	case "phone":
		return FieldPhone, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
