package editor

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// AlertText is the message shown while the validation-failure flag is set.
const AlertText = "Error: All fields are mandatory, and the phone number must be of 10 digits and start with a non-zero digit."

// mobilePattern matches exactly ten digits with a non-zero first digit.
var mobilePattern = regexp.MustCompile(`^[1-9][0-9]{9}$`)

// draftValidate is shared by all controllers.
var draftValidate *validator.Validate

func init() {
	draftValidate = validator.New()
	_ = draftValidate.RegisterValidation("mobile", validateMobile)
}

func validateMobile(fl validator.FieldLevel) bool {
	return mobilePattern.MatchString(fl.Field().String())
}

// Validate checks d against the form rules and returns the fields that fail,
// in form order. A nil result means d is valid.
func Validate(d Draft) []Field {
	err := draftValidate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: treat every field as failing.
		return []Field{FieldFirstName, FieldLastName, FieldPhone}
	}
	failed := make(map[Field]bool, len(verrs))
	for _, fe := range verrs {
		if f, ok := fieldByStructName[fe.StructField()]; ok {
			failed[f] = true
		}
	}
	var out []Field
	for _, f := range Fields() {
		if failed[f] {
			out = append(out, f)
		}
	}
	return out
}
