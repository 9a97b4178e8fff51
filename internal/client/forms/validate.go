package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// messages maps field and failed rule to the text shown under the field.
var messages = map[Field]map[string]string{
	FieldName: {
		"notblank": "Name is required",
	},
	FieldEmail: {
		"notblank":    "Email is required",
		"required":    "Email is required",
		"simpleemail": "Invalid email",
	},
	FieldPassword: {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	FieldConfirmPassword: {
		"eqfield": "Passwords do not match",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return sf.Tag.Get("form")
	})

	must(v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

type loginInput struct {
	Email    string `form:"email" validate:"notblank"`
	Password string `form:"password" validate:"required"`
}

type registerInput struct {
	Name            string `form:"name" validate:"notblank"`
	Email           string `form:"email" validate:"notblank,simpleemail"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

type resetInput struct {
	Email string `form:"email" validate:"required"`
}

// check validates in and returns the field errors, or nil when in is valid.
// Each field reports only its first failing rule.
func check(in any) map[Field]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		panic(err)
	}

	out := make(map[Field]string, len(verrs))
	for _, fe := range verrs {
		f := Field(fe.Field())
		msg, ok := messages[f][fe.Tag()]
		if !ok {
			msg = "Invalid " + fe.Field()
		}
		out[f] = msg
	}
	return out
}
