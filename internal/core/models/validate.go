package models

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the basic local@domain.tld shape required to save an email
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("leademail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateEmail checks that email has exactly one '@' with text on both sides
// and at least one '.' separating non-empty parts after it
func ValidateEmail(email string) error {
	if err := validate.Var(email, "leademail"); err != nil {
		return &ValidationError{Field: "email", Value: email, Reason: "expected local@domain.tld"}
	}
	return nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	reason := "failed " + fe.Tag()
	switch fe.Tag() {
	case "oneof":
		reason = "must be one of " + fe.Param()
	}
	return &ValidationError{
		Field:  fieldName(fe.Field()),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reason,
	}
}

func fieldName(goName string) string {
	switch goName {
	case "ID":
		return "id"
	case "Status":
		return "status"
	}
	return goName
}
