package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields, returning field -> failed tag.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["_"] = err.Error()
		return errors
	}
	for _, err := range validationErrors {
		errors[err.Namespace()] = err.Tag()
	}
	return errors
}

// Var checks a single value against tag, e.g. Var(email, "required,email").
func Var(v any, tag string) bool {
	return validate.Var(v, tag) == nil
}
