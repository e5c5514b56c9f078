// Package validation contains the logic for validating request data.
//
// Struct tags (`validate:"required,min=3"`) enforce the shape rules and the
// custom `username` and `password` tags enforce the account policies. Errors
// come back as a single VALIDATION_ERROR AppError whose message lists every
// failing field, so handlers can return them to the client unchanged.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tag funcs must not panic on non-string fields; they simply fail.
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return ValidateUsername(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
		return models.EventType(fl.Field().String()).IsValid()
	})
}

// ValidateStruct validates the struct tags on s and returns a VALIDATION_ERROR
// AppError describing every failing field, or nil.
func ValidateStruct(s any) *models.AppError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return models.NewValidationError(strings.Join(messages, "; "))
}

// fieldMessage converts a single field error into a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "username":
		if value, ok := fe.Value().(string); ok {
			if err := ValidateUsername(value); err != nil {
				return err.Error()
			}
		}
		return fmt.Sprintf("%s is not a valid username", field)
	case "password":
		if value, ok := fe.Value().(string); ok {
			if err := ValidatePassword(value); err != nil {
				return err.Error()
			}
		}
		return fmt.Sprintf("%s is not a valid password", field)
	case "eventtype":
		return fmt.Sprintf("%s must be one of: focus, social", field)
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
