package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/villains-api/internal/errs"
)

const defaultMessage = "Validation failed"

// Validatable is implemented by request payloads. Validate usually runs
// validator.Struct and returns validator.ValidationErrors, or
// CustomValidationErrors for rules tags cannot express.
type Validatable interface {
	Validate() error
}

// Messenger is implemented by payloads that answer every bind or
// validation failure with one fixed message.
type Messenger interface {
	ValidationMessage() string
}

// CustomValidationError is a single failure on a named field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so Validate can return it.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return defaultMessage
}

// BindAndValidate binds path params, query params and body into payload,
// then validates it. Failures come back as a 400 *errs.HTTPError.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(messageFor(payload, bindMessage(err)), false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(messageFor(payload, msg), true, nil, fieldErrors, nil)
	}

	return nil
}

func messageFor(payload Validatable, fallback string) string {
	if m, ok := payload.(Messenger); ok {
		return m.ValidationMessage()
	}
	return fallback
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return defaultMessage, fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: describe(field, fe),
		})
	}

	return defaultMessage, fieldErrors
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "dive":
		return "some items are invalid"
	}

	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", field, fe.Tag())
}
