package dto

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexcarden/qrgen/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// validateRequest validates a request DTO and maps validator errors onto
// domain validation errors. Password composition is deliberately not checked
// here: the account service owns the policy and reports every unmet rule.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrInvalidField("request", err.Error())
	}

	var messages []string
	for _, fe := range verrs {
		messages = append(messages, formatFieldError(fe))
	}

	first := verrs[0]
	field := jsonFieldName(first)
	if first.Tag() == "required" {
		return domain.ErrMissingField(field)
	}
	return domain.ErrInvalidField(field, strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := jsonFieldName(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonFieldName turns the Go struct field name into its json tag form so
// error messages match what the client actually sent.
func jsonFieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "FullName":
		return "full_name"
	case "NewPassword":
		return "new_password"
	case "FillColor":
		return "fill_color"
	case "BackColor":
		return "back_color"
	default:
		return strings.ToLower(fe.Field())
	}
}
