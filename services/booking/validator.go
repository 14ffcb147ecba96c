package booking

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"sewakantor/models"
)

// RequestValidator checks booking input before any pricing or network work
// happens. Failures come back as a field-level message map so the UI can
// render them inline next to the offending input.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a validator that reports fields by their JSON names.
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate returns nil or a *ValidationError describing every failed field.
func (rv *RequestValidator) Validate(req *models.BookingRequest) error {
	err := rv.validate.Struct(req)
	if err == nil {
		if fieldErr := crossFieldCheck(req); fieldErr != nil {
			return fieldErr
		}
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Fields: fields}
}

func crossFieldCheck(req *models.BookingRequest) error {
	// Tag validation already guarantees the date format.
	if req.StartDate > req.EndDate {
		return &ValidationError{Fields: map[string]string{
			"end_date": "end date must not be before start date",
		}}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}
