package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Custom validation tags
const (
	tagCrop   = "crop"
	tagAnimal = "animal"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Report JSON names so field errors match what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(tagCrop, validateCrop)
	_ = v.RegisterValidation(tagAnimal, validateAnimal)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps field names to readable messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case tagCrop:
			errs[field] = fmt.Sprintf("Unknown crop %q", e.Value())
		case tagAnimal:
			errs[field] = fmt.Sprintf("Unknown animal %q", e.Value())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// isUnknownKind reports whether err failed only on crop or animal enums
func isUnknownKind(err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return false
	}
	for _, e := range validationErrors {
		if e.Tag() != tagCrop && e.Tag() != tagAnimal {
			return false
		}
	}
	return true
}

func validateCrop(fl validator.FieldLevel) bool {
	return domain.ItemKind(fl.Field().String()).IsCrop()
}

func validateAnimal(fl validator.FieldLevel) bool {
	return domain.ItemKind(fl.Field().String()).IsAnimal()
}
