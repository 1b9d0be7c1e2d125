package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	RegisterValidations(v)
	return v
}

// RegisterValidations adds the custom tags used by entity and request
// structs to v.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

// fieldName reports a struct field by its API name: the `field` tag when
// present, otherwise the snake_case field name with any ID suffix dropped.
func fieldName(f reflect.StructField) string {
	if name := f.Tag.Get("field"); name != "" {
		return name
	}
	return snakeCase(f.Name)
}

func snakeCase(name string) string {
	if len(name) > 2 {
		name = strings.TrimSuffix(name, "ID")
	}
	var b strings.Builder
	prevUpper := true
	for _, r := range name {
		upper := unicode.IsUpper(r)
		if upper {
			if !prevUpper {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		prevUpper = upper
		b.WriteRune(r)
	}
	return b.String()
}

// check runs the validate tags of entity.
func check(entity any) error {
	err := validate.Struct(entity)
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return FieldErrors(errs).Err()
	}
	return err
}

// FieldErrors converts validator output into a ValidationError keyed by the
// field path below the root struct, e.g. "tickets[1].row".
func FieldErrors(errs validator.ValidationErrors) *ValidationError {
	v := &ValidationError{}
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		v.Add(field, fieldMessage(fe))
	}
	return v
}

func fieldMessage(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required", "notblank":
		return "this field is required"
	case "min", "gte":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", param)
		case reflect.Slice, reflect.Array, reflect.Map:
			if param == "1" {
				return "must not be empty"
			}
			return fmt.Sprintf("must contain at least %s items", param)
		}
		if param == "0" {
			return "must not be negative"
		}
		return "must be at least " + param
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return "must be at most " + param
	case "gt":
		if param == "0" {
			return "must be positive"
		}
		return "must be greater than " + param
	case "nefield":
		return "must differ from " + snakeCase(param)
	case "gtfield":
		return "must be after " + snakeCase(param)
	case "unique":
		return "must not contain duplicates"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
