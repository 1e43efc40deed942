// Package schema declares the request and response shapes exchanged with the
// generation model and validates values against them in both directions.
//
// Input from the form and replies from the model go through the same
// Schema.Validate call. Replies additionally go through Schema.Decode, which
// turns JSON type mismatches into "shape" violations instead of letting a
// half-decoded struct through.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/socialchef/chefgpt/internal/errors"
)

// Constraint names reported in violations.
const (
	ConstraintRequired = "required"
	ConstraintNotBlank = "notblank"
	ConstraintMin      = "min"
	ConstraintShape    = "shape"
)

const rootField = "$"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names, they are what the form and the model see.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation(ConstraintNotBlank, notBlank); err != nil {
		panic(fmt.Sprintf("schema: register notblank: %v", err))
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return !field.IsZero()
}

// Schema validates values of one request or response type.
type Schema[T any] struct {
	name string
}

// New returns the schema for T. T must be a struct type.
func New[T any](name string) Schema[T] {
	return Schema[T]{name: name}
}

func (s Schema[T]) Name() string {
	return s.name
}

// Validate returns value unchanged when it satisfies the schema, or a
// validation AppError enumerating every violated field.
func (s Schema[T]) Validate(value T) (T, error) {
	if err := validate.Struct(value); err != nil {
		var zero T
		return zero, apperrors.NewSchemaValidationError(s.name, toViolations(err))
	}
	return value, nil
}

// Decode parses untrusted JSON into T and validates the result.
func (s Schema[T]) Decode(data []byte) (T, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, apperrors.NewSchemaValidationError(s.name, []apperrors.Violation{shapeViolation(err)})
	}
	return s.Validate(value)
}

// Fields lists the top-level JSON field names of T in declaration order.
func (s Schema[T]) Fields() []string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	fields := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, name)
	}
	return fields
}

func toViolations(err error) []apperrors.Violation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.Violation{{Field: rootField, Constraint: ConstraintShape, Message: err.Error()}}
	}

	out := make([]apperrors.Violation, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		v := apperrors.Violation{Field: field}
		switch fe.Tag() {
		case "required":
			v.Constraint = ConstraintRequired
			v.Message = field + " is required"
		case ConstraintNotBlank:
			if s, ok := fe.Value().(string); ok && s == "" {
				v.Constraint = ConstraintRequired
				v.Message = field + " is required"
			} else {
				v.Constraint = ConstraintNotBlank
				v.Message = field + " must not be blank"
			}
		case "min":
			v.Constraint = ConstraintMin
			v.Message = fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		default:
			v.Constraint = fe.Tag()
			v.Message = field + " is invalid"
		}
		out = append(out, v)
	}
	return out
}

// fieldPath drops the Go type name validator puts in front of the namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func shapeViolation(err error) apperrors.Violation {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = rootField
		}
		return apperrors.Violation{
			Field:      field,
			Constraint: ConstraintShape,
			Message:    fmt.Sprintf("%s must be %s, got %s", field, describeKind(typeErr.Type), typeErr.Value),
		}
	}
	return apperrors.Violation{
		Field:      rootField,
		Constraint: ConstraintShape,
		Message:    "payload is not a JSON object: " + err.Error(),
	}
}

func describeKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.String:
		return "text"
	default:
		return t.Kind().String()
	}
}
