// Package config prepares configuration and parameter structs: struct tag
// defaults are applied first, then validation rules are checked.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Package-level validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report json names in field errors so messages match the wire format.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	registerCustomValidators()
}

// Prepare applies defaults from struct tags and validates the result.
// config must be a pointer to a struct.
func Prepare(config any) error {
	if err := ApplyDefaults(config); err != nil {
		slog.Error("Config: failed to apply defaults",
			"config_type", reflect.TypeOf(config).String(),
			"error", err)
		return err
	}

	if err := Validate(config); err != nil {
		return err
	}

	return nil
}

// ApplyDefaults fills zero-valued fields from their `default` tags.
func ApplyDefaults(config any) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := defaults.Set(config); err != nil {
		return fmt.Errorf("failed to apply default values: %w", err)
	}

	return nil
}

// Validate checks the `validate` tags of a struct (or pointer to struct).
// Values that are not structs, such as raw maps, are accepted unchanged.
func Validate(v any) error {
	if v == nil {
		return fmt.Errorf("config cannot be nil")
	}

	value := reflect.ValueOf(v)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return fmt.Errorf("config cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	if err := validate.Struct(value.Interface()); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &ValidationError{Fields: fieldErrors(validationErrors)}
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// Var validates a single value against a tag expression, e.g. "required,url_format".
func Var(field any, tag string) error {
	return validate.Var(field, tag)
}

// RegisterCustomValidator makes an additional validation tag available to all structs.
func RegisterCustomValidator(tag string, fn validator.Func) error {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("failed to register custom validator '%s': %w", tag, err)
	}
	return nil
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Param != "" {
			messages = append(messages, fmt.Sprintf("field '%s' failed validation (rule: %s=%s)", f.Field, f.Rule, f.Param))
			continue
		}
		messages = append(messages, fmt.Sprintf("field '%s' failed validation (rule: %s)", f.Field, f.Rule))
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

func fieldErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fieldErr := range errs {
		namespace := fieldErr.Namespace()
		// Drop the root struct name: "FetchPersonParams.personUrl" -> "personUrl".
		if i := strings.Index(namespace, "."); i >= 0 {
			namespace = namespace[i+1:]
		}
		out = append(out, FieldError{
			Field: namespace,
			Rule:  fieldErr.Tag(),
			Param: fieldErr.Param(),
		})
	}
	return out
}

func registerCustomValidators() {
	// url_format validates URL structure
	validate.RegisterValidation("url_format", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	})

	// linkedin_url accepts absolute http(s) URLs. Host checks are left to the
	// server, which also accepts Sales Navigator and hashed profile URLs.
	validate.RegisterValidation("linkedin_url", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return false
		}
		return u.Scheme == "https" || u.Scheme == "http"
	})
}
