package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML keys
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateSource checks settings that only matter for the given source
// location. An s3:// source needs a region from the config or the AWS
// environment.
func (c *Config) ValidateSource(location string, lookup LookupFunc) error {
	if !strings.HasPrefix(location, "s3://") || c.Input.S3.Region != "" {
		return nil
	}
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if v, ok := lookup(key); ok && v != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: input.s3.region is required for %s", ErrInvalidConfig, location)
}

// formatValidationError converts validator errors to a user-friendly message
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		param := e.Param()

		switch e.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, param))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", field, param))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: %q must be one of [%s]", field, e.Value(), param))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not a URL", field, e.Value()))
		case "required_with":
			msgs = append(msgs, fmt.Sprintf("%s: required when %s is set", field, param))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// fieldPath turns "Config.output.format" into "output.format".
func fieldPath(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}
