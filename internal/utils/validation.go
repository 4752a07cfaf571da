package utils

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"fyyur/internal/types"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			return formFieldName(field.Tag.Get("form"), field.Name)
		})
	})
	return validate
}

// ValidateStruct runs the `validate` tags on s and reports the first failing field
// as a validation failure.
func ValidateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		if first.Param() != "" {
			return types.Validationf("%s failed %s=%s", first.Field(), first.Tag(), first.Param())
		}
		return types.Validationf("%s failed %s", first.Field(), first.Tag())
	}

	return types.Validationf("%v", err)
}

// ParseID reads a positive integer identifier from a path or form value
func ParseID(field, value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, types.Validationf("%s must be an integer, got %q", field, value)
	}
	if id <= 0 {
		return 0, types.Validationf("%s must be positive, got %d", field, id)
	}
	return id, nil
}

func formFieldName(tag, fallback string) string {
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "" || name == "-" {
		return fallback
	}
	return name
}
