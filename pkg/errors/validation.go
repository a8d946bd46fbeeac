package errors

import (
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks v against its `validate` struct tags and reports the first
// failing field as an ErrCodeInvalidInput error. Fields are named by their
// Go path so messages point at the offending value, e.g. "Layout.Width".
func Validate(v any) error {
	return ValidateAs(ErrCodeInvalidInput, v)
}

// ValidateAs is like Validate but tags the resulting error with code.
func ValidateAs(code Code, v any) error {
	err := structValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Wrap(ErrCodeInternal, err, "validation failed")
	}

	fe := verrs[0]
	field := fe.StructNamespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if fe.Param() != "" {
		return New(code, "%s failed %q (%s)", field, fe.Tag(), fe.Param())
	}
	return New(code, "%s failed %q", field, fe.Tag())
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDataset, "%s must be a finite number, got %v", field, v)
	}
	return nil
}
