package types

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors for the failure kinds a submission can end in.
var (
	ErrValidation = errors.New("validation failure")
	ErrConstraint = errors.New("constraint failure")
	ErrNotFound   = errors.New("record not found")
)

// FailureKind tags why a submission failed
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureValidation FailureKind = "validation"
	FailureConstraint FailureKind = "constraint"
	FailureNotFound   FailureKind = "not_found"
	FailureInternal   FailureKind = "internal"
)

func (k FailureKind) String() string {
	if k == FailureNone {
		return "none"
	}
	return string(k)
}

// Validationf wraps ErrValidation with a formatted detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Classify maps an error returned from a submission to its failure kind.
// GORM must run with TranslateError enabled for driver constraint errors to be recognised.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrValidation):
		return FailureValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return FailureNotFound
	case errors.Is(err, ErrConstraint),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return FailureConstraint
	default:
		return FailureInternal
	}
}
