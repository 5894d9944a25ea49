package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	validate   = validator.New(validator.WithRequiredStructEnabled())
	ratingRule = fmt.Sprintf("gte=%d,lte=%d", MinRating, MaxRating)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
