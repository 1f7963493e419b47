package workouts

import (
	"errors"
	"fmt"
	"strings"
)

const MaxNameLength = 100

var ErrInvalidField = errors.New("invalid field")

// FieldError is a local validation failure of a single form field.
type FieldError struct {
	Field   string
	Message string
}

func newFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

func validateName(entity, name string, maxLen int) error {
	if strings.TrimSpace(name) == "" {
		return newFieldError("name", fmt.Sprintf("%s name cannot be empty", entity))
	}
	if len(name) > maxLen {
		return newFieldError("name", fmt.Sprintf("%s name must be less than %d characters", entity, maxLen))
	}
	return nil
}
