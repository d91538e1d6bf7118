package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Request-scoped failure taxonomy. Handlers translate these to HTTP
// statuses; nothing here is fatal to the process.
var (
	// ErrNotFound covers both "row absent" and "row exists but is not
	// yours" so that ownership never leaks existence.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict")
	// ErrEmptyCart means checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError carries per-field messages for bad input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// isUniqueViolation recognises a unique-index rejection from the sqlite
// driver so it can surface as ErrConflict.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
