package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTradeNotFound is returned when a trade id does not exist, or when a
	// visitor asks for an unpublished trade (existence is not leaked).
	ErrTradeNotFound = errors.New("trade not found")

	// ErrInvalidCredentials is returned on a failed owner login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field-level detail for a rejected write. No
// partial write happens when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
