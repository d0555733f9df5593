package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRecord       = errors.New("invalid_record")
	ErrDuplicateSubmission = errors.New("duplicate_submission")
	ErrInvalidUser         = errors.New("invalid_user")
)

type FieldError struct {
	Field   string
	Code    string
	Message string
}

// ValidationError lists every field that failed validation. It matches ErrInvalidRecord.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalidRecord.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return ErrInvalidRecord.Error() + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

func (e *ValidationError) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
