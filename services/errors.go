package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency symbol")
	ErrDuplicateItemID = errors.New("duplicate material id")
)

// ValidationError is a caller-facing, recoverable error. Fields maps the
// offending input field to a message that can be shown to the user as is.
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

// Messages returns the distinct field messages ordered by field name.
func (e *ValidationError) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		msg := e.Fields[k]
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// fromOzzo converts the result of validation.ValidateStruct into a
// *ValidationError. Internal (non-validation) errors are returned unchanged.
func fromOzzo(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		fields[field] = ferr.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// RenderError reports a failure inside a document backend (PDF, Excel, mail).
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// UserMessage converts any core error into the text shown in a toast.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return strings.Join(ve.Messages(), ". ")
	}
	var re *RenderError
	if errors.As(err, &re) {
		return fmt.Sprintf("Failed to generate %s. Please try again.", re.Op)
	}
	if errors.Is(err, ErrUnknownCurrency) {
		return "Please choose one of the supported currencies"
	}
	return "Something went wrong. Please try again."
}
