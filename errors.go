package lawsite

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a lookup, update or delete matches no record.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned by the gate when the actor is missing or not an admin.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSlugExhausted is returned when no free slug could be found for a title.
	ErrSlugExhausted = errors.New("slug candidates exhausted")
)

// FieldErrors groups validation messages by field name, in the order they were added.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Err returns fe as an error, or nil when no field failed.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(fe[f], "; ")))
	}
	return "validation: " + strings.Join(parts, ", ")
}
