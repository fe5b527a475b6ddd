package gallery

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when an id does not match any artwork.
	ErrNotFound = errors.New("artwork not found")
	// ErrSlotEmpty is returned by durable slots that hold no value yet.
	ErrSlotEmpty = errors.New("slot is empty")
)

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

// Has reports whether field is among the failing fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
