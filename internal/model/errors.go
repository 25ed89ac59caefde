package model

import "fmt"

const maxDescription = 200

// ValidationError describes a single invalid field on a record.
type ValidationError struct {
	Kind   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Kind, e.Field, e.Reason)
}
