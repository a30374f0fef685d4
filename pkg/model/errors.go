package model

import "fmt"

// ErrorKind classifies a single validation failure.
type ErrorKind string

const (
	// ErrorMissingRequired flags a required field left blank.
	ErrorMissingRequired ErrorKind = "missing_required"
	// ErrorOutOfRange flags a likert answer outside the 1..5 scale.
	ErrorOutOfRange ErrorKind = "out_of_range"
	// ErrorMalformedText flags a stored value that cannot be interpreted for
	// its field kind.
	ErrorMalformedText ErrorKind = "malformed_text"
)

// ValidationError records one failed check. Errors are collected, never
// short-circuited, so the user sees every problem at once.
type ValidationError struct {
	Section  string
	FieldKey string
	Kind     ErrorKind
	Message  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Section, e.FieldKey, e.Message)
}
