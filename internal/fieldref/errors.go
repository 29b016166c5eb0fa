package fieldref

import (
	"errors"
	"fmt"
)

// InvalidReferenceError reports a field accessor that did not resolve to
// a direct, single-field access.
type InvalidReferenceError struct {
	// Arg names the argument or clause that supplied the reference, so
	// the caller can identify which call site to fix.
	Arg string

	// Type is the entity type the reference was declared for.
	Type string

	// Reason describes the rejected shape.
	Reason string
}

// Error implements the error interface.
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid field reference for %s (argument %q): %s", e.Type, e.Arg, e.Reason)
}

// IsInvalidReference returns true if the error is an invalid reference
// error. Uses errors.As to handle wrapped errors.
func IsInvalidReference(err error) bool {
	var re *InvalidReferenceError
	return errors.As(err, &re)
}
