package schema

import (
	"errors"
	"fmt"
)

// MissingTableNameError reports a table override that was declared but
// supplied blank. A blank override is treated as a caller configuration
// error and surfaced at resolution time rather than silently falling
// back to the bare type name.
type MissingTableNameError struct {
	// Type is the entity type whose override was blank.
	Type string
}

// Error implements the error interface.
func (e *MissingTableNameError) Error() string {
	return fmt.Sprintf("entity %s declares a table override but supplied a blank name", e.Type)
}

// IsMissingTableName returns true if the error is a blank table override
// error. Uses errors.As to handle wrapped errors.
func IsMissingTableName(err error) bool {
	var me *MissingTableNameError
	return errors.As(err, &me)
}
