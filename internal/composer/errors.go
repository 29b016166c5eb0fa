package composer

import (
	"errors"
	"fmt"
)

// EmptyBatchError reports a multi-entity insert invoked with zero
// entities. Raised before any mutation of the clause tree.
type EmptyBatchError struct {
	// Type is the entity type of the attempted batch.
	Type string
}

// Error implements the error interface.
func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("insert batch for %s is empty", e.Type)
}

// IsEmptyBatch returns true if the error is an empty batch error. Uses
// errors.As to handle wrapped errors.
func IsEmptyBatch(err error) bool {
	var be *EmptyBatchError
	return errors.As(err, &be)
}
