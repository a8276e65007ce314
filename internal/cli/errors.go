package cli

import (
	"errors"
	"fmt"
)

type taskNotFoundError struct {
	id uint64
}

func (e taskNotFoundError) Error() string {
	return fmt.Sprintf("Task %d not found.", e.id)
}

func errTaskNotFound(id uint64) error {
	return taskNotFoundError{id: id}
}

// errExactlyOneSelector rejects bulk commands called with zero or several
// of their mutually exclusive selectors.
var errExactlyOneSelector = errors.New("Error: Must specify exactly one of --id, --tag, --project, or --status")
