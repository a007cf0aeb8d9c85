package lookup

import (
	"fmt"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/store"
)

// NotFoundError reports a verb name the form store could not resolve.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("verb '%s' not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return store.ErrNotFound
}
