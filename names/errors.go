package names

import "fmt"

// DuplicateNameError indicates an attempt to claim a name that is already
// held by a live manifold.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("names: %q already in use, manifold names must be unique", e.Name)
}

// NotFoundError indicates a lookup for a name that is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("names: no manifold named %q exists", e.Name)
}
