package control

import "fmt"

// LockedManifoldError indicates a structural mutation was attempted on a
// compound manifold after Lock.
type LockedManifoldError struct {
	Manifold string
}

func (e *LockedManifoldError) Error() string {
	return fmt.Sprintf("control: manifold %q is locked, no further components can be added", e.Manifold)
}

// IndexOutOfRangeError indicates a sub-manifold index past the end of the
// component list.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("control: sub-manifold index %d out of range (have %d)", e.Index, e.Count)
}

// NotFoundError indicates a sub-manifold name lookup miss.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("control: no sub-manifold named %q", e.Name)
}

// NotConfiguredError indicates Propagate was called on a manifold with no
// propagation function set and no delegation path. This is a configuration
// error, never a silent no-op.
type NotConfiguredError struct {
	Manifold string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("control: no propagation function set for manifold %q", e.Manifold)
}

// LayoutMismatchError indicates a control was passed to a manifold whose
// layout it does not conform to (for example an atomic control handed to a
// compound manifold).
type LayoutMismatchError struct {
	Manifold string
	Want     string
	Got      string
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("control: manifold %q expects a %s control, got %s", e.Manifold, e.Want, e.Got)
}
