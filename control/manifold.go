package control

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/names"
)

// PropagatorFn computes the state reached from state under c applied for
// duration, writing into result. A negative duration propagates backward in
// time; manifolds that cannot do that report it via CanPropagateBackward.
type PropagatorFn func(state base.State, c Control, duration float64, result base.State) error

// Manifold is the contract planning and sampling code consumes. Manifolds
// are not safe for concurrent mutation; only the name registry serializes
// internally.
type Manifold interface {
	// Name returns the manifold's globally unique name.
	Name() string
	// SetName renames the manifold through the registry; on failure the
	// current name is unchanged.
	SetName(name string) error
	// StateManifold returns the state manifold the controls act on.
	StateManifold() base.StateManifold
	// Dimension returns the number of control scalars.
	Dimension() int
	// Setup prepares the manifold for use. Safe to call more than once.
	Setup() error
	// CanPropagateBackward reports whether propagation is time-reversible.
	CanPropagateBackward() bool

	AllocControl() Control
	FreeControl(c Control)
	CopyControl(dst, src Control) error
	EqualControls(a, b Control) bool
	NullControl(c Control) error
	AllocSampler(rng *rand.Rand) Sampler

	// ValueAt returns a stable mutable reference to the index-th scalar of
	// c's flat representation, or nil when index is out of range.
	ValueAt(c Control, index int) *float64

	Propagate(state base.State, c Control, duration float64, result base.State) error
	SetPropagator(fn PropagatorFn)

	PrintControl(c Control, w io.Writer)
	PrintSettings(w io.Writer)

	// Close releases the manifold's name back to the registry.
	Close() error
}

// core carries the state shared by every manifold kind: identity, the state
// manifold reference and the optional injected propagator.
type core struct {
	stateManifold base.StateManifold
	registry      *names.Registry
	name          string
	propagator    PropagatorFn
}

// newCore derives a default name by wrapping the state manifold's name and
// registers it. Two manifolds over the same state manifold get distinct
// names by counter suffix, so default-named construction never fails.
func newCore(sm base.StateManifold, reg *names.Registry) core {
	if reg == nil {
		reg = names.Default
	}
	name := fmt.Sprintf("Control[%s]", sm.Name())
	for i := 2; reg.Register(name) != nil; i++ {
		name = fmt.Sprintf("Control[%s]#%d", sm.Name(), i)
	}
	return core{stateManifold: sm, registry: reg, name: name}
}

func (c *core) Name() string { return c.name }

func (c *core) SetName(name string) error {
	if err := c.registry.Rename(c.name, name); err != nil {
		return err
	}
	c.name = name
	return nil
}

func (c *core) StateManifold() base.StateManifold { return c.stateManifold }

func (c *core) SetPropagator(fn PropagatorFn) { c.propagator = fn }

func (c *core) Close() error { return c.registry.Unregister(c.name) }
