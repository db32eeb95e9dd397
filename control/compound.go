package control

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/names"
)

// CompoundManifold composes an ordered list of sub-manifolds into one
// manifold. Every operation delegates positionally: the i-th sub-control,
// sub-state and sub-sampler all belong to the i-th sub-manifold. Once Lock
// is called the component list never changes again, so live controls keep a
// stable layout.
type CompoundManifold struct {
	core
	components []Manifold
	count      int
	locked     bool
}

func NewCompoundManifold(sm base.StateManifold, reg *names.Registry) *CompoundManifold {
	return &CompoundManifold{core: newCore(sm, reg)}
}

// AddSubManifold appends component to the ordered sub-manifold list. It
// fails with *LockedManifoldError after Lock, leaving the list unchanged.
// Duplicate sub-manifold names are not rejected here; name lookup returns
// the first match in insertion order.
func (m *CompoundManifold) AddSubManifold(component Manifold) error {
	if m.locked {
		return &LockedManifoldError{Manifold: m.name}
	}
	m.components = append(m.components, component)
	m.count = len(m.components)
	return nil
}

// Lock irreversibly freezes the component list. There is no unlock.
func (m *CompoundManifold) Lock() { m.locked = true }

func (m *CompoundManifold) Locked() bool { return m.locked }

func (m *CompoundManifold) SubManifoldCount() int { return m.count }

func (m *CompoundManifold) SubManifold(index int) (Manifold, error) {
	if index < 0 || index >= m.count {
		return nil, &IndexOutOfRangeError{Index: index, Count: m.count}
	}
	return m.components[index], nil
}

func (m *CompoundManifold) SubManifoldByName(name string) (Manifold, error) {
	for _, c := range m.components {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// Dimension is recomputed on demand so it always reflects the current,
// possibly not yet locked, composition.
func (m *CompoundManifold) Dimension() int {
	dim := 0
	for _, c := range m.components {
		dim += c.Dimension()
	}
	return dim
}

func (m *CompoundManifold) AllocControl() Control {
	cc := &CompoundControl{Components: make([]Control, m.count)}
	for i, c := range m.components {
		cc.Components[i] = c.AllocControl()
	}
	return cc
}

// FreeControl releases sub-controls per index, best effort: a control of the
// wrong layout is ignored rather than failing, so deallocation never aborts
// part way.
func (m *CompoundManifold) FreeControl(c Control) {
	cc, ok := c.(*CompoundControl)
	if !ok {
		return
	}
	for i, sub := range m.components {
		if i < len(cc.Components) && cc.Components[i] != nil {
			sub.FreeControl(cc.Components[i])
		}
	}
	cc.Components = nil
}

func (m *CompoundManifold) components2(dst, src Control) (*CompoundControl, *CompoundControl, error) {
	d, ok := dst.(*CompoundControl)
	if !ok {
		return nil, nil, &LayoutMismatchError{Manifold: m.name, Want: "compound", Got: controlKind(dst)}
	}
	s, ok := src.(*CompoundControl)
	if !ok {
		return nil, nil, &LayoutMismatchError{Manifold: m.name, Want: "compound", Got: controlKind(src)}
	}
	if len(d.Components) != m.count || len(s.Components) != m.count {
		return nil, nil, fmt.Errorf("control: compound control has %d/%d components, manifold has %d", len(d.Components), len(s.Components), m.count)
	}
	return d, s, nil
}

func (m *CompoundManifold) CopyControl(dst, src Control) error {
	d, s, err := m.components2(dst, src)
	if err != nil {
		return err
	}
	for i, sub := range m.components {
		if err := sub.CopyControl(d.Components[i], s.Components[i]); err != nil {
			return err
		}
	}
	return nil
}

// EqualControls short-circuits to false on the first disagreeing
// sub-manifold.
func (m *CompoundManifold) EqualControls(a, b Control) bool {
	ca, ok := a.(*CompoundControl)
	if !ok {
		return false
	}
	cb, ok := b.(*CompoundControl)
	if !ok {
		return false
	}
	if len(ca.Components) != m.count || len(cb.Components) != m.count {
		return false
	}
	for i, sub := range m.components {
		if !sub.EqualControls(ca.Components[i], cb.Components[i]) {
			return false
		}
	}
	return true
}

func (m *CompoundManifold) NullControl(c Control) error {
	cc, ok := c.(*CompoundControl)
	if !ok {
		return &LayoutMismatchError{Manifold: m.name, Want: "compound", Got: controlKind(c)}
	}
	if len(cc.Components) != m.count {
		return fmt.Errorf("control: compound control has %d components, manifold has %d", len(cc.Components), m.count)
	}
	for i, sub := range m.components {
		if err := sub.NullControl(cc.Components[i]); err != nil {
			return err
		}
	}
	return nil
}

// AllocSampler composes one sampler per sub-manifold, in the same index
// order as AllocControl.
func (m *CompoundManifold) AllocSampler(rng *rand.Rand) Sampler {
	cs := &CompoundSampler{samplers: make([]Sampler, m.count)}
	for i, c := range m.components {
		cs.samplers[i] = c.AllocSampler(rng)
	}
	return cs
}

// ValueAt walks sub-manifolds in order, asking each for increasing local
// indices until the global index is reached. Sub-manifolds may expose a
// variable number of addressable scalars; nil means index is past the total.
func (m *CompoundManifold) ValueAt(c Control, index int) *float64 {
	cc, ok := c.(*CompoundControl)
	if !ok || index < 0 || len(cc.Components) != m.count {
		return nil
	}
	idx := 0
	for i, sub := range m.components {
		for j := 0; ; j++ {
			va := sub.ValueAt(cc.Components[i], j)
			if va == nil {
				break
			}
			if idx == index {
				return va
			}
			idx++
		}
	}
	return nil
}

// Propagate uses the injected propagator when one is set, treating the
// compound manifold as atomic. Otherwise it decomposes state, control and
// result positionally and delegates to each sub-manifold.
func (m *CompoundManifold) Propagate(state base.State, c Control, duration float64, result base.State) error {
	if m.propagator != nil {
		return m.propagator(state, c, duration, result)
	}
	cstate, ok := state.(*base.CompoundState)
	if !ok {
		return fmt.Errorf("control: manifold %q needs a compound state to delegate propagation, got %T", m.name, state)
	}
	cc, ok := c.(*CompoundControl)
	if !ok {
		return &LayoutMismatchError{Manifold: m.name, Want: "compound", Got: controlKind(c)}
	}
	cresult, ok := result.(*base.CompoundState)
	if !ok {
		return fmt.Errorf("control: manifold %q needs a compound result state, got %T", m.name, result)
	}
	if len(cstate.Components) != m.count || len(cc.Components) != m.count || len(cresult.Components) != m.count {
		return fmt.Errorf("control: compound propagation arity mismatch (manifold has %d components)", m.count)
	}
	for i, sub := range m.components {
		if err := sub.Propagate(cstate.Components[i], cc.Components[i], duration, cresult.Components[i]); err != nil {
			return err
		}
	}
	return nil
}

// CanPropagateBackward is true only if every sub-manifold reports true.
func (m *CompoundManifold) CanPropagateBackward() bool {
	for _, c := range m.components {
		if !c.CanPropagateBackward() {
			return false
		}
	}
	return true
}

// Setup readies sub-manifolds first, then the compound itself.
func (m *CompoundManifold) Setup() error {
	for _, c := range m.components {
		if err := c.Setup(); err != nil {
			return err
		}
	}
	return nil
}

func (m *CompoundManifold) PrintControl(c Control, w io.Writer) {
	fmt.Fprintln(w, "Compound control [")
	if cc, ok := c.(*CompoundControl); ok && len(cc.Components) == m.count {
		for i, sub := range m.components {
			sub.PrintControl(cc.Components[i], w)
		}
	}
	fmt.Fprintln(w, "]")
}

func (m *CompoundManifold) PrintSettings(w io.Writer) {
	fmt.Fprintf(w, "Compound control manifold %q [\n", m.name)
	for _, sub := range m.components {
		sub.PrintSettings(w)
	}
	fmt.Fprintln(w, "]")
}

var _ Manifold = (*CompoundManifold)(nil)
