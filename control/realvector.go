package control

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/names"
)

// RealVectorManifold is an atomic control manifold over a fixed-dimension
// vector of bounded control values.
type RealVectorManifold struct {
	core
	dim    int
	bounds base.Bounds
}

func NewRealVectorManifold(sm base.StateManifold, dim int, reg *names.Registry) *RealVectorManifold {
	return &RealVectorManifold{
		core:   newCore(sm, reg),
		dim:    dim,
		bounds: base.NewBounds(dim),
	}
}

func (m *RealVectorManifold) Dimension() int { return m.dim }

func (m *RealVectorManifold) Bounds() base.Bounds { return m.bounds }

func (m *RealVectorManifold) SetBounds(b base.Bounds) error {
	if err := b.Check(); err != nil {
		return err
	}
	if len(b.Low) != m.dim {
		return fmt.Errorf("control: bounds dimension %d does not match control dimension %d", len(b.Low), m.dim)
	}
	m.bounds = b
	return nil
}

func (m *RealVectorManifold) Setup() error {
	return m.bounds.Check()
}

func (m *RealVectorManifold) CanPropagateBackward() bool { return true }

func (m *RealVectorManifold) AllocControl() Control {
	return &RealVectorControl{Values: make([]float64, m.dim)}
}

func (m *RealVectorManifold) FreeControl(c Control) {}

func (m *RealVectorManifold) CopyControl(dst, src Control) error {
	d, ok := dst.(*RealVectorControl)
	if !ok {
		return &LayoutMismatchError{Manifold: m.name, Want: "real vector", Got: controlKind(dst)}
	}
	s, ok := src.(*RealVectorControl)
	if !ok {
		return &LayoutMismatchError{Manifold: m.name, Want: "real vector", Got: controlKind(src)}
	}
	copy(d.Values, s.Values)
	return nil
}

func (m *RealVectorManifold) EqualControls(a, b Control) bool {
	av, ok := a.(*RealVectorControl)
	if !ok {
		return false
	}
	bv, ok := b.(*RealVectorControl)
	if !ok {
		return false
	}
	if len(av.Values) != len(bv.Values) {
		return false
	}
	for i := range av.Values {
		if av.Values[i] != bv.Values[i] {
			return false
		}
	}
	return true
}

func (m *RealVectorManifold) NullControl(c Control) error {
	rv, ok := c.(*RealVectorControl)
	if !ok {
		return &LayoutMismatchError{Manifold: m.name, Want: "real vector", Got: controlKind(c)}
	}
	for i := range rv.Values {
		rv.Values[i] = 0
	}
	return nil
}

func (m *RealVectorManifold) AllocSampler(rng *rand.Rand) Sampler {
	return &RealVectorSampler{bounds: m.bounds, rng: rng}
}

func (m *RealVectorManifold) ValueAt(c Control, index int) *float64 {
	rv, ok := c.(*RealVectorControl)
	if !ok || index < 0 || index >= len(rv.Values) {
		return nil
	}
	return &rv.Values[index]
}

// EnforceBounds clamps every control value into the manifold's bounds.
func (m *RealVectorManifold) EnforceBounds(c Control) error {
	rv, ok := c.(*RealVectorControl)
	if !ok {
		return &LayoutMismatchError{Manifold: m.name, Want: "real vector", Got: controlKind(c)}
	}
	for i := range rv.Values {
		if rv.Values[i] < m.bounds.Low[i] {
			rv.Values[i] = m.bounds.Low[i]
		} else if rv.Values[i] > m.bounds.High[i] {
			rv.Values[i] = m.bounds.High[i]
		}
	}
	return nil
}

func (m *RealVectorManifold) Propagate(state base.State, c Control, duration float64, result base.State) error {
	if m.propagator == nil {
		return &NotConfiguredError{Manifold: m.name}
	}
	return m.propagator(state, c, duration, result)
}

func (m *RealVectorManifold) PrintControl(c Control, w io.Writer) {
	if rv, ok := c.(*RealVectorControl); ok {
		fmt.Fprintf(w, "RealVectorControl %v\n", rv.Values)
		return
	}
	fmt.Fprintf(w, "Control of unexpected kind %s\n", controlKind(c))
}

func (m *RealVectorManifold) PrintSettings(w io.Writer) {
	fmt.Fprintf(w, "Real vector control manifold %q, dimension %d\n", m.name, m.dim)
	fmt.Fprintf(w, "  bounds: low %v high %v\n", m.bounds.Low, m.bounds.High)
}

var _ Manifold = (*RealVectorManifold)(nil)
