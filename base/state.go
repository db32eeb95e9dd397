// Package base holds the state-space surface the control layer acts on:
// state values, state manifolds with bounds, and the projection evaluators
// used for spatial cell decomposition.
package base

import (
	"fmt"
	"math"
)

// State is one point of a state manifold. It is a closed variant: either a
// *RealVectorState for an atomic manifold or a *CompoundState whose
// components are index-aligned with a compound manifold's sub-manifolds.
type State interface {
	isState()
}

type RealVectorState struct {
	Values []float64
}

func (*RealVectorState) isState() {}

type CompoundState struct {
	Components []State
}

func (*CompoundState) isState() {}

// StateManifold is the contract the control layer consumes from the
// state-space collaborator.
type StateManifold interface {
	Name() string
	Dimension() int
	AllocState() State
}

// Bounds is a per-dimension [Low, High] box.
type Bounds struct {
	Low  []float64
	High []float64
}

func NewBounds(dim int) Bounds {
	return Bounds{Low: make([]float64, dim), High: make([]float64, dim)}
}

// SetAll sets every dimension to [low, high].
func (b Bounds) SetAll(low, high float64) {
	for i := range b.Low {
		b.Low[i] = low
		b.High[i] = high
	}
}

// Span returns High[i] - Low[i].
func (b Bounds) Span(i int) float64 {
	return b.High[i] - b.Low[i]
}

// Check verifies the bounds are well formed: equal lengths and Low <= High
// in every dimension.
func (b Bounds) Check() error {
	if len(b.Low) != len(b.High) {
		return fmt.Errorf("base: bounds have %d low and %d high values", len(b.Low), len(b.High))
	}
	for i := range b.Low {
		if b.Low[i] > b.High[i] {
			return fmt.Errorf("base: bounds inverted at dimension %d (%g > %g)", i, b.Low[i], b.High[i])
		}
	}
	return nil
}

// RealVectorStateManifold is an n-dimensional bounded euclidean state space.
type RealVectorStateManifold struct {
	name   string
	dim    int
	bounds Bounds
}

func NewRealVectorStateManifold(name string, dim int) *RealVectorStateManifold {
	return &RealVectorStateManifold{name: name, dim: dim, bounds: NewBounds(dim)}
}

func (m *RealVectorStateManifold) Name() string   { return m.name }
func (m *RealVectorStateManifold) Dimension() int { return m.dim }

func (m *RealVectorStateManifold) Bounds() Bounds { return m.bounds }

func (m *RealVectorStateManifold) SetBounds(b Bounds) error {
	if err := b.Check(); err != nil {
		return err
	}
	if len(b.Low) != m.dim {
		return fmt.Errorf("base: bounds dimension %d does not match manifold dimension %d", len(b.Low), m.dim)
	}
	m.bounds = b
	return nil
}

func (m *RealVectorStateManifold) AllocState() State {
	return &RealVectorState{Values: make([]float64, m.dim)}
}

// CompoundStateManifold aggregates state manifolds in a fixed order; its
// states are compound states with one component per sub-manifold.
type CompoundStateManifold struct {
	name       string
	components []StateManifold
}

func NewCompoundStateManifold(name string, components ...StateManifold) *CompoundStateManifold {
	return &CompoundStateManifold{name: name, components: components}
}

func (m *CompoundStateManifold) Name() string { return m.name }

func (m *CompoundStateManifold) Dimension() int {
	dim := 0
	for _, c := range m.components {
		dim += c.Dimension()
	}
	return dim
}

func (m *CompoundStateManifold) ComponentCount() int { return len(m.components) }

func (m *CompoundStateManifold) Component(i int) StateManifold { return m.components[i] }

func (m *CompoundStateManifold) AllocState() State {
	cs := &CompoundState{Components: make([]State, len(m.components))}
	for i, c := range m.components {
		cs.Components[i] = c.AllocState()
	}
	return cs
}

// FlattenState copies the scalar values of s into a flat vector, walking
// compound states depth-first in component order.
func FlattenState(s State) []float64 {
	var out []float64
	var walk func(State)
	walk = func(s State) {
		switch v := s.(type) {
		case *RealVectorState:
			out = append(out, v.Values...)
		case *CompoundState:
			for _, c := range v.Components {
				walk(c)
			}
		}
	}
	walk(s)
	return out
}

// StateIsValid reports whether every scalar of s is finite.
func StateIsValid(s State) bool {
	for _, v := range FlattenState(s) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
