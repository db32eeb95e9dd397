// Package scenario wires ready-made control manifold setups for the CLI:
// state manifolds, control manifolds with bounds and propagators, and a
// projection evaluator for cell decomposition.
package scenario

import (
	"fmt"
	"math"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/control"
	"github.com/plannerkit/manifold/internal/dynamics"
	"github.com/plannerkit/manifold/names"
)

// Setup is everything a demo run needs.
type Setup struct {
	StateManifold base.StateManifold
	Manifold      control.Manifold
	Initial       base.State
	Projection    base.ProjectionEvaluator
	// Close releases the manifold names claimed during Build.
	Close func()
}

type Registry struct {
	builders map[string]func(reg *names.Registry) (*Setup, error)
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]func(reg *names.Registry) (*Setup, error))}
	r.builders["pendulum"] = buildPendulum
	r.builders["cart"] = buildCart
	r.builders["cart-pendulum"] = buildCartPendulum
	return r
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.builders))
	for n := range r.builders {
		out = append(out, n)
	}
	return out
}

func (r *Registry) Build(name string, reg *names.Registry) (*Setup, error) {
	fn, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(reg)
}

// buildPendulum: a damped torque-driven pendulum, state (theta, omega),
// control (torque).
func buildPendulum(reg *names.Registry) (*Setup, error) {
	sm := base.NewRealVectorStateManifold("Pendulum", 2)
	sb := base.NewBounds(2)
	sb.Low[0], sb.High[0] = -math.Pi, math.Pi
	sb.Low[1], sb.High[1] = -10, 10
	if err := sm.SetBounds(sb); err != nil {
		return nil, err
	}

	m := control.NewRealVectorManifold(sm, 1, reg)
	cb := base.NewBounds(1)
	cb.SetAll(-3, 3)
	if err := m.SetBounds(cb); err != nil {
		m.Close()
		return nil, err
	}

	const (
		mass    = 1.0
		length  = 1.0
		damping = 0.1
		gravity = 9.81
	)
	field := func(x, u []float64) []float64 {
		theta, omega := x[0], x[1]
		alpha := (-damping*omega - mass*gravity*length*math.Sin(theta) + u[0]) / (mass * length * length)
		return []float64{omega, alpha}
	}
	m.SetPropagator(dynamics.RK4Propagator(field, 0.01))

	proj, err := base.NewRealVectorOrthogonalProjectionEvaluator(sm, []int{0}, nil)
	if err != nil {
		m.Close()
		return nil, err
	}

	initial := sm.AllocState()
	initial.(*base.RealVectorState).Values[0] = 0.5

	return &Setup{
		StateManifold: sm,
		Manifold:      m,
		Initial:       initial,
		Projection:    proj,
		Close:         func() { m.Close() },
	}, nil
}

// buildCart: a planar cart with velocity control, state (x, y), control
// (vx, vy).
func buildCart(reg *names.Registry) (*Setup, error) {
	sm := base.NewRealVectorStateManifold("Cart", 2)
	sb := base.NewBounds(2)
	sb.SetAll(-10, 10)
	if err := sm.SetBounds(sb); err != nil {
		return nil, err
	}

	m := control.NewRealVectorManifold(sm, 2, reg)
	cb := base.NewBounds(2)
	cb.SetAll(-1, 1)
	if err := m.SetBounds(cb); err != nil {
		m.Close()
		return nil, err
	}

	field := func(x, u []float64) []float64 {
		return []float64{u[0], u[1]}
	}
	m.SetPropagator(dynamics.EulerPropagator(field, 0.01))

	proj, err := base.NewRealVectorIdentityProjectionEvaluator(sm, nil)
	if err != nil {
		m.Close()
		return nil, err
	}

	return &Setup{
		StateManifold: sm,
		Manifold:      m,
		Initial:       sm.AllocState(),
		Projection:    proj,
		Close:         func() { m.Close() },
	}, nil
}

// buildCartPendulum: a compound manifold carrying a pendulum mounted on a
// cart, composed of the two atomic scenarios and locked.
func buildCartPendulum(reg *names.Registry) (*Setup, error) {
	cart, err := buildCart(reg)
	if err != nil {
		return nil, err
	}
	pend, err := buildPendulum(reg)
	if err != nil {
		cart.Close()
		return nil, err
	}

	csm := base.NewCompoundStateManifold("CartPendulum", cart.StateManifold, pend.StateManifold)
	cm := control.NewCompoundManifold(csm, reg)
	closeAll := func() {
		cm.Close()
		pend.Close()
		cart.Close()
	}
	if err := cm.AddSubManifold(cart.Manifold); err != nil {
		closeAll()
		return nil, err
	}
	if err := cm.AddSubManifold(pend.Manifold); err != nil {
		closeAll()
		return nil, err
	}
	cm.Lock()

	initial := &base.CompoundState{Components: []base.State{cart.Initial, pend.Initial}}

	return &Setup{
		StateManifold: csm,
		Manifold:      cm,
		Initial:       initial,
		Projection:    cart.Projection,
		Close:         closeAll,
	}, nil
}
