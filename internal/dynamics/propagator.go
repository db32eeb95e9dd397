// Package dynamics turns ordinary differential equations into propagation
// functions a control manifold can be configured with.
package dynamics

import (
	"fmt"
	"math"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/control"
)

// VectorField is dx/dt = f(x, u) for a time-invariant system.
type VectorField func(x, u []float64) []float64

func unpack(state base.State, c control.Control, result base.State) ([]float64, []float64, []float64, error) {
	sv, ok := state.(*base.RealVectorState)
	if !ok {
		return nil, nil, nil, fmt.Errorf("dynamics: need a real vector state, got %T", state)
	}
	cv, ok := c.(*control.RealVectorControl)
	if !ok {
		return nil, nil, nil, fmt.Errorf("dynamics: need a real vector control, got %T", c)
	}
	rv, ok := result.(*base.RealVectorState)
	if !ok {
		return nil, nil, nil, fmt.Errorf("dynamics: need a real vector result, got %T", result)
	}
	if len(rv.Values) != len(sv.Values) {
		return nil, nil, nil, fmt.Errorf("dynamics: result has %d values, state has %d", len(rv.Values), len(sv.Values))
	}
	return sv.Values, cv.Values, rv.Values, nil
}

// stepPlan splits duration into steps no longer than maxStep, preserving
// sign so negative durations propagate backward.
func stepPlan(duration, maxStep float64) (int, float64) {
	if duration == 0 {
		return 0, 0
	}
	if maxStep <= 0 {
		return 1, duration
	}
	n := int(math.Ceil(math.Abs(duration) / maxStep))
	if n < 1 {
		n = 1
	}
	return n, duration / float64(n)
}

// EulerPropagator integrates f with explicit Euler steps of at most maxStep.
func EulerPropagator(f VectorField, maxStep float64) control.PropagatorFn {
	return func(state base.State, c control.Control, duration float64, result base.State) error {
		xs, us, out, err := unpack(state, c, result)
		if err != nil {
			return err
		}
		n := len(xs)
		x := make([]float64, n)
		copy(x, xs)

		steps, dt := stepPlan(duration, maxStep)
		for s := 0; s < steps; s++ {
			dx := f(x, us)
			for i := 0; i < n; i++ {
				x[i] += dt * dx[i]
			}
		}
		copy(out, x)
		return nil
	}
}

// RK4Propagator integrates f with classical fourth-order Runge-Kutta steps
// of at most maxStep.
func RK4Propagator(f VectorField, maxStep float64) control.PropagatorFn {
	return func(state base.State, c control.Control, duration float64, result base.State) error {
		xs, us, out, err := unpack(state, c, result)
		if err != nil {
			return err
		}
		n := len(xs)
		x := make([]float64, n)
		copy(x, xs)
		scratch := make([]float64, n)

		steps, dt := stepPlan(duration, maxStep)
		for s := 0; s < steps; s++ {
			k1 := f(x, us)
			for i := 0; i < n; i++ {
				scratch[i] = x[i] + dt*0.5*k1[i]
			}
			k2 := f(scratch, us)
			for i := 0; i < n; i++ {
				scratch[i] = x[i] + dt*0.5*k2[i]
			}
			k3 := f(scratch, us)
			for i := 0; i < n; i++ {
				scratch[i] = x[i] + dt*k3[i]
			}
			k4 := f(scratch, us)

			dt6 := dt / 6.0
			for i := 0; i < n; i++ {
				x[i] += dt6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
			}
		}
		copy(out, x)
		return nil
	}
}
