package scenario

import (
	"testing"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/control"
	"github.com/plannerkit/manifold/names"
)

func TestBuildUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Build("nope", names.NewRegistry()); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestBuildAllScenarios(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			reg := names.NewRegistry()
			s, err := r.Build(name, reg)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}

			if err := s.Manifold.Setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			if s.Manifold.Dimension() <= 0 {
				t.Error("manifold has no control dimensions")
			}

			result := s.StateManifold.AllocState()
			c := s.Manifold.AllocControl()
			if err := s.Manifold.Propagate(s.Initial, c, 0.2, result); err != nil {
				t.Fatalf("propagate failed: %v", err)
			}
			if !base.StateIsValid(result) {
				t.Error("propagation produced a non-finite state")
			}

			if reg.Len() == 0 {
				t.Error("scenario registered no manifold names")
			}
			s.Close()
			if reg.Len() != 0 {
				t.Errorf("Close left %d names registered", reg.Len())
			}
		})
	}
}

func TestCartPendulumComposition(t *testing.T) {
	reg := names.NewRegistry()
	s, err := NewRegistry().Build("cart-pendulum", reg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer s.Close()

	cm, ok := s.Manifold.(*control.CompoundManifold)
	if !ok {
		t.Fatalf("cart-pendulum manifold is %T, want compound", s.Manifold)
	}
	if !cm.Locked() {
		t.Error("composed manifold should be locked")
	}
	if got := cm.Dimension(); got != 3 {
		t.Errorf("dimension = %d, want 3 (cart 2 + pendulum 1)", got)
	}
	if !cm.CanPropagateBackward() {
		t.Error("both sub-systems are reversible ODEs")
	}
}
