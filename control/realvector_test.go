package control

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/names"
)

func newBoundedManifold(t *testing.T, reg *names.Registry, stateName string, dim int, low, high float64) *RealVectorManifold {
	t.Helper()
	m := NewRealVectorManifold(newTestStateManifold(stateName, dim), dim, reg)
	b := base.NewBounds(dim)
	b.SetAll(low, high)
	if err := m.SetBounds(b); err != nil {
		t.Fatalf("set bounds: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRealVectorValueAt(t *testing.T) {
	reg := names.NewRegistry()
	m := newBoundedManifold(t, reg, "R3", 3, -1, 1)
	c := m.AllocControl()

	tests := []struct {
		name  string
		index int
		found bool
	}{
		{"first", 0, true},
		{"last", 2, true},
		{"past end", 3, false},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ValueAt(c, tt.index)
			if (got != nil) != tt.found {
				t.Errorf("ValueAt(%d) found = %v, want %v", tt.index, got != nil, tt.found)
			}
		})
	}

	// Addresses are stable across calls and writes go through.
	p1 := m.ValueAt(c, 1)
	*p1 = 0.5
	p2 := m.ValueAt(c, 1)
	if p1 != p2 {
		t.Error("ValueAt returned different addresses for the same index")
	}
	if *p2 != 0.5 {
		t.Errorf("write through ValueAt lost: got %v", *p2)
	}
}

func TestRealVectorCopyEqualNull(t *testing.T) {
	reg := names.NewRegistry()
	m := newBoundedManifold(t, reg, "R2", 2, -1, 1)

	x := m.AllocControl()
	y := m.AllocControl()
	*m.ValueAt(x, 0) = 0.25
	*m.ValueAt(x, 1) = -0.75

	if err := m.CopyControl(y, x); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if !m.EqualControls(x, y) {
		t.Error("controls unequal after copy")
	}

	if err := m.NullControl(y); err != nil {
		t.Fatalf("null failed: %v", err)
	}
	if m.EqualControls(x, y) {
		t.Error("controls equal after nulling one of them")
	}

	if err := m.NullControl(x); err != nil {
		t.Fatalf("null failed: %v", err)
	}
	if !m.EqualControls(x, y) {
		t.Error("two null controls should be equal")
	}
}

func TestRealVectorLayoutMismatch(t *testing.T) {
	reg := names.NewRegistry()
	m := newBoundedManifold(t, reg, "R2", 2, -1, 1)

	alien := &CompoundControl{}
	if err := m.CopyControl(m.AllocControl(), alien); err == nil {
		t.Error("copy from compound control should fail")
	}
	if err := m.NullControl(alien); err == nil {
		t.Error("null of compound control should fail")
	}
	if m.EqualControls(alien, m.AllocControl()) {
		t.Error("controls of different layouts compare equal")
	}
	if m.ValueAt(alien, 0) != nil {
		t.Error("ValueAt on mismatched control should be nil")
	}
}

func TestRealVectorSamplerWithinBounds(t *testing.T) {
	reg := names.NewRegistry()
	m := newBoundedManifold(t, reg, "R3", 3, -2, 3)

	rng := rand.New(rand.NewSource(7))
	s := m.AllocSampler(rng)
	c := m.AllocControl()

	for i := 0; i < 100; i++ {
		if err := s.Sample(c); err != nil {
			t.Fatalf("sample failed: %v", err)
		}
		for j := 0; j < m.Dimension(); j++ {
			v := *m.ValueAt(c, j)
			if v < -2 || v > 3 {
				t.Fatalf("sampled value %v outside bounds [-2, 3]", v)
			}
		}
	}
}

func TestRealVectorEnforceBounds(t *testing.T) {
	reg := names.NewRegistry()
	m := newBoundedManifold(t, reg, "R2", 2, -1, 1)

	c := m.AllocControl()
	*m.ValueAt(c, 0) = 5
	*m.ValueAt(c, 1) = -3
	if err := m.EnforceBounds(c); err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if got := *m.ValueAt(c, 0); got != 1 {
		t.Errorf("value 0 clamped to %v, want 1", got)
	}
	if got := *m.ValueAt(c, 1); got != -1 {
		t.Errorf("value 1 clamped to %v, want -1", got)
	}
}

func TestRealVectorPrintDeterministic(t *testing.T) {
	reg := names.NewRegistry()
	m := newBoundedManifold(t, reg, "R2", 2, -1, 1)

	c := m.AllocControl()
	*m.ValueAt(c, 0) = 0.5

	var a, b strings.Builder
	m.PrintControl(c, &a)
	m.PrintControl(c, &b)
	if a.String() != b.String() {
		t.Error("PrintControl output differs between calls")
	}
	if a.Len() == 0 {
		t.Error("PrintControl produced no output")
	}

	a.Reset()
	m.PrintSettings(&a)
	if !strings.Contains(a.String(), m.Name()) {
		t.Errorf("PrintSettings output %q does not mention manifold name", a.String())
	}
}
