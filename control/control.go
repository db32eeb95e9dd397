// Package control defines control manifolds: pluggable descriptions of how a
// system's control inputs map to state transitions over time. Manifolds are
// atomic (a fixed-dimension vector of control values) or compound (an
// ordered aggregation of sub-manifolds whose controls, samplers and
// propagation are composed positionally).
package control

// Control is one control-input instance, laid out according to the manifold
// that allocated it. It is a closed variant: *RealVectorControl for atomic
// manifolds, *CompoundControl for compound ones. A control must be managed
// (free/copy/compare/null) through the manifold that allocated it or an
// identically structured one.
type Control interface {
	isControl()
}

type RealVectorControl struct {
	Values []float64
}

func (*RealVectorControl) isControl() {}

// CompoundControl holds one sub-control per sub-manifold, index-aligned with
// the compound manifold's component list.
type CompoundControl struct {
	Components []Control
}

func (*CompoundControl) isControl() {}

func controlKind(c Control) string {
	switch c.(type) {
	case *RealVectorControl:
		return "real vector"
	case *CompoundControl:
		return "compound"
	case nil:
		return "nil"
	default:
		return "unknown"
	}
}
