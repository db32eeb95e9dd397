package control

import (
	"math/rand"

	"github.com/plannerkit/manifold/base"
)

// Sampler draws control values for a manifold. Samplers are not safe for
// concurrent use; each planning thread allocates its own.
type Sampler interface {
	// Sample fills c with a fresh control value.
	Sample(c Control) error
	// SampleNext fills next with a control suitable to follow previous.
	// The base behavior ignores previous and samples fresh; samplers with
	// continuity constraints override it.
	SampleNext(next, previous Control) error
}

// RealVectorSampler samples uniformly within the owning manifold's bounds.
type RealVectorSampler struct {
	bounds base.Bounds
	rng    *rand.Rand
}

func (s *RealVectorSampler) Sample(c Control) error {
	rv, ok := c.(*RealVectorControl)
	if !ok {
		return &LayoutMismatchError{Want: "real vector", Got: controlKind(c)}
	}
	for i := range rv.Values {
		rv.Values[i] = s.bounds.Low[i] + s.rng.Float64()*s.bounds.Span(i)
	}
	return nil
}

func (s *RealVectorSampler) SampleNext(next, previous Control) error {
	return s.Sample(next)
}

// CompoundSampler samples each sub-control independently, in the same index
// order the compound manifold allocates them.
type CompoundSampler struct {
	samplers []Sampler
}

func (s *CompoundSampler) Sample(c Control) error {
	cc, ok := c.(*CompoundControl)
	if !ok || len(cc.Components) != len(s.samplers) {
		return &LayoutMismatchError{Want: "compound", Got: controlKind(c)}
	}
	for i, sub := range s.samplers {
		if err := sub.Sample(cc.Components[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *CompoundSampler) SampleNext(next, previous Control) error {
	cn, ok := next.(*CompoundControl)
	if !ok || len(cn.Components) != len(s.samplers) {
		return &LayoutMismatchError{Want: "compound", Got: controlKind(next)}
	}
	cp, ok := previous.(*CompoundControl)
	if !ok || len(cp.Components) != len(s.samplers) {
		return &LayoutMismatchError{Want: "compound", Got: controlKind(previous)}
	}
	for i, sub := range s.samplers {
		if err := sub.SampleNext(cn.Components[i], cp.Components[i]); err != nil {
			return err
		}
	}
	return nil
}
