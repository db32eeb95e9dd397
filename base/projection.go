package base

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ProjectionEvaluator maps a full-dimensional state to a low-dimensional
// coordinate used for spatial cell decomposition during planning. Project is
// deterministic and side-effect free for a fixed configuration.
type ProjectionEvaluator interface {
	Dimension() int
	CellSizes() []float64
	Project(s State) ([]float64, error)
}

// defaultCellFraction is the heuristic used when cell sizes are not supplied:
// one tenth of each selected dimension's bound span. It is a convention, not
// a computed optimum.
const defaultCellFraction = 0.1

func realVectorValues(s State) ([]float64, error) {
	rv, ok := s.(*RealVectorState)
	if !ok {
		return nil, fmt.Errorf("base: projection requires a real vector state, got %T", s)
	}
	return rv.Values, nil
}

// RealVectorLinearProjectionEvaluator multiplies a fixed k-by-n matrix
// against the n-dimensional state vector to produce a k-dimensional
// projection.
type RealVectorLinearProjectionEvaluator struct {
	manifold   *RealVectorStateManifold
	projection *mat.Dense
	cellSizes  []float64
	outDim     int
}

func NewRealVectorLinearProjectionEvaluator(m *RealVectorStateManifold, cellSizes []float64, projection *mat.Dense) (*RealVectorLinearProjectionEvaluator, error) {
	rows, cols := projection.Dims()
	if cols != m.Dimension() {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("matrix has %d columns, state dimension is %d", cols, m.Dimension())}
	}
	if len(cellSizes) != rows {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("%d cell sizes for %d output dimensions", len(cellSizes), rows)}
	}
	return &RealVectorLinearProjectionEvaluator{
		manifold:   m,
		projection: projection,
		cellSizes:  cellSizes,
		outDim:     rows,
	}, nil
}

// NewRealVectorRandomLinearProjectionEvaluator builds a linear evaluator
// whose matrix is sampled once at construction and fixed for the evaluator's
// lifetime. The output dimension is len(cellSizes).
func NewRealVectorRandomLinearProjectionEvaluator(m *RealVectorStateManifold, cellSizes []float64, rng *rand.Rand) (*RealVectorLinearProjectionEvaluator, error) {
	if len(cellSizes) == 0 || len(cellSizes) > m.Dimension() {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("random projection to %d dimensions from %d", len(cellSizes), m.Dimension())}
	}
	return NewRealVectorLinearProjectionEvaluator(m, cellSizes, RandomProjectionMatrix(m.Dimension(), len(cellSizes), rng))
}

func (e *RealVectorLinearProjectionEvaluator) Dimension() int       { return e.outDim }
func (e *RealVectorLinearProjectionEvaluator) CellSizes() []float64 { return e.cellSizes }
func (e *RealVectorLinearProjectionEvaluator) Matrix() *mat.Dense   { return e.projection }

func (e *RealVectorLinearProjectionEvaluator) Project(s State) ([]float64, error) {
	values, err := realVectorValues(s)
	if err != nil {
		return nil, err
	}
	if len(values) != e.manifold.Dimension() {
		return nil, fmt.Errorf("base: state has %d values, manifold dimension is %d", len(values), e.manifold.Dimension())
	}
	out := mat.NewVecDense(e.outDim, nil)
	out.MulVec(e.projection, mat.NewVecDense(len(values), values))
	result := make([]float64, e.outDim)
	copy(result, out.RawVector().Data)
	return result, nil
}

// RandomProjectionMatrix samples a k-by-n matrix with gaussian entries and
// orthonormalizes its rows. Rows of an orthonormal matrix keep projected
// distances comparable across output dimensions.
func RandomProjectionMatrix(n, k int, rng *rand.Rand) *mat.Dense {
	m := mat.NewDense(k, n, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, rng.NormFloat64())
		}
	}
	// Modified Gram-Schmidt over rows.
	for i := 0; i < k; i++ {
		ri := m.RawRowView(i)
		for p := 0; p < i; p++ {
			rp := m.RawRowView(p)
			dot := 0.0
			for j := 0; j < n; j++ {
				dot += ri[j] * rp[j]
			}
			for j := 0; j < n; j++ {
				ri[j] -= dot * rp[j]
			}
		}
		norm := 0.0
		for j := 0; j < n; j++ {
			norm += ri[j] * ri[j]
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for j := 0; j < n; j++ {
				ri[j] /= norm
			}
		}
	}
	return m
}

// RealVectorOrthogonalProjectionEvaluator keeps an ordered subset of state
// components and drops the rest.
type RealVectorOrthogonalProjectionEvaluator struct {
	manifold   *RealVectorStateManifold
	components []int
	cellSizes  []float64
}

// NewRealVectorOrthogonalProjectionEvaluator selects components (in order)
// from states of m. When cellSizes is nil, each cell size defaults to one
// tenth of the selected dimension's bound span.
func NewRealVectorOrthogonalProjectionEvaluator(m *RealVectorStateManifold, components []int, cellSizes []float64) (*RealVectorOrthogonalProjectionEvaluator, error) {
	if len(components) == 0 {
		return nil, &InvalidConfigurationError{Reason: "no components selected"}
	}
	for _, c := range components {
		if c < 0 || c >= m.Dimension() {
			return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("component %d out of range for dimension %d", c, m.Dimension())}
		}
	}
	if cellSizes == nil {
		cellSizes = make([]float64, len(components))
		for i, c := range components {
			cellSizes[i] = defaultCellFraction * m.Bounds().Span(c)
		}
	} else if len(cellSizes) != len(components) {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("%d cell sizes for %d components", len(cellSizes), len(components))}
	}
	return &RealVectorOrthogonalProjectionEvaluator{manifold: m, components: components, cellSizes: cellSizes}, nil
}

func (e *RealVectorOrthogonalProjectionEvaluator) Dimension() int       { return len(e.components) }
func (e *RealVectorOrthogonalProjectionEvaluator) CellSizes() []float64 { return e.cellSizes }

func (e *RealVectorOrthogonalProjectionEvaluator) Project(s State) ([]float64, error) {
	values, err := realVectorValues(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(e.components))
	for i, c := range e.components {
		if c >= len(values) {
			return nil, fmt.Errorf("base: state has %d values, component %d selected", len(values), c)
		}
		out[i] = values[c]
	}
	return out, nil
}

// RealVectorIdentityProjectionEvaluator copies the full state vector.
type RealVectorIdentityProjectionEvaluator struct {
	manifold  *RealVectorStateManifold
	cellSizes []float64
}

// NewRealVectorIdentityProjectionEvaluator projects states of m onto
// themselves. When cellSizes is nil, each cell size defaults to one tenth of
// that dimension's bound span.
func NewRealVectorIdentityProjectionEvaluator(m *RealVectorStateManifold, cellSizes []float64) (*RealVectorIdentityProjectionEvaluator, error) {
	if cellSizes == nil {
		cellSizes = make([]float64, m.Dimension())
		for i := range cellSizes {
			cellSizes[i] = defaultCellFraction * m.Bounds().Span(i)
		}
	} else if len(cellSizes) != m.Dimension() {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("%d cell sizes for dimension %d", len(cellSizes), m.Dimension())}
	}
	return &RealVectorIdentityProjectionEvaluator{manifold: m, cellSizes: cellSizes}, nil
}

func (e *RealVectorIdentityProjectionEvaluator) Dimension() int       { return e.manifold.Dimension() }
func (e *RealVectorIdentityProjectionEvaluator) CellSizes() []float64 { return e.cellSizes }

func (e *RealVectorIdentityProjectionEvaluator) Project(s State) ([]float64, error) {
	values, err := realVectorValues(s)
	if err != nil {
		return nil, err
	}
	if len(values) != e.manifold.Dimension() {
		return nil, fmt.Errorf("base: state has %d values, manifold dimension is %d", len(values), e.manifold.Dimension())
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}
