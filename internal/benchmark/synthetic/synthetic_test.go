package synthetic

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

func paramsAt(x ...float64) *values.Node {
	root := values.NewNode("parameters")
	for i, v := range x {
		root.Add(values.NewFloat(strconv.Itoa(i), v))
	}
	return root
}

// Every function with documented optimum parameters evaluates to its
// documented optimum value there. Tolerances are loose where the literature
// reports the location to only a few decimals.
func TestOptimaAreReproduced(t *testing.T) {
	tolerance := map[string]float64{
		"adjiman": 1e-3,
		"alpine2": 1e-3,
	}

	for _, f := range All() {
		t.Run(f.Name(), func(t *testing.T) {
			opt := f.OptimumParams()
			if opt == nil {
				t.Skip("no exact optimum location documented")
			}

			got, err := f.Evaluate(opt)
			require.NoError(t, err)

			tol, ok := tolerance[f.Name()]
			if !ok {
				tol = 1e-6
			}
			assert.InDelta(t, f.OptimumValue(), got, tol)
		})
	}
}

// The optimum is a global minimum: random probes never fall below it.
func TestNoProbeBeatsTheOptimum(t *testing.T) {
	for _, f := range All() {
		t.Run(f.Name(), func(t *testing.T) {
			// Probe on a coarse lattice inside the bounds.
			ss := f.SearchSpace()
			lo := make([]float64, f.Dims())
			hi := make([]float64, f.Dims())
			for i, p := range ss {
				u := p.(*space.Uniform)
				lo[i], hi[i] = u.Lower(), u.Upper()
			}

			const steps = 7
			x := make([]float64, f.Dims())
			var walk func(dim int)
			walk = func(dim int) {
				if dim == f.Dims() {
					got, err := f.Evaluate(paramsAt(x...))
					require.NoError(t, err)
					assert.GreaterOrEqual(t, got, f.OptimumValue()-1e-6)
					return
				}
				for s := 0; s < steps; s++ {
					x[dim] = lo[dim] + (hi[dim]-lo[dim])*float64(s)/(steps-1)
					walk(dim + 1)
				}
			}
			walk(0)
		})
	}
}

func TestEvaluateRejectsMalformedTrees(t *testing.T) {
	f := Booth()

	// Missing a declared dimension.
	_, err := f.Evaluate(paramsAt(1.0))
	require.Error(t, err)
	assert.True(t, space.IsKind(err, space.KindMismatch))

	// Wrong leaf type under a declared name.
	bad := values.NewNode("parameters")
	bad.Add(values.NewInt("0", 1))
	bad.Add(values.NewFloat("1", 3))
	_, err = f.Evaluate(bad)
	require.Error(t, err)
	assert.True(t, space.IsKind(err, space.KindMismatch))

	// Extra undeclared key.
	extra := paramsAt(1, 3)
	extra.Add(values.NewFloat("2", 0))
	_, err = f.Evaluate(extra)
	require.Error(t, err)
	assert.True(t, space.IsKind(err, space.KindMismatch))
}

func TestAdjimanAsymmetricBounds(t *testing.T) {
	f := Adjiman()
	ss := f.SearchSpace()
	require.Len(t, ss, 2)

	x := ss[0].(*space.Uniform)
	y := ss[1].(*space.Uniform)
	assert.Equal(t, -1.0, x.Lower())
	assert.Equal(t, 2.0, x.Upper())
	assert.Equal(t, -1.0, y.Lower())
	assert.Equal(t, 1.0, y.Upper())
}

func TestProperties(t *testing.T) {
	assert.True(t, Ackley1(2).Properties().Has(Scalable|Multimodal))
	assert.True(t, Booth().Properties().Has(Convex))
	assert.False(t, Booth().Properties().Has(Multimodal))
	assert.True(t, Alpine1(3).Properties().Has(Separable))
}

func TestScalableDims(t *testing.T) {
	f := Griewank(5)
	assert.Equal(t, 5, f.Dims())
	assert.Len(t, f.SearchSpace(), 5)

	got, err := f.Evaluate(paramsAt(0, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 1e-12)
}

func TestSuiteRegistersEverything(t *testing.T) {
	suite := Suite()
	assert.Equal(t, len(All()), suite.Len())

	f, ok := suite.Get("easom")
	require.True(t, ok)
	assert.Equal(t, "easom", f.Name())

	names := suite.Names()
	assert.IsType(t, []string{}, names)
	assert.Contains(t, names, "ackley1")
	assert.Contains(t, names, "matyas")
}
