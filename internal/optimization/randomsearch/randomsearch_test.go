package randomsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/STEPPE/internal/space"
)

func testSpace(t *testing.T) space.Space {
	t.Helper()

	kernel, err := space.NewCategorical("kernel", []string{"rbf", "linear"})
	require.NoError(t, err)
	lr, err := space.NewLogUniform("lr", 1e-4, 1e-1)
	require.NoError(t, err)
	layers, err := space.NewRandInt("layers", 1, 5)
	require.NoError(t, err)

	return space.Space{
		kernel,
		lr,
		layers,
		space.NewQUniform("dropout", 0, 0.5, 0.1),
	}
}

func TestGenerateParametersAlwaysSucceeds(t *testing.T) {
	opt := New(7)
	require.NoError(t, opt.UpdateSearchSpace(testSpace(t)))

	for id := 0; id < 100; id++ {
		params := opt.GenerateParameters(id)
		require.NotNil(t, params, "random search never signals exhaustion")
	}
}

func TestSampledTreesValidate(t *testing.T) {
	ss := testSpace(t)
	opt := New(11)
	require.NoError(t, opt.UpdateSearchSpace(ss))

	// Round-trip property: every sampled tree validates against the space
	// it was drawn from.
	for id := 0; id < 200; id++ {
		params := opt.GenerateParameters(id)
		require.NoError(t, space.Validate(ss, params))
	}
}

func TestChoiceExpandsStructurally(t *testing.T) {
	inner, err := space.NewCategorical("units", []int{32, 64})
	require.NoError(t, err)
	branch, err := space.NewChoice("model", []space.Param{
		inner,
		space.NewUniform("c", 0.1, 10),
	})
	require.NoError(t, err)
	ss := space.Space{branch}

	opt := New(3)
	require.NoError(t, opt.UpdateSearchSpace(ss))

	sawUnits := false
	sawC := false
	for id := 0; id < 100; id++ {
		params := opt.GenerateParameters(id)
		require.NoError(t, space.Validate(ss, params))

		// The choice resolves to a nested node holding exactly the chosen
		// option's expansion, never a bare index.
		nested := params.GetNode("model")
		require.Equal(t, 1, nested.Len())
		switch nested.Keys()[0] {
		case "units":
			assert.Contains(t, []int{32, 64}, nested.GetInt("units"))
			sawUnits = true
		case "c":
			sawC = true
		default:
			t.Fatalf("unexpected key %q under choice", nested.Keys()[0])
		}
	}
	assert.True(t, sawUnits, "both branches have non-zero probability")
	assert.True(t, sawC, "both branches have non-zero probability")
}

func TestNestedChoice(t *testing.T) {
	leaf, err := space.NewRandInt("depth", 1, 4)
	require.NoError(t, err)
	innerChoice, err := space.NewChoice("inner", []space.Param{leaf})
	require.NoError(t, err)
	outer, err := space.NewChoice("outer", []space.Param{innerChoice})
	require.NoError(t, err)
	ss := space.Space{outer}

	opt := New(5)
	require.NoError(t, opt.UpdateSearchSpace(ss))

	params := opt.GenerateParameters(0)
	require.NoError(t, space.Validate(ss, params))

	depth := params.GetNode("outer").GetNode("inner").GetInt("depth")
	assert.GreaterOrEqual(t, depth, 1)
	assert.Less(t, depth, 4)
}

func TestTrialBookkeeping(t *testing.T) {
	opt := New(1)
	require.NoError(t, opt.UpdateSearchSpace(testSpace(t)))

	p0 := opt.GenerateParameters(0)
	p1 := opt.GenerateParameters(1)
	assert.Equal(t, 2, opt.Len())
	assert.Same(t, p0, opt.Get(0))
	assert.Same(t, p1, opt.Get(1))

	opt.ReceiveTrialResults(0, p0, 1.5)
	assert.Equal(t, 1, opt.Len())
	assert.Nil(t, opt.Get(0))

	// Unknown ids are delivered defensively and ignored.
	opt.ReceiveTrialResults(99, nil, 0)
	assert.Equal(t, 1, opt.Len())

	opt.Clear()
	assert.Equal(t, 0, opt.Len())
}

func TestSeededRunsAreReproducible(t *testing.T) {
	ss := testSpace(t)

	a := New(42)
	b := New(42)
	require.NoError(t, a.UpdateSearchSpace(ss))
	require.NoError(t, b.UpdateSearchSpace(ss))

	for id := 0; id < 20; id++ {
		pa := a.GenerateParameters(id)
		pb := b.GenerateParameters(id)
		assert.Equal(t, pa.GetFloat("lr"), pb.GetFloat("lr"))
		assert.Equal(t, pa.GetInt("layers"), pb.GetInt("layers"))
		assert.Equal(t, pa.GetStr("kernel"), pb.GetStr("kernel"))
	}
}
