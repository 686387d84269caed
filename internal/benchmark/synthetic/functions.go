package synthetic

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/STEPPE/internal/benchmark"
	"github.com/copyleftdev/STEPPE/internal/space"
)

// Formulas and optima follow Jamil & Yang, "A literature survey of benchmark
// functions for global optimisation problems" (2013). All functions are
// minimised.

// Ackley1 is the d-dimensional Ackley function: a nearly flat outer region
// riddled with local minima around a deep central hole.
func Ackley1(dims int) *Function {
	return newBox("ackley1", dims, -35, 35,
		Continuous|Differentiable|Scalable|Multimodal,
		0, make([]float64, dims),
		func(x []float64) float64 {
			d := float64(len(x))
			sumCos := 0.0
			for _, v := range x {
				sumCos += math.Cos(2 * math.Pi * v)
			}
			return -20*math.Exp(-0.02*math.Sqrt(floats.Dot(x, x)/d)) -
				math.Exp(sumCos/d) + 20 + math.E
		})
}

// Ackley2 is the two-dimensional exponential bowl variant.
func Ackley2() *Function {
	return newBox("ackley2", 2, -32, 32,
		Continuous|Differentiable,
		-200, []float64{0, 0},
		func(x []float64) float64 {
			return -200 * math.Exp(-0.02*math.Hypot(x[0], x[1]))
		})
}

// Ackley3 adds an oscillating term to Ackley2. The optimum location is known
// only approximately, so no reference parameters are published.
func Ackley3() *Function {
	return newBox("ackley3", 2, -32, 32,
		Continuous|Differentiable|Multimodal,
		-195.629028238419, nil,
		func(x []float64) float64 {
			return -200*math.Exp(-0.02*math.Hypot(x[0], x[1])) +
				5*math.Exp(math.Cos(3*x[0])+math.Sin(3*x[1]))
		})
}

// Adjiman has asymmetric bounds: x in [-1, 2], y in [-1, 1]. The minimum
// sits on the boundary at x = 2.
func Adjiman() *Function {
	return newManual("adjiman",
		space.Space{
			space.NewUniform("0", -1, 2),
			space.NewUniform("1", -1, 1),
		},
		Continuous|Differentiable|Multimodal,
		-2.02181, []float64{2, 0.10578},
		func(x []float64) float64 {
			return math.Cos(x[0])*math.Sin(x[1]) - x[0]/(x[1]*x[1]+1)
		})
}

// Alpine1 is the d-dimensional separable sawtooth bowl.
func Alpine1(dims int) *Function {
	return newBox("alpine1", dims, -10, 10,
		Continuous|Separable|Scalable|Multimodal,
		0, make([]float64, dims),
		func(x []float64) float64 {
			sum := 0.0
			for _, v := range x {
				sum += math.Abs(v*math.Sin(v) + 0.1*v)
			}
			return sum
		})
}

// Alpine2 is the product form, negated here so the documented maximum
// 2.808^d becomes the minimum.
func Alpine2(dims int) *Function {
	at := make([]float64, dims)
	for i := range at {
		at[i] = 7.917
	}
	return newBox("alpine2", dims, 0, 10,
		Continuous|Differentiable|Separable|Scalable|Multimodal,
		-math.Pow(2.8081311800070053, float64(dims)), at,
		func(x []float64) float64 {
			prod := 1.0
			for _, v := range x {
				prod *= math.Sqrt(v) * math.Sin(v)
			}
			return -prod
		})
}

// Beale has sharp peaks at the corners of its domain and a flat valley.
func Beale() *Function {
	return newBox("beale", 2, -4.5, 4.5,
		Continuous|Differentiable,
		0, []float64{3, 0.5},
		func(x []float64) float64 {
			a := 1.5 - x[0] + x[0]*x[1]
			b := 2.25 - x[0] + x[0]*x[1]*x[1]
			c := 2.625 - x[0] + x[0]*x[1]*x[1]*x[1]
			return a*a + b*b + c*c
		})
}

// Bohachevsky1 is a bowl with a cosine ripple.
func Bohachevsky1() *Function {
	return newBox("bohachevsky1", 2, -100, 100,
		Continuous|Differentiable|Separable,
		0, []float64{0, 0},
		func(x []float64) float64 {
			return x[0]*x[0] + 2*x[1]*x[1] -
				0.3*math.Cos(3*math.Pi*x[0]) - 0.4*math.Cos(4*math.Pi*x[1]) + 0.7
		})
}

// Booth is a smooth quadratic valley.
func Booth() *Function {
	return newBox("booth", 2, -10, 10,
		Continuous|Differentiable|Convex,
		0, []float64{1, 3},
		func(x []float64) float64 {
			a := x[0] + 2*x[1] - 7
			b := 2*x[0] + x[1] - 5
			return a*a + b*b
		})
}

// Brent is a shifted paraboloid with an exponential dimple; the minimum sits
// at the domain corner.
func Brent() *Function {
	return newBox("brent", 2, -10, 10,
		Continuous|Differentiable|Convex,
		0, []float64{-10, -10},
		func(x []float64) float64 {
			a := x[0] + 10
			b := x[1] + 10
			return a*a + b*b + math.Exp(-x[0]*x[0]-x[1]*x[1])
		})
}

// Camel3 is the three-hump camel function.
func Camel3() *Function {
	return newBox("camel3", 2, -5, 5,
		Continuous|Differentiable|Multimodal,
		0, []float64{0, 0},
		func(x []float64) float64 {
			x2 := x[0] * x[0]
			return 2*x2 - 1.05*x2*x2 + x2*x2*x2/6 + x[0]*x[1] + x[1]*x[1]
		})
}

// Easom is flat almost everywhere with a single narrow well at (pi, pi).
func Easom() *Function {
	return newBox("easom", 2, -100, 100,
		Continuous|Differentiable|Separable|Multimodal,
		-1, []float64{math.Pi, math.Pi},
		func(x []float64) float64 {
			dx := x[0] - math.Pi
			dy := x[1] - math.Pi
			return -math.Cos(x[0]) * math.Cos(x[1]) * math.Exp(-dx*dx-dy*dy)
		})
}

// Griewank is a quadratic bowl modulated by a cosine product.
func Griewank(dims int) *Function {
	return newBox("griewank", dims, -100, 100,
		Continuous|Differentiable|Scalable|Multimodal,
		0, make([]float64, dims),
		func(x []float64) float64 {
			prod := 1.0
			for i, v := range x {
				prod *= math.Cos(v / math.Sqrt(float64(i+1)))
			}
			return 1 + floats.Dot(x, x)/4000 - prod
		})
}

// Matyas is a shallow convex plate.
func Matyas() *Function {
	return newBox("matyas", 2, -10, 10,
		Continuous|Differentiable|Convex,
		0, []float64{0, 0},
		func(x []float64) float64 {
			return 0.26*(x[0]*x[0]+x[1]*x[1]) - 0.48*x[0]*x[1]
		})
}

// DefaultDims is the arity scalable functions are registered with in Suite.
const DefaultDims = 2

// Suite returns a registry holding the full function set, scalable functions
// at DefaultDims.
func Suite() *benchmark.Registry {
	r := benchmark.NewRegistry()
	for _, f := range All() {
		// Names within the suite are unique by construction.
		if err := r.Register(f); err != nil {
			panic("synthetic: " + err.Error())
		}
	}
	return r
}

// All returns the full function set in declaration order.
func All() []*Function {
	return []*Function{
		Ackley1(DefaultDims),
		Ackley2(),
		Ackley3(),
		Adjiman(),
		Alpine1(DefaultDims),
		Alpine2(DefaultDims),
		Beale(),
		Bohachevsky1(),
		Booth(),
		Brent(),
		Camel3(),
		Easom(),
		Griewank(DefaultDims),
		Matyas(),
	}
}
