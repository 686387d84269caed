package space

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampling never uses a package-level generator. Every Sample takes the
// entropy source as an explicit argument so callers control determinism; an
// optimizer passes its own seeded *rand.Rand, tests pass a fixed seed. A
// *rand.Rand must not be shared between goroutines without external locking.

// quantize rounds v to the nearest multiple of q.
func quantize(v, q float64) float64 {
	return math.Round(v/q) * q
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sample picks one option uniformly at random by index.
func (c *Categorical[T]) Sample(rng *rand.Rand) T {
	return c.options[rng.Intn(len(c.options))]
}

// Sample draws an integer uniformly from [lower, upper). The range is
// non-empty by construction.
func (r *RandInt) Sample(rng *rand.Rand) int {
	return r.lower + rng.Intn(r.upper-r.lower)
}

// Sample draws uniformly from [lower, upper].
func (u *Uniform) Sample(rng *rand.Rand) float64 {
	return distuv.Uniform{Min: u.lower, Max: u.upper, Src: rng}.Rand()
}

// Sample draws uniformly, rounds to the nearest multiple of q and clamps the
// result back into [lower, upper].
func (u *QUniform) Sample(rng *rand.Rand) float64 {
	v := distuv.Uniform{Min: u.lower, Max: u.upper, Src: rng}.Rand()
	return clamp(quantize(v, u.q), u.lower, u.upper)
}

// Sample draws the exponential of a uniform over [ln lower, ln upper], so the
// result always lies in [lower, upper].
func (u *LogUniform) Sample(rng *rand.Rand) float64 {
	v := distuv.Uniform{Min: math.Log(u.lower), Max: math.Log(u.upper), Src: rng}.Rand()
	return math.Exp(v)
}

// Sample draws log-uniformly, rounds to the nearest multiple of q and clamps
// back into [lower, upper].
func (u *QLogUniform) Sample(rng *rand.Rand) float64 {
	v := distuv.Uniform{Min: math.Log(u.lower), Max: math.Log(u.upper), Src: rng}.Rand()
	return clamp(quantize(math.Exp(v), u.q), u.lower, u.upper)
}

// Sample draws from N(mu, sigma).
func (n *Normal) Sample(rng *rand.Rand) float64 {
	return distuv.Normal{Mu: n.mu, Sigma: n.sigma, Src: rng}.Rand()
}

// Sample draws from N(mu, sigma) and rounds to the nearest multiple of q.
func (n *QNormal) Sample(rng *rand.Rand) float64 {
	v := distuv.Normal{Mu: n.mu, Sigma: n.sigma, Src: rng}.Rand()
	return quantize(v, n.q)
}

// Sample draws from the log-normal distribution with the given underlying
// normal parameters.
func (n *LogNormal) Sample(rng *rand.Rand) float64 {
	return distuv.LogNormal{Mu: n.mu, Sigma: n.sigma, Src: rng}.Rand()
}

// Sample draws log-normally and rounds to the nearest multiple of q.
func (n *QLogNormal) Sample(rng *rand.Rand) float64 {
	v := distuv.LogNormal{Mu: n.mu, Sigma: n.sigma, Src: rng}.Rand()
	return quantize(v, n.q)
}
