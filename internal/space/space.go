// Package space describes search spaces: trees of abstract parameter
// descriptions that can be sampled, enumerated and validated against concrete
// assignments without the consumer knowing which distribution or enumeration
// each parameter uses.
package space

// Space is an ordered list of parameter descriptions. Names must be unique
// within any one list; declaration order fixes enumeration order.
type Space []Param

// Param is a single parameter description. The variant set is closed:
// Categorical[int|float64|string], RandInt, Uniform, QUniform, LogUniform,
// QLogUniform, Normal, QNormal, LogNormal, QLogNormal and Choice. Consumers
// dispatch with exhaustive type switches.
type Param interface {
	// Name returns the parameter's key, fixed at construction.
	Name() string

	param()
}

// CategoricalValue constrains the element types a categorical parameter may
// enumerate.
type CategoricalValue interface {
	~int | ~float64 | ~string
}

// Categorical is a finite ordered list of literal options.
type Categorical[T CategoricalValue] struct {
	name    string
	options []T
}

// NewCategorical creates a categorical parameter. The option list must be
// non-empty.
func NewCategorical[T CategoricalValue](name string, options []T) (*Categorical[T], error) {
	if len(options) == 0 {
		return nil, NewErrorf(KindInvalidArgument, "categorical %q has no options", name)
	}
	return &Categorical[T]{name: name, options: options}, nil
}

// Name returns the parameter's key.
func (c *Categorical[T]) Name() string { return c.name }

// Options returns the declared option list.
func (c *Categorical[T]) Options() []T { return c.options }

// Count returns the number of options.
func (c *Categorical[T]) Count() int { return len(c.options) }

func (c *Categorical[T]) param() {}

// RandInt is an integer drawn uniformly from [lower, upper). The upper bound
// is exclusive.
type RandInt struct {
	name         string
	lower, upper int
}

// NewRandInt creates an integer range parameter over [lower, upper). The
// range must contain at least one integer.
func NewRandInt(name string, lower, upper int) (*RandInt, error) {
	if upper <= lower {
		return nil, NewErrorf(KindInvalidArgument,
			"randint %q has an empty range [%d, %d)", name, lower, upper)
	}
	return &RandInt{name: name, lower: lower, upper: upper}, nil
}

// Name returns the parameter's key.
func (r *RandInt) Name() string { return r.name }

// Lower returns the inclusive lower bound.
func (r *RandInt) Lower() int { return r.lower }

// Upper returns the exclusive upper bound.
func (r *RandInt) Upper() int { return r.upper }

func (r *RandInt) param() {}

// Uniform is a float drawn uniformly from [lower, upper].
type Uniform struct {
	name         string
	lower, upper float64
}

// NewUniform creates a uniform parameter over [lower, upper].
func NewUniform(name string, lower, upper float64) *Uniform {
	return &Uniform{name: name, lower: lower, upper: upper}
}

// Name returns the parameter's key.
func (u *Uniform) Name() string { return u.name }

// Lower returns the lower bound.
func (u *Uniform) Lower() float64 { return u.lower }

// Upper returns the upper bound.
func (u *Uniform) Upper() float64 { return u.upper }

func (u *Uniform) param() {}

// QUniform is a uniform draw rounded to the nearest multiple of q and clamped
// back into [lower, upper].
type QUniform struct {
	name         string
	lower, upper float64
	q            float64
}

// NewQUniform creates a quantised uniform parameter.
func NewQUniform(name string, lower, upper, q float64) *QUniform {
	return &QUniform{name: name, lower: lower, upper: upper, q: q}
}

// Name returns the parameter's key.
func (u *QUniform) Name() string { return u.name }

// Lower returns the lower bound.
func (u *QUniform) Lower() float64 { return u.lower }

// Upper returns the upper bound.
func (u *QUniform) Upper() float64 { return u.upper }

// Q returns the quantisation step.
func (u *QUniform) Q() float64 { return u.q }

func (u *QUniform) param() {}

// LogUniform is the exponential of a uniform draw over [ln lower, ln upper].
// Both bounds must be strictly positive.
type LogUniform struct {
	name         string
	lower, upper float64
}

// NewLogUniform creates a log-uniform parameter over [lower, upper].
func NewLogUniform(name string, lower, upper float64) (*LogUniform, error) {
	if lower <= 0 || upper <= 0 {
		return nil, NewErrorf(KindInvalidArgument,
			"loguniform %q requires strictly positive bounds, got [%g, %g]", name, lower, upper)
	}
	return &LogUniform{name: name, lower: lower, upper: upper}, nil
}

// Name returns the parameter's key.
func (u *LogUniform) Name() string { return u.name }

// Lower returns the lower bound.
func (u *LogUniform) Lower() float64 { return u.lower }

// Upper returns the upper bound.
func (u *LogUniform) Upper() float64 { return u.upper }

func (u *LogUniform) param() {}

// QLogUniform is a log-uniform draw rounded to the nearest multiple of q and
// clamped back into [lower, upper].
type QLogUniform struct {
	name         string
	lower, upper float64
	q            float64
}

// NewQLogUniform creates a quantised log-uniform parameter.
func NewQLogUniform(name string, lower, upper, q float64) (*QLogUniform, error) {
	if lower <= 0 || upper <= 0 {
		return nil, NewErrorf(KindInvalidArgument,
			"qloguniform %q requires strictly positive bounds, got [%g, %g]", name, lower, upper)
	}
	return &QLogUniform{name: name, lower: lower, upper: upper, q: q}, nil
}

// Name returns the parameter's key.
func (u *QLogUniform) Name() string { return u.name }

// Lower returns the lower bound.
func (u *QLogUniform) Lower() float64 { return u.lower }

// Upper returns the upper bound.
func (u *QLogUniform) Upper() float64 { return u.upper }

// Q returns the quantisation step.
func (u *QLogUniform) Q() float64 { return u.q }

func (u *QLogUniform) param() {}

// Normal is a float drawn from a normal distribution.
type Normal struct {
	name      string
	mu, sigma float64
}

// NewNormal creates a normally distributed parameter.
func NewNormal(name string, mu, sigma float64) *Normal {
	return &Normal{name: name, mu: mu, sigma: sigma}
}

// Name returns the parameter's key.
func (n *Normal) Name() string { return n.name }

// Mu returns the mean.
func (n *Normal) Mu() float64 { return n.mu }

// Sigma returns the standard deviation.
func (n *Normal) Sigma() float64 { return n.sigma }

func (n *Normal) param() {}

// QNormal is a normal draw rounded to the nearest multiple of q. The support
// is unbounded, so there is no clamping.
type QNormal struct {
	name      string
	mu, sigma float64
	q         float64
}

// NewQNormal creates a quantised normal parameter.
func NewQNormal(name string, mu, sigma, q float64) *QNormal {
	return &QNormal{name: name, mu: mu, sigma: sigma, q: q}
}

// Name returns the parameter's key.
func (n *QNormal) Name() string { return n.name }

// Mu returns the mean.
func (n *QNormal) Mu() float64 { return n.mu }

// Sigma returns the standard deviation.
func (n *QNormal) Sigma() float64 { return n.sigma }

// Q returns the quantisation step.
func (n *QNormal) Q() float64 { return n.q }

func (n *QNormal) param() {}

// LogNormal is the exponential of a normal draw.
type LogNormal struct {
	name      string
	mu, sigma float64
}

// NewLogNormal creates a log-normally distributed parameter.
func NewLogNormal(name string, mu, sigma float64) *LogNormal {
	return &LogNormal{name: name, mu: mu, sigma: sigma}
}

// Name returns the parameter's key.
func (n *LogNormal) Name() string { return n.name }

// Mu returns the mean of the underlying normal.
func (n *LogNormal) Mu() float64 { return n.mu }

// Sigma returns the standard deviation of the underlying normal.
func (n *LogNormal) Sigma() float64 { return n.sigma }

func (n *LogNormal) param() {}

// QLogNormal is a log-normal draw rounded to the nearest multiple of q.
type QLogNormal struct {
	name      string
	mu, sigma float64
	q         float64
}

// NewQLogNormal creates a quantised log-normal parameter.
func NewQLogNormal(name string, mu, sigma, q float64) *QLogNormal {
	return &QLogNormal{name: name, mu: mu, sigma: sigma, q: q}
}

// Name returns the parameter's key.
func (n *QLogNormal) Name() string { return n.name }

// Mu returns the mean of the underlying normal.
func (n *QLogNormal) Mu() float64 { return n.mu }

// Sigma returns the standard deviation of the underlying normal.
func (n *QLogNormal) Sigma() float64 { return n.sigma }

// Q returns the quantisation step.
func (n *QLogNormal) Q() float64 { return n.q }

func (n *QLogNormal) param() {}

// Choice is a parameter whose value is an entire nested parameter selected
// from a finite option list. This is what allows one parameter to "be" a
// nested sub-space, enabling hierarchical search spaces.
type Choice struct {
	name    string
	options []Param
}

// NewChoice creates a choice parameter. The option list must be non-empty.
func NewChoice(name string, options []Param) (*Choice, error) {
	if len(options) == 0 {
		return nil, NewErrorf(KindInvalidArgument, "choice %q has no options", name)
	}
	return &Choice{name: name, options: options}, nil
}

// Name returns the parameter's key.
func (c *Choice) Name() string { return c.name }

// Options returns the declared option list.
func (c *Choice) Options() []Param { return c.options }

// Count returns the number of options.
func (c *Choice) Count() int { return len(c.options) }

// Get returns the option at index i.
func (c *Choice) Get(i int) (Param, error) {
	if i < 0 || i >= len(c.options) {
		return nil, NewErrorf(KindOutOfRange,
			"choice %q has %d options, index %d requested", c.name, len(c.options), i)
	}
	return c.options[i], nil
}

func (c *Choice) param() {}
