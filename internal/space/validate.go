package space

import (
	"math"

	"github.com/copyleftdev/STEPPE/internal/values"
)

// Validate walks a space and a value tree in lockstep and confirms they
// agree: every declared parameter has a correspondingly-typed value entry, a
// choice maps to a node holding exactly one subtree matching exactly one of
// its declared options, and neither side carries keys the other lacks. Any
// divergence is reported as a mismatch error naming the offending key.
// Benchmarks call this before reading parameter values.
func Validate(s Space, root *values.Node) error {
	if root == nil {
		return NewError(KindMismatch, "no value tree to validate").WithOp("validate")
	}
	if err := validateLevel(s, root); err != nil {
		return err
	}
	return nil
}

func validateLevel(s Space, node *values.Node) error {
	for _, p := range s {
		v := node.Get(p.Name())
		if v == nil {
			return NewErrorf(KindMismatch,
				"missing value for parameter %q in node %q", p.Name(), node.Name()).WithOp("validate")
		}
		if err := validateParam(p, v); err != nil {
			return err
		}
	}

	// The reverse direction: every value entry must correspond to a declared
	// parameter.
	if node.Len() != len(s) {
		declared := make(map[string]bool, len(s))
		for _, p := range s {
			declared[p.Name()] = true
		}
		for _, key := range node.Keys() {
			if !declared[key] {
				return NewErrorf(KindMismatch,
					"value %q in node %q matches no declared parameter", key, node.Name()).WithOp("validate")
			}
		}
	}
	return nil
}

// validateParam checks both the value's variant kind and the value itself:
// categorical membership, range bounds and quantisation, per the declared
// parameter. Normal-family parameters have unbounded support, so only their
// quantisation (if any) is checked.
func validateParam(p Param, v values.Value) error {
	switch sp := p.(type) {
	case *Categorical[int]:
		iv, ok := v.(*values.Int)
		if !ok {
			return typeMismatch(p.Name(), "int")
		}
		for _, opt := range sp.options {
			if iv.Val() == opt {
				return nil
			}
		}
		return notAMember(sp.name, iv.Val())
	case *RandInt:
		iv, ok := v.(*values.Int)
		if !ok {
			return typeMismatch(p.Name(), "int")
		}
		if iv.Val() < sp.lower || iv.Val() >= sp.upper {
			return NewErrorf(KindMismatch,
				"value %d for parameter %q lies outside [%d, %d)",
				iv.Val(), sp.name, sp.lower, sp.upper).WithOp("validate")
		}
	case *Categorical[float64]:
		fv, ok := v.(*values.Float)
		if !ok {
			return typeMismatch(p.Name(), "float")
		}
		for _, opt := range sp.options {
			if dblEq(fv.Val(), opt) {
				return nil
			}
		}
		return notAMember(sp.name, fv.Val())
	case *Categorical[string]:
		sv, ok := v.(*values.Str)
		if !ok {
			return typeMismatch(p.Name(), "string")
		}
		for _, opt := range sp.options {
			if sv.Val() == opt {
				return nil
			}
		}
		return notAMember(sp.name, sv.Val())
	case *Uniform:
		fv, ok := v.(*values.Float)
		if !ok {
			return typeMismatch(p.Name(), "float")
		}
		return validateFloatRange(sp.name, fv.Val(), sp.lower, sp.upper)
	case *LogUniform:
		fv, ok := v.(*values.Float)
		if !ok {
			return typeMismatch(p.Name(), "float")
		}
		return validateFloatRange(sp.name, fv.Val(), sp.lower, sp.upper)
	case *QUniform:
		fv, ok := v.(*values.Float)
		if !ok {
			return typeMismatch(p.Name(), "float")
		}
		if err := validateFloatRange(sp.name, fv.Val(), sp.lower, sp.upper); err != nil {
			return err
		}
		return validateQuantised(sp.name, fv.Val(), sp.q)
	case *QLogUniform:
		fv, ok := v.(*values.Float)
		if !ok {
			return typeMismatch(p.Name(), "float")
		}
		if err := validateFloatRange(sp.name, fv.Val(), sp.lower, sp.upper); err != nil {
			return err
		}
		return validateQuantised(sp.name, fv.Val(), sp.q)
	case *Normal, *LogNormal:
		if _, ok := v.(*values.Float); !ok {
			return typeMismatch(p.Name(), "float")
		}
	case *QNormal:
		fv, ok := v.(*values.Float)
		if !ok {
			return typeMismatch(p.Name(), "float")
		}
		return validateQuantised(sp.name, fv.Val(), sp.q)
	case *QLogNormal:
		fv, ok := v.(*values.Float)
		if !ok {
			return typeMismatch(p.Name(), "float")
		}
		return validateQuantised(sp.name, fv.Val(), sp.q)
	case *Choice:
		return validateChoice(sp, v)
	default:
		return NewErrorf(KindMismatch, "parameter %q has unknown kind %T", p.Name(), p).WithOp("validate")
	}
	return nil
}

// dblEq compares floats to within one machine epsilon at 1.0. Quantised and
// categorical values are produced by the same arithmetic that checks them, so
// a tighter tolerance would only mask real mismatches.
func dblEq(a, b float64) bool {
	return math.Abs(a-b) < 2.220446049250313e-16
}

func notAMember(name string, got interface{}) *Error {
	return NewErrorf(KindMismatch,
		"value %v for categorical %q matches no declared option", got, name).WithOp("validate")
}

func validateFloatRange(name string, v, lower, upper float64) error {
	if v < lower || v > upper {
		return NewErrorf(KindMismatch,
			"value %g for parameter %q lies outside [%g, %g]", v, name, lower, upper).WithOp("validate")
	}
	return nil
}

// validateQuantised confirms v is a multiple of q, comparing against the
// nearest multiple rather than using fmod so fp representation error in the
// multiples themselves does not fail the check.
func validateQuantised(name string, v, q float64) error {
	mult := math.Round(v / q)
	if !dblEq(v-mult*q, 0) {
		return NewErrorf(KindMismatch,
			"value %g for parameter %q is not quantised to q=%g", v, name, q).WithOp("validate")
	}
	return nil
}

// validateChoice confirms that the value for a choice parameter is a node
// holding exactly one nested subtree, and that this subtree is consistent
// with exactly one of the declared options.
func validateChoice(c *Choice, v values.Value) error {
	node, ok := v.(*values.Node)
	if !ok {
		return typeMismatch(c.Name(), "node")
	}
	if node.Len() != 1 {
		return NewErrorf(KindMismatch,
			"choice %q must resolve to exactly one option, found %d entries", c.Name(), node.Len()).WithOp("validate")
	}
	key := node.Keys()[0]
	for _, opt := range c.Options() {
		if opt.Name() == key {
			return validateParam(opt, node.Get(key))
		}
	}
	return NewErrorf(KindMismatch,
		"value %q under choice %q matches no declared option", key, c.Name()).WithOp("validate")
}

func typeMismatch(name, want string) *Error {
	return NewErrorf(KindMismatch,
		"parameter %q expects a value of kind %s", name, want).WithOp("validate")
}
