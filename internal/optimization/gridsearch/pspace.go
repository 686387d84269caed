package gridsearch

import (
	"math"
	"strconv"

	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

// pspace is the enumerable form of a search space: a parallel tree built once
// per UpdateSearchSpace. Each level holds the candidate lists for its concrete
// leaves plus one branch group per choice, and the per-digit counters that
// together form the mixed-radix odometer. Low-order digits are the level's
// leaves in declaration order, followed by its choices in declaration order.
type pspace struct {
	name    string
	leaves  []*leafDigit
	choices []*choiceDigit
}

// leafDigit is one odometer digit: a finite candidate list and a position
// counter. Its radix is the candidate-list length.
type leafDigit struct {
	name       string
	candidates []values.Value
	ctr        int
}

// choiceDigit enumerates a choice parameter branch by branch: all of the
// current branch's combinations are exhausted before the selector moves on.
type choiceDigit struct {
	name     string
	branches []*pspace
	branch   int
}

// unpack builds the pspace for a space. Only parameter kinds with a
// well-defined finite value set are accepted: categorical options are taken
// verbatim, randint ranges expand to every integer in [lower, upper), and
// quniform ranges to every multiple of q from lower to upper inclusive. Any
// other kind has no canonical finite enumeration and is rejected.
func unpack(name string, ss space.Space) (*pspace, error) {
	p := &pspace{name: name}

	for _, prm := range ss {
		switch sp := prm.(type) {
		case *space.Categorical[int]:
			d := &leafDigit{name: sp.Name()}
			for _, v := range sp.Options() {
				d.candidates = append(d.candidates, values.NewInt(sp.Name(), v))
			}
			p.leaves = append(p.leaves, d)

		case *space.Categorical[float64]:
			d := &leafDigit{name: sp.Name()}
			for _, v := range sp.Options() {
				d.candidates = append(d.candidates, values.NewFloat(sp.Name(), v))
			}
			p.leaves = append(p.leaves, d)

		case *space.Categorical[string]:
			d := &leafDigit{name: sp.Name()}
			for _, v := range sp.Options() {
				d.candidates = append(d.candidates, values.NewStr(sp.Name(), v))
			}
			p.leaves = append(p.leaves, d)

		case *space.RandInt:
			d := &leafDigit{name: sp.Name()}
			for v := sp.Lower(); v < sp.Upper(); v++ {
				d.candidates = append(d.candidates, values.NewInt(sp.Name(), v))
			}
			p.leaves = append(p.leaves, d)

		case *space.QUniform:
			d := &leafDigit{name: sp.Name()}
			// Step count rather than accumulated addition, so float error
			// cannot drop or duplicate the final candidate.
			steps := int(math.Floor((sp.Upper()-sp.Lower())/sp.Q() + 1e-9))
			for i := 0; i <= steps; i++ {
				v := sp.Lower() + float64(i)*sp.Q()
				d.candidates = append(d.candidates, values.NewFloat(sp.Name(), v))
			}
			p.leaves = append(p.leaves, d)

		case *space.Choice:
			cd := &choiceDigit{name: sp.Name()}
			for i, opt := range sp.Options() {
				branch, err := unpack(sp.Name()+"/"+strconv.Itoa(i), space.Space{opt})
				if err != nil {
					return nil, err
				}
				// A zero-count branch (an empty enumerable range somewhere
				// below it) contributes nothing and must never be selected:
				// emit has no combination to read from it. Dropping it here
				// keeps the total at the sum of the non-empty branch counts;
				// a choice left with no branches zeroes the whole level.
				if branch.count() == 0 {
					continue
				}
				cd.branches = append(cd.branches, branch)
			}
			p.choices = append(p.choices, cd)

		default:
			return nil, space.NewErrorf(space.KindUnsupported,
				"parameter %q of kind %T has no finite enumeration", prm.Name(), prm).
				WithComponent("gridsearch").WithOp("unpack")
		}
	}

	return p, nil
}

// count returns the total number of combinations: the product over leaves of
// their candidate counts times, for each choice, the sum of its branch
// counts. A level containing an empty candidate list counts zero.
func (p *pspace) count() int {
	total := 1
	for _, d := range p.leaves {
		total *= len(d.candidates)
	}
	for _, c := range p.choices {
		sum := 0
		for _, b := range c.branches {
			sum += b.count()
		}
		total *= sum
	}
	return total
}

// emit reads the current counter state into node: one leaf per digit, and one
// nested node per choice holding the current branch's emission.
func (p *pspace) emit(node *values.Node) {
	for _, d := range p.leaves {
		node.Add(d.candidates[d.ctr])
	}
	for _, c := range p.choices {
		nested := values.NewNode(c.name)
		c.branches[c.branch].emit(nested)
		node.Add(nested)
	}
}

// advance steps the odometer by one combination and reports whether the whole
// level wrapped (carry out of the highest-order digit). Each digit resets to
// its first position as the carry passes through it, exactly like
// incrementing a multi-digit counter in a mixed base. A choice digit carries
// only after its current branch wraps and no further branch remains.
func (p *pspace) advance() bool {
	for _, d := range p.leaves {
		d.ctr++
		if d.ctr < len(d.candidates) {
			return false
		}
		d.ctr = 0
	}
	for _, c := range p.choices {
		if !c.branches[c.branch].advance() {
			return false
		}
		c.branch++
		if c.branch < len(c.branches) {
			return false
		}
		c.branch = 0
	}
	return true
}

// reset rewinds every counter to the first combination.
func (p *pspace) reset() {
	for _, d := range p.leaves {
		d.ctr = 0
	}
	for _, c := range p.choices {
		c.branch = 0
		for _, b := range c.branches {
			b.reset()
		}
	}
}
