// Package values holds concrete parameter assignments, organised as a tree
// that mirrors the shape of the search space they were drawn from.
package values

import (
	"fmt"
	"sort"
	"strconv"
)

// Value is a single concrete assignment: a typed leaf or a nested node.
// The variant set is closed; consumers switch exhaustively over
// *Int, *Float, *Str and *Node.
type Value interface {
	// Name returns the key this value is stored under. It is fixed at
	// construction.
	Name() string

	value()
}

// Int is an integer-valued leaf.
type Int struct {
	name string
	val  int
}

// NewInt creates an integer leaf with the given name.
func NewInt(name string, v int) *Int {
	return &Int{name: name, val: v}
}

// Name returns the leaf's key.
func (v *Int) Name() string { return v.name }

// Val returns the assigned integer.
func (v *Int) Val() int { return v.val }

func (v *Int) value() {}

// Float is a float64-valued leaf.
type Float struct {
	name string
	val  float64
}

// NewFloat creates a float leaf with the given name.
func NewFloat(name string, v float64) *Float {
	return &Float{name: name, val: v}
}

// Name returns the leaf's key.
func (v *Float) Name() string { return v.name }

// Val returns the assigned float.
func (v *Float) Val() float64 { return v.val }

func (v *Float) value() {}

// Str is a string-valued leaf.
type Str struct {
	name string
	val  string
}

// NewStr creates a string leaf with the given name.
func NewStr(name string, v string) *Str {
	return &Str{name: name, val: v}
}

// Name returns the leaf's key.
func (v *Str) Name() string { return v.name }

// Val returns the assigned string.
func (v *Str) Val() string { return v.val }

func (v *Str) value() {}

// Node is a mapping from child name to child value. Insertion order is not
// retained; positional accessors resolve through decimal string keys instead
// (see GetFloatAt).
type Node struct {
	name  string
	items map[string]Value
}

// NewNode creates an empty node with the given name.
func NewNode(name string) *Node {
	return &Node{
		name:  name,
		items: make(map[string]Value),
	}
}

// Name returns the node's key.
func (n *Node) Name() string { return n.name }

func (n *Node) value() {}

// Add inserts v under v.Name(), overwriting any previous value stored under
// the same key. Overwriting is the supported way to update an assignment; the
// superseded value is simply released.
func (n *Node) Add(v Value) {
	n.items[v.Name()] = v
}

// Get returns the child stored under key, or nil when no such child exists.
// Callers must check for nil; a missing key is not a fault.
func (n *Node) Get(key string) Value {
	return n.items[key]
}

// Len returns the number of children.
func (n *Node) Len() int { return len(n.items) }

// Keys returns the child keys in sorted order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.items))
	for k := range n.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// The typed accessors below assume the tree was already validated against its
// search space. A missing key or a variant mismatch means a structural
// invariant was violated upstream, so they fail fast rather than return an
// error.

// GetInt returns the integer stored under key.
func (n *Node) GetInt(key string) int {
	v, ok := n.items[key].(*Int)
	if !ok {
		panic(fmt.Sprintf("values: %q in node %q is not an int leaf", key, n.name))
	}
	return v.val
}

// GetFloat returns the float stored under key.
func (n *Node) GetFloat(key string) float64 {
	v, ok := n.items[key].(*Float)
	if !ok {
		panic(fmt.Sprintf("values: %q in node %q is not a float leaf", key, n.name))
	}
	return v.val
}

// GetStr returns the string stored under key.
func (n *Node) GetStr(key string) string {
	v, ok := n.items[key].(*Str)
	if !ok {
		panic(fmt.Sprintf("values: %q in node %q is not a string leaf", key, n.name))
	}
	return v.val
}

// GetNode returns the nested node stored under key.
func (n *Node) GetNode(key string) *Node {
	v, ok := n.items[key].(*Node)
	if !ok {
		panic(fmt.Sprintf("values: %q in node %q is not a nested node", key, n.name))
	}
	return v
}

// GetIntAt returns the integer stored under the decimal key for i.
func (n *Node) GetIntAt(i int) int {
	return n.GetInt(strconv.Itoa(i))
}

// GetFloatAt returns the float stored under the decimal key for i. Benchmarks
// with dimension names "0".."d-1" read their parameter vectors this way.
func (n *Node) GetFloatAt(i int) float64 {
	return n.GetFloat(strconv.Itoa(i))
}

// GetStrAt returns the string stored under the decimal key for i.
func (n *Node) GetStrAt(i int) string {
	return n.GetStr(strconv.Itoa(i))
}
