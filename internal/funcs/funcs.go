// Package funcs is a catalog of named differentiable functions built from the
// autodiff operators. The CLI and the gradient checks evaluate them by name.
package funcs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ouroboros-ml/ouroboros/internal/autodiff"
)

// ErrUnknownFunction is returned by Lookup for a name not in the catalog.
var ErrUnknownFunction = errors.New("unknown function")

// Entry is one catalog function.
type Entry struct {
	Name        string
	Formula     string
	Description string
	Fn          autodiff.Func
	// Example is a point in the function's domain, used when no input is given.
	Example     any
}

// Registry maps function names to entries.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates a registry holding the built-in functions.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	r.registerPolynomials()
	r.registerVectorFuncs()
	r.registerRationals()
	return r
}

// Register adds or replaces an entry.
func (r *Registry) Register(e Entry) {
	r.entries[e.Name] = e
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return e, nil
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every entry sorted by name.
func (r *Registry) All() []Entry {
	names := r.Names()
	all := make([]Entry, len(names))
	for i, name := range names {
		all[i] = r.entries[name]
	}
	return all
}

var defaultRegistry = NewRegistry()

// Lookup returns a built-in function by name.
func Lookup(name string) (Entry, error) { return defaultRegistry.Lookup(name) }

// Names returns the built-in function names in sorted order.
func Names() []string { return defaultRegistry.Names() }

// All returns the built-in functions sorted by name.
func All() []Entry { return defaultRegistry.All() }

func (r *Registry) registerPolynomials() {
	r.Register(Entry{
		Name:        "square",
		Description: "power rule with k=2",
		Formula:     "x**2",
		Fn:          func(x *autodiff.Value) (*autodiff.Value, error) { return autodiff.Pow(x, 2) },
		Example:     3.0,
	})
	r.Register(Entry{
		Name:        "cube",
		Description: "power rule with k=3",
		Formula:     "x**3",
		Fn:          func(x *autodiff.Value) (*autodiff.Value, error) { return autodiff.Pow(x, 3) },
		Example:     2.0,
	})
	r.Register(Entry{
		Name:        "double",
		Description: "sum rule, one operand used twice",
		Formula:     "x+x",
		Fn:          func(x *autodiff.Value) (*autodiff.Value, error) { return autodiff.Add(x, x) },
		Example:     1.5,
	})
	r.Register(Entry{
		Name:        "diamond",
		Description: "gradient accumulation through a shared intermediate",
		Formula:     "(x+x)*(x+x)",
		Fn:          diamond,
		Example:     2.0,
	})
	r.Register(Entry{
		Name:        "poly",
		Description: "mixed scalar products and subtraction",
		Formula:     "3*x**2 - 2*x + 1",
		Fn:          poly,
		Example:     []float64{-1, 0.5, 2},
	})
}

func (r *Registry) registerVectorFuncs() {
	r.Register(Entry{
		Name:        "dot",
		Description: "vector-vector matmul to a scalar",
		Formula:     "x@x",
		Fn:          func(x *autodiff.Value) (*autodiff.Value, error) { return autodiff.MatMul(x, x) },
		Example:     []float64{1, 2, 3},
	})
	r.Register(Entry{
		Name:        "norm",
		Description: "euclidean norm, fractional power of a matmul",
		Formula:     "(x@x)**0.5",
		Fn:          norm,
		Example:     []float64{3, 4},
	})
}

func (r *Registry) registerRationals() {
	r.Register(Entry{
		Name:        "reciprocal",
		Description: "division as multiplication by a negative power",
		Formula:     "1/x",
		Fn:          func(x *autodiff.Value) (*autodiff.Value, error) { return autodiff.Div(1, x) },
		Example:     2.0,
	})
	r.Register(Entry{
		Name:        "quotient",
		Description: "quotient rule with a right-hand add",
		Formula:     "(x+1)/(x*x+1)",
		Fn:          quotient,
		Example:     []float64{-1, 0.5, 2},
	})
}

// diamond reuses the same intermediate twice, so its gradient accumulates
// from two consumers.
func diamond(x *autodiff.Value) (*autodiff.Value, error) {
	b, err := autodiff.Add(x, x)
	if err != nil {
		return nil, err
	}
	return autodiff.Mul(b, b)
}

func poly(x *autodiff.Value) (*autodiff.Value, error) {
	sq, err := autodiff.Pow(x, 2)
	if err != nil {
		return nil, err
	}
	quad, err := autodiff.Mul(3, sq)
	if err != nil {
		return nil, err
	}
	lin, err := autodiff.Mul(2, x)
	if err != nil {
		return nil, err
	}
	y, err := autodiff.Sub(quad, lin)
	if err != nil {
		return nil, err
	}
	return autodiff.Add(y, 1)
}

func norm(x *autodiff.Value) (*autodiff.Value, error) {
	sq, err := autodiff.MatMul(x, x)
	if err != nil {
		return nil, err
	}
	return autodiff.Pow(sq, 0.5)
}

func quotient(x *autodiff.Value) (*autodiff.Value, error) {
	num, err := autodiff.Add(x, 1)
	if err != nil {
		return nil, err
	}
	sq, err := autodiff.Mul(x, x)
	if err != nil {
		return nil, err
	}
	return autodiff.Div(num, sq.RAdd(1))
}
