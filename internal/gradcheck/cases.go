package gradcheck

import (
	"fmt"

	"github.com/born-ml/gradval/internal/autodiff"
)

// Input names one input of a case and the interval its samples are drawn
// from. Intervals stay clear of singularities by at least the default
// epsilon.
type Input struct {
	Name     string
	Min, Max float32
}

// Case is a differentiable expression checked against finite differences.
// Build must derive its result from the given leaves only.
type Case struct {
	Name   string
	Inputs []Input
	Build  func(in []autodiff.Value) autodiff.Value
}

var builtinCases = []Case{
	{
		Name:   "neg",
		Inputs: []Input{{"x", -3, 3}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Neg() },
	},
	{
		Name:   "exp",
		Inputs: []Input{{"x", -2, 2}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Exp() },
	},
	{
		Name:   "log",
		Inputs: []Input{{"x", 0.5, 4}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Log() },
	},
	{
		Name:   "pow",
		Inputs: []Input{{"base", 0.5, 3}, {"exponent", -1, 2}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Pow(in[1]) },
	},
	{
		Name:   "add",
		Inputs: []Input{{"a", -3, 3}, {"b", -3, 3}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Add(in[1]) },
	},
	{
		Name:   "sub",
		Inputs: []Input{{"a", -3, 3}, {"b", -3, 3}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Sub(in[1]) },
	},
	{
		Name:   "mul",
		Inputs: []Input{{"a", -3, 3}, {"b", -3, 3}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Mul(in[1]) },
	},
	{
		Name:   "div",
		Inputs: []Input{{"a", -3, 3}, {"b", 0.5, 3}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Div(in[1]) },
	},
	{
		// Both operands are the same node.
		Name:   "square",
		Inputs: []Input{{"x", -3, 3}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Mul(in[0]) },
	},
	{
		Name:   "logexp",
		Inputs: []Input{{"x", -2, 2}},
		Build:  func(in []autodiff.Value) autodiff.Value { return in[0].Exp().Log() },
	},
}

// Cases returns the built-in cases in their canonical order.
func Cases() []Case {
	out := make([]Case, len(builtinCases))
	copy(out, builtinCases)
	return out
}

func lookupCase(name string) (Case, bool) {
	for _, c := range builtinCases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// selectCases resolves names to cases; nil or empty selects all.
func selectCases(names []string) ([]Case, error) {
	if len(names) == 0 {
		return Cases(), nil
	}
	out := make([]Case, 0, len(names))
	for _, name := range names {
		c, ok := lookupCase(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidConfig, name)
		}
		out = append(out, c)
	}
	return out, nil
}

// point returns the inputs for sample i of n. Even-indexed inputs walk their
// interval upwards and odd-indexed ones downwards, so binary cases pair
// small values of one operand with large values of the other.
func (c Case) point(i, n int) []float32 {
	p := make([]float32, len(c.Inputs))
	for j, in := range c.Inputs {
		k := i
		if j%2 == 1 {
			k = n - 1 - i
		}
		p[j] = lerp(in.Min, in.Max, k, n)
	}
	return p
}

func lerp(lo, hi float32, k, n int) float32 {
	if n == 1 {
		return lo + (hi-lo)/2
	}
	return lo + (hi-lo)*float32(k)/float32(n-1)
}

// eval builds the case on fresh leaves and returns the root with its leaves.
func (c Case) eval(p []float32) (autodiff.Value, []autodiff.Value) {
	leaves := make([]autodiff.Value, len(p))
	for j, v := range p {
		leaves[j] = autodiff.New(v)
	}
	return c.Build(leaves), leaves
}
