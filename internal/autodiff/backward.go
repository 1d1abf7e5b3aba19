package autodiff

import "fmt"

// Backward computes ∂v/∂n for every node n reachable from v and stores it
// as n's gradient.
//
// Algorithm:
//  1. Record the reachable subgraph as a topological tape
//  2. Reset phase: clear the gradient of every node on the tape
//  3. Accumulate phase: seed v with 1 and walk the tape from the root,
//     adding each node's contribution to its operands
//
// Gradients are summed over every path from v to a node, so a node used by
// several consumers (x.Mul(x), diamonds) receives the full derivative.
// Because the reset always runs first, calling Backward again, from v or
// from another root, replaces earlier gradients instead of adding to them.
// Nodes not reachable from v keep whatever gradient they had.
func (v Value) Backward() {
	t := record(v.n)
	t.reset()
	t.accumulate(1)
}

// propagate pushes n's accumulated gradient to its operands.
//
// Local derivatives read operand values only. Values are immutable, so both
// branches of a binary operator see the original operands even when a and b
// are the same node.
func propagate(n *node) {
	g := n.grad
	op := n.origin

	switch op.kind {
	case OpNoop:
		// Leaf: nothing upstream.

	case OpNeg:
		// d(-a)/da = -1
		op.a.accumulate(-g)

	case OpExp:
		// d(exp(a))/da = exp(a)
		op.a.accumulate(g * exp32(op.a.value))

	case OpLog:
		// d(ln(a))/da = 1/a
		op.a.accumulate(g / op.a.value)

	case OpPow:
		// d(a^b)/da = b * a^(b-1)
		// d(a^b)/db = a^b * ln(a), NaN for a < 0
		a, b := op.a.value, op.b.value
		gradA := g * b * pow32(a, b-1)
		gradB := g * pow32(a, b) * log32(a)
		op.a.accumulate(gradA)
		op.b.accumulate(gradB)

	case OpAdd:
		op.a.accumulate(g)
		op.b.accumulate(g)

	case OpSub:
		op.a.accumulate(g)
		op.b.accumulate(-g)

	case OpMul:
		// d(a*b)/da = b, d(a*b)/db = a
		a, b := op.a.value, op.b.value
		op.a.accumulate(g * b)
		op.b.accumulate(g * a)

	case OpDiv:
		// d(a/b)/da = 1/b, d(a/b)/db = -a/b²
		a, b := op.a.value, op.b.value
		op.a.accumulate(g / b)
		op.b.accumulate(g * (-a / (b * b)))

	default:
		panic(fmt.Sprintf("autodiff: backward: unknown operator %v", op.kind))
	}
}
