// Package autodiff implements scalar reverse-mode automatic differentiation.
//
// Every arithmetic method on a Value eagerly computes its result and records
// the operation that produced it, building a directed acyclic computation
// graph. Backward then walks that graph from a chosen root and stores
// ∂root/∂node on every node that contributed to the root.
//
// Architecture:
//   - node: scalar value, optional gradient, originating operation
//   - operation: closed set of operators (OpKind) plus operand nodes
//   - Value: copyable handle around a node; copies share the node
//   - Backward: reset phase, then accumulate phase over a topological tape
//
// Usage:
//
//	x := autodiff.New(3)
//	y := x.Mul(x) // y = x²
//
//	y.Backward()
//	g, _ := x.Grad() // dy/dx = 2x = 6
//
// A graph is not safe for concurrent use. Independent graphs share no state
// and may be built on different goroutines.
package autodiff
