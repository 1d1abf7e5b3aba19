// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Arithmetic on Values builds a computation graph eagerly; Backward on any
// Value computes the derivative of that Value with respect to every Value
// it was computed from.
//
// Example:
//
//	import "github.com/born-ml/gradval/autodiff"
//
//	func main() {
//	    x := autodiff.New(3)
//	    w := autodiff.New(-2)
//	    y := x.Mul(w).Add(x.PowScalar(2)) // y = x*w + x²
//
//	    y.Backward()
//	    gx, _ := x.Grad() // w + 2x = 4
//	    gw, _ := w.Grad() // x = 3
//	    fmt.Println(gx, gw)
//	}
//
// Div panics on an exactly zero divisor. Log and Pow of non-positive bases
// produce NaN or Inf, which propagate into values and gradients.
package autodiff

import "github.com/born-ml/gradval/internal/autodiff"

// Value is a handle to a scalar node of the computation graph.
// Copies share the node.
type Value = autodiff.Value

// OpKind identifies the operator that produced a Value.
type OpKind = autodiff.OpKind

// Operators recorded in the graph.
const (
	OpNoop = autodiff.OpNoop
	OpNeg  = autodiff.OpNeg
	OpExp  = autodiff.OpExp
	OpLog  = autodiff.OpLog
	OpPow  = autodiff.OpPow
	OpAdd  = autodiff.OpAdd
	OpSub  = autodiff.OpSub
	OpMul  = autodiff.OpMul
	OpDiv  = autodiff.OpDiv
)

// New creates a leaf Value.
func New(v float32) Value {
	return autodiff.New(v)
}
