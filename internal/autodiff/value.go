package autodiff

import "math"

// Value is a handle to a node in the computation graph.
//
// Values are small and meant to be passed by value. Copying a Value copies
// the reference, not the node: both copies denote the same node and receive
// the same gradient. The zero Value is not usable; construct one with New or
// with an operator method.
type Value struct {
	n *node
}

// New creates a leaf value with no antecedents.
func New(v float32) Value {
	return Value{n: newLeaf(v)}
}

func fromOp(v float32, op operation) Value {
	return Value{n: newNode(v, op)}
}

// Data returns the forward value.
func (v Value) Data() float32 {
	return v.n.value
}

// Grad returns ∂root/∂v for the most recent backward pass whose root reached
// v. ok is false if no such pass has run.
func (v Value) Grad() (g float32, ok bool) {
	return v.n.grad, v.n.hasGrad
}

// Op returns the operator that produced v, or OpNoop for leaves.
func (v Value) Op() OpKind {
	return v.n.origin.kind
}

// Operands returns handles to the nodes v was computed from.
// The handles share nodes with the graph.
func (v Value) Operands() []Value {
	nodes := v.n.origin.operands()
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Value, len(nodes))
	for i, n := range nodes {
		out[i] = Value{n: n}
	}
	return out
}

// Same reports whether v and o denote the same node.
func (v Value) Same(o Value) bool {
	return v.n == o.n
}

// Neg returns -v.
func (v Value) Neg() Value {
	return fromOp(-v.n.value, unary(OpNeg, v.n))
}

// Exp returns e^v.
func (v Value) Exp() Value {
	return fromOp(exp32(v.n.value), unary(OpExp, v.n))
}

// Log returns the natural logarithm of v.
// Non-positive inputs yield NaN or -Inf, which propagate through the graph.
func (v Value) Log() Value {
	return fromOp(log32(v.n.value), unary(OpLog, v.n))
}

// Pow returns v raised to the power of exponent.
func (v Value) Pow(exponent Value) Value {
	return fromOp(pow32(v.n.value, exponent.n.value), binary(OpPow, v.n, exponent.n))
}

// PowScalar returns v raised to a constant exponent.
// The exponent becomes a leaf of the graph and receives a gradient as well.
func (v Value) PowScalar(exponent float32) Value {
	return v.Pow(New(exponent))
}

// Add returns v + o.
func (v Value) Add(o Value) Value {
	return fromOp(v.n.value+o.n.value, binary(OpAdd, v.n, o.n))
}

// Sub returns v - o.
func (v Value) Sub(o Value) Value {
	return fromOp(v.n.value-o.n.value, binary(OpSub, v.n, o.n))
}

// Mul returns v * o.
func (v Value) Mul(o Value) Value {
	return fromOp(v.n.value*o.n.value, binary(OpMul, v.n, o.n))
}

// Div returns v / o.
//
// Div panics if o is exactly zero. Callers must guard divisors; there is no
// recoverable error path.
func (v Value) Div(o Value) Value {
	divisor := o.n.value
	if divisor == 0 {
		panic("autodiff: division by zero")
	}
	return fromOp(v.n.value/divisor, binary(OpDiv, v.n, o.n))
}

// Equal reports whether v and o hold the same forward value.
// Provenance is ignored.
func (v Value) Equal(o Value) bool {
	return v.n.value == o.n.value
}

// Less reports whether v's forward value is less than o's.
func (v Value) Less(o Value) bool {
	return v.n.value < o.n.value
}

// Compare orders v and o by forward value, returning -1, 0 or +1.
// ok is false when either value is NaN and the pair is unordered.
func (v Value) Compare(o Value) (c int, ok bool) {
	a, b := v.n.value, o.n.value
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	case a == b:
		return 0, true
	default:
		return 0, false
	}
}

func exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

func log32(x float32) float32 {
	return float32(math.Log(float64(x)))
}

func pow32(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}
