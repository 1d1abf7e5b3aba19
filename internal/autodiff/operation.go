package autodiff

import (
	"fmt"
	"strconv"
)

// OpKind identifies the operator that produced a node.
//
// The set is closed: the backward engine switches over every kind, so a new
// operator needs a forward method on Value, a case in propagate, and a name.
type OpKind uint8

// Supported operators.
const (
	OpNoop OpKind = iota // leaf, no antecedents
	OpNeg                // -a
	OpExp                // exp(a)
	OpLog                // ln(a)
	OpPow                // a^b
	OpAdd                // a + b
	OpSub                // a - b
	OpMul                // a * b
	OpDiv                // a / b
)

var opNames = [...]string{
	OpNoop: "noop",
	OpNeg:  "neg",
	OpExp:  "exp",
	OpLog:  "log",
	OpPow:  "pow",
	OpAdd:  "add",
	OpSub:  "sub",
	OpMul:  "mul",
	OpDiv:  "div",
}

// String returns the operator name used in debug renderings.
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "OpKind(" + strconv.Itoa(int(k)) + ")"
}

// Arity returns the number of operands the operator takes.
func (k OpKind) Arity() int {
	switch k {
	case OpNoop:
		return 0
	case OpNeg, OpExp, OpLog:
		return 1
	case OpPow, OpAdd, OpSub, OpMul, OpDiv:
		return 2
	default:
		panic(fmt.Sprintf("autodiff: unknown operator %v", k))
	}
}

// operation records how a node was computed.
// a is the left/base operand, b the right/exponent operand; b is nil for
// unary operators and both are nil for leaves.
type operation struct {
	kind OpKind
	a, b *node
}

func unary(kind OpKind, a *node) operation {
	return operation{kind: kind, a: a}
}

func binary(kind OpKind, a, b *node) operation {
	return operation{kind: kind, a: a, b: b}
}

// operands returns the antecedent nodes in operand order.
func (op operation) operands() []*node {
	switch op.kind.Arity() {
	case 0:
		return nil
	case 1:
		return []*node{op.a}
	default:
		return []*node{op.a, op.b}
	}
}
