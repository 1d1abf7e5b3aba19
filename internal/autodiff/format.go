package autodiff

import (
	"strconv"
	"strings"
)

// String renders v for debugging and tracing.
//
// Derived values render as "<op>(<operands>) = <value>", leaves as
// "<value>". Either form gets ", grad: <g>" appended once a backward pass
// has reached the node. Numbers use shortest scientific notation:
//
//	mul(2e+00, 3e+00) = 6e+00, grad: 1e+00
//	3e+00, grad: 2e+00
func (v Value) String() string {
	var sb strings.Builder
	if op := v.n.origin; op.kind != OpNoop {
		sb.WriteString(op.kind.String())
		sb.WriteByte('(')
		for i, operand := range op.operands() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatScalar(operand.value))
		}
		sb.WriteString(") = ")
	}
	sb.WriteString(formatScalar(v.n.value))
	if g, ok := v.Grad(); ok {
		sb.WriteString(", grad: ")
		sb.WriteString(formatScalar(g))
	}
	return sb.String()
}

func formatScalar(x float32) string {
	return strconv.FormatFloat(float64(x), 'e', -1, 32)
}
