package autodiff

// node is one cell of the computation graph.
//
// value never changes after construction. grad is only written by the
// backward engine: hasGrad is false until a backward pass reaches the node
// and is cleared again by the reset phase of every later pass.
type node struct {
	value   float32
	grad    float32
	hasGrad bool
	origin  operation
}

// newLeaf creates an input node with no antecedents.
func newLeaf(v float32) *node {
	return &node{value: v}
}

// newNode creates a node whose value was already computed from op's operands.
func newNode(v float32, op operation) *node {
	return &node{value: v, origin: op}
}

func (n *node) resetGrad() {
	n.grad = 0
	n.hasGrad = false
}

// accumulate adds g to the running gradient sum, treating unset as zero.
func (n *node) accumulate(g float32) {
	if n.hasGrad {
		n.grad += g
		return
	}
	n.grad = g
	n.hasGrad = true
}
