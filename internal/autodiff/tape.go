package autodiff

// tape is the subgraph reachable from a root, ordered so that every node
// appears after all of its operands (leaves first, root last).
//
// Walking it backwards visits each node only once its gradient has received
// every contribution, since all consumers of a node sit later on the tape.
type tape []*node

// record builds the tape for root with an iterative post-order DFS.
// Each node appears once even when it is shared by several consumers.
func record(root *node) tape {
	type frame struct {
		n    *node
		done bool // operands already pushed
	}

	var t tape
	seen := make(map[*node]struct{})
	stack := []frame{{n: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.done {
			t = append(t, top.n)
			continue
		}
		if _, ok := seen[top.n]; ok {
			continue
		}
		seen[top.n] = struct{}{}

		stack = append(stack, frame{n: top.n, done: true})
		for _, operand := range top.n.origin.operands() {
			if _, ok := seen[operand]; !ok {
				stack = append(stack, frame{n: operand})
			}
		}
	}
	return t
}

// reset clears the gradient of every node on the tape.
func (t tape) reset() {
	for _, n := range t {
		n.resetGrad()
	}
}

// accumulate seeds the root (last entry) and pushes gradients towards the
// leaves in reverse tape order.
func (t tape) accumulate(seed float32) {
	if len(t) == 0 {
		return
	}
	t[len(t)-1].accumulate(seed)
	for i := len(t) - 1; i >= 0; i-- {
		propagate(t[i])
	}
}
