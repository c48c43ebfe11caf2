package autodiff

import (
	"fmt"
	"log/slog"

	"github.com/emirpasic/gods/v2/sets/hashset"
	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"github.com/ouroboros-ml/ouroboros/internal/logutil"
	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// frame is one entry of the traversal stack. A node is pushed unexpanded when
// discovered and again, expanded, once its parents have been scheduled.
type frame struct {
	node     *Value
	expanded bool
}

// TopologicalOrder returns every node reachable from v through parent links,
// each exactly once, ordered so that a node appears after all of its parents.
// v itself (or its origin, for a view) is last.
//
// The traversal uses an explicit stack, so graph depth is bounded only by
// memory. Nodes are distinguished by identity, never by payload.
func (v *Value) TopologicalOrder() []*Value {
	var order []*Value
	visited := hashset.New[*Value]()
	stack := arraystack.New[frame]()
	stack.Push(frame{node: v.node()})

	for !stack.Empty() {
		f, _ := stack.Pop()
		if f.expanded {
			order = append(order, f.node)
			continue
		}
		if visited.Contains(f.node) {
			continue
		}
		visited.Add(f.node)
		stack.Push(frame{node: f.node, expanded: true})

		// Push in reverse so parents are visited in operand order.
		parents := f.node.Parents()
		for i := len(parents) - 1; i >= 0; i-- {
			if !visited.Contains(parents[i]) {
				stack.Push(frame{node: parents[i]})
			}
		}
	}
	return order
}

// Backward computes the gradient of v with respect to every node it depends on.
//
// Algorithm:
//  1. Build the topological order of the reachable subgraph
//  2. Seed v's gradient with ones (dv/dv = 1 everywhere)
//  3. Walk the order in reverse, invoking each node's gradient rule once and
//     adding the contributions into its parents' gradients
//
// Gradients of every other node are never reset: calling Backward again adds
// to what is already there. Use ZeroGrad or ZeroGradGraph between passes.
//
// A contribution that cannot be accumulated into its parent (a malformed
// graph) stops the pass with an error wrapping ErrShapeMismatch.
func (v *Value) Backward() error {
	root := v.node()
	order := root.TopologicalOrder()

	root.grad = tensor.Ones(root.payload.Shape())
	slog.Debug("backward pass", "nodes", len(order), "root", root.Kind())

	for i := len(order) - 1; i >= 0; i-- {
		if err := order[i].propagate(); err != nil {
			return err
		}
	}
	return nil
}

// propagate invokes the node's gradient rule and accumulates the result into
// its inputs.
func (v *Value) propagate() error {
	if len(v.inputs) == 0 {
		return nil
	}

	payloads := make([]*tensor.Array, len(v.inputs))
	for i, in := range v.inputs {
		payloads[i] = in.payload
	}

	contributions, err := v.op.Backward(v.grad, payloads)
	if err != nil {
		return fmt.Errorf("backward %s: %w", v.op.Kind(), err)
	}
	if len(contributions) != len(v.inputs) {
		return fmt.Errorf("backward %s: %d contributions for %d inputs", v.op.Kind(), len(contributions), len(v.inputs))
	}

	if logutil.TraceEnabled() {
		logutil.Trace("propagate", "op", v.op.Symbol(), "shape", v.payload.Shape(), "inputs", len(v.inputs))
	}

	for i, in := range v.inputs {
		if err := in.accumulate(contributions[i]); err != nil {
			return fmt.Errorf("backward %s: input %d: %w", v.op.Kind(), i, err)
		}
	}
	return nil
}

// ZeroGradGraph resets the gradient of every node reachable from v.
func (v *Value) ZeroGradGraph() {
	for _, n := range v.TopologicalOrder() {
		n.grad.Fill(0)
	}
}
