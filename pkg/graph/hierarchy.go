package graph

import (
	"fmt"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/value"
)

// Hierarchy is a compiled slice of the graph: the steps that lead from a
// set of inputs to one result. Evaluating it never touches the graph; all
// intermediate values live in a scratch slice owned by the call, so a
// Hierarchy may be evaluated while others read the graph.
type Hierarchy struct {
	inputs int
	steps  []step
	result int // scratch slot of the result
}

// step computes scratch slot inputs+i from earlier slots.
type step struct {
	kind NodeKind
	typ  *construct.Type
	key  string
	val  value.Value
	args []int
}

var _ value.Program = (*Hierarchy)(nil)

// NumInputs returns the number of input values Eval expects.
func (h *Hierarchy) NumInputs() int { return h.inputs }

// Eval runs the compiled steps on args and returns the result.
func (h *Hierarchy) Eval(args []value.Value) value.Value {
	if len(args) != h.inputs {
		return value.Invalid{}
	}
	scratch := make([]value.Value, h.inputs, h.inputs+len(h.steps))
	copy(scratch, args)
	for _, s := range h.steps {
		in := make([]value.Value, len(s.args))
		for i, a := range s.args {
			in[i] = scratch[a]
		}
		var v value.Value
		switch s.kind {
		case ConstNode:
			v = s.val
		case TypeNode:
			v = s.typ.Eval(in)
		case PropertyNode:
			v = evalProperty(in[0], s.key)
		}
		scratch = append(scratch, v)
	}
	return scratch[h.result]
}

func evalProperty(v value.Value, key string) value.Value {
	if !value.IsValid(v) {
		return value.Invalid{}
	}
	idx, err := value.PropertyIndex(v.Kind(), key)
	if err != nil {
		return value.Invalid{}
	}
	return value.PropertyValue(v, idx)
}

// Compile builds the hierarchy computing to from the inputs. Nodes that
// to reads without going through an input are frozen at their current
// value.
func (g *Graph) Compile(inputs []NodeID, to NodeID) (*Hierarchy, error) {
	if _, err := g.get(to); err != nil {
		return nil, err
	}
	slot := make(map[NodeID]int, len(inputs))
	for i, id := range inputs {
		if _, err := g.get(id); err != nil {
			return nil, fmt.Errorf("compile input %d: %w", i, err)
		}
		slot[id] = i
	}
	h := &Hierarchy{inputs: len(inputs)}
	var visit func(id NodeID) int
	visit = func(id NodeID) int {
		if i, ok := slot[id]; ok {
			return i
		}
		n := &g.nodes[id.index]
		s := step{kind: ConstNode, val: n.val}
		if g.IsChild(id, inputs) {
			s = step{kind: n.kind, typ: n.typ, key: n.propKey}
			for _, p := range n.parents {
				s.args = append(s.args, visit(p))
			}
		}
		slot[id] = len(inputs) + len(h.steps)
		h.steps = append(h.steps, s)
		return slot[id]
	}
	h.result = visit(to)
	return h, nil
}

// Locus adds a node holding the locus traced by traced while the
// constrained point moving runs along its curve. The subgraph between
// the two is compiled into a Hierarchy kept in a const node; the locus
// node reads that, the curve, and the fixed inputs of the subgraph, so it
// is recomputed when any of them changes.
func (g *Graph) Locus(moving, traced NodeID) (NodeID, error) {
	mn, err := g.get(moving)
	if err != nil {
		return NodeID{}, fmt.Errorf("locus: %w", err)
	}
	if mn.kind != TypeNode || mn.typ.Name != "ConstrainedPoint" {
		return NodeID{}, fmt.Errorf("locus of %s: %w", moving, ErrNotConstrained)
	}
	if _, err := g.get(traced); err != nil {
		return NodeID{}, fmt.Errorf("locus: %w", err)
	}
	if !g.IsChild(traced, []NodeID{moving}) {
		return NodeID{}, fmt.Errorf("locus of %s: %s: %w", moving, traced, ErrNotDependent)
	}
	curve := mn.parents[1]

	side := g.SideOfTreePath([]NodeID{moving}, traced)
	h, err := g.Compile(append([]NodeID{moving}, side...), traced)
	if err != nil {
		return NodeID{}, fmt.Errorf("locus: %w", err)
	}
	hn := g.Const(value.Hierarchy{Program: h})
	id, err := g.Construct("Locus", append([]NodeID{hn, curve}, side...))
	if err != nil {
		g.freeNode(hn)
		return NodeID{}, fmt.Errorf("locus: %w", err)
	}
	return id, nil
}
