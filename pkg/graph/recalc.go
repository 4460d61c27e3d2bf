package graph

import (
	"fmt"

	"github.com/chazu/compass/pkg/value"
)

// Invalidate marks id and all its transitive children dirty. Nothing is
// recomputed.
func (g *Graph) Invalidate(id NodeID) error {
	if _, err := g.get(id); err != nil {
		return err
	}
	for _, c := range g.ForwardPath([]NodeID{id}) {
		g.nodes[c.index].dirty = true
	}
	return nil
}

// Recalc recomputes id from the cached values of its parents and clears
// its dirty flag.
func (g *Graph) Recalc(id NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	g.recalc(n)
	return nil
}

func (g *Graph) recalc(n *node) {
	n.dirty = false
	switch n.kind {
	case TypeNode:
		args := make([]value.Value, len(n.parents))
		for i, p := range n.parents {
			args[i] = g.Value(p)
		}
		n.val = n.typ.Eval(args)
	case PropertyNode:
		n.val = g.property(n)
	}
}

// property evaluates a property node. The key is resolved against the
// parent's kind on first use and again whenever that kind changes.
func (g *Graph) property(n *node) value.Value {
	pv := g.Value(n.parents[0])
	if !value.IsValid(pv) {
		return value.Invalid{}
	}
	if n.propIndex < 0 || n.propKind != pv.Kind() {
		idx, err := value.PropertyIndex(pv.Kind(), n.propKey)
		if err != nil {
			g.log.Warn("unresolved property", "key", n.propKey, "kind", pv.Kind(), "err", err)
			n.propIndex = -1
			return value.Invalid{}
		}
		n.propIndex, n.propKind = idx, pv.Kind()
	}
	return value.PropertyValue(pv, n.propIndex)
}

// InvalidateAndRecalc commits an edit: it invalidates the forward path of
// changed and recomputes it in order. It returns the nodes whose value
// changed, in path order; a const node counts as changed when SetValue
// gave it a new value since the last commit.
func (g *Graph) InvalidateAndRecalc(changed []NodeID) ([]NodeID, error) {
	for _, id := range changed {
		if _, err := g.get(id); err != nil {
			return nil, fmt.Errorf("invalidate and recalc: %w", err)
		}
	}
	path := g.ForwardPath(changed)
	for _, id := range path {
		g.nodes[id.index].dirty = true
	}
	var ret []NodeID
	for _, id := range path {
		n := &g.nodes[id.index]
		old := n.val
		g.recalc(n)
		if n.changed || !value.Equal(old, n.val) {
			ret = append(ret, id)
		}
		n.changed = false
	}
	g.log.Debug("recalc pass", "seeds", len(changed), "path", len(path), "changed", len(ret))
	return ret, nil
}
