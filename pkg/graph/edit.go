package graph

import (
	"fmt"
	"slices"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

// MovePoint drags a point to c and commits the edit. A fixed point takes
// c as its new coordinates; a constrained point moves to the parameter of
// its curve closest to c. It returns the nodes whose value changed.
func (g *Graph) MovePoint(id NodeID, c geom.Coordinate) ([]NodeID, error) {
	n, err := g.get(id)
	if err != nil {
		return nil, err
	}
	if n.kind != TypeNode {
		return nil, fmt.Errorf("move %s: %w", id, ErrNotType)
	}
	var seeds []NodeID
	switch n.typ.Name {
	case "FixedPoint":
		x, y := n.parents[0], n.parents[1]
		if err := g.SetValue(x, value.Double(c.X)); err != nil {
			return nil, fmt.Errorf("move %s: %w", id, err)
		}
		if err := g.SetValue(y, value.Double(c.Y)); err != nil {
			return nil, fmt.Errorf("move %s: %w", id, err)
		}
		seeds = []NodeID{x, y}
	case "ConstrainedPoint":
		curve, ok := g.Value(n.parents[1]).(value.Curve)
		if !ok {
			return nil, nil
		}
		param := n.parents[0]
		if err := g.SetValue(param, value.Double(curve.ParamOf(c))); err != nil {
			return nil, fmt.Errorf("move %s: %w", id, err)
		}
		seeds = []NodeID{param}
	default:
		return nil, fmt.Errorf("move %s of type %s: %w", id, n.typ.Name, ErrNotConst)
	}
	return g.InvalidateAndRecalc(seeds)
}

// Redefine gives a type node a new type and parent list, as when a free
// point is attached to a curve. Its children keep reading it. The edit is
// refused when one of the new parents depends on id.
func (g *Graph) Redefine(id NodeID, t *construct.Type, parents []NodeID) ([]NodeID, error) {
	n, err := g.get(id)
	if err != nil {
		return nil, err
	}
	if n.kind != TypeNode {
		return nil, fmt.Errorf("redefine %s: %w", id, ErrNotType)
	}
	if t == nil {
		return nil, fmt.Errorf("redefine %s: %w", id, ErrUnknownType)
	}
	if !t.AcceptsArity(len(parents)) {
		return nil, fmt.Errorf("redefine %s as %s with %d parents: %w", id, t.Name, len(parents), ErrArity)
	}
	if err := g.checkParents(parents); err != nil {
		return nil, fmt.Errorf("redefine %s: %w", id, err)
	}
	if slices.Contains(parents, id) || slices.ContainsFunc(parents, func(p NodeID) bool {
		return g.IsChild(p, []NodeID{id})
	}) {
		return nil, fmt.Errorf("redefine %s: %w", id, ErrCycle)
	}

	// link the new parents before releasing the old ones so that shared
	// parents survive
	old := n.parents
	g.link(id, parents)
	n.typ = t
	n.parents = append([]NodeID(nil), parents...)
	for _, p := range old {
		pn, err := g.get(p)
		if err != nil {
			continue
		}
		pn.children = removeOne(pn.children, id)
		if err := g.Release(p); err != nil {
			return nil, fmt.Errorf("redefine %s: %w", id, err)
		}
	}
	return g.InvalidateAndRecalc([]NodeID{id})
}
