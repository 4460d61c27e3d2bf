package graph

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/value"
)

var (
	ErrUnknownType    = errors.New("unknown construction type")
	ErrArity          = errors.New("wrong number of parents")
	ErrStaleNode      = errors.New("stale or unknown node")
	ErrNotConst       = errors.New("node is not a const node")
	ErrNotType        = errors.New("node is not a type node")
	ErrNotConstrained = errors.New("node is not a constrained point")
	ErrNotDependent   = errors.New("node does not depend on the moving point")
	ErrCycle          = errors.New("edit would create a cycle")
)

// Graph is an arena of nodes plus the registry their types come from.
type Graph struct {
	reg   *construct.Registry
	nodes []node
	free  []uint32
	live  int
	log   *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger recalc passes report to.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns an empty graph whose Construct calls resolve type names
// through reg.
func New(reg *construct.Registry, opts ...Option) *Graph {
	g := &Graph{reg: reg, log: slog.Default()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Registry returns the registry the graph resolves type names with.
func (g *Graph) Registry() *construct.Registry { return g.reg }

// ----------------------------------------------------------------------------
// Arena
// ----------------------------------------------------------------------------

func (g *Graph) get(id NodeID) (*node, error) {
	if id.IsZero() || int(id.index) >= len(g.nodes) {
		return nil, fmt.Errorf("%s: %w", id, ErrStaleNode)
	}
	n := &g.nodes[id.index]
	if !n.live || n.gen != id.gen {
		return nil, fmt.Errorf("%s: %w", id, ErrStaleNode)
	}
	return n, nil
}

func (g *Graph) alloc(n node) NodeID {
	n.live = true
	g.live++
	if k := len(g.free); k > 0 {
		idx := g.free[k-1]
		g.free = g.free[:k-1]
		n.gen = g.nodes[idx].gen + 1
		g.nodes[idx] = n
		return NodeID{index: idx, gen: n.gen}
	}
	n.gen = 1
	g.nodes = append(g.nodes, n)
	return NodeID{index: uint32(len(g.nodes) - 1), gen: 1}
}

// checkParents resolves every parent handle.
func (g *Graph) checkParents(parents []NodeID) error {
	for i, p := range parents {
		if _, err := g.get(p); err != nil {
			return fmt.Errorf("parent %d: %w", i, err)
		}
	}
	return nil
}

func (g *Graph) link(id NodeID, parents []NodeID) {
	for _, p := range parents {
		pn := &g.nodes[p.index]
		pn.children = append(pn.children, id)
		pn.refs++
	}
}

// ----------------------------------------------------------------------------
// Construction
// ----------------------------------------------------------------------------

// Const adds a node owning v. A nil v is stored as Invalid.
func (g *Graph) Const(v value.Value) NodeID {
	if v == nil {
		v = value.Invalid{}
	}
	return g.alloc(node{kind: ConstNode, val: v, propIndex: -1})
}

// Construct adds a node computing the registered type name from parents.
// The node's value is computed before Construct returns.
func (g *Graph) Construct(name string, parents []NodeID) (NodeID, error) {
	t, ok := g.reg.Lookup(name)
	if !ok {
		return NodeID{}, fmt.Errorf("construct %q: %w", name, ErrUnknownType)
	}
	return g.ConstructType(t, parents)
}

// ConstructType is Construct for an already resolved type.
func (g *Graph) ConstructType(t *construct.Type, parents []NodeID) (NodeID, error) {
	if t == nil {
		return NodeID{}, fmt.Errorf("construct: %w", ErrUnknownType)
	}
	if !t.AcceptsArity(len(parents)) {
		return NodeID{}, fmt.Errorf("construct %s with %d parents: %w", t.Name, len(parents), ErrArity)
	}
	if err := g.checkParents(parents); err != nil {
		return NodeID{}, fmt.Errorf("construct %s: %w", t.Name, err)
	}
	id := g.alloc(node{
		kind:      TypeNode,
		typ:       t,
		parents:   append([]NodeID(nil), parents...),
		propIndex: -1,
	})
	g.link(id, parents)
	g.recalc(&g.nodes[id.index])
	return id, nil
}

// Property adds a node reading the property key of parent. When the
// parent currently holds a valid value the key is checked against its
// kind. An invalid type node is checked against its declared result kind.
// Otherwise resolution waits for the first valid recalc.
func (g *Graph) Property(parent NodeID, key string) (NodeID, error) {
	pn, err := g.get(parent)
	if err != nil {
		return NodeID{}, fmt.Errorf("property %q: %w", key, err)
	}
	switch {
	case value.IsValid(pn.val):
		if _, err := value.PropertyIndex(pn.val.Kind(), key); err != nil {
			return NodeID{}, err
		}
	case pn.kind == TypeNode && !resultHasProperty(pn.typ.Result, key):
		_, err := value.PropertyIndex(pn.typ.Result, key)
		return NodeID{}, fmt.Errorf("%s: %w", pn.typ.Name, err)
	}
	id := g.alloc(node{
		kind:      PropertyNode,
		parents:   []NodeID{parent},
		propKey:   key,
		propIndex: -1,
	})
	g.link(id, []NodeID{parent})
	g.recalc(&g.nodes[id.index])
	return id, nil
}

// resultHasProperty reports whether a value of kind res, or of a kind
// inheriting it, has the property key. Abstract kinds accept every key.
func resultHasProperty(res value.Kind, key string) bool {
	if res.Abstract() {
		return true
	}
	for k := value.KindDouble; k < value.KindAbstractLine; k++ {
		if !k.Inherits(res) {
			continue
		}
		if _, err := value.PropertyIndex(k, key); err == nil {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Accessors
// ----------------------------------------------------------------------------

// Value returns the cached value of id, or Invalid for a stale handle.
func (g *Graph) Value(id NodeID) value.Value {
	n, err := g.get(id)
	if err != nil {
		return value.Invalid{}
	}
	return n.val
}

// Kind returns the kind of the cached value of id.
func (g *Graph) Kind(id NodeID) value.Kind {
	return g.Value(id).Kind()
}

// Type returns the construction type of a type node, or nil.
func (g *Graph) Type(id NodeID) *construct.Type {
	n, err := g.get(id)
	if err != nil {
		return nil
	}
	return n.typ
}

// NodeKind returns the kind of node id is.
func (g *Graph) NodeKind(id NodeID) (NodeKind, error) {
	n, err := g.get(id)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// PropertyKey returns the key a property node reads.
func (g *Graph) PropertyKey(id NodeID) string {
	n, err := g.get(id)
	if err != nil {
		return ""
	}
	return n.propKey
}

// Parents returns a copy of id's parent list.
func (g *Graph) Parents(id NodeID) []NodeID {
	n, err := g.get(id)
	if err != nil {
		return nil
	}
	return append([]NodeID(nil), n.parents...)
}

// Children returns a copy of id's child list. A child that uses id twice
// appears twice.
func (g *Graph) Children(id NodeID) []NodeID {
	n, err := g.get(id)
	if err != nil {
		return nil
	}
	return append([]NodeID(nil), n.children...)
}

// Dirty reports whether id was invalidated and not recomputed since.
func (g *Graph) Dirty(id NodeID) bool {
	n, err := g.get(id)
	return err == nil && n.dirty
}

// Live reports whether id refers to a node.
func (g *Graph) Live(id NodeID) bool {
	_, err := g.get(id)
	return err == nil
}

// Nodes returns every live node in slot order.
func (g *Graph) Nodes() []NodeID {
	ret := make([]NodeID, 0, g.live)
	for i := range g.nodes {
		if g.nodes[i].live {
			ret = append(ret, NodeID{index: uint32(i), gen: g.nodes[i].gen})
		}
	}
	return ret
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.live }

// SetValue replaces the value of a const node. Dependent nodes are not
// touched until the next InvalidateAndRecalc.
func (g *Graph) SetValue(id NodeID, v value.Value) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	if n.kind != ConstNode {
		return fmt.Errorf("set value of %s: %w", id, ErrNotConst)
	}
	if v == nil {
		v = value.Invalid{}
	}
	if !value.Equal(n.val, v) {
		n.val = v
		n.changed = true
	}
	return nil
}

// ----------------------------------------------------------------------------
// Lifetime
// ----------------------------------------------------------------------------

// AddRoot adds a reference to id on behalf of the document.
func (g *Graph) AddRoot(id NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.refs++
	return nil
}

// Release drops one reference to id and frees it when none are left.
func (g *Graph) Release(id NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	if n.refs > 0 {
		n.refs--
	}
	if n.refs == 0 {
		g.freeNode(id)
	}
	return nil
}

// Collect frees every node nobody references and returns how many nodes
// were freed, counting parents freed in turn.
func (g *Graph) Collect() int {
	before := g.live
	for _, id := range g.Nodes() {
		if n, err := g.get(id); err == nil && n.refs == 0 {
			g.freeNode(id)
		}
	}
	return before - g.live
}

// freeNode frees id and releases its parents. A node with children always
// has references, so id has none.
func (g *Graph) freeNode(id NodeID) {
	n := &g.nodes[id.index]
	parents := n.parents
	*n = node{gen: n.gen}
	g.free = append(g.free, id.index)
	g.live--
	for _, p := range parents {
		pn, err := g.get(p)
		if err != nil {
			continue
		}
		pn.children = removeOne(pn.children, id)
		if err := g.Release(p); err != nil {
			g.log.Warn("release parent", "node", p, "err", err)
		}
	}
}

func removeOne(ids []NodeID, id NodeID) []NodeID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
