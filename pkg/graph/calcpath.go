package graph

import (
	"slices"

	"github.com/samber/lo"
)

// postOrder walks edges from each seed depth first and returns the nodes
// in post order. Every node is visited once; stale seeds are skipped.
func (g *Graph) postOrder(seeds []NodeID, edges func(*node) []NodeID) []NodeID {
	visited := make(map[NodeID]bool)
	var out []NodeID
	var visit func(id NodeID)
	visit = func(id NodeID) {
		if visited[id] {
			return
		}
		visited[id] = true
		n, err := g.get(id)
		if err != nil {
			return
		}
		for _, e := range edges(n) {
			visit(e)
		}
		out = append(out, id)
	}
	for _, s := range seeds {
		visit(s)
	}
	return out
}

func childEdges(n *node) []NodeID  { return n.children }
func parentEdges(n *node) []NodeID { return n.parents }

// ForwardPath returns the seeds and all their descendants, each exactly
// once, with every node after all of its parents that are on the path.
// A node reachable along several branches sits after its last
// dependency.
func (g *Graph) ForwardPath(seeds []NodeID) []NodeID {
	out := g.postOrder(seeds, childEdges)
	slices.Reverse(out)
	return out
}

// AllChildren returns the transitive children of id, parents first.
func (g *Graph) AllChildren(id NodeID) []NodeID {
	return lo.Without(g.ForwardPath([]NodeID{id}), id)
}

// AllParents returns the transitive parents of id, parents first.
func (g *Graph) AllParents(id NodeID) []NodeID {
	return lo.Without(g.postOrder([]NodeID{id}, parentEdges), id)
}

// IsChild reports whether id is a transitive child of any candidate.
func (g *Graph) IsChild(id NodeID, candidates []NodeID) bool {
	return lo.Some(g.AllParents(id), candidates)
}

// TopoSort returns the live nodes of nodes in topological order, without
// duplicates.
func (g *Graph) TopoSort(nodes []NodeID) []NodeID {
	set := lo.SliceToMap(nodes, func(id NodeID) (NodeID, bool) { return id, true })
	return lo.Filter(g.ForwardPath(nodes), func(id NodeID, _ int) bool { return set[id] })
}

// CalcPath returns, in topological order, the nodes that are a proper
// descendant of some node of from and a proper ancestor of to.
func (g *Graph) CalcPath(from []NodeID, to NodeID) []NodeID {
	ancestors := lo.SliceToMap(g.AllParents(to), func(id NodeID) (NodeID, bool) { return id, true })
	descendants := make(map[NodeID]bool)
	for _, f := range from {
		for _, c := range g.AllChildren(f) {
			descendants[c] = true
		}
	}
	return lo.Filter(g.ForwardPath(from), func(id NodeID, _ int) bool {
		return ancestors[id] && descendants[id]
	})
}

// SideOfTreePath returns the nodes the bounded path from from to to
// reads without lying on it: parents of path nodes, or of to, that are
// neither on the path nor in from. They are listed in the order the path
// first reads them.
func (g *Graph) SideOfTreePath(from []NodeID, to NodeID) []NodeID {
	path := g.CalcPath(from, to)
	skip := lo.SliceToMap(append(append([]NodeID{to}, path...), from...), func(id NodeID) (NodeID, bool) {
		return id, true
	})
	var ret []NodeID
	for _, id := range append(path, to) {
		for _, p := range g.Parents(id) {
			if !skip[p] {
				skip[p] = true
				ret = append(ret, p)
			}
		}
	}
	return ret
}
