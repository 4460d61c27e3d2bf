package graph

import (
	"slices"
	"testing"
)

// pathFixture builds a graph with two routes from a to s:
//
//	a ──► m ──► s ──► l
//	│     ▲     ▲
//	│     b     │
//	└───────────┘
type pathFixture struct {
	g             *Graph
	a, b, m, s, l NodeID
}

func newPathFixture(t *testing.T) pathFixture {
	t.Helper()
	g := newGraph()
	f := pathFixture{g: g}
	f.a = fixedPoint(t, g, 0, 0)
	f.b = fixedPoint(t, g, 4, 2)
	f.m = mustConstruct(t, g, "MidPoint", f.a, f.b)
	f.s = mustConstruct(t, g, "SegmentAB", f.a, f.m)
	l, err := g.Property(f.s, "length")
	if err != nil {
		t.Fatalf("Property: %v", err)
	}
	f.l = l
	return f
}

// assertTopological fails if some node of path precedes one of its
// parents that is also on path.
func assertTopological(t *testing.T, g *Graph, path []NodeID) {
	t.Helper()
	seen := make(map[NodeID]bool)
	for i, id := range path {
		if seen[id] {
			t.Errorf("%s appears twice", id)
		}
		seen[id] = true
		for _, p := range g.Parents(id) {
			if j := slices.Index(path, p); j > i {
				t.Errorf("%s at %d precedes its parent %s at %d", id, i, p, j)
			}
		}
	}
}

func sameSet(a, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !slices.Contains(b, id) {
			return false
		}
	}
	return true
}

func TestForwardPath(t *testing.T) {
	f := newPathFixture(t)
	x := f.g.Parents(f.a)[0]

	path := f.g.ForwardPath([]NodeID{x})
	want := []NodeID{x, f.a, f.m, f.s, f.l}
	if !sameSet(path, want) {
		t.Fatalf("ForwardPath = %v, want the nodes %v", path, want)
	}
	assertTopological(t, f.g, path)

	if again := f.g.ForwardPath([]NodeID{x}); !slices.Equal(path, again) {
		t.Errorf("ForwardPath is not deterministic: %v then %v", path, again)
	}

	both := f.g.ForwardPath([]NodeID{f.b, f.a})
	assertTopological(t, f.g, both)
	if !sameSet(both, []NodeID{f.a, f.b, f.m, f.s, f.l}) {
		t.Errorf("ForwardPath of two seeds = %v", both)
	}
}

func TestAllParentsAndChildren(t *testing.T) {
	f := newPathFixture(t)

	children := f.g.AllChildren(f.a)
	if !sameSet(children, []NodeID{f.m, f.s, f.l}) {
		t.Errorf("AllChildren(a) = %v", children)
	}
	if got := f.g.AllChildren(f.l); len(got) != 0 {
		t.Errorf("AllChildren(l) = %v, want none", got)
	}

	parents := f.g.AllParents(f.l)
	want := append([]NodeID{f.s, f.a, f.b, f.m}, f.g.Parents(f.a)...)
	want = append(want, f.g.Parents(f.b)...)
	if !sameSet(parents, want) {
		t.Errorf("AllParents(l) = %v, want the nodes %v", parents, want)
	}
}

func TestIsChild(t *testing.T) {
	f := newPathFixture(t)
	tests := []struct {
		name       string
		id         NodeID
		candidates []NodeID
		want       bool
	}{
		{"direct child", f.m, []NodeID{f.a}, true},
		{"transitive child", f.l, []NodeID{f.b}, true},
		{"ancestor", f.a, []NodeID{f.l}, false},
		{"itself", f.a, []NodeID{f.a}, false},
		{"unrelated", f.b, []NodeID{f.a}, false},
		{"any of several", f.s, []NodeID{f.l, f.b}, true},
		{"no candidates", f.s, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.g.IsChild(tt.id, tt.candidates); got != tt.want {
				t.Errorf("IsChild = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopoSort(t *testing.T) {
	f := newPathFixture(t)
	got := f.g.TopoSort([]NodeID{f.l, f.a, f.m, f.a})
	want := []NodeID{f.a, f.m, f.l}
	if !slices.Equal(got, want) {
		t.Errorf("TopoSort = %v, want %v", got, want)
	}
}

func TestCalcPath(t *testing.T) {
	f := newPathFixture(t)
	tests := []struct {
		name string
		from []NodeID
		to   NodeID
		want []NodeID
	}{
		{"both branches", []NodeID{f.a}, f.l, []NodeID{f.m, f.s}},
		{"single branch", []NodeID{f.b}, f.s, []NodeID{f.m}},
		{"direct child", []NodeID{f.a}, f.m, nil},
		{"unrelated", []NodeID{f.l}, f.a, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.g.CalcPath(tt.from, tt.to)
			if !slices.Equal(got, tt.want) {
				t.Errorf("CalcPath = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSideOfTreePath(t *testing.T) {
	f := newPathFixture(t)

	if got, want := f.g.SideOfTreePath([]NodeID{f.a}, f.l), []NodeID{f.b}; !slices.Equal(got, want) {
		t.Errorf("SideOfTreePath(a, l) = %v, want %v", got, want)
	}
	if got, want := f.g.SideOfTreePath([]NodeID{f.b}, f.s), []NodeID{f.a}; !slices.Equal(got, want) {
		t.Errorf("SideOfTreePath(b, s) = %v, want %v", got, want)
	}
	if got := f.g.SideOfTreePath([]NodeID{f.a, f.b}, f.l); len(got) != 0 {
		t.Errorf("SideOfTreePath(a b, l) = %v, want none", got)
	}
}
