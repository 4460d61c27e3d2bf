package engine

import (
	"fmt"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/filters"
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/value"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Script values
// ---------------------------------------------------------------------------

// sexpNode carries a graph node between builtins.
type sexpNode struct {
	id   graph.NodeID
	kind value.Kind
}

func (n *sexpNode) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(node %s %s)", n.kind, n.id)
}
func (n *sexpNode) Type() *zygo.RegisteredType { return nil }

// toFloat64 extracts a number.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		if _, kw := isKW(s); !kw {
			return str.S, nil
		}
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

func toNode(s zygo.Sexp) (graph.NodeID, error) {
	if n, ok := s.(*sexpNode); ok {
		return n.id, nil
	}
	return graph.NodeID{}, fmt.Errorf("expected object, got %s", s.SexpString(nil))
}

// sexpListToSlice converts a list or array to a slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, bool) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		items, err := zygo.ListToArray(v)
		return items, err == nil
	case *zygo.SexpArray:
		return v.Val, true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Scene
// ---------------------------------------------------------------------------

// scene is the document a script builds.
type scene struct {
	doc *document.Document
	g   *graph.Graph
	b   *filters.Build
}

func newScene(doc *document.Document) *scene {
	g := doc.Graph()
	return &scene{doc: doc, g: g, b: &filters.Build{Format: "script", Doc: doc, G: g}}
}

// hold gives a fresh node a holder and returns it to the script.
func (s *scene) hold(id graph.NodeID, err error) (zygo.Sexp, error) {
	if err != nil {
		return zygo.SexpNull, err
	}
	if _, err := s.doc.Add(id, document.DefaultStyle()); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpNode{id: id, kind: s.g.Kind(id)}, nil
}

func (s *scene) holder(arg zygo.Sexp) (*document.Holder, error) {
	id, err := toNode(arg)
	if err != nil {
		return nil, err
	}
	h, ok := s.doc.HolderOf(id)
	if !ok {
		return nil, fmt.Errorf("%s has no holder", id)
	}
	return h, nil
}

// slotKind is the kind of argument i of t.
func slotKind(t *construct.Type, i int) value.Kind {
	n := len(t.Args)
	switch {
	case i < n:
		return t.Args[i].Kind
	case n > 0 && t.Args[n-1].Variadic:
		return t.Args[n-1].Kind
	}
	return value.KindInvalid
}

// operands turns script arguments into parents of t. Numbers become
// Double consts, or Int consts in a slot that takes an Int. Lists are
// spliced in place.
func (s *scene) operands(t *construct.Type, args []zygo.Sexp) ([]graph.NodeID, error) {
	var parents []graph.NodeID
	for _, a := range args {
		if items, ok := sexpListToSlice(a); ok {
			more, err := s.operands(t, items)
			if err != nil {
				return nil, err
			}
			parents = append(parents, more...)
			continue
		}
		switch v := a.(type) {
		case *sexpNode:
			parents = append(parents, v.id)
		case *zygo.SexpInt:
			if slotKind(t, len(parents)) == value.KindInt {
				parents = append(parents, s.g.Const(value.Int(v.Val)))
			} else {
				parents = append(parents, s.g.Const(value.Double(v.Val)))
			}
		case *zygo.SexpFloat:
			parents = append(parents, s.g.Const(value.Double(v.Val)))
		case *zygo.SexpStr:
			str, err := toString(v)
			if err != nil {
				return nil, err
			}
			parents = append(parents, s.g.Const(value.String(str)))
		default:
			return nil, fmt.Errorf("argument %d: unexpected %s", len(parents)+1, a.SexpString(nil))
		}
	}
	return parents, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the construction builtins into env. Source
// must go through preprocessSource first so that keywords are
// recognised.
func registerBuiltins(env *zygo.Zlisp, s *scene) {

	// (point 1 2)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point requires x and y, got %d arguments", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		return s.hold(s.b.FixedPoint(geom.Coordinate{X: x, Y: y}))
	})

	// (constrained circle 0.25)
	env.AddFunction("constrained", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("constrained requires a curve and a parameter")
		}
		curve, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("constrained: curve: %w", err)
		}
		p, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("constrained: parameter: %w", err)
		}
		return s.hold(s.b.ConstrainedPoint(curve, p))
	})

	// (construct "CircleBCP" center through)
	env.AddFunction("construct", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("construct requires a type name")
		}
		typeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("construct: type: %w", err)
		}
		t, ok := s.g.Registry().Lookup(typeName)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("construct: %w: %q", graph.ErrUnknownType, typeName)
		}
		parents, err := s.operands(t, args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("construct %s: %w", typeName, err)
		}
		id, err := s.g.ConstructType(t, parents)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("construct %s: %w", typeName, err)
		}
		return s.hold(id, nil)
	})

	// (property segment "length")
	env.AddFunction("property", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("property requires an object and a name")
		}
		obj, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("property: %w", err)
		}
		key, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("property: name: %w", err)
		}
		id, err := s.g.Property(obj, key)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("property: %w", err)
		}
		return s.hold(id, nil)
	})

	// (intersect c1 c2 :side 1)
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires two objects")
		}
		a, err := toNode(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		c, err := toNode(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		side := -1
		if v, ok := pa.kw["side"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect: side: %w", err)
			}
			if f != 1 && f != -1 {
				return zygo.SexpNull, fmt.Errorf("intersect: side must be 1 or -1, got %v", f)
			}
			side = int(f)
		}
		id, err := s.b.Intersection(a, c, side)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		return s.hold(id, nil)
	})

	// (locus moving traced)
	env.AddFunction("locus", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("locus requires a moving and a traced point")
		}
		moving, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("locus: moving: %w", err)
		}
		traced, err := toNode(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("locus: traced: %w", err)
		}
		id, err := s.g.Locus(moving, traced)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("locus: %w", err)
		}
		return s.hold(id, nil)
	})

	// (name a "A")
	env.AddFunction("name", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("name requires an object and a name")
		}
		h, err := s.holder(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("name: %w", err)
		}
		label, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("name: %w", err)
		}
		if err := s.doc.SetName(h, label); err != nil {
			return zygo.SexpNull, fmt.Errorf("name: %w", err)
		}
		return args[0], nil
	})

	// (hide a)
	env.AddFunction("hide", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("hide requires one object")
		}
		h, err := s.holder(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("hide: %w", err)
		}
		h.Style = h.Style.Hidden()
		return args[0], nil
	})

	// (value length)
	env.AddFunction("value", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("value requires one object")
		}
		id, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("value: %w", err)
		}
		switch v := s.g.Value(id).(type) {
		case value.Double:
			return &zygo.SexpFloat{Val: float64(v)}, nil
		case value.Int:
			return &zygo.SexpInt{Val: int64(v)}, nil
		case value.Invalid:
			return zygo.SexpNull, nil
		default:
			return zygo.SexpNull, fmt.Errorf("value: %s is not a number", v.Kind())
		}
	})

	// (drag a 3 4)
	env.AddFunction("drag", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("drag requires an object, x and y")
		}
		h, err := s.holder(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: %w", err)
		}
		x, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: x: %w", err)
		}
		y, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: y: %w", err)
		}
		if _, err := s.doc.Move(h, geom.Coordinate{X: x, Y: y}); err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: %w", err)
		}
		return args[0], nil
	})
}
