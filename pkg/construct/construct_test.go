package construct

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

func pt(x, y float64) value.Value { return value.NewPoint(geom.Coordinate{X: x, Y: y}) }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearPoint(t *testing.T, v value.Value, x, y float64) {
	t.Helper()
	p, ok := v.(value.Point)
	if !ok {
		t.Fatalf("got %v, want a point", v)
	}
	if !near(p.Coord.X, x) || !near(p.Coord.Y, y) {
		t.Errorf("got %v, want (%g, %g)", p.Coord, x, y)
	}
}

func eval(t *testing.T, r *Registry, name string, args ...value.Value) value.Value {
	t.Helper()
	typ, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("type %s not registered", name)
	}
	return typ.Eval(args)
}

// ----------------------------------------------------------------------------
// Registry
// ----------------------------------------------------------------------------

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	typ := &Type{Name: "Twice", Result: value.KindDouble, Calc: func([]value.Value) value.Value { return value.Double(1) }}
	if err := r.Register(typ); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := r.Register(typ)
	if !errors.Is(err, ErrDuplicateType) {
		t.Errorf("second Register = %v, want ErrDuplicateType", err)
	}
}

func TestRegisterMalformed(t *testing.T) {
	r := NewRegistry()
	cases := []*Type{
		nil,
		{Name: "NoCalc"},
		{
			Name: "VariadicFirst",
			Args: []Arg{variadic(value.KindPoint, "p"), arg(value.KindPoint, "q")},
			Calc: func([]value.Value) value.Value { return value.Invalid{} },
		},
	}
	for _, c := range cases {
		if err := r.Register(c); !errors.Is(err, ErrBadType) {
			t.Errorf("Register(%v) = %v, want ErrBadType", c, err)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	names := []string{
		"FixedPoint", "ConstrainedPoint", "MidPoint",
		"SegmentAB", "LineAB", "RayAB", "Vector",
		"LineParallelLP", "LinePerpendLP", "LineByVector",
		"CircleBCP", "CircleBTP", "CircleBPR",
		"ConicB5P", "ConicRadical",
		"ArcBTP", "ArcBCPA", "ConicArcBCTP",
		"LineLineIntersection", "ConicLineIntersection", "ConicLineOtherIntersection",
		"CircleCircleIntersection", "CircleCircleOtherIntersection", "ArcLineIntersection",
		"Intersection",
		"Angle", "HalfAngle", "PolygonBNP", "TriangleB3P",
		"Translation", "PointReflection", "LineReflection", "Rotation",
		"ScalingOverCenter", "ScalingOverCenter2", "ScalingOverLine",
		"ProjectiveRotation", "CastShadow", "ApplyTransformation",
		"Locus", "TextLabel",
	}
	for _, n := range names {
		if _, ok := r.Lookup(n); !ok {
			t.Errorf("Lookup(%q) failed", n)
		}
	}
	if got := len(r.Types()); got != len(names) {
		t.Errorf("len(Types()) = %d, want %d", got, len(names))
	}
	if DefaultRegistry() == r {
		t.Error("DefaultRegistry should return a fresh registry")
	}
}

func TestWants(t *testing.T) {
	r := DefaultRegistry()
	line, _ := r.Lookup("LineAB")
	poly, _ := r.Lookup("PolygonBNP")
	tests := []struct {
		name string
		typ  *Type
		args []value.Value
		want Match
	}{
		{"empty selection", line, nil, NotComplete},
		{"one point", line, []value.Value{pt(0, 0)}, NotComplete},
		{"two points", line, []value.Value{pt(0, 0), pt(1, 1)}, Complete},
		{"three points", line, []value.Value{pt(0, 0), pt(1, 1), pt(2, 2)}, NotGood},
		{"wrong kind", line, []value.Value{value.Double(1)}, NotGood},
		{"two vertices", poly, []value.Value{pt(0, 0), pt(1, 0)}, NotComplete},
		{"five vertices", poly, []value.Value{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1), pt(-1, 0)}, Complete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Wants(tt.args); got != tt.want {
				t.Errorf("Wants = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccepting(t *testing.T) {
	r := DefaultRegistry()
	var names []string
	for _, typ := range r.Accepting([]value.Value{pt(0, 0), pt(1, 1)}) {
		names = append(names, typ.Name)
	}
	want := []string{"ArcBTP", "CircleBCP", "LineAB", "MidPoint", "PointReflection", "RayAB", "SegmentAB", "Vector"}
	if len(names) != len(want) {
		t.Fatalf("Accepting = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Accepting[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestArity(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		name     string
		min, max int
	}{
		{"SegmentAB", 2, 2},
		{"ArcBTP", 2, 3},
		{"PolygonBNP", 3, -1},
		{"Intersection", 2, 3},
		{"ProjectiveRotation", 2, 3},
	}
	for _, tt := range tests {
		typ, _ := r.Lookup(tt.name)
		if typ.MinArgs() != tt.min || typ.MaxArgs() != tt.max {
			t.Errorf("%s arity = [%d, %d], want [%d, %d]", tt.name, typ.MinArgs(), typ.MaxArgs(), tt.min, tt.max)
		}
	}
}

// ----------------------------------------------------------------------------
// Eval
// ----------------------------------------------------------------------------

func TestEvalSkipsCalcOnBadArgs(t *testing.T) {
	typ := &Type{
		Name:   "Counter",
		Args:   []Arg{arg(value.KindPoint, "p")},
		Result: value.KindPoint,
		Calc: func([]value.Value) value.Value {
			t.Fatal("Calc called")
			return nil
		},
	}
	cases := [][]value.Value{
		{value.Invalid{}},
		{value.Double(3)},
		{},
		{pt(0, 0), pt(1, 1)},
	}
	for _, args := range cases {
		if got := typ.Eval(args); value.IsValid(got) {
			t.Errorf("Eval(%v) = %v, want invalid", args, got)
		}
	}
}

func TestEvalNilCalcResult(t *testing.T) {
	typ := &Type{Name: "Nil", Calc: func([]value.Value) value.Value { return nil }}
	if got := typ.Eval(nil); got.Kind() != value.KindInvalid {
		t.Errorf("Eval = %v, want invalid", got)
	}
}

func TestSegmentLength(t *testing.T) {
	r := DefaultRegistry()
	seg := eval(t, r, "SegmentAB", pt(0, 0), pt(3, 4))
	if got := lineData(seg).Length(); got != 5 {
		t.Errorf("length = %v, want 5", got)
	}
	if got := eval(t, r, "SegmentAB", pt(1, 1), pt(1, 1)); value.IsValid(got) {
		t.Errorf("zero length segment = %v, want invalid", got)
	}
}

func TestPoints(t *testing.T) {
	r := DefaultRegistry()
	nearPoint(t, eval(t, r, "FixedPoint", value.Double(2), value.Double(-1)), 2, -1)
	nearPoint(t, eval(t, r, "MidPoint", pt(0, 0), pt(4, 2)), 2, 1)

	circle := value.NewCircle(geom.Coordinate{}, 1)
	nearPoint(t, eval(t, r, "ConstrainedPoint", value.Double(0.25), circle), 0, 1)
}

func TestLines(t *testing.T) {
	r := DefaultRegistry()
	base := eval(t, r, "LineAB", pt(0, 0), pt(1, 0))

	par := lineData(eval(t, r, "LineParallelLP", base, pt(0, 2)))
	if !par.IsParallelTo(lineData(base)) || !near(par.A.Y, 2) {
		t.Errorf("parallel = %v", par)
	}
	perp := lineData(eval(t, r, "LinePerpendLP", base, pt(3, 2)))
	if !perp.IsOrthogonalTo(lineData(base)) || !near(perp.A.X, 3) {
		t.Errorf("perpendicular = %v", perp)
	}
	vec := eval(t, r, "Vector", pt(0, 0), pt(1, 1))
	byVec := lineData(eval(t, r, "LineByVector", vec, pt(5, 0)))
	if !geom.IsOnLine(geom.Coordinate{X: 6, Y: 1}, byVec, 1e-9) {
		t.Errorf("line by vector = %v", byVec)
	}
}

func TestCircles(t *testing.T) {
	r := DefaultRegistry()
	c := eval(t, r, "CircleBTP", pt(1, 0), pt(0, 1), pt(-1, 0)).(value.Circle)
	if !near(c.Radius, 1) || !c.Center.Near(geom.Coordinate{}, 1e-9) {
		t.Errorf("CircleBTP = %v", c)
	}
	if got := eval(t, r, "CircleBTP", pt(0, 0), pt(1, 1), pt(2, 2)); value.IsValid(got) {
		t.Errorf("collinear CircleBTP = %v, want invalid", got)
	}
	if got := eval(t, r, "CircleBPR", pt(0, 0), value.Double(-1)); value.IsValid(got) {
		t.Errorf("negative radius = %v, want invalid", got)
	}
}

func TestArcBTP(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		name        string
		a, b, c     value.Value
		start, span float64
	}{
		{"upper half", pt(1, 0), pt(0, 1), pt(-1, 0), 0, math.Pi},
		{"lower half", pt(1, 0), pt(0, -1), pt(-1, 0), math.Pi, math.Pi},
		{"three quarters", pt(0, 1), pt(0, -1), pt(1, 0), math.Pi / 2, 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arc, ok := eval(t, r, "ArcBTP", tt.a, tt.b, tt.c).(value.Arc)
			if !ok {
				t.Fatal("not an arc")
			}
			if !near(arc.Radius, 1) || !near(arc.Start, tt.start) || !near(arc.Span, tt.span) {
				t.Errorf("got %v, want start %v span %v", arc, tt.start, tt.span)
			}
		})
	}
}

func TestArcBTPCollinear(t *testing.T) {
	r := DefaultRegistry()
	got := eval(t, r, "ArcBTP", pt(0, 0), pt(1, 0), pt(2, 0))
	seg, ok := got.(value.Segment)
	if !ok {
		t.Fatalf("got %v, want a segment", got)
	}
	want := geom.LineData{A: geom.Coordinate{}, B: geom.Coordinate{X: 2}}
	if seg.Data != want {
		t.Errorf("segment = %v, want %v", seg.Data, want)
	}

	if got := eval(t, r, "ArcBTP", pt(0, 0), pt(3, 0), pt(2, 0)); value.IsValid(got) {
		t.Errorf("middle point outside = %v, want invalid", got)
	}
}

func TestArcSpanTieBreak(t *testing.T) {
	tests := []struct {
		name                string
		angA, angB, angC    float64
		wantStart, wantSpan float64
	}{
		{"inside", 0, 1, 2, 0, 2},
		{"outside", 0, 3, 2, 2, 2*math.Pi - 2},
		{"on start", 0, 0, 2, 0, 2},
		{"on end", 0, 2, 2, 0, 2},
		{"swapped ends", 2, 1, 0, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, span := arcSpan(tt.angA, tt.angB, tt.angC)
			if !near(start, tt.wantStart) || !near(span, tt.wantSpan) {
				t.Errorf("arcSpan = (%v, %v), want (%v, %v)", start, span, tt.wantStart, tt.wantSpan)
			}
		})
	}
}

func TestArcBTPTwoPoints(t *testing.T) {
	r := DefaultRegistry()
	arc, ok := eval(t, r, "ArcBTP", pt(0, 0), pt(2, 0)).(value.Arc)
	if !ok {
		t.Fatal("not an arc")
	}
	start, _ := arc.PointAt(0)
	mid, _ := arc.PointAt(0.5)
	if start.Distance(geom.Coordinate{}) > 1e-9 {
		t.Errorf("arc starts at %v, want the origin", start)
	}
	if mid.Distance(geom.Coordinate{X: 2}) > 1e-9 {
		t.Errorf("arc middle = %v, want (2, 0)", mid)
	}
	if !near(arc.Span, 2*(math.Atan2(-1.2, 1)-math.Atan2(-1.2, -1))) {
		t.Errorf("span = %v", arc.Span)
	}
}

func TestArcBCPA(t *testing.T) {
	r := DefaultRegistry()
	arc := eval(t, r, "ArcBCPA", pt(0, 0), pt(2, 0), value.Double(-math.Pi/2)).(value.Arc)
	if !near(arc.Radius, 2) || !near(arc.Start, 3*math.Pi/2) || !near(arc.Span, math.Pi/2) {
		t.Errorf("got %v", arc)
	}
}

func TestConicArcBCTP(t *testing.T) {
	r := DefaultRegistry()
	s := math.Sqrt(0.5)
	got := eval(t, r, "ConicArcBCTP", pt(0, 0), pt(1, 0), pt(0, 1), pt(-s, -s))
	arc, ok := got.(value.ConicArc)
	if !ok {
		t.Fatalf("got %v, want a conic arc", got)
	}
	if math.Abs(arc.Span-5*math.Pi/4) > 1e-6 {
		t.Errorf("span = %v, want 5π/4", arc.Span)
	}
}

// ----------------------------------------------------------------------------
// Intersections
// ----------------------------------------------------------------------------

func TestCircleCircleIntersection(t *testing.T) {
	r := DefaultRegistry()
	c1 := value.NewCircle(geom.Coordinate{}, 1)
	c2 := value.NewCircle(geom.Coordinate{X: 1}, 1)
	h := math.Sqrt(0.75)

	up := eval(t, r, "CircleCircleIntersection", c1, c2, value.Int(1))
	down := eval(t, r, "CircleCircleIntersection", c1, c2, value.Int(-1))
	nearPoint(t, up, 0.5, h)
	nearPoint(t, down, 0.5, -h)

	// evaluation is repeatable
	if again := eval(t, r, "CircleCircleIntersection", c1, c2, value.Int(1)); !value.Equal(again, up) {
		t.Errorf("second evaluation = %v, want %v", again, up)
	}
	nearPoint(t, eval(t, r, "CircleCircleOtherIntersection", c1, c2, up), 0.5, -h)

	for _, sel := range []value.Value{value.Int(0), value.Int(2), value.Int(-2), value.Int(7)} {
		if got := eval(t, r, "CircleCircleIntersection", c1, c2, sel); value.IsValid(got) {
			t.Errorf("selector %v = %v, want invalid", sel, got)
		}
	}

	far := value.NewCircle(geom.Coordinate{X: 5}, 1)
	if got := eval(t, r, "CircleCircleIntersection", c1, far, value.Int(1)); value.IsValid(got) {
		t.Errorf("disjoint circles = %v, want invalid", got)
	}
}

func TestIntersectionDispatch(t *testing.T) {
	r := DefaultRegistry()
	unit := value.NewCircle(geom.Coordinate{}, 1)
	xAxis := eval(t, r, "LineAB", pt(-2, 0), pt(2, 0))
	yAxis := eval(t, r, "LineAB", pt(0, -2), pt(0, 2))
	shortSeg := eval(t, r, "SegmentAB", pt(0, 0), pt(0.5, 0))
	farSeg := eval(t, r, "SegmentAB", pt(1, 1), pt(1, 2))
	upper := eval(t, r, "ArcBTP", pt(1, 0), pt(0, 1), pt(-1, 0))

	t.Run("line line", func(t *testing.T) {
		nearPoint(t, eval(t, r, "Intersection", xAxis, yAxis), 0, 0)
	})
	t.Run("segment misses", func(t *testing.T) {
		if got := eval(t, r, "Intersection", xAxis, farSeg); value.IsValid(got) {
			t.Errorf("got %v, want invalid", got)
		}
	})
	t.Run("line circle", func(t *testing.T) {
		nearPoint(t, eval(t, r, "Intersection", xAxis, unit), 1, 0)
		nearPoint(t, eval(t, r, "Intersection", unit, xAxis, value.Int(-1)), -1, 0)
	})
	t.Run("segment inside circle", func(t *testing.T) {
		if got := eval(t, r, "Intersection", unit, shortSeg); value.IsValid(got) {
			t.Errorf("got %v, want invalid", got)
		}
	})
	t.Run("line arc", func(t *testing.T) {
		nearPoint(t, eval(t, r, "Intersection", yAxis, upper), 0, 1)
		if got := eval(t, r, "Intersection", upper, yAxis, value.Int(-1)); value.IsValid(got) {
			t.Errorf("point below the arc = %v, want invalid", got)
		}
	})
	t.Run("selector out of range", func(t *testing.T) {
		tests := []struct {
			name string
			args []value.Value
		}{
			{"Intersection", []value.Value{xAxis, unit, value.Int(0)}},
			{"Intersection", []value.Value{xAxis, unit, value.Int(2)}},
			{"ConicLineIntersection", []value.Value{value.NewConic(geom.CircleConic(geom.Coordinate{}, 1)), xAxis, value.Int(0)}},
			{"ArcLineIntersection", []value.Value{upper, yAxis, value.Int(2)}},
		}
		for _, tt := range tests {
			if got := eval(t, r, tt.name, tt.args...); value.IsValid(got) {
				t.Errorf("%s with selector %v = %v, want invalid", tt.name, tt.args[2], got)
			}
		}
	})
	t.Run("conic conic", func(t *testing.T) {
		k1 := value.NewConic(geom.CircleConic(geom.Coordinate{}, 1))
		k2 := value.NewConic(geom.CircleConic(geom.Coordinate{X: 1}, 1))
		got, ok := eval(t, r, "Intersection", k1, k2).(value.Point)
		if !ok {
			t.Fatal("not a point")
		}
		if math.Abs(got.Coord.Length()-1) > 1e-6 || math.Abs(got.Coord.Distance(geom.Coordinate{X: 1})-1) > 1e-6 {
			t.Errorf("%v is not on both conics", got.Coord)
		}
	})
	t.Run("unsupported kinds", func(t *testing.T) {
		vec := eval(t, r, "Vector", pt(0, 0), pt(1, 1))
		if got := eval(t, r, "Intersection", vec, unit); value.IsValid(got) {
			t.Errorf("got %v, want invalid", got)
		}
	})
}

func TestConicLineOtherIntersection(t *testing.T) {
	r := DefaultRegistry()
	unit := value.NewCircle(geom.Coordinate{}, 1)
	diag := eval(t, r, "LineAB", pt(0, -1), pt(1, 0))
	nearPoint(t, eval(t, r, "ConicLineOtherIntersection", unit, diag, pt(0, -1)), 1, 0)
}

// ----------------------------------------------------------------------------
// Angles and polygons
// ----------------------------------------------------------------------------

func TestAngles(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		name string
		typ  string
		a, c value.Value
		size float64
	}{
		{"right angle", "Angle", pt(1, 0), pt(0, 1), math.Pi / 2},
		{"reflex folds", "Angle", pt(0, 1), pt(1, 0), math.Pi / 2},
		{"half angle keeps direction", "HalfAngle", pt(0, 1), pt(1, 0), 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := eval(t, r, tt.typ, tt.a, pt(0, 0), tt.c).(value.Angle)
			if !near(a.Size, tt.size) {
				t.Errorf("size = %v, want %v", a.Size, tt.size)
			}
		})
	}
	if got := eval(t, r, "Angle", pt(0, 0), pt(0, 0), pt(1, 0)); value.IsValid(got) {
		t.Errorf("degenerate angle = %v, want invalid", got)
	}
}

func TestPolygons(t *testing.T) {
	r := DefaultRegistry()
	sq := eval(t, r, "PolygonBNP", pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)).(value.Polygon)
	if got := sq.SignedArea(); !near(got, 4) {
		t.Errorf("area = %v, want 4", got)
	}
	tri := eval(t, r, "TriangleB3P", pt(0, 0), pt(1, 0), pt(0, 1)).(value.Polygon)
	if len(tri.Points) != 3 {
		t.Errorf("triangle has %d points", len(tri.Points))
	}
}

// ----------------------------------------------------------------------------
// Transformations
// ----------------------------------------------------------------------------

func TestTransforms(t *testing.T) {
	r := DefaultRegistry()
	quarter := eval(t, r, "Angle", pt(1, 0), pt(0, 0), pt(0, 1))
	xAxis := eval(t, r, "LineAB", pt(0, 0), pt(1, 0))

	tests := []struct {
		name string
		typ  string
		args []value.Value
		x, y float64
	}{
		{"translation", "Translation", []value.Value{eval(t, r, "Vector", pt(0, 0), pt(1, 2)), pt(1, 1)}, 2, 3},
		{"point reflection", "PointReflection", []value.Value{pt(1, 1), pt(0, 0)}, 2, 2},
		{"line reflection", "LineReflection", []value.Value{xAxis, pt(3, 2)}, 3, -2},
		{"rotation", "Rotation", []value.Value{pt(0, 0), quarter, pt(1, 0)}, 0, 1},
		{"scaling over center", "ScalingOverCenter", []value.Value{pt(0, 0), eval(t, r, "SegmentAB", pt(0, 0), pt(0, 3)), pt(1, 1)}, 3, 3},
		{"scaling by two points", "ScalingOverCenter2", []value.Value{pt(0, 0), pt(1, 0), pt(3, 0), pt(1, 1)}, 3, 3},
		{"scaling over line", "ScalingOverLine", []value.Value{eval(t, r, "SegmentAB", pt(0, 0), pt(2, 0)), xAxis, pt(5, 1)}, 5, 2},
		{"shadow fixes the horizon", "CastShadow", []value.Value{pt(0, 5), xAxis, pt(4, 0)}, 4, 0},
		{"apply", "ApplyTransformation", []value.Value{value.Transformation{T: geom.Translation(geom.Coordinate{X: -1})}, pt(0, 0)}, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nearPoint(t, eval(t, r, tt.typ, tt.args...), tt.x, tt.y)
		})
	}
}

func TestTransformKeepsKind(t *testing.T) {
	r := DefaultRegistry()
	circle := value.NewCircle(geom.Coordinate{}, 1)
	got := eval(t, r, "PointReflection", pt(2, 0), circle)
	c, ok := got.(value.Circle)
	if !ok || !c.Center.Near(geom.Coordinate{X: 4}, 1e-9) {
		t.Errorf("reflected circle = %v", got)
	}
	if got := eval(t, r, "PointReflection", pt(2, 0), value.Double(1)); value.IsValid(got) {
		t.Errorf("reflected number = %v, want invalid", got)
	}
}

func TestProjectiveRotationDefaultAngle(t *testing.T) {
	r := DefaultRegistry()
	ray := eval(t, r, "RayAB", pt(0, 0), pt(1, 0))
	typ, _ := r.Lookup("ProjectiveRotation")
	if typ.Wants([]value.Value{ray, pt(0, 1)}) != Complete {
		t.Fatal("angle should be optional")
	}
	nearPoint(t, typ.Eval([]value.Value{ray, pt(0, 0)}), math.Tan(defaultProjectiveAngle), 0)

	still := value.NewAngle(geom.Coordinate{}, 0, 0)
	nearPoint(t, typ.Eval([]value.Value{ray, still, pt(3, 4)}), 3, 4)
}

// ----------------------------------------------------------------------------
// Labels
// ----------------------------------------------------------------------------

func TestTextLabel(t *testing.T) {
	r := DefaultRegistry()
	got := eval(t, r, "TextLabel", pt(0, 0), value.String("%1 and %2"), value.Double(1.5), value.Int(2))
	l, ok := got.(value.TextLabel)
	if !ok {
		t.Fatalf("got %v, want a label", got)
	}
	if l.Text != "1.5 and 2" {
		t.Errorf("text = %q, want %q", l.Text, "1.5 and 2")
	}
}

func TestFormatLabelTwoDigits(t *testing.T) {
	args := make([]value.Value, 10)
	for i := range args {
		args[i] = value.Int(i + 1)
	}
	if got := FormatLabel("%10/%1", args); got != "10/1" {
		t.Errorf("FormatLabel = %q, want %q", got, "10/1")
	}
}
