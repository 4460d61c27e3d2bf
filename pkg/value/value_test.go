package value

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/compass/pkg/geom"
)

func pt(x, y float64) geom.Coordinate { return geom.Coordinate{X: x, Y: y} }

func seg(ax, ay, bx, by float64) geom.LineData {
	return geom.LineData{A: pt(ax, ay), B: pt(bx, by)}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestKindInherits(t *testing.T) {
	tests := []struct {
		k, base Kind
		want    bool
	}{
		{KindSegment, KindAbstractLine, true},
		{KindRay, KindAbstractLine, true},
		{KindVector, KindAbstractLine, false},
		{KindCircle, KindConic, true},
		{KindConic, KindCircle, false},
		{KindArc, KindCurve, true},
		{KindLocus, KindCurve, true},
		{KindPoint, KindCurve, false},
		{KindPoint, KindAny, true},
		{KindInvalid, KindAny, false},
		{KindDouble, KindDouble, true},
	}
	for _, tt := range tests {
		t.Run(tt.k.String()+"/"+tt.base.String(), func(t *testing.T) {
			if got := tt.k.Inherits(tt.base); got != tt.want {
				t.Errorf("%s.Inherits(%s) = %v, want %v", tt.k, tt.base, got, tt.want)
			}
		})
	}
}

func TestConstructorsRejectNonFinite(t *testing.T) {
	nan := math.NaN()
	cases := map[string]Value{
		"double":     NewDouble(math.Inf(1)),
		"point":      NewPoint(pt(nan, 0)),
		"line":       NewLine(seg(0, 0, 0, 0)),
		"circle":     NewCircle(pt(0, 0), -1),
		"arc":        NewArc(pt(0, 0), 1, 0, 0),
		"polygon":    NewPolygon([]geom.Coordinate{pt(0, 0), pt(1, 0)}),
		"label":      NewTextLabel(pt(nan, nan), "x"),
		"degenerate": NewConic(geom.ConicCartesian{}),
	}
	for name, v := range cases {
		if IsValid(v) {
			t.Errorf("%s: got valid %v, want Invalid", name, v)
		}
	}
}

func TestNewArcNormalizesNegativeSpan(t *testing.T) {
	a, ok := NewArc(pt(0, 0), 1, math.Pi/2, -math.Pi/2).(Arc)
	if !ok {
		t.Fatal("expected an arc")
	}
	if !near(a.Start, 0) || !near(a.Span, math.Pi/2) {
		t.Errorf("arc = start %g span %g, want start 0 span π/2", a.Start, a.Span)
	}
}

func TestEqual(t *testing.T) {
	p1 := NewPolygon([]geom.Coordinate{pt(0, 0), pt(1, 0), pt(0, 1)})
	p2 := NewPolygon([]geom.Coordinate{pt(0, 0), pt(1, 0), pt(0, 1)})
	p3 := NewPolygon([]geom.Coordinate{pt(0, 0), pt(2, 0), pt(0, 1)})
	if !Equal(p1, p2) {
		t.Error("identical polygons should be equal")
	}
	if Equal(p1, p3) {
		t.Error("different polygons should not be equal")
	}
	if Equal(Double(1), Int(1)) {
		t.Error("values of different kinds should not be equal")
	}
	if !Equal(Invalid{}, Invalid{}) {
		t.Error("Invalid should equal Invalid")
	}
}

func TestTransformRules(t *testing.T) {
	rot := geom.Rotation(math.Pi/2, pt(0, 0))
	shear := geom.ScalingOverLine(2, seg(0, 0, 1, 0))
	proj := geom.ProjectiveRotation(0.5, pt(1, 0), pt(0, 0))

	t.Run("point", func(t *testing.T) {
		got := Point{Coord: pt(1, 0)}.Transform(rot).(Point)
		if !got.Coord.Near(pt(0, 1), 1e-9) {
			t.Errorf("rotated point = %v, want (0, 1)", got)
		}
	})
	t.Run("circle stays circle under similarity", func(t *testing.T) {
		got := Circle{Center: pt(1, 0), Radius: 2}.Transform(geom.Scaling(3, pt(0, 0)))
		c, ok := got.(Circle)
		if !ok {
			t.Fatalf("got %s, want circle", got.Kind())
		}
		if !near(c.Radius, 6) || !c.Center.Near(pt(3, 0), 1e-9) {
			t.Errorf("scaled circle = %v", c)
		}
	})
	t.Run("circle becomes conic", func(t *testing.T) {
		got := Circle{Center: pt(0, 0), Radius: 1}.Transform(shear)
		if got.Kind() != KindConic {
			t.Fatalf("got %s, want conic", got.Kind())
		}
		if !got.Contains(pt(0, 2), 1e-9) || !got.Contains(pt(1, 0), 1e-9) {
			t.Error("stretched circle should pass through (0,2) and (1,0)")
		}
	})
	t.Run("arc needs similarity", func(t *testing.T) {
		a := NewArc(pt(0, 0), 1, 0, math.Pi)
		if IsValid(a.Transform(shear)) {
			t.Error("arc under non-homothetic transform should be Invalid")
		}
		got, ok := a.Transform(rot).(Arc)
		if !ok || !near(got.Start, math.Pi/2) || !near(got.Span, math.Pi) {
			t.Errorf("rotated arc = %v", got)
		}
	})
	t.Run("reflected arc keeps its points", func(t *testing.T) {
		a := NewArc(pt(0, 0), 1, 0, math.Pi/2).(Arc)
		got, ok := a.Transform(geom.LineReflection(seg(0, 0, 1, 0))).(Arc)
		if !ok {
			t.Fatal("reflection of an arc should be an arc")
		}
		if !got.Contains(pt(0, -1), 1e-9) || !got.Contains(pt(1, 0), 1e-9) {
			t.Errorf("reflected arc %v should run from (0,-1) to (1,0)", got)
		}
		if got.Contains(pt(0, 1), 1e-9) {
			t.Errorf("reflected arc %v should not contain (0,1)", got)
		}
	})
	t.Run("scalars", func(t *testing.T) {
		if IsValid(Double(1).Transform(rot)) || IsValid(String("x").Transform(rot)) {
			t.Error("scalars should become Invalid")
		}
	})
	t.Run("segment crossing infinity", func(t *testing.T) {
		// the projective rotation sends the line x = cot(0.5) to infinity
		s := Segment{Data: seg(0, 0, 4, 0)}
		if IsValid(s.Transform(proj)) {
			t.Error("segment crossing the vanishing line should be Invalid")
		}
		short := Segment{Data: seg(0, 0, 1, 0)}
		if !IsValid(short.Transform(proj)) {
			t.Error("segment away from the vanishing line should stay valid")
		}
	})
	t.Run("label moves", func(t *testing.T) {
		got := TextLabel{Anchor: pt(1, 0), Text: "A"}.Transform(rot).(TextLabel)
		if got.Text != "A" || !got.Anchor.Near(pt(0, 1), 1e-9) {
			t.Errorf("label = %v", got)
		}
	})
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		p    geom.Coordinate
		want bool
	}{
		{"on segment", Segment{Data: seg(0, 0, 2, 0)}, pt(1, 0), true},
		{"past segment end", Segment{Data: seg(0, 0, 2, 0)}, pt(3, 0), false},
		{"on line past end", Line{Data: seg(0, 0, 2, 0)}, pt(3, 0), true},
		{"behind ray", Ray{Data: seg(0, 0, 2, 0)}, pt(-1, 0), false},
		{"on circle", Circle{Center: pt(0, 0), Radius: 1}, pt(0, 1), true},
		{"inside circle", Circle{Center: pt(0, 0), Radius: 1}, pt(0, 0.5), false},
		{"on arc", NewArc(pt(0, 0), 1, 0, math.Pi), pt(0, 1), true},
		{"off arc span", NewArc(pt(0, 0), 1, 0, math.Pi), pt(0, -1), false},
		{"inside polygon", NewPolygon([]geom.Coordinate{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)}), pt(1, 1), true},
		{"outside polygon", NewPolygon([]geom.Coordinate{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)}), pt(3, 3), false},
		{"double never", Double(1), pt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Contains(tt.p, 1e-6); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestInRect(t *testing.T) {
	r := geom.NewRect(pt(-1, -1), pt(1, 1))
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"point inside", Point{Coord: pt(0, 0)}, true},
		{"point outside", Point{Coord: pt(5, 0)}, false},
		{"line crossing", Line{Data: seg(5, 5, 6, 6)}, true},
		{"segment short of rect", Segment{Data: seg(2, 0, 3, 0)}, false},
		{"ray pointing away", Ray{Data: seg(2, 0, 3, 0)}, false},
		{"ray pointing in", Ray{Data: seg(3, 0, 2, 0)}, true},
		{"circle through rect", Circle{Center: pt(2, 0), Radius: 1.5}, true},
		{"circle around rect", Circle{Center: pt(0, 0), Radius: 10}, false},
		{"arc through rect", NewArc(pt(2, 0), 1.5, math.Pi/2, math.Pi), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.InRect(r, 0); got != tt.want {
				t.Errorf("InRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInRectThinRects(t *testing.T) {
	tri := NewPolygon([]geom.Coordinate{pt(0, 0), pt(4, 0), pt(0, 4)})
	tests := []struct {
		name string
		v    Value
		r    geom.Rect
		want bool
	}{
		{"circle misses corner strip", Circle{Center: pt(0, 0), Radius: 10}, geom.NewRect(pt(5, 9.5), pt(10, 10)), false},
		{"circle crosses strip", Circle{Center: pt(0, 0), Radius: 10}, geom.NewRect(pt(-1, 9.5), pt(10, 10)), true},
		{"circle inside rect", Circle{Center: pt(0, 0), Radius: 1}, geom.NewRect(pt(-5, -5), pt(5, 5)), true},
		{"polygon beside strip", tri, geom.NewRect(pt(2.1, 2.1), pt(2.2, 10)), false},
		{"polygon edge crosses strip", tri, geom.NewRect(pt(-1, 1), pt(10, 1.1)), true},
		{"rect inside polygon", tri, geom.NewRect(pt(0.5, 0.5), pt(1, 1)), true},
		{"polygon inside rect", tri, geom.NewRect(pt(-1, -1), pt(5, 5)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.InRect(tt.r, 0); got != tt.want {
				t.Errorf("InRect(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestCurveParamRoundTrip(t *testing.T) {
	conic := NewConic(geom.ConicCartesian{Coeffs: [6]float64{0.25, 1, 0, 0, 0, -1}})
	curves := map[string]Curve{
		"line":    Line{Data: seg(0, 0, 1, 1)},
		"ray":     Ray{Data: seg(0, 0, 1, 1)},
		"segment": Segment{Data: seg(0, 0, 4, 0)},
		"circle":  Circle{Center: pt(1, 1), Radius: 2},
		"arc":     NewArc(pt(0, 0), 1, 1, 2).(Arc),
		"conic":   conic.(Conic),
	}
	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			for _, p := range []float64{0.1, 0.25, 0.6, 0.9} {
				at, ok := c.PointAt(p)
				if !ok {
					t.Fatalf("PointAt(%g) failed", p)
				}
				if !c.Contains(at, 1e-6) {
					t.Errorf("PointAt(%g) = %v is not on the curve", p, at)
				}
				if got := c.ParamOf(at); !near(got, p) {
					t.Errorf("ParamOf(PointAt(%g)) = %g", p, got)
				}
			}
		})
	}
}

func TestProperties(t *testing.T) {
	s := Segment{Data: seg(0, 0, 4, 0)}
	i, err := PropertyIndex(KindSegment, "length")
	if err != nil {
		t.Fatalf("PropertyIndex: %v", err)
	}
	if got := PropertyValue(s, i); got != Double(4) {
		t.Errorf("length = %v, want 4", got)
	}

	_, err = PropertyIndex(KindSegment, "radius")
	if !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("err = %v, want ErrUnknownProperty", err)
	}

	mid, _ := PropertyIndex(KindSegment, "mid-point")
	if got := PropertyValue(s, mid); got != (Point{Coord: pt(2, 0)}) {
		t.Errorf("mid-point = %v, want (2, 0)", got)
	}
	if got := PropertyValue(Invalid{}, 0); IsValid(got) {
		t.Errorf("property of Invalid = %v, want Invalid", got)
	}
	if got := PropertyValue(s, 99); IsValid(got) {
		t.Errorf("out of range property = %v, want Invalid", got)
	}
}

func TestCircleEquationProperties(t *testing.T) {
	c := Circle{Center: pt(1, -2), Radius: 3}
	eq, _ := PropertyIndex(KindCircle, "cartesian-equation")
	if got, want := PropertyValue(c, eq), String("x² + y² - 2 x + 4 y - 4 = 0"); got != want {
		t.Errorf("cartesian-equation = %q, want %q", got, want)
	}
	simple, _ := PropertyIndex(KindCircle, "simply-cartesian-equation")
	if got, want := PropertyValue(c, simple), String("( x - 1 )² + ( y + 2 )² = 3²"); got != want {
		t.Errorf("simply-cartesian-equation = %q, want %q", got, want)
	}
}

func TestConicProperties(t *testing.T) {
	c := NewConic(geom.ConicCartesian{Coeffs: [6]float64{0.25, 1, 0, 0, 0, -1}})
	typ, _ := PropertyIndex(KindConic, "type")
	if got := PropertyValue(c, typ); got != String("ellipse") {
		t.Errorf("type = %v, want ellipse", got)
	}
	f1, _ := PropertyIndex(KindConic, "first-focus")
	f2, _ := PropertyIndex(KindConic, "second-focus")
	a := PropertyValue(c, f1).(Point).Coord
	b := PropertyValue(c, f2).(Point).Coord
	if !a.Add(b).Near(pt(0, 0), 1e-9) || !near(a.Distance(b), 2*math.Sqrt(3)) {
		t.Errorf("foci = %v, %v, want ±(√3, 0)", a, b)
	}
}

func TestPolygonProperties(t *testing.T) {
	ccw := Polygon{Points: []geom.Coordinate{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)}}
	cw := Polygon{Points: []geom.Coordinate{pt(0, 2), pt(2, 2), pt(2, 0), pt(0, 0)}}
	if got := ccw.Perimeter(); !near(got, 8) {
		t.Errorf("perimeter = %g, want 8", got)
	}
	if got := ccw.SignedArea(); !near(got, 4) {
		t.Errorf("area = %g, want 4", got)
	}
	if got := ccw.Centroid(); !got.Near(pt(1, 1), 1e-9) {
		t.Errorf("centroid = %v, want (1, 1)", got)
	}
	if ccw.Winding() != 1 || cw.Winding() != -1 {
		t.Errorf("winding = %d, %d, want 1, -1", ccw.Winding(), cw.Winding())
	}
	sides, _ := PropertyIndex(KindPolygon, "number-of-sides")
	if got := PropertyValue(ccw, sides); got != Int(4) {
		t.Errorf("number-of-sides = %v, want 4", got)
	}
}

// shiftProgram traces its first input moved one unit to the right.
type shiftProgram struct{}

func (*shiftProgram) NumInputs() int { return 1 }

func (*shiftProgram) Eval(args []Value) Value {
	p, ok := args[0].(Point)
	if !ok {
		return Invalid{}
	}
	return NewPoint(p.Coord.Add(pt(1, 0)))
}

func TestLocus(t *testing.T) {
	prog := &shiftProgram{}
	circle := Circle{Center: pt(0, 0), Radius: 1}
	l, ok := NewLocus(prog, circle, nil).(Locus)
	if !ok {
		t.Fatal("expected a locus")
	}
	at, ok := l.PointAt(0.25)
	if !ok || !at.Near(pt(1, 1), 1e-9) {
		t.Errorf("PointAt(0.25) = %v, want (1, 1)", at)
	}
	if !l.Contains(pt(2, 0), 1e-6) {
		t.Error("locus should contain (2, 0)")
	}
	if l.Contains(pt(1, 0), 1e-3) {
		t.Error("locus should not contain its centre (1, 0)")
	}
	if p := l.ParamOf(pt(1, -1)); math.Abs(p-0.75) > 1e-6 {
		t.Errorf("ParamOf((1,-1)) = %g, want 0.75", p)
	}

	moved := l.Transform(geom.Translation(pt(0, 5))).(Locus)
	if at, _ := moved.PointAt(0); !at.Near(pt(2, 5), 1e-9) {
		t.Errorf("translated PointAt(0) = %v, want (2, 5)", at)
	}
	if Equal(l, moved) {
		t.Error("transformed locus should differ")
	}
	again := NewLocus(prog, circle, nil)
	if !Equal(l, again) {
		t.Error("loci built from the same inputs should be equal")
	}

	if IsValid(NewLocus(prog, circle, []Value{Double(1)})) {
		t.Error("input count mismatch should be Invalid")
	}
}

func TestConicArcThrough(t *testing.T) {
	c, _ := ToConic(Circle{Center: pt(0, 0), Radius: 1})
	arc, ok := ConicArcThrough(c, pt(1, 0), pt(0, 1), pt(-1, 0)).(ConicArc)
	if !ok {
		t.Fatal("expected a conic arc")
	}
	if !arc.Contains(pt(0, 1), 1e-6) || arc.Contains(pt(0, -1), 1e-6) {
		t.Errorf("arc %v should be the upper half", arc)
	}
	lower, _ := ConicArcThrough(c, pt(1, 0), pt(0, -1), pt(-1, 0)).(ConicArc)
	if !lower.Contains(pt(0, -1), 1e-6) || lower.Contains(pt(0, 1), 1e-6) {
		t.Errorf("arc %v should be the lower half", lower)
	}
}
