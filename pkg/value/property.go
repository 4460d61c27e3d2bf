package value

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chazu/compass/pkg/geom"
)

// ErrUnknownProperty is returned when a kind has no property with the
// requested key.
var ErrUnknownProperty = errors.New("unknown property")

// Property is one entry of a kind's capability table.
type Property struct {
	Key  string
	Kind Kind // kind of the result
	Eval func(Value) Value
}

// Properties returns the capability table of k. Indices into the table are
// stable.
func Properties(k Kind) []Property {
	return propertyTable[k]
}

// PropertyIndex resolves a property key for kind k.
func PropertyIndex(k Kind, key string) (int, error) {
	for i, p := range propertyTable[k] {
		if p.Key == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %q for %s", ErrUnknownProperty, key, k)
}

// PropertyValue evaluates property index i of v. An index that is out of
// range for v's kind yields Invalid.
func PropertyValue(v Value, i int) Value {
	if !IsValid(v) {
		return Invalid{}
	}
	table := propertyTable[v.Kind()]
	if i < 0 || i >= len(table) {
		return Invalid{}
	}
	return table[i].Eval(v)
}

var propertyTable = map[Kind][]Property{
	KindPoint: {
		{"coordinate", KindPoint, func(v Value) Value { return v.(Point) }},
		{"coordinate-x", KindDouble, func(v Value) Value { return NewDouble(v.(Point).Coord.X) }},
		{"coordinate-y", KindDouble, func(v Value) Value { return NewDouble(v.(Point).Coord.Y) }},
	},
	KindSegment: {
		{"length", KindDouble, func(v Value) Value { return NewDouble(v.(Segment).Data.Length()) }},
		{"mid-point", KindPoint, func(v Value) Value { return midPoint(v.(Segment).Data) }},
		{"slope", KindDouble, func(v Value) Value { return NewDouble(v.(Segment).Data.Slope()) }},
		{"equation", KindString, func(v Value) Value { return lineEquation(v.(Segment).Data) }},
		{"support", KindLine, func(v Value) Value { return NewLine(v.(Segment).Data) }},
		{"end-point-A", KindPoint, func(v Value) Value { return NewPoint(v.(Segment).Data.A) }},
		{"end-point-B", KindPoint, func(v Value) Value { return NewPoint(v.(Segment).Data.B) }},
	},
	KindLine: {
		{"slope", KindDouble, func(v Value) Value { return NewDouble(v.(Line).Data.Slope()) }},
		{"equation", KindString, func(v Value) Value { return lineEquation(v.(Line).Data) }},
	},
	KindRay: {
		{"slope", KindDouble, func(v Value) Value { return NewDouble(v.(Ray).Data.Slope()) }},
		{"equation", KindString, func(v Value) Value { return lineEquation(v.(Ray).Data) }},
		{"support", KindLine, func(v Value) Value { return NewLine(v.(Ray).Data) }},
		{"end-point-A", KindPoint, func(v Value) Value { return NewPoint(v.(Ray).Data.A) }},
	},
	KindVector: {
		{"length", KindDouble, func(v Value) Value { return NewDouble(v.(Vector).Data.Length()) }},
		{"length-x", KindDouble, func(v Value) Value { return NewDouble(v.(Vector).Data.Dir().X) }},
		{"length-y", KindDouble, func(v Value) Value { return NewDouble(v.(Vector).Data.Dir().Y) }},
		{"mid-point", KindPoint, func(v Value) Value { return midPoint(v.(Vector).Data) }},
		{"vect-opposite", KindVector, func(v Value) Value {
			d := v.(Vector).Data
			return NewVector(geom.LineData{A: d.A, B: d.A.Sub(d.Dir())})
		}},
		{"end-point-A", KindPoint, func(v Value) Value { return NewPoint(v.(Vector).Data.A) }},
		{"end-point-B", KindPoint, func(v Value) Value { return NewPoint(v.(Vector).Data.B) }},
	},
	KindCircle: {
		{"surface", KindDouble, func(v Value) Value { r := v.(Circle).Radius; return NewDouble(math.Pi * r * r) }},
		{"circumference", KindDouble, func(v Value) Value { return NewDouble(2 * math.Pi * v.(Circle).Radius) }},
		{"radius", KindDouble, func(v Value) Value { return NewDouble(v.(Circle).Radius) }},
		{"center", KindPoint, func(v Value) Value { return NewPoint(v.(Circle).Center) }},
		{"cartesian-equation", KindString, func(v Value) Value {
			c := v.(Circle)
			return String(conicEquation(geom.CircleConic(c.Center, c.Radius)))
		}},
		{"simply-cartesian-equation", KindString, func(v Value) Value {
			c := v.(Circle)
			return String(fmt.Sprintf("( x %s )² + ( y %s )² = %s²",
				signedTerm(-c.Center.X), signedTerm(-c.Center.Y), formatNumber(c.Radius)))
		}},
	},
	KindConic: {
		{"type", KindString, func(v Value) Value { return String(conicType(v.(Conic))) }},
		{"center", KindPoint, func(v Value) Value {
			c, ok := v.(Conic).Cartesian.Center()
			if !ok {
				return Invalid{}
			}
			return NewPoint(c)
		}},
		{"first-focus", KindPoint, func(v Value) Value { return NewPoint(v.(Conic).Polar.Focus1) }},
		{"second-focus", KindPoint, func(v Value) Value { return secondFocus(v.(Conic)) }},
		{"cartesian-equation", KindString, func(v Value) Value { return String(conicEquation(v.(Conic).Cartesian)) }},
	},
	KindArc: {
		{"center", KindPoint, func(v Value) Value { return NewPoint(v.(Arc).Center) }},
		{"radius", KindDouble, func(v Value) Value { return NewDouble(v.(Arc).Radius) }},
		{"angle-radian", KindDouble, func(v Value) Value { return NewDouble(v.(Arc).Span) }},
		{"angle-degrees", KindDouble, func(v Value) Value { return NewDouble(v.(Arc).Span * 180 / math.Pi) }},
		{"arc-length", KindDouble, func(v Value) Value { a := v.(Arc); return NewDouble(a.Radius * a.Span) }},
		{"sector-surface", KindDouble, func(v Value) Value { a := v.(Arc); return NewDouble(a.Radius * a.Radius * a.Span / 2) }},
		{"support", KindCircle, func(v Value) Value { a := v.(Arc); return NewCircle(a.Center, a.Radius) }},
		{"end-point-A", KindPoint, func(v Value) Value { return curveEnd(v.(Arc), 0) }},
		{"end-point-B", KindPoint, func(v Value) Value { return curveEnd(v.(Arc), 1) }},
	},
	KindConicArc: {
		{"support", KindConic, func(v Value) Value { return v.(ConicArc).Conic }},
		{"end-point-A", KindPoint, func(v Value) Value { return curveEnd(v.(ConicArc), 0) }},
		{"end-point-B", KindPoint, func(v Value) Value { return curveEnd(v.(ConicArc), 1) }},
	},
	KindAngle: {
		{"angle-radian", KindDouble, func(v Value) Value { return NewDouble(v.(Angle).Size) }},
		{"angle-degrees", KindDouble, func(v Value) Value { return NewDouble(v.(Angle).Size * 180 / math.Pi) }},
		{"angle-bisector", KindRay, func(v Value) Value {
			a := v.(Angle)
			return NewRay(geom.LineData{A: a.Vertex, B: a.Vertex.Add(geom.Polar(1, a.Start+a.Size/2))})
		}},
	},
	KindPolygon: {
		{"number-of-sides", KindInt, func(v Value) Value { return Int(len(v.(Polygon).Points)) }},
		{"perimeter", KindDouble, func(v Value) Value { return NewDouble(v.(Polygon).Perimeter()) }},
		{"surface", KindDouble, func(v Value) Value { return NewDouble(math.Abs(v.(Polygon).SignedArea())) }},
		{"centroid", KindPoint, func(v Value) Value { return NewPoint(v.(Polygon).Centroid()) }},
		{"winding", KindInt, func(v Value) Value { return Int(v.(Polygon).Winding()) }},
	},
	KindTextLabel: {
		{"text", KindString, func(v Value) Value { return String(v.(TextLabel).Text) }},
	},
	KindDouble: {
		{"value", KindDouble, func(v Value) Value { return v }},
	},
	KindInt: {
		{"value", KindInt, func(v Value) Value { return v }},
	},
}

func midPoint(l geom.LineData) Value {
	return NewPoint(geom.Lerp(l.A, l.B, 0.5))
}

func curveEnd(c Curve, p float64) Value {
	pt, ok := c.PointAt(p)
	if !ok {
		return Invalid{}
	}
	return NewPoint(pt)
}

func secondFocus(c Conic) Value {
	center, ok := c.Cartesian.Center()
	if !ok {
		// parabolas have their second focus at infinity
		return Invalid{}
	}
	return NewPoint(center.Scale(2).Sub(c.Polar.Focus1))
}

func conicType(c Conic) string {
	e := c.Polar.Eccentricity()
	switch {
	case math.Abs(e-1) < 1e-8:
		return "parabola"
	case e < 1:
		return "ellipse"
	default:
		return "hyperbola"
	}
}

func signedTerm(f float64) string {
	if f < 0 {
		return "- " + formatNumber(-f)
	}
	return "+ " + formatNumber(f)
}

// polynomial renders the non-zero terms of sum(coeffs[i]·names[i]) = 0.
func polynomial(coeffs []float64, names []string) string {
	var b strings.Builder
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		if b.Len() == 0 {
			if c < 0 {
				b.WriteString("-")
			}
		} else if c < 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		abs := math.Abs(c)
		switch {
		case names[i] == "":
			b.WriteString(formatNumber(abs))
		case abs != 1:
			b.WriteString(formatNumber(abs) + " " + names[i])
		default:
			b.WriteString(names[i])
		}
	}
	if b.Len() == 0 {
		b.WriteString("0")
	}
	b.WriteString(" = 0")
	return b.String()
}

func lineEquation(l geom.LineData) Value {
	a, b, c := l.Equation()
	return String(polynomial([]float64{a, b, c}, []string{"x", "y", ""}))
}

func conicEquation(c geom.ConicCartesian) string {
	return polynomial(c.Coeffs[:], []string{"x²", "y²", "xy", "x", "y", ""})
}

// Perimeter returns the length of the closed boundary.
func (p Polygon) Perimeter() float64 {
	var sum float64
	for i, c := range p.Points {
		sum += c.Distance(p.Points[(i+1)%len(p.Points)])
	}
	return sum
}

// SignedArea is positive for counter-clockwise polygons.
func (p Polygon) SignedArea() float64 {
	var sum float64
	for i, c := range p.Points {
		sum += c.Cross(p.Points[(i+1)%len(p.Points)])
	}
	return sum / 2
}

// Centroid returns the area centroid, or the vertex average for polygons
// with no area.
func (p Polygon) Centroid() geom.Coordinate {
	a := p.SignedArea()
	if math.Abs(a) < geom.Epsilon {
		var sum geom.Coordinate
		for _, c := range p.Points {
			sum = sum.Add(c)
		}
		return sum.Scale(1 / float64(len(p.Points)))
	}
	var cx, cy float64
	for i, c := range p.Points {
		n := p.Points[(i+1)%len(p.Points)]
		f := c.Cross(n)
		cx += (c.X + n.X) * f
		cy += (c.Y + n.Y) * f
	}
	return geom.Coordinate{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Winding returns the number of turns the boundary makes: +1 for a simple
// counter-clockwise polygon, -1 for a clockwise one.
func (p Polygon) Winding() int {
	n := len(p.Points)
	var total float64
	for i := range p.Points {
		d1 := p.Points[(i+1)%n].Sub(p.Points[i])
		d2 := p.Points[(i+2)%n].Sub(p.Points[(i+1)%n])
		total += math.Atan2(d1.Cross(d2), d1.Dot(d2))
	}
	return int(math.Round(total / (2 * math.Pi)))
}
