// Package value implements the closed set of geometric values a node can
// hold. Every computation that cannot produce a well defined result yields
// Invalid; no variant is ever partially defined.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/compass/pkg/geom"
)

// Value is a computed geometric value. The set of variants is closed.
type Value interface {
	Kind() Kind
	// Transform maps the value through t, or returns Invalid when the
	// variant cannot follow t.
	Transform(t geom.Transformation) Value
	// Contains reports whether p lies on the value within tol.
	Contains(p geom.Coordinate, tol float64) bool
	// InRect reports whether any part of the value lies in r, grown by tol.
	InRect(r geom.Rect, tol float64) bool
	String() string

	value() // marker method restricting implementations to this package
}

// IsValid reports whether v is a usable value.
func IsValid(v Value) bool {
	return v != nil && v.Kind() != KindInvalid
}

// ----------------------------------------------------------------------------
// Variants
// ----------------------------------------------------------------------------

type Invalid struct{}

type Double float64

type Int int

type String string

type Point struct {
	Coord geom.Coordinate
}

type Line struct {
	Data geom.LineData
}

// Ray starts at Data.A and passes through Data.B.
type Ray struct {
	Data geom.LineData
}

type Segment struct {
	Data geom.LineData
}

type Vector struct {
	Data geom.LineData
}

type Circle struct {
	Center geom.Coordinate
	Radius float64
}

// Conic keeps both forms of the equation; Polar is derived from Cartesian.
type Conic struct {
	Cartesian geom.ConicCartesian
	Polar     geom.ConicPolar
}

// ConicArc is the part of a conic between two focal angles, swept
// counter-clockwise from Start.
type ConicArc struct {
	Conic Conic
	Start float64
	Span  float64
}

// Arc is a circular arc swept counter-clockwise from Start by Span
// radians. Span is in (0, 2π].
type Arc struct {
	Center geom.Coordinate
	Radius float64
	Start  float64
	Span   float64
}

type Polygon struct {
	Points []geom.Coordinate
}

// Angle is the angle at Vertex from direction Start, sweeping Size
// radians counter-clockwise.
type Angle struct {
	Vertex geom.Coordinate
	Start  float64
	Size   float64
}

type Transformation struct {
	T geom.Transformation
}

type TextLabel struct {
	Anchor geom.Coordinate
	Text   string
}

func (Invalid) value()        {}
func (Double) value()         {}
func (Int) value()            {}
func (String) value()         {}
func (Point) value()          {}
func (Line) value()           {}
func (Ray) value()            {}
func (Segment) value()        {}
func (Vector) value()         {}
func (Circle) value()         {}
func (Conic) value()          {}
func (ConicArc) value()       {}
func (Arc) value()            {}
func (Polygon) value()        {}
func (Angle) value()          {}
func (Transformation) value() {}
func (TextLabel) value()      {}

func (Invalid) Kind() Kind        { return KindInvalid }
func (Double) Kind() Kind         { return KindDouble }
func (Int) Kind() Kind            { return KindInt }
func (String) Kind() Kind         { return KindString }
func (Point) Kind() Kind          { return KindPoint }
func (Line) Kind() Kind           { return KindLine }
func (Ray) Kind() Kind            { return KindRay }
func (Segment) Kind() Kind        { return KindSegment }
func (Vector) Kind() Kind         { return KindVector }
func (Circle) Kind() Kind         { return KindCircle }
func (Conic) Kind() Kind          { return KindConic }
func (ConicArc) Kind() Kind       { return KindConicArc }
func (Arc) Kind() Kind            { return KindArc }
func (Polygon) Kind() Kind        { return KindPolygon }
func (Angle) Kind() Kind          { return KindAngle }
func (Transformation) Kind() Kind { return KindTransformation }
func (TextLabel) Kind() Kind      { return KindTextLabel }

// ----------------------------------------------------------------------------
// Constructors
// ----------------------------------------------------------------------------

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// NewDouble returns Invalid for NaN or infinite numbers.
func NewDouble(d float64) Value {
	if !finite(d) {
		return Invalid{}
	}
	return Double(d)
}

func NewPoint(c geom.Coordinate) Value {
	if !c.Valid() {
		return Invalid{}
	}
	return Point{Coord: c}
}

func NewLine(l geom.LineData) Value {
	if !l.Valid() {
		return Invalid{}
	}
	return Line{Data: l}
}

func NewRay(l geom.LineData) Value {
	if !l.Valid() {
		return Invalid{}
	}
	return Ray{Data: l}
}

func NewSegment(l geom.LineData) Value {
	if !l.Valid() {
		return Invalid{}
	}
	return Segment{Data: l}
}

// NewVector allows a zero vector, unlike the other line kinds.
func NewVector(l geom.LineData) Value {
	if !l.A.Valid() || !l.B.Valid() {
		return Invalid{}
	}
	return Vector{Data: l}
}

func NewCircle(center geom.Coordinate, radius float64) Value {
	if !center.Valid() || !finite(radius) || radius < 0 {
		return Invalid{}
	}
	return Circle{Center: center, Radius: radius}
}

// NewConic derives the polar form. Conics without one (line pairs and
// other degenerate cases) are Invalid.
func NewConic(c geom.ConicCartesian) Value {
	if !c.Valid() {
		return Invalid{}
	}
	pol, ok := c.Polar()
	if !ok {
		return Invalid{}
	}
	return Conic{Cartesian: c, Polar: pol}
}

// NewArc normalizes a negative span by moving the start angle.
func NewArc(center geom.Coordinate, radius, start, span float64) Value {
	if !center.Valid() || !finite(radius, start, span) || radius <= 0 || span == 0 {
		return Invalid{}
	}
	if span < 0 {
		start += span
		span = -span
	}
	if span > 2*math.Pi {
		span = 2 * math.Pi
	}
	return Arc{Center: center, Radius: radius, Start: geom.NormalizeAngle(start), Span: span}
}

func NewConicArc(c Conic, start, span float64) Value {
	if !finite(start, span) || span == 0 {
		return Invalid{}
	}
	if span < 0 {
		start += span
		span = -span
	}
	return ConicArc{Conic: c, Start: geom.NormalizeAngle(start), Span: math.Min(span, 2*math.Pi)}
}

func NewPolygon(pts []geom.Coordinate) Value {
	if len(pts) < 3 {
		return Invalid{}
	}
	for _, p := range pts {
		if !p.Valid() {
			return Invalid{}
		}
	}
	return Polygon{Points: append([]geom.Coordinate(nil), pts...)}
}

func NewAngle(vertex geom.Coordinate, start, size float64) Value {
	if !vertex.Valid() || !finite(start, size) {
		return Invalid{}
	}
	return Angle{Vertex: vertex, Start: start, Size: size}
}

func NewTextLabel(anchor geom.Coordinate, text string) Value {
	if !anchor.Valid() {
		return Invalid{}
	}
	return TextLabel{Anchor: anchor, Text: text}
}

// ToConic views circles and conics as a conic.
func ToConic(v Value) (Conic, bool) {
	switch x := v.(type) {
	case Conic:
		return x, true
	case Circle:
		c, ok := NewConic(geom.CircleConic(x.Center, x.Radius)).(Conic)
		return c, ok
	}
	return Conic{}, false
}

// LineDataOf returns the defining points of the line kinds and vectors.
func LineDataOf(v Value) (geom.LineData, bool) {
	switch x := v.(type) {
	case Line:
		return x.Data, true
	case Ray:
		return x.Data, true
	case Segment:
		return x.Data, true
	case Vector:
		return x.Data, true
	}
	return geom.LineData{}, false
}

// ----------------------------------------------------------------------------
// Equality
// ----------------------------------------------------------------------------

// Equal reports whether a and b are the same value. Floating point fields
// are compared exactly; it answers "did this value change", not "are these
// geometrically close".
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Polygon:
		y := b.(Polygon)
		if len(x.Points) != len(y.Points) {
			return false
		}
		for i := range x.Points {
			if x.Points[i] != y.Points[i] {
				return false
			}
		}
		return true
	case Locus:
		return x.equal(b.(Locus))
	case Hierarchy:
		return x.Program == b.(Hierarchy).Program
	}
	return a == b
}

// ----------------------------------------------------------------------------
// Display
// ----------------------------------------------------------------------------

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func (Invalid) String() string   { return "invalid" }
func (d Double) String() string  { return formatNumber(float64(d)) }
func (i Int) String() string     { return strconv.Itoa(int(i)) }
func (s String) String() string  { return string(s) }
func (p Point) String() string   { return p.Coord.String() }
func (l Line) String() string    { return "line " + lineString(l.Data) }
func (r Ray) String() string     { return "ray " + lineString(r.Data) }
func (s Segment) String() string { return "segment " + lineString(s.Data) }
func (v Vector) String() string  { return "vector " + lineString(v.Data) }

func (c Circle) String() string {
	return fmt.Sprintf("circle %s r=%s", c.Center, formatNumber(c.Radius))
}

func (c Conic) String() string {
	return "conic " + conicEquation(c.Cartesian)
}

func (a ConicArc) String() string {
	return fmt.Sprintf("conic arc %s from %s span %s", conicEquation(a.Conic.Cartesian),
		formatNumber(a.Start), formatNumber(a.Span))
}

func (a Arc) String() string {
	return fmt.Sprintf("arc %s r=%s from %s span %s", a.Center, formatNumber(a.Radius),
		formatNumber(a.Start), formatNumber(a.Span))
}

func (p Polygon) String() string {
	parts := make([]string, len(p.Points))
	for i, c := range p.Points {
		parts[i] = c.String()
	}
	return "polygon " + strings.Join(parts, " ")
}

func (a Angle) String() string {
	return fmt.Sprintf("angle at %s size %s", a.Vertex, formatNumber(a.Size))
}

func (t Transformation) String() string {
	var b strings.Builder
	b.WriteString("transformation [")
	for i, row := range t.T.M {
		if i > 0 {
			b.WriteString("; ")
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatNumber(v))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (l TextLabel) String() string { return strconv.Quote(l.Text) + " at " + l.Anchor.String() }

func lineString(l geom.LineData) string {
	return l.A.String() + " " + l.B.String()
}
