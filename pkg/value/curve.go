package value

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
)

// Curve is a value that can be traversed by a parameter in [0, 1]. Each
// curve maps the unit interval onto its own domain.
type Curve interface {
	Value
	// PointAt returns the point at parameter p. ok is false where the
	// curve has no finite point.
	PointAt(p float64) (geom.Coordinate, bool)
	// ParamOf returns the parameter of the curve point closest to c.
	ParamOf(c geom.Coordinate) float64
}

var (
	_ Curve = Line{}
	_ Curve = Ray{}
	_ Curve = Segment{}
	_ Curve = Vector{}
	_ Curve = Circle{}
	_ Curve = Conic{}
	_ Curve = ConicArc{}
	_ Curve = Arc{}
	_ Curve = Locus{}
)

func onLine(l geom.LineData, t float64) (geom.Coordinate, bool) {
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return geom.InvalidCoordinate(), false
	}
	return l.A.Add(l.Dir().Scale(t)), true
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}

// PointAt maps (0, 1) onto the whole line through tan.
func (l Line) PointAt(p float64) (geom.Coordinate, bool) {
	if p <= 0 || p >= 1 {
		return geom.InvalidCoordinate(), false
	}
	return onLine(l.Data, math.Tan(math.Pi*(p-0.5)))
}

func (l Line) ParamOf(c geom.Coordinate) float64 {
	return math.Atan(l.Data.Param(c))/math.Pi + 0.5
}

// PointAt maps [0, 1) onto the ray through p/(1-p).
func (r Ray) PointAt(p float64) (geom.Coordinate, bool) {
	if p < 0 || p >= 1 {
		return geom.InvalidCoordinate(), false
	}
	return onLine(r.Data, p/(1-p))
}

func (r Ray) ParamOf(c geom.Coordinate) float64 {
	t := math.Max(r.Data.Param(c), 0)
	return t / (1 + t)
}

func (s Segment) PointAt(p float64) (geom.Coordinate, bool) {
	return onLine(s.Data, clamp01(p))
}

func (s Segment) ParamOf(c geom.Coordinate) float64 {
	return clamp01(s.Data.Param(c))
}

func (v Vector) PointAt(p float64) (geom.Coordinate, bool) {
	return onLine(v.Data, clamp01(p))
}

func (v Vector) ParamOf(c geom.Coordinate) float64 {
	if v.Data.Dir().SquareLength() == 0 {
		return 0
	}
	return clamp01(v.Data.Param(c))
}

func (c Circle) PointAt(p float64) (geom.Coordinate, bool) {
	return c.Center.Add(geom.Polar(c.Radius, 2*math.Pi*p)), true
}

func (c Circle) ParamOf(pt geom.Coordinate) float64 {
	return geom.NormalizeAngle(pt.Sub(c.Center).Angle()) / (2 * math.Pi)
}

// PointAt maps the parameter onto the focal angle.
func (c Conic) PointAt(p float64) (geom.Coordinate, bool) {
	return c.Polar.PointAt(2 * math.Pi * p)
}

func (c Conic) ParamOf(pt geom.Coordinate) float64 {
	return c.Polar.AngleOf(pt) / (2 * math.Pi)
}

func (a ConicArc) PointAt(p float64) (geom.Coordinate, bool) {
	return a.Conic.Polar.PointAt(a.Start + clamp01(p)*a.Span)
}

func (a ConicArc) ParamOf(pt geom.Coordinate) float64 {
	return arcParam(a.Conic.Polar.AngleOf(pt), a.Start, a.Span)
}

func (a Arc) PointAt(p float64) (geom.Coordinate, bool) {
	return a.Center.Add(geom.Polar(a.Radius, a.Start+clamp01(p)*a.Span)), true
}

func (a Arc) ParamOf(pt geom.Coordinate) float64 {
	return arcParam(pt.Sub(a.Center).Angle(), a.Start, a.Span)
}

// arcParam maps theta onto [0, 1] along the span, snapping angles outside
// the arc to the nearer end point.
func arcParam(theta, start, span float64) float64 {
	d := geom.NormalizeAngle(theta - start)
	if d <= span {
		return d / span
	}
	if d-span < 2*math.Pi-d {
		return 1
	}
	return 0
}
