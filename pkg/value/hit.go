package value

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/kernel"
	sdfxkernel "github.com/chazu/compass/pkg/kernel/sdfx"
)

// shapes builds the distance fields behind circle and polygon hit tests.
var shapes kernel.Kernel = sdfxkernel.New()

// curveSamples is the number of parameter samples used to test whether a
// curve without a closed form passes through a rectangle.
const curveSamples = 128

func (Invalid) Contains(geom.Coordinate, float64) bool        { return false }
func (Double) Contains(geom.Coordinate, float64) bool         { return false }
func (Int) Contains(geom.Coordinate, float64) bool            { return false }
func (String) Contains(geom.Coordinate, float64) bool         { return false }
func (Transformation) Contains(geom.Coordinate, float64) bool { return false }

func (Invalid) InRect(geom.Rect, float64) bool        { return false }
func (Double) InRect(geom.Rect, float64) bool         { return false }
func (Int) InRect(geom.Rect, float64) bool            { return false }
func (String) InRect(geom.Rect, float64) bool         { return false }
func (Transformation) InRect(geom.Rect, float64) bool { return false }

func (p Point) Contains(c geom.Coordinate, tol float64) bool {
	return p.Coord.Distance(c) <= tol
}

func (p Point) InRect(r geom.Rect, tol float64) bool {
	return r.ContainsWithin(p.Coord, tol)
}

func (l Line) Contains(p geom.Coordinate, tol float64) bool {
	return geom.IsOnLine(p, l.Data, tol)
}

func (l Line) InRect(r geom.Rect, tol float64) bool {
	return clipParam(l.Data, r.Grow(tol), math.Inf(-1), math.Inf(1))
}

func (l Ray) Contains(p geom.Coordinate, tol float64) bool {
	return geom.IsOnRay(p, l.Data, tol)
}

func (l Ray) InRect(r geom.Rect, tol float64) bool {
	return clipParam(l.Data, r.Grow(tol), 0, math.Inf(1))
}

func (s Segment) Contains(p geom.Coordinate, tol float64) bool {
	return geom.IsOnSegment(p, s.Data, tol)
}

func (s Segment) InRect(r geom.Rect, tol float64) bool {
	return clipParam(s.Data, r.Grow(tol), 0, 1)
}

func (v Vector) Contains(p geom.Coordinate, tol float64) bool {
	return geom.IsOnSegment(p, v.Data, tol)
}

func (v Vector) InRect(r geom.Rect, tol float64) bool {
	return clipParam(v.Data, r.Grow(tol), 0, 1)
}

// clipParam reports whether the part of l between parameters lo and hi
// meets r.
func clipParam(l geom.LineData, r geom.Rect, lo, hi float64) bool {
	if !l.Valid() {
		return r.Contains(l.A)
	}
	clipped, ok := geom.BorderPoints(l, r)
	if !ok {
		return false
	}
	t0, t1 := l.Param(clipped.A), l.Param(clipped.B)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0 <= hi && t1 >= lo
}

func (c Circle) shape() (kernel.Shape, bool) {
	s, err := shapes.Circle(c.Center, c.Radius)
	return s, err == nil
}

func (c Circle) Contains(p geom.Coordinate, tol float64) bool {
	s, ok := c.shape()
	return ok && kernel.OnBoundary(s, p, tol)
}

// InRect holds when the distance from the center to the points of r
// ranges across the radius.
func (c Circle) InRect(r geom.Rect, tol float64) bool {
	near := geom.Coordinate{
		X: math.Max(r.Min.X, math.Min(c.Center.X, r.Max.X)),
		Y: math.Max(r.Min.Y, math.Min(c.Center.Y, r.Max.Y)),
	}
	far := geom.Coordinate{X: r.Min.X, Y: r.Min.Y}
	if c.Center.X < r.Center().X {
		far.X = r.Max.X
	}
	if c.Center.Y < r.Center().Y {
		far.Y = r.Max.Y
	}
	return c.Center.Distance(near) <= c.Radius+tol && c.Center.Distance(far) >= c.Radius-tol
}

// Contains uses the first order distance |F(p)| / |∇F(p)|.
func (c Conic) Contains(p geom.Coordinate, tol float64) bool {
	k := c.Cartesian.Coeffs
	f := c.Cartesian.Eval(p)
	gx := 2*k[0]*p.X + k[2]*p.Y + k[3]
	gy := 2*k[1]*p.Y + k[2]*p.X + k[4]
	g := math.Hypot(gx, gy)
	if g < geom.Epsilon {
		return math.Abs(f) <= tol
	}
	return math.Abs(f)/g <= tol
}

func (c Conic) InRect(r geom.Rect, tol float64) bool {
	return curveInRect(c, r.Grow(tol))
}

func (a ConicArc) Contains(p geom.Coordinate, tol float64) bool {
	if !a.Conic.Contains(p, tol) {
		return false
	}
	return geom.AngleInSpan(a.Conic.Polar.AngleOf(p), a.Start, a.Span)
}

func (a ConicArc) InRect(r geom.Rect, tol float64) bool {
	return curveInRect(a, r.Grow(tol))
}

func (a Arc) Contains(p geom.Coordinate, tol float64) bool {
	if math.Abs(p.Distance(a.Center)-a.Radius) > tol {
		return false
	}
	return geom.AngleInSpan(p.Sub(a.Center).Angle(), a.Start, a.Span)
}

func (a Arc) InRect(r geom.Rect, tol float64) bool {
	return curveInRect(a, r.Grow(tol))
}

func (p Polygon) shape() (kernel.Shape, bool) {
	s, err := shapes.Polygon(p.Points)
	return s, err == nil
}

// Contains treats the polygon as filled.
func (p Polygon) Contains(c geom.Coordinate, tol float64) bool {
	s, ok := p.shape()
	return ok && kernel.Inside(s, c, tol)
}

// InRect treats the polygon as filled: a vertex or an edge inside r
// counts, and so does r lying wholly inside the polygon.
func (p Polygon) InRect(r geom.Rect, tol float64) bool {
	grown := r.Grow(tol)
	for i, v := range p.Points {
		if grown.Contains(v) {
			return true
		}
		edge := geom.LineData{A: v, B: p.Points[(i+1)%len(p.Points)]}
		if clipParam(edge, grown, 0, 1) {
			return true
		}
	}
	s, ok := p.shape()
	return ok && kernel.Inside(s, r.Center(), tol)
}

// Contains tests the two sides of the angle.
func (a Angle) Contains(p geom.Coordinate, tol float64) bool {
	for _, theta := range []float64{a.Start, a.Start + a.Size} {
		side := geom.LineData{A: a.Vertex, B: a.Vertex.Add(geom.Polar(1, theta))}
		if geom.IsOnRay(p, side, tol) {
			return true
		}
	}
	return false
}

func (a Angle) InRect(r geom.Rect, tol float64) bool {
	return r.ContainsWithin(a.Vertex, tol)
}

func (l TextLabel) Contains(p geom.Coordinate, tol float64) bool {
	return l.Anchor.Distance(p) <= tol
}

func (l TextLabel) InRect(r geom.Rect, tol float64) bool {
	return r.ContainsWithin(l.Anchor, tol)
}

// curveInRect samples c and reports whether any sample, or any chord
// between consecutive samples, meets r.
func curveInRect(c Curve, r geom.Rect) bool {
	var prev geom.Coordinate
	havePrev := false
	for i := 0; i <= curveSamples; i++ {
		p, ok := c.PointAt(float64(i) / curveSamples)
		if !ok {
			havePrev = false
			continue
		}
		if r.Contains(p) {
			return true
		}
		if havePrev && clipParam(geom.LineData{A: prev, B: p}, r, 0, 1) {
			return true
		}
		prev, havePrev = p, true
	}
	return false
}
