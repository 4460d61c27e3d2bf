package value

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
)

func (Invalid) Transform(geom.Transformation) Value        { return Invalid{} }
func (Double) Transform(geom.Transformation) Value         { return Invalid{} }
func (Int) Transform(geom.Transformation) Value            { return Invalid{} }
func (String) Transform(geom.Transformation) Value         { return Invalid{} }
func (Transformation) Transform(geom.Transformation) Value { return Invalid{} }

func (p Point) Transform(t geom.Transformation) Value {
	c, ok := t.Apply(p.Coord)
	if !ok {
		return Invalid{}
	}
	return NewPoint(c)
}

func (l Line) Transform(t geom.Transformation) Value {
	d, ok := l.Data.Transform(t)
	if !ok {
		return Invalid{}
	}
	return NewLine(d)
}

// staysFinite reports whether the points A + s·Dir for s in [0, upto] stay
// away from the line t sends to infinity. upto is 1 for segments and +Inf
// for rays.
func staysFinite(t geom.Transformation, l geom.LineData, upto float64) bool {
	wa := t.Weight(l.A)
	if math.Abs(wa) < geom.Epsilon {
		return false
	}
	d := l.Dir()
	slope := t.M[0][1]*d.X + t.M[0][2]*d.Y
	if math.IsInf(upto, 1) {
		return slope == 0 || (slope > 0) == (wa > 0)
	}
	wb := wa + upto*slope
	return math.Abs(wb) >= geom.Epsilon && (wa > 0) == (wb > 0)
}

func (r Ray) Transform(t geom.Transformation) Value {
	if !staysFinite(t, r.Data, math.Inf(1)) {
		return Invalid{}
	}
	d, ok := r.Data.Transform(t)
	if !ok {
		return Invalid{}
	}
	return NewRay(d)
}

func (s Segment) Transform(t geom.Transformation) Value {
	if !staysFinite(t, s.Data, 1) {
		return Invalid{}
	}
	d, ok := s.Data.Transform(t)
	if !ok {
		return Invalid{}
	}
	return NewSegment(d)
}

func (v Vector) Transform(t geom.Transformation) Value {
	if !staysFinite(t, v.Data, 1) {
		return Invalid{}
	}
	a, ok := t.Apply(v.Data.A)
	if !ok {
		return Invalid{}
	}
	b, ok := t.Apply(v.Data.B)
	if !ok {
		return Invalid{}
	}
	return NewVector(geom.LineData{A: a, B: b})
}

// Transform keeps circles under similarities; any other transformation
// turns the circle into a general conic.
func (c Circle) Transform(t geom.Transformation) Value {
	if t.IsHomothetic() {
		center, ok := t.Apply(c.Center)
		if !ok {
			return Invalid{}
		}
		return NewCircle(center, t.ApplyLength(c.Radius))
	}
	cart, ok := geom.CircleConic(c.Center, c.Radius).Transform(t)
	if !ok {
		return Invalid{}
	}
	return NewConic(cart)
}

func (c Conic) Transform(t geom.Transformation) Value {
	cart, ok := c.Cartesian.Transform(t)
	if !ok {
		return Invalid{}
	}
	return NewConic(cart)
}

// Transform maps the end points and the middle of the arc and rebuilds it
// on the image conic. Only affine transformations keep a conic arc
// bounded.
func (a ConicArc) Transform(t geom.Transformation) Value {
	if !t.IsAffine() {
		return Invalid{}
	}
	img, ok := a.Conic.Transform(t).(Conic)
	if !ok {
		return Invalid{}
	}
	var pts [3]geom.Coordinate
	for i, p := range []float64{0, 0.5, 1} {
		c, ok := a.PointAt(p)
		if !ok {
			return Invalid{}
		}
		if pts[i], ok = t.Apply(c); !ok {
			return Invalid{}
		}
	}
	return ConicArcThrough(img, pts[0], pts[1], pts[2])
}

// ConicArcThrough returns the arc of c from a through b to e.
func ConicArcThrough(c Conic, a, b, e geom.Coordinate) Value {
	sa := c.Polar.AngleOf(a)
	sb := c.Polar.AngleOf(b)
	se := c.Polar.AngleOf(e)
	span := geom.NormalizeAngle(se - sa)
	if geom.NormalizeAngle(sb-sa) > span {
		// b lies on the other side: sweep from e to a instead
		return NewConicArc(c, se, 2*math.Pi-span)
	}
	return NewConicArc(c, sa, span)
}

// mapAngle maps an arc or angle given by start and span through a
// homothetic t.
func mapAngle(t geom.Transformation, start, span float64) float64 {
	if t.IsOrientationReversing() {
		return t.ApplyAngle(start + span)
	}
	return t.ApplyAngle(start)
}

func (a Arc) Transform(t geom.Transformation) Value {
	if !t.IsHomothetic() {
		return Invalid{}
	}
	center, ok := t.Apply(a.Center)
	if !ok {
		return Invalid{}
	}
	return NewArc(center, t.ApplyLength(a.Radius), mapAngle(t, a.Start, a.Span), a.Span)
}

func (p Polygon) Transform(t geom.Transformation) Value {
	if !t.IsHomothetic() {
		return Invalid{}
	}
	pts := make([]geom.Coordinate, len(p.Points))
	for i, c := range p.Points {
		var ok bool
		if pts[i], ok = t.Apply(c); !ok {
			return Invalid{}
		}
	}
	return NewPolygon(pts)
}

func (a Angle) Transform(t geom.Transformation) Value {
	if !t.IsHomothetic() {
		return Invalid{}
	}
	v, ok := t.Apply(a.Vertex)
	if !ok {
		return Invalid{}
	}
	return NewAngle(v, mapAngle(t, a.Start, a.Size), a.Size)
}

func (l TextLabel) Transform(t geom.Transformation) Value {
	c, ok := t.Apply(l.Anchor)
	if !ok {
		return Invalid{}
	}
	return NewTextLabel(c, l.Text)
}
