package geom

import "math"

// IntersectionPoint returns the intersection of the infinite lines through
// l1 and l2. ok is false for parallel lines.
func IntersectionPoint(l1, l2 LineData) (Coordinate, bool) {
	d1, d2 := l1.Dir(), l2.Dir()
	den := d1.Cross(d2)
	if math.Abs(den) <= Epsilon*d1.Length()*d2.Length() {
		return InvalidCoordinate(), false
	}
	t := l2.A.Sub(l1.A).Cross(d2) / den
	return l1.A.Add(d1.Scale(t)), true
}

// PointProjection returns the foot of the perpendicular from p onto l.
func PointProjection(p Coordinate, l LineData) Coordinate {
	return l.A.Add(l.Dir().Scale(l.Param(p)))
}

// MirrorPoint reflects p over the line l.
func MirrorPoint(l LineData, p Coordinate) Coordinate {
	proj := PointProjection(p, l)
	return proj.Scale(2).Sub(p)
}

// RotatedPoint rotates p counter-clockwise by angle about center.
func RotatedPoint(p, center Coordinate, angle float64) Coordinate {
	s, c := math.Sincos(angle)
	d := p.Sub(center)
	return center.Add(Coordinate{d.X*c - d.Y*s, d.X*s + d.Y*c})
}

// PointOnPerpend returns a second point on the perpendicular to l through
// t.
func PointOnPerpend(l LineData, t Coordinate) Coordinate {
	return t.Add(l.Dir().Orthogonal())
}

// PointOnParallel returns a second point on the parallel to l through t.
func PointOnParallel(l LineData, t Coordinate) Coordinate {
	return t.Add(l.Dir())
}

// CalcCenter returns the centre of the circle through a, b and c. ok is
// false when the points are collinear.
func CalcCenter(a, b, c Coordinate) (Coordinate, bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	den := 2 * ab.Cross(ac)
	scale := ab.Length() * ac.Length()
	if math.Abs(den) <= Epsilon*scale || scale == 0 {
		return InvalidCoordinate(), false
	}
	ab2 := ab.SquareLength()
	ac2 := ac.SquareLength()
	ux := (ac.Y*ab2 - ab.Y*ac2) / den
	uy := (ab.X*ac2 - ac.X*ab2) / den
	return a.Add(Coordinate{ux, uy}), true
}

// CircleLineIntersect intersects the circle with the given centre and
// squared radius with the line l. side selects the intersection: +1 is the
// one further along l's direction, -1 the one before it.
func CircleLineIntersect(center Coordinate, sqr float64, l LineData, side int) (Coordinate, bool) {
	proj := PointProjection(center, l)
	dist2 := proj.Sub(center).SquareLength()
	if dist2 > sqr*(1+Epsilon) {
		return InvalidCoordinate(), false
	}
	h := math.Sqrt(math.Max(sqr-dist2, 0))
	u := l.Dir().Normalize(1)
	return proj.Add(u.Scale(float64(sign(side)) * h)), true
}

// CircleCircleIntersect intersects two circles given by centre and squared
// radius. Both points lie on the radical line, which is perpendicular to
// the line of centres. side -1 picks the point to the right of the
// direction from c1 to c2, side +1 the point to its left.
func CircleCircleIntersect(c1 Coordinate, sqr1 float64, c2 Coordinate, sqr2 float64, side int) (Coordinate, bool) {
	a := c2.Sub(c1)
	d2 := a.SquareLength()
	if d2 < Epsilon*Epsilon {
		return InvalidCoordinate(), false
	}
	lena := math.Sqrt(d2)
	k := (d2 + sqr1 - sqr2) / (2 * lena)
	p := c1.Add(a.Scale(k / lena))
	radical := LineData{p, p.Add(a.Orthogonal())}
	return CircleLineIntersect(c1, sqr1, radical, side)
}

// IsOnLine reports whether p lies within fault of the infinite line l.
func IsOnLine(p Coordinate, l LineData, fault float64) bool {
	return PointProjection(p, l).Distance(p) <= fault
}

// IsOnSegment reports whether p lies within fault of the segment l.
func IsOnSegment(p Coordinate, l LineData, fault float64) bool {
	return SegmentDistance(p, l) <= fault
}

// IsOnRay reports whether p lies within fault of the ray from l.A through
// l.B.
func IsOnRay(p Coordinate, l LineData, fault float64) bool {
	t := l.Param(p)
	if t < 0 {
		return p.Distance(l.A) <= fault
	}
	return IsOnLine(p, l, fault)
}

// SegmentDistance returns the distance from p to the closest point of the
// segment l.
func SegmentDistance(p Coordinate, l LineData) float64 {
	t := l.Param(p)
	switch {
	case t <= 0:
		return p.Distance(l.A)
	case t >= 1:
		return p.Distance(l.B)
	}
	return PointProjection(p, l).Distance(p)
}

// NormalizeAngle maps theta into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// AngleInSpan reports whether theta lies on the arc that starts at start
// and sweeps span radians counter-clockwise. span must be in [0, 2π].
func AngleInSpan(theta, start, span float64) bool {
	d := NormalizeAngle(theta - start)
	return d <= span+Epsilon || d >= 2*math.Pi-Epsilon
}

func sign(i int) int {
	if i < 0 {
		return -1
	}
	return 1
}
