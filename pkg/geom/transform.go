package geom

import "math"

// Transformation is a projective transformation of the plane stored as a
// 3x3 matrix acting on homogeneous column vectors (w, x, y). Row and column
// 0 hold the homogeneous component, so an affine map has M[0] = (1, 0, 0).
type Transformation struct {
	M [3][3]float64
}

// Identity returns the identity transformation.
func Identity() Transformation {
	var t Transformation
	t.M[0][0], t.M[1][1], t.M[2][2] = 1, 1, 1
	return t
}

// affine builds x' = L x + off.
func affine(l [2][2]float64, off Coordinate) Transformation {
	var t Transformation
	t.M[0][0] = 1
	t.M[1][0] = off.X
	t.M[2][0] = off.Y
	t.M[1][1], t.M[1][2] = l[0][0], l[0][1]
	t.M[2][1], t.M[2][2] = l[1][0], l[1][1]
	return t
}

// mulLinear returns L p for a 2x2 matrix.
func mulLinear(l [2][2]float64, p Coordinate) Coordinate {
	return Coordinate{l[0][0]*p.X + l[0][1]*p.Y, l[1][0]*p.X + l[1][1]*p.Y}
}

// Translation moves everything by v.
func Translation(v Coordinate) Transformation {
	return affine([2][2]float64{{1, 0}, {0, 1}}, v)
}

// PointReflection mirrors through c.
func PointReflection(c Coordinate) Transformation {
	return affine([2][2]float64{{-1, 0}, {0, -1}}, c.Scale(2))
}

// LineReflection mirrors over the line l.
func LineReflection(l LineData) Transformation {
	u := l.Dir().Normalize(1)
	lin := [2][2]float64{
		{u.X*u.X - u.Y*u.Y, 2 * u.X * u.Y},
		{2 * u.X * u.Y, u.Y*u.Y - u.X*u.X},
	}
	return affine(lin, l.A.Sub(mulLinear(lin, l.A)))
}

// Rotation turns everything counter-clockwise by angle radians about
// center.
func Rotation(angle float64, center Coordinate) Transformation {
	s, c := math.Sincos(angle)
	lin := [2][2]float64{{c, -s}, {s, c}}
	return affine(lin, center.Sub(mulLinear(lin, center)))
}

// Scaling scales by factor about center. A negative factor also mirrors
// through center.
func Scaling(factor float64, center Coordinate) Transformation {
	lin := [2][2]float64{{factor, 0}, {0, factor}}
	return affine(lin, center.Sub(center.Scale(factor)))
}

// ScalingOverLine scales distances from the line l by factor, leaving the
// points of l fixed.
func ScalingOverLine(factor float64, l LineData) Transformation {
	u := l.Dir().Normalize(1)
	lin := [2][2]float64{
		{u.X*u.X + factor*(1-u.X*u.X), u.X*u.Y - factor*u.X*u.Y},
		{u.X*u.Y - factor*u.X*u.Y, u.Y*u.Y + factor*(1-u.Y*u.Y)},
	}
	return affine(lin, l.A.Sub(mulLinear(lin, l.A)))
}

// ProjectiveRotation rotates the plane by alpha about the axis through t
// with direction d, seen as a plane in space projected back from the
// origin at unit height.
func ProjectiveRotation(alpha float64, d, t Coordinate) Transformation {
	d = d.Normalize(1)
	sa, ca := math.Sincos(alpha)
	var r Transformation
	r.M[0][0] = ca
	r.M[1][1] = ca*d.X*d.X + d.Y*d.Y
	r.M[0][1] = -sa * d.X
	r.M[1][0] = sa * d.X
	r.M[0][2] = -sa * d.Y
	r.M[2][0] = sa * d.Y
	r.M[1][2] = ca*d.X*d.Y - d.X*d.Y
	r.M[2][1] = ca*d.X*d.Y - d.X*d.Y
	r.M[2][2] = ca*d.Y*d.Y + d.X*d.X
	return Translation(t).Mul(r).Mul(Translation(t.Neg()))
}

// CastShadow returns the harmonic homology with centre light and axis l:
// points of l stay fixed and every other point is sent along its ray from
// light to the harmonic conjugate with respect to light and the axis.
// ok is false when the light source lies on the axis.
func CastShadow(light Coordinate, l LineData) (Transformation, bool) {
	a, b, c := l.Equation()
	axis := [3]float64{c, a, b}
	s := [3]float64{1, light.X, light.Y}
	den := axis[0]*s[0] + axis[1]*s[1] + axis[2]*s[2]
	if math.Abs(den) < Epsilon {
		return Identity(), false
	}
	t := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.M[i][j] -= 2 * s[i] * axis[j] / den
		}
	}
	return t, true
}

// Mul returns the transformation that applies o first and then t.
func (t Transformation) Mul(o Transformation) Transformation {
	var r Transformation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r.M[i][j] += t.M[i][k] * o.M[k][j]
			}
		}
	}
	return r
}

func (t Transformation) det() float64 {
	m := t.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse transformation. ok is false for a singular
// matrix.
func (t Transformation) Inverse() (Transformation, bool) {
	d := t.det()
	if math.Abs(d) < Epsilon {
		return Transformation{}, false
	}
	m := t.M
	var r Transformation
	r.M[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / d
	r.M[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / d
	r.M[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / d
	r.M[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) / d
	r.M[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / d
	r.M[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / d
	r.M[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / d
	r.M[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / d
	r.M[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / d
	return r, true
}

// Weight returns the homogeneous component of t applied to p. Points with
// a zero weight are sent to infinity; a sign change between two points
// means the segment joining them crosses the line sent to infinity.
func (t Transformation) Weight(p Coordinate) float64 {
	return t.M[0][0] + t.M[0][1]*p.X + t.M[0][2]*p.Y
}

// Apply maps p. ok is false when p is sent to infinity.
func (t Transformation) Apply(p Coordinate) (Coordinate, bool) {
	if !p.Valid() {
		return InvalidCoordinate(), false
	}
	w := t.Weight(p)
	if math.Abs(w) < Epsilon {
		return InvalidCoordinate(), false
	}
	x := t.M[1][0] + t.M[1][1]*p.X + t.M[1][2]*p.Y
	y := t.M[2][0] + t.M[2][1]*p.X + t.M[2][2]*p.Y
	return Coordinate{x / w, y / w}, true
}

// IsAffine reports whether t keeps the line at infinity in place.
func (t Transformation) IsAffine() bool {
	return math.Abs(t.M[0][1]) < Epsilon && math.Abs(t.M[0][2]) < Epsilon &&
		math.Abs(t.M[0][0]) > Epsilon
}

// linear returns the 2x2 linear part of an affine t, normalized by the
// homogeneous scale.
func (t Transformation) linear() [2][2]float64 {
	w := t.M[0][0]
	return [2][2]float64{
		{t.M[1][1] / w, t.M[1][2] / w},
		{t.M[2][1] / w, t.M[2][2] / w},
	}
}

// IsHomothetic reports whether t is a similarity: it preserves angles and
// scales all lengths by the same factor.
func (t Transformation) IsHomothetic() bool {
	if !t.IsAffine() {
		return false
	}
	l := t.linear()
	tol := 1e-8 * (math.Abs(l[0][0]) + math.Abs(l[0][1]) + math.Abs(l[1][0]) + math.Abs(l[1][1]))
	direct := math.Abs(l[0][0]-l[1][1]) <= tol && math.Abs(l[0][1]+l[1][0]) <= tol
	indirect := math.Abs(l[0][0]+l[1][1]) <= tol && math.Abs(l[0][1]-l[1][0]) <= tol
	return direct || indirect
}

// IsOrientationReversing reports whether an affine t flips the orientation
// of the plane.
func (t Transformation) IsOrientationReversing() bool {
	l := t.linear()
	return l[0][0]*l[1][1]-l[0][1]*l[1][0] < 0
}

// ApplyLength returns the image length of a segment of length d under a
// homothetic t.
func (t Transformation) ApplyLength(d float64) float64 {
	l := t.linear()
	return d * math.Sqrt(math.Abs(l[0][0]*l[1][1]-l[0][1]*l[1][0]))
}

// ApplyAngle returns the image direction of the angle theta under a
// homothetic t.
func (t Transformation) ApplyAngle(theta float64) float64 {
	v := mulLinear(t.linear(), Polar(1, theta))
	return v.Angle()
}
