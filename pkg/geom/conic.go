package geom

import (
	"math"
	"sort"
)

// ConicCartesian holds the coefficients of
//
//	a x² + b y² + c xy + d x + e y + f = 0
//
// in the order a, b, c, d, e, f.
type ConicCartesian struct {
	Coeffs [6]float64
}

// ConicPolar describes a conic by one focus, the focal parameter and the
// eccentricity vector e·(cos θ0, sin θ0). A point at angle θ from the focus
// lies at distance Pdimen / (1 - ECos·cos θ - ESin·sin θ).
type ConicPolar struct {
	Focus1 Coordinate
	Pdimen float64
	ECos   float64
	ESin   float64
}

// CircleConic returns the cartesian equation of a circle.
func CircleConic(center Coordinate, radius float64) ConicCartesian {
	return ConicCartesian{Coeffs: [6]float64{
		1, 1, 0,
		-2 * center.X, -2 * center.Y,
		center.X*center.X + center.Y*center.Y - radius*radius,
	}}
}

// Valid reports whether all coefficients are finite and the quadratic part
// is not identically zero.
func (c ConicCartesian) Valid() bool {
	for _, v := range c.Coeffs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(c.Coeffs[0])+math.Abs(c.Coeffs[1])+math.Abs(c.Coeffs[2]) > Epsilon
}

// Eval returns the left hand side of the equation at p.
func (c ConicCartesian) Eval(p Coordinate) float64 {
	k := c.Coeffs
	return k[0]*p.X*p.X + k[1]*p.Y*p.Y + k[2]*p.X*p.Y + k[3]*p.X + k[4]*p.Y + k[5]
}

// matrix returns the symmetric matrix of the conic acting on (w, x, y).
func (c ConicCartesian) matrix() [3][3]float64 {
	k := c.Coeffs
	return [3][3]float64{
		{k[5], k[3] / 2, k[4] / 2},
		{k[3] / 2, k[0], k[2] / 2},
		{k[4] / 2, k[2] / 2, k[1]},
	}
}

func conicFromMatrix(m [3][3]float64) ConicCartesian {
	return ConicCartesian{Coeffs: [6]float64{
		m[1][1], m[2][2], m[1][2] + m[2][1],
		m[0][1] + m[1][0], m[0][2] + m[2][0], m[0][0],
	}}
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Transform maps the conic through t.
func (c ConicCartesian) Transform(t Transformation) (ConicCartesian, bool) {
	inv, ok := t.Inverse()
	if !ok {
		return ConicCartesian{}, false
	}
	q := c.matrix()
	var tmp, r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				tmp[i][j] += q[i][k] * inv.M[k][j]
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += inv.M[k][i] * tmp[k][j]
			}
		}
	}
	ret := conicFromMatrix(r)
	return ret, ret.Valid()
}

// Discriminant returns c² - 4ab: negative for ellipses, zero for
// parabolas, positive for hyperbolas.
func (c ConicCartesian) Discriminant() float64 {
	k := c.Coeffs
	return k[2]*k[2] - 4*k[0]*k[1]
}

// Center returns the centre of symmetry. ok is false for parabolas.
func (c ConicCartesian) Center() (Coordinate, bool) {
	k := c.Coeffs
	den := 4*k[0]*k[1] - k[2]*k[2]
	if math.Abs(den) < Epsilon {
		return InvalidCoordinate(), false
	}
	x := (k[2]*k[4] - 2*k[1]*k[3]) / den
	y := (k[2]*k[3] - 2*k[0]*k[4]) / den
	return Coordinate{x, y}, true
}

// ConicThroughPoints returns the conic through five points. ok is false
// when the points do not determine a unique conic.
func ConicThroughPoints(pts []Coordinate) (ConicCartesian, bool) {
	if len(pts) != 5 {
		return ConicCartesian{}, false
	}
	var m [5][6]float64
	for i, p := range pts {
		if !p.Valid() {
			return ConicCartesian{}, false
		}
		m[i] = [6]float64{p.X * p.X, p.Y * p.Y, p.X * p.Y, p.X, p.Y, 1}
	}

	pivotCol := make([]int, 0, 5)
	row := 0
	for col := 0; col < 6 && row < 5; col++ {
		best := row
		for r := row + 1; r < 5; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[best][col]) {
				best = r
			}
		}
		if math.Abs(m[best][col]) < 1e-12 {
			continue
		}
		m[row], m[best] = m[best], m[row]
		for r := 0; r < 5; r++ {
			if r == row {
				continue
			}
			f := m[r][col] / m[row][col]
			for k := col; k < 6; k++ {
				m[r][k] -= f * m[row][k]
			}
		}
		pivotCol = append(pivotCol, col)
		row++
	}
	if len(pivotCol) != 5 {
		return ConicCartesian{}, false
	}

	free := 0
	for free < 6 {
		isPivot := false
		for _, pc := range pivotCol {
			if pc == free {
				isPivot = true
				break
			}
		}
		if !isPivot {
			break
		}
		free++
	}

	var ret ConicCartesian
	ret.Coeffs[free] = 1
	for r, pc := range pivotCol {
		ret.Coeffs[pc] = -m[r][free] / m[r][pc]
	}
	return ret, ret.Valid()
}

// Polar converts the cartesian form to focus/eccentricity form. ok is false
// for degenerate conics.
func (c ConicCartesian) Polar() (ConicPolar, bool) {
	a, b, cc, d, e, f := c.Coeffs[0], c.Coeffs[1], c.Coeffs[2], c.Coeffs[3], c.Coeffs[4], c.Coeffs[5]

	theta := math.Atan2(cc, b-a) / 2
	rot := func(theta float64) (st, ct, aa, bb float64) {
		st, ct = math.Sincos(theta)
		aa = a*ct*ct + b*st*st - cc*st*ct
		bb = a*st*st + b*ct*ct + cc*st*ct
		return
	}
	flip := func() {
		if theta > 0 {
			theta -= math.Pi / 2
		} else {
			theta += math.Pi / 2
		}
	}

	sintheta, costheta, aa, bb := rot(theta)
	if aa*bb < 0 {
		// hyperbola: the focal axis must be the one where the constant
		// term has the opposite sign of aa
		dd := d*costheta - e*sintheta
		ee := d*sintheta + e*costheta
		xc := -dd / (2 * aa)
		yc := -ee / (2 * bb)
		ff := f + aa*xc*xc + bb*yc*yc + dd*xc + ee*yc
		if ff*aa > 0 {
			flip()
			sintheta, costheta, aa, bb = rot(theta)
		}
	} else if math.Abs(bb) < math.Abs(aa) {
		flip()
		sintheta, costheta, aa, bb = rot(theta)
	}

	if math.Abs(bb) < Epsilon {
		return ConicPolar{}, false
	}
	dd := d*costheta - e*sintheta
	ee := d*sintheta + e*costheta

	aa /= bb
	dd /= bb
	ee /= bb
	f /= bb

	yf := -ee / 2
	f += yf*yf + ee*yf

	eccentricity := math.Sqrt(1 - aa)
	sqrtdiscrim := math.Sqrt(dd*dd - 4*aa*f)
	if dd < 0 {
		sqrtdiscrim = -sqrtdiscrim
	}
	var xf float64
	if den := 2 * (dd + eccentricity*sqrtdiscrim); math.Abs(den) > Epsilon {
		xf = (4*aa*f - 4*f - dd*dd) / den
	} else {
		// circle centred on the rotated y axis
		xf = -dd / (2 * aa)
	}

	ret := ConicPolar{
		Focus1: Coordinate{xf*costheta + yf*sintheta, -xf*sintheta + yf*costheta},
		Pdimen: -sqrtdiscrim / 2,
		ECos:   eccentricity * costheta,
		ESin:   -eccentricity * sintheta,
	}
	if ret.Pdimen < 0 {
		ret.Pdimen = -ret.Pdimen
		ret.ECos = -ret.ECos
		ret.ESin = -ret.ESin
	}
	if !ret.Focus1.Valid() || math.IsNaN(ret.Pdimen) || math.IsNaN(ret.ECos) || math.IsNaN(ret.ESin) {
		return ConicPolar{}, false
	}
	return ret, true
}

// Cartesian converts the polar form back to coefficients.
func (p ConicPolar) Cartesian() ConicCartesian {
	fx, fy := p.Focus1.X, p.Focus1.Y
	A := 1 - p.ECos*p.ECos
	B := 1 - p.ESin*p.ESin
	C := -2 * p.ECos * p.ESin
	D := -2 * p.Pdimen * p.ECos
	E := -2 * p.Pdimen * p.ESin
	F := -p.Pdimen * p.Pdimen
	return ConicCartesian{Coeffs: [6]float64{
		A, B, C,
		-2*A*fx - C*fy + D,
		-2*B*fy - C*fx + E,
		A*fx*fx + B*fy*fy + C*fx*fy - D*fx - E*fy + F,
	}}
}

// Eccentricity returns the eccentricity of the conic.
func (p ConicPolar) Eccentricity() float64 {
	return math.Hypot(p.ECos, p.ESin)
}

// PointAt returns the point of the conic seen from the focus at angle theta.
func (p ConicPolar) PointAt(theta float64) (Coordinate, bool) {
	s, c := math.Sincos(theta)
	den := 1 - p.ECos*c - p.ESin*s
	if math.Abs(den) < Epsilon {
		return InvalidCoordinate(), false
	}
	rho := p.Pdimen / den
	return p.Focus1.Add(Coordinate{c * rho, s * rho}), true
}

// AngleOf returns the focal angle of pt, in [0, 2π).
func (p ConicPolar) AngleOf(pt Coordinate) float64 {
	return NormalizeAngle(pt.Sub(p.Focus1).Angle())
}

// lineQuadratic returns the coefficients of the quadratic in t obtained by
// substituting l.A + t·Dir() into the conic.
func (c ConicCartesian) lineQuadratic(l LineData) (alpha, beta, gamma float64) {
	k := c.Coeffs
	a, d := l.A, l.Dir()
	alpha = k[0]*d.X*d.X + k[1]*d.Y*d.Y + k[2]*d.X*d.Y
	beta = 2*k[0]*a.X*d.X + 2*k[1]*a.Y*d.Y + k[2]*(a.X*d.Y+a.Y*d.X) + k[3]*d.X + k[4]*d.Y
	gamma = c.Eval(a)
	return alpha, beta, gamma
}

// ConicLineIntersect intersects the conic with the infinite line l. side
// +1 picks the root further along l's direction, -1 the one before it.
// When l meets the conic in a single point (a line parallel to an
// asymptote or to a parabola's axis) both sides return that point.
func ConicLineIntersect(c ConicCartesian, l LineData, side int) (Coordinate, bool) {
	alpha, beta, gamma := c.lineQuadratic(l)
	scale := math.Abs(alpha) + math.Abs(beta) + math.Abs(gamma)
	if math.Abs(alpha) <= Epsilon*scale {
		if math.Abs(beta) <= Epsilon*scale {
			return InvalidCoordinate(), false
		}
		return l.A.Add(l.Dir().Scale(-gamma / beta)), true
	}
	disc := beta*beta - 4*alpha*gamma
	if disc < -Epsilon*scale*scale {
		return InvalidCoordinate(), false
	}
	sq := math.Sqrt(math.Max(disc, 0))
	t1 := (-beta - sq) / (2 * alpha)
	t2 := (-beta + sq) / (2 * alpha)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	t := t2
	if side < 0 {
		t = t1
	}
	return l.A.Add(l.Dir().Scale(t)), true
}

// ConicLineOtherIntersect returns the second intersection of l with the
// conic, given one known intersection point.
func ConicLineOtherIntersect(c ConicCartesian, l LineData, known Coordinate) (Coordinate, bool) {
	alpha, beta, _ := c.lineQuadratic(l)
	if math.Abs(alpha) < Epsilon {
		return InvalidCoordinate(), false
	}
	tk := l.Param(known)
	t := -beta/alpha - tk
	return l.A.Add(l.Dir().Scale(t)), true
}

// ConicRadical returns a line through two of the intersection points of
// two conics. The pencil c1 + t·c2 contains up to three degenerate members
// (line pairs); root picks the 1-based index among the members that split
// into real lines, ordered by t, and side picks one line of the pair.
// For two circles the only real member is their radical axis.
func ConicRadical(c1, c2 ConicCartesian, root, side int) (LineData, bool) {
	m1, m2 := c1.matrix(), c2.matrix()
	pencil := func(t float64) [3][3]float64 {
		var r [3][3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				r[i][j] = m1[i][j] + t*m2[i][j]
			}
		}
		return r
	}
	p := func(t float64) float64 { return det3(pencil(t)) }

	p0, p1, pm1, p2 := p(0), p(1), p(-1), p(2)
	k0 := p0
	k2 := (p1+pm1)/2 - k0
	s := (p1 - pm1) / 2
	k3 := (p2 - 4*k2 - k0 - 2*s) / 6
	k1 := s - k3

	roots := RealRoots(k3, k2, k1, k0)
	var lines [][2]LineData
	for _, t := range roots {
		t = polishRoot(p, t)
		if pair, ok := splitDegenerate(conicFromMatrix(pencil(t))); ok {
			lines = append(lines, pair)
		}
	}
	if root < 1 || root > len(lines) {
		return LineData{}, false
	}
	pair := lines[root-1]
	if side < 0 {
		return pair[0], true
	}
	return pair[1], true
}

// splitDegenerate splits a degenerate conic into its two real lines. A
// conic whose quadratic part vanishes is a single finite line (the other
// being the line at infinity); both entries are then that line.
func splitDegenerate(c ConicCartesian) ([2]LineData, bool) {
	a, b, cc, d, e, f := c.Coeffs[0], c.Coeffs[1], c.Coeffs[2], c.Coeffs[3], c.Coeffs[4], c.Coeffs[5]
	lin := math.Abs(d) + math.Abs(e) + math.Abs(f)
	quad := math.Abs(a) + math.Abs(b) + math.Abs(cc)
	if quad <= 1e-8*(lin+quad) {
		if math.Abs(d)+math.Abs(e) < Epsilon {
			return [2]LineData{}, false
		}
		// d x + e y + f = 0
		n := Coordinate{d, e}
		p0 := n.Scale(-f / n.SquareLength())
		l := LineData{p0, p0.Add(n.Orthogonal())}
		return [2]LineData{l, l}, true
	}

	disc := cc*cc - 4*a*b
	if disc < -1e-8*quad*quad {
		return [2]LineData{}, false
	}
	den := 4*a*b - cc*cc
	if math.Abs(den) <= 1e-10*quad*quad {
		// parallel line pair
		return [2]LineData{}, false
	}
	center := Coordinate{(cc*e - 2*b*d) / den, (cc*d - 2*a*e) / den}

	sq := math.Sqrt(math.Max(disc, 0))
	var d1, d2 Coordinate
	if math.Abs(b) > math.Abs(a) {
		d1 = Coordinate{2 * b, -cc - sq}
		d2 = Coordinate{2 * b, -cc + sq}
	} else {
		d1 = Coordinate{-cc - sq, 2 * a}
		d2 = Coordinate{-cc + sq, 2 * a}
	}
	return [2]LineData{
		{center, center.Add(d1)},
		{center, center.Add(d2)},
	}, true
}

func polishRoot(p func(float64) float64, t float64) float64 {
	const h = 1e-7
	for i := 0; i < 8; i++ {
		v := p(t)
		dv := (p(t+h) - p(t-h)) / (2 * h)
		if dv == 0 {
			break
		}
		next := t - v/dv
		if math.IsNaN(next) || math.Abs(next-t) < 1e-15*(1+math.Abs(t)) {
			break
		}
		t = next
	}
	return t
}

// RealRoots returns the real roots of a t³ + b t² + c t + d in ascending
// order. It degrades to the quadratic and linear cases when the leading
// coefficients vanish.
func RealRoots(a, b, c, d float64) []float64 {
	scale := math.Abs(a) + math.Abs(b) + math.Abs(c) + math.Abs(d)
	if scale == 0 {
		return nil
	}
	if math.Abs(a) <= 1e-12*scale {
		return quadraticRoots(b, c, d)
	}
	b, c, d = b/a, c/a, d/a
	// depressed cubic x³ + px + q with t = x - b/3
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	shift := -b / 3
	disc := q*q/4 + p*p*p/27

	var roots []float64
	switch {
	case math.Abs(disc) < 1e-14:
		u := math.Cbrt(-q / 2)
		roots = []float64{2*u + shift, -u + shift}
	case disc > 0:
		sq := math.Sqrt(disc)
		roots = []float64{math.Cbrt(-q/2+sq) + math.Cbrt(-q/2-sq) + shift}
	default:
		r := math.Sqrt(-p / 3)
		phi := math.Acos(math.Max(-1, math.Min(1, -q/(2*r*r*r))))
		for k := 0; k < 3; k++ {
			roots = append(roots, 2*r*math.Cos((phi-2*math.Pi*float64(k))/3)+shift)
		}
	}
	sort.Float64s(roots)
	return roots
}

func quadraticRoots(a, b, c float64) []float64 {
	if math.Abs(a) < 1e-14 {
		if math.Abs(b) < 1e-14 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	r := []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
	sort.Float64s(r)
	return r
}
