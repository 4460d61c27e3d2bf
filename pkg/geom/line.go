package geom

import "math"

// LineData is a line given by two distinct points. Whether it is read as a
// full line, a ray from A through B, or a segment from A to B is up to the
// value that carries it.
type LineData struct {
	A, B Coordinate
}

// Dir returns B - A.
func (l LineData) Dir() Coordinate { return l.B.Sub(l.A) }

func (l LineData) Length() float64 { return l.A.Distance(l.B) }

// Valid reports whether both points are valid and distinct.
func (l LineData) Valid() bool {
	return l.A.Valid() && l.B.Valid() && l.Dir().SquareLength() > Epsilon*Epsilon
}

// IsParallelTo reports whether l and o have (anti)parallel directions.
func (l LineData) IsParallelTo(o LineData) bool {
	a, b := l.Dir(), o.Dir()
	return math.Abs(a.Cross(b)) <= Epsilon*a.Length()*b.Length()
}

// IsOrthogonalTo reports whether l and o meet at a right angle.
func (l LineData) IsOrthogonalTo(o LineData) bool {
	a, b := l.Dir(), o.Dir()
	return math.Abs(a.Dot(b)) <= Epsilon*a.Length()*b.Length()
}

// Transform maps both defining points.
func (l LineData) Transform(t Transformation) (LineData, bool) {
	a, ok := t.Apply(l.A)
	if !ok {
		return LineData{}, false
	}
	b, ok := t.Apply(l.B)
	if !ok {
		return LineData{}, false
	}
	ret := LineData{a, b}
	return ret, ret.Valid()
}

// Param returns the position of the projection of p onto l, expressed as a
// multiple of Dir() from A.
func (l LineData) Param(p Coordinate) float64 {
	d := l.Dir()
	return p.Sub(l.A).Dot(d) / d.SquareLength()
}

// Equation returns the coefficients of a x + b y + c = 0.
func (l LineData) Equation() (a, b, c float64) {
	d := l.Dir()
	a = -d.Y
	b = d.X
	c = -(a*l.A.X + b*l.A.Y)
	return a, b, c
}

// Slope returns dy/dx. Vertical lines have an infinite slope.
func (l LineData) Slope() float64 {
	d := l.Dir()
	return d.Y / d.X
}
