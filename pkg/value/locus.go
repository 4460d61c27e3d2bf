package value

import (
	"fmt"
	"math"

	"github.com/chazu/compass/pkg/geom"
)

// Program is a compiled construction. Eval computes its result from the
// input values without touching any shared state. Implementations must be
// comparable (in practice a pointer) so that values holding them can be
// compared with Equal.
type Program interface {
	Eval(args []Value) Value
	NumInputs() int
}

// Hierarchy carries a compiled Program through the graph. It is an input
// of locus nodes and is never drawn.
type Hierarchy struct {
	Program Program
}

func (Hierarchy) value()                                 {}
func (Hierarchy) Kind() Kind                             { return KindHierarchy }
func (Hierarchy) Transform(geom.Transformation) Value    { return Invalid{} }
func (Hierarchy) Contains(geom.Coordinate, float64) bool { return false }
func (Hierarchy) InRect(geom.Rect, float64) bool         { return false }

func (h Hierarchy) String() string {
	return fmt.Sprintf("hierarchy (%d inputs)", h.Program.NumInputs())
}

// Locus is the path traced by the result of Program while its first input
// moves along Curve. Fixed holds the remaining inputs. Post, when set, is
// applied to every traced point.
type Locus struct {
	Program Program
	Curve   Curve
	Fixed   []Value
	Post    *geom.Transformation
}

// NewLocus checks that the program takes the moving point plus the fixed
// inputs.
func NewLocus(p Program, curve Curve, fixed []Value) Value {
	if p == nil || curve == nil || p.NumInputs() != len(fixed)+1 {
		return Invalid{}
	}
	return Locus{Program: p, Curve: curve, Fixed: append([]Value(nil), fixed...)}
}

func (Locus) value()     {}
func (Locus) Kind() Kind { return KindLocus }

func (l Locus) String() string {
	return fmt.Sprintf("locus on %s", l.Curve.Kind())
}

func (l Locus) equal(o Locus) bool {
	if l.Program != o.Program || !Equal(l.Curve, o.Curve) || len(l.Fixed) != len(o.Fixed) {
		return false
	}
	for i := range l.Fixed {
		if !Equal(l.Fixed[i], o.Fixed[i]) {
			return false
		}
	}
	switch {
	case l.Post == nil && o.Post == nil:
		return true
	case l.Post == nil || o.Post == nil:
		return false
	}
	return *l.Post == *o.Post
}

// PointAt moves the first input to the curve point at p and evaluates the
// program.
func (l Locus) PointAt(p float64) (geom.Coordinate, bool) {
	c, ok := l.Curve.PointAt(p)
	if !ok {
		return geom.InvalidCoordinate(), false
	}
	args := make([]Value, 0, len(l.Fixed)+1)
	args = append(args, Point{Coord: c})
	args = append(args, l.Fixed...)
	pt, ok := l.Program.Eval(args).(Point)
	if !ok {
		return geom.InvalidCoordinate(), false
	}
	if l.Post != nil {
		return l.Post.Apply(pt.Coord)
	}
	return pt.Coord, true
}

// ParamOf has no closed form: it samples the locus and refines the
// closest sample by golden section search.
func (l Locus) ParamOf(c geom.Coordinate) float64 {
	const n = 100
	dist := func(p float64) float64 {
		pt, ok := l.PointAt(p)
		if !ok {
			return math.Inf(1)
		}
		return pt.Distance(c)
	}
	best, bestDist := 0.0, math.Inf(1)
	for i := 0; i <= n; i++ {
		p := float64(i) / n
		if d := dist(p); d < bestDist {
			best, bestDist = p, d
		}
	}
	lo, hi := math.Max(0, best-1.0/n), math.Min(1, best+1.0/n)
	const phi = 0.6180339887498949
	for i := 0; i < 40; i++ {
		m1 := hi - phi*(hi-lo)
		m2 := lo + phi*(hi-lo)
		if dist(m1) < dist(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	if mid := (lo + hi) / 2; dist(mid) <= bestDist {
		return mid
	}
	return best
}

// Transform composes t onto the traced points.
func (l Locus) Transform(t geom.Transformation) Value {
	post := t
	if l.Post != nil {
		post = t.Mul(*l.Post)
	}
	l.Fixed = append([]Value(nil), l.Fixed...)
	l.Post = &post
	return l
}

func (l Locus) Contains(p geom.Coordinate, tol float64) bool {
	pt, ok := l.PointAt(l.ParamOf(p))
	return ok && pt.Distance(p) <= tol
}

func (l Locus) InRect(r geom.Rect, tol float64) bool {
	return curveInRect(l, r.Grow(tol))
}
