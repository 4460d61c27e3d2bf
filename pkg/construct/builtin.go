package construct

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

// DefaultRegistry returns a fresh registry holding every builtin type.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(pointTypes()...)
	r.MustRegister(lineTypes()...)
	r.MustRegister(circleTypes()...)
	r.MustRegister(conicTypes()...)
	r.MustRegister(arcTypes()...)
	r.MustRegister(intersectionTypes()...)
	r.MustRegister(angleTypes()...)
	r.MustRegister(polygonTypes()...)
	r.MustRegister(transformTypes()...)
	r.MustRegister(otherTypes()...)
	return r
}

// ----------------------------------------------------------------------------
// Argument helpers
// ----------------------------------------------------------------------------

func arg(k value.Kind, usage string) Arg { return Arg{Kind: k, Usage: usage} }

func optional(k value.Kind, usage string) Arg { return Arg{Kind: k, Usage: usage, Optional: true} }

func variadic(k value.Kind, usage string) Arg { return Arg{Kind: k, Usage: usage, Variadic: true} }

func coord(v value.Value) geom.Coordinate { return v.(value.Point).Coord }

func lineData(v value.Value) geom.LineData {
	d, _ := value.LineDataOf(v)
	return d
}

func number(v value.Value) float64 {
	switch x := v.(type) {
	case value.Double:
		return float64(x)
	case value.Int:
		return float64(x)
	}
	return math.NaN()
}

// side reads a branch selector. Only -1 and +1 select a branch; a
// missing selector means +1.
func side(v value.Value) (int, bool) {
	if v == nil {
		return 1, true
	}
	i, ok := v.(value.Int)
	if !ok || (i != -1 && i != 1) {
		return 0, false
	}
	return int(i), true
}

// onLineKind reports whether p lies on the line, ray or segment v, not
// just on its supporting line.
func onLineKind(v value.Value, p geom.Coordinate) bool {
	d := lineData(v)
	tol := 1e-9 * math.Max(1, d.Length())
	switch v.Kind() {
	case value.KindSegment, value.KindVector:
		return geom.IsOnSegment(p, d, tol)
	case value.KindRay:
		return geom.IsOnRay(p, d, tol)
	}
	return true
}
