package construct

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

// arcBTP builds the arc from a through b to c. Collinear points give the
// segment a-c when b lies between them, and Invalid otherwise. When c is
// left out the arc starts at a and has b at its middle.
func arcBTP(args []value.Value) value.Value {
	a, b := coord(args[0]), coord(args[1])
	if args[2] == nil {
		center := geom.Lerp(a, b, 0.5).Add(b.Sub(a).Orthogonal().Scale(0.6))
		start := a.Sub(center).Angle()
		half := b.Sub(center).Angle() - start
		if half < -math.Pi {
			half += 2 * math.Pi
		}
		return value.NewArc(center, center.Distance(a), start, 2*half)
	}
	c := coord(args[2])
	center, ok := geom.CalcCenter(a, b, c)
	if !ok {
		between := (b.Y - a.Y) * (c.Y - b.Y)
		if math.Abs(a.X-c.X) > math.Abs(a.Y-c.Y) {
			between = (b.X - a.X) * (c.X - b.X)
		}
		if between > 1e-12 {
			return value.NewSegment(geom.LineData{A: a, B: c})
		}
		return value.Invalid{}
	}
	start, span := arcSpan(a.Sub(center).Angle(), b.Sub(center).Angle(), c.Sub(center).Angle())
	return value.NewArc(center, center.Distance(a), start, span)
}

// arcSpan returns the counter-clockwise sweep between the end angles angA
// and angC that contains angB. An angB equal to an end angle counts as
// inside, which selects the direct sweep.
func arcSpan(angA, angB, angC float64) (start, span float64) {
	if angA > angC {
		angA, angC = angC, angA
	}
	if angB > angC || angB < angA {
		return angC, 2*math.Pi + angA - angC
	}
	return angA, angC - angA
}

func arcTypes() []*Type {
	return []*Type{
		{
			Name: "ArcBTP",
			Args: []Arg{
				arg(value.KindPoint, "start point"),
				arg(value.KindPoint, "through this point"),
				optional(value.KindPoint, "end point"),
			},
			Result: value.KindArc,
			Calc:   arcBTP,
		},
		{
			Name: "ArcBCPA",
			Args: []Arg{
				arg(value.KindPoint, "center"),
				arg(value.KindPoint, "start point"),
				arg(value.KindDouble, "angle"),
			},
			Result: value.KindArc,
			Calc: func(args []value.Value) value.Value {
				center, p := coord(args[0]), coord(args[1])
				return value.NewArc(center, center.Distance(p), p.Sub(center).Angle(), number(args[2]))
			},
		},
		{
			// The conic is fixed by the three points and their mirror
			// images through the center.
			Name: "ConicArcBCTP",
			Args: []Arg{
				arg(value.KindPoint, "center"),
				arg(value.KindPoint, "start point"),
				arg(value.KindPoint, "through this point"),
				arg(value.KindPoint, "end point"),
			},
			Result: value.KindConicArc,
			Calc: func(args []value.Value) value.Value {
				center := coord(args[0])
				a, b, c := coord(args[1]), coord(args[2]), coord(args[3])
				cart, ok := geom.ConicThroughPoints([]geom.Coordinate{
					a, b, c, center.Scale(2).Sub(a), center.Scale(2).Sub(b),
				})
				if !ok {
					return value.Invalid{}
				}
				conic, ok := value.NewConic(cart).(value.Conic)
				if !ok {
					return value.Invalid{}
				}
				return value.ConicArcThrough(conic, a, b, c)
			},
		},
	}
}
