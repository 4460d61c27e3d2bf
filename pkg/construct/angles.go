package construct

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

func vertexArgs() []Arg {
	return []Arg{
		arg(value.KindPoint, "point on the first side"),
		arg(value.KindPoint, "vertex"),
		arg(value.KindPoint, "point on the second side"),
	}
}

// sweep returns the directions of va and vc, and the counter-clockwise
// angle from the first to the second in [0, 2π).
func sweep(args []value.Value) (start, size float64, ok bool) {
	a, v, c := coord(args[0]), coord(args[1]), coord(args[2])
	if a.Near(v, geom.Epsilon) || c.Near(v, geom.Epsilon) {
		return 0, 0, false
	}
	start = a.Sub(v).Angle()
	size = geom.NormalizeAngle(c.Sub(v).Angle() - start)
	return start, size, true
}

func angleTypes() []*Type {
	return []*Type{
		{
			// The angle never exceeds π; the sides swap when needed.
			Name:   "Angle",
			Args:   vertexArgs(),
			Result: value.KindAngle,
			Calc: func(args []value.Value) value.Value {
				start, size, ok := sweep(args)
				if !ok {
					return value.Invalid{}
				}
				if size > math.Pi {
					start += size
					size = 2*math.Pi - size
				}
				return value.NewAngle(coord(args[1]), start, size)
			},
		},
		{
			Name:   "HalfAngle",
			Args:   vertexArgs(),
			Result: value.KindAngle,
			Calc: func(args []value.Value) value.Value {
				start, size, ok := sweep(args)
				if !ok {
					return value.Invalid{}
				}
				return value.NewAngle(coord(args[1]), start, size)
			},
		},
	}
}

func polygonTypes() []*Type {
	points := func(args []value.Value) value.Value {
		pts := make([]geom.Coordinate, len(args))
		for i, a := range args {
			pts[i] = coord(a)
		}
		return value.NewPolygon(pts)
	}
	return []*Type{
		{
			Name: "PolygonBNP",
			Args: []Arg{
				arg(value.KindPoint, "vertex"),
				arg(value.KindPoint, "vertex"),
				arg(value.KindPoint, "vertex"),
				variadic(value.KindPoint, "vertex"),
			},
			Result: value.KindPolygon,
			Calc:   points,
		},
		{
			Name: "TriangleB3P",
			Args: []Arg{
				arg(value.KindPoint, "vertex"),
				arg(value.KindPoint, "vertex"),
				arg(value.KindPoint, "vertex"),
			},
			Result: value.KindPolygon,
			Calc:   points,
		},
	}
}
