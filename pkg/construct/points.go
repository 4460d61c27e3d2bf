package construct

import (
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

func pointTypes() []*Type {
	return []*Type{
		{
			Name:   "FixedPoint",
			Args:   []Arg{arg(value.KindDouble, "x"), arg(value.KindDouble, "y")},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				return value.NewPoint(geom.Coordinate{X: number(args[0]), Y: number(args[1])})
			},
		},
		{
			Name:   "ConstrainedPoint",
			Args:   []Arg{arg(value.KindDouble, "parameter"), arg(value.KindCurve, "curve")},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				p, ok := args[1].(value.Curve).PointAt(number(args[0]))
				if !ok {
					return value.Invalid{}
				}
				return value.NewPoint(p)
			},
		},
		{
			Name:   "MidPoint",
			Args:   []Arg{arg(value.KindPoint, "first point"), arg(value.KindPoint, "second point")},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				return value.NewPoint(geom.Lerp(coord(args[0]), coord(args[1]), 0.5))
			},
		},
	}
}
