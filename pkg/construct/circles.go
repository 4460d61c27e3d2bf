package construct

import (
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

func circleTypes() []*Type {
	return []*Type{
		{
			Name:   "CircleBCP",
			Args:   []Arg{arg(value.KindPoint, "center"), arg(value.KindPoint, "point on the circle")},
			Result: value.KindCircle,
			Calc: func(args []value.Value) value.Value {
				c := coord(args[0])
				return value.NewCircle(c, c.Distance(coord(args[1])))
			},
		},
		{
			Name: "CircleBTP",
			Args: []Arg{
				arg(value.KindPoint, "first point"),
				arg(value.KindPoint, "second point"),
				arg(value.KindPoint, "third point"),
			},
			Result: value.KindCircle,
			Calc: func(args []value.Value) value.Value {
				a := coord(args[0])
				center, ok := geom.CalcCenter(a, coord(args[1]), coord(args[2]))
				if !ok {
					return value.Invalid{}
				}
				return value.NewCircle(center, center.Distance(a))
			},
		},
		{
			Name:   "CircleBPR",
			Args:   []Arg{arg(value.KindPoint, "center"), arg(value.KindDouble, "radius")},
			Result: value.KindCircle,
			Calc: func(args []value.Value) value.Value {
				return value.NewCircle(coord(args[0]), number(args[1]))
			},
		},
	}
}
