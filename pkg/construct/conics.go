package construct

import (
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

func conicTypes() []*Type {
	five := make([]Arg, 5)
	for i := range five {
		five[i] = arg(value.KindPoint, "point on the conic")
	}
	return []*Type{
		{
			Name:   "ConicB5P",
			Args:   five,
			Result: value.KindConic,
			Calc: func(args []value.Value) value.Value {
				pts := make([]geom.Coordinate, len(args))
				for i, a := range args {
					pts[i] = coord(a)
				}
				c, ok := geom.ConicThroughPoints(pts)
				if !ok {
					return value.Invalid{}
				}
				return value.NewConic(c)
			},
		},
		{
			// The pencil of the two conics holds up to three line pairs
			// through their intersections; root picks the pair and side
			// one line of it.
			Name: "ConicRadical",
			Args: []Arg{
				arg(value.KindConic, "first conic"),
				arg(value.KindConic, "second conic"),
				arg(value.KindInt, "root"),
				arg(value.KindInt, "side"),
			},
			Result: value.KindLine,
			Calc: func(args []value.Value) value.Value {
				c1, ok1 := value.ToConic(args[0])
				c2, ok2 := value.ToConic(args[1])
				s, ok3 := side(args[3])
				if !ok1 || !ok2 || !ok3 {
					return value.Invalid{}
				}
				l, ok := geom.ConicRadical(c1.Cartesian, c2.Cartesian, int(args[2].(value.Int)), s)
				if !ok {
					return value.Invalid{}
				}
				return value.NewLine(l)
			},
		},
	}
}
