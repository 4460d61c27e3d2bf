package construct

import (
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

func twoPoints(args []value.Value) geom.LineData {
	return geom.LineData{A: coord(args[0]), B: coord(args[1])}
}

func lineTypes() []*Type {
	ab := []Arg{arg(value.KindPoint, "first point"), arg(value.KindPoint, "second point")}
	return []*Type{
		{
			Name: "SegmentAB", Args: ab, Result: value.KindSegment,
			Calc: func(args []value.Value) value.Value { return value.NewSegment(twoPoints(args)) },
		},
		{
			Name: "LineAB", Args: ab, Result: value.KindLine,
			Calc: func(args []value.Value) value.Value { return value.NewLine(twoPoints(args)) },
		},
		{
			Name: "RayAB", Args: ab, Result: value.KindRay,
			Calc: func(args []value.Value) value.Value { return value.NewRay(twoPoints(args)) },
		},
		{
			Name: "Vector", Args: ab, Result: value.KindVector,
			Calc: func(args []value.Value) value.Value { return value.NewVector(twoPoints(args)) },
		},
		{
			Name:   "LineParallelLP",
			Args:   []Arg{arg(value.KindAbstractLine, "parallel to this line"), arg(value.KindPoint, "through this point")},
			Result: value.KindLine,
			Calc: func(args []value.Value) value.Value {
				p := coord(args[1])
				return value.NewLine(geom.LineData{A: p, B: geom.PointOnParallel(lineData(args[0]), p)})
			},
		},
		{
			Name:   "LinePerpendLP",
			Args:   []Arg{arg(value.KindAbstractLine, "perpendicular to this line"), arg(value.KindPoint, "through this point")},
			Result: value.KindLine,
			Calc: func(args []value.Value) value.Value {
				p := coord(args[1])
				return value.NewLine(geom.LineData{A: p, B: geom.PointOnPerpend(lineData(args[0]), p)})
			},
		},
		{
			Name:   "LineByVector",
			Args:   []Arg{arg(value.KindVector, "direction"), arg(value.KindPoint, "through this point")},
			Result: value.KindLine,
			Calc: func(args []value.Value) value.Value {
				p := coord(args[1])
				return value.NewLine(geom.LineData{A: p, B: p.Add(lineData(args[0]).Dir())})
			},
		},
	}
}
