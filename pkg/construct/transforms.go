package construct

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

// transformType builds a type whose last argument is the object to move.
// build derives the transformation from the other arguments.
func transformType(name string, args []Arg, build func(args []value.Value) (geom.Transformation, bool)) *Type {
	return &Type{
		Name:      name,
		Args:      append(args, arg(value.KindAny, "object to transform")),
		Result:    value.KindAny,
		Transform: true,
		Calc: func(args []value.Value) value.Value {
			t, ok := build(args)
			if !ok {
				return value.Invalid{}
			}
			return args[len(args)-1].Transform(t)
		},
	}
}

const defaultProjectiveAngle = 0.1 * math.Pi / 2

func transformTypes() []*Type {
	return []*Type{
		transformType("Translation",
			[]Arg{arg(value.KindVector, "translate by this vector")},
			func(args []value.Value) (geom.Transformation, bool) {
				return geom.Translation(lineData(args[0]).Dir()), true
			}),
		transformType("PointReflection",
			[]Arg{arg(value.KindPoint, "reflect in this point")},
			func(args []value.Value) (geom.Transformation, bool) {
				return geom.PointReflection(coord(args[0])), true
			}),
		transformType("LineReflection",
			[]Arg{arg(value.KindAbstractLine, "reflect in this line")},
			func(args []value.Value) (geom.Transformation, bool) {
				return geom.LineReflection(lineData(args[0])), true
			}),
		transformType("Rotation",
			[]Arg{arg(value.KindPoint, "rotate around this point"), arg(value.KindAngle, "rotate by this angle")},
			func(args []value.Value) (geom.Transformation, bool) {
				return geom.Rotation(args[1].(value.Angle).Size, coord(args[0])), true
			}),
		transformType("ScalingOverCenter",
			[]Arg{arg(value.KindPoint, "scale with this center"), arg(value.KindSegment, "scale by the length of this segment")},
			func(args []value.Value) (geom.Transformation, bool) {
				return geom.Scaling(lineData(args[1]).Length(), coord(args[0])), true
			}),
		// The ratio is |b - center| / |a - center|.
		transformType("ScalingOverCenter2",
			[]Arg{
				arg(value.KindPoint, "scale with this center"),
				arg(value.KindPoint, "from this point"),
				arg(value.KindPoint, "to this point"),
			},
			func(args []value.Value) (geom.Transformation, bool) {
				center := coord(args[0])
				from := coord(args[1]).Distance(center)
				if from < geom.Epsilon {
					return geom.Transformation{}, false
				}
				return geom.Scaling(coord(args[2]).Distance(center)/from, center), true
			}),
		transformType("ScalingOverLine",
			[]Arg{arg(value.KindSegment, "scale by the length of this segment"), arg(value.KindAbstractLine, "scale over this line")},
			func(args []value.Value) (geom.Transformation, bool) {
				return geom.ScalingOverLine(lineData(args[0]).Length(), lineData(args[1])), true
			}),
		transformType("ProjectiveRotation",
			[]Arg{arg(value.KindRay, "projectively rotate around this ray"), optional(value.KindAngle, "rotate by this angle")},
			func(args []value.Value) (geom.Transformation, bool) {
				alpha := defaultProjectiveAngle
				if a, ok := args[1].(value.Angle); ok {
					alpha = a.Size
				}
				ray := lineData(args[0])
				return geom.ProjectiveRotation(alpha, ray.Dir(), ray.A), true
			}),
		transformType("CastShadow",
			[]Arg{arg(value.KindPoint, "light source"), arg(value.KindAbstractLine, "horizon")},
			func(args []value.Value) (geom.Transformation, bool) {
				return geom.CastShadow(coord(args[0]), lineData(args[1]))
			}),
		transformType("ApplyTransformation",
			[]Arg{arg(value.KindTransformation, "apply this transformation")},
			func(args []value.Value) (geom.Transformation, bool) {
				return args[0].(value.Transformation).T, true
			}),
	}
}
