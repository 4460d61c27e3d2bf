package construct

import (
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

// ----------------------------------------------------------------------------
// Intersection algorithms
// ----------------------------------------------------------------------------

// A point that falls outside a ray or segment is Invalid, even when the
// supporting lines meet.

func lineLine(l1, l2 value.Value) value.Value {
	p, ok := geom.IntersectionPoint(lineData(l1), lineData(l2))
	if !ok || !onLineKind(l1, p) || !onLineKind(l2, p) {
		return value.Invalid{}
	}
	return value.NewPoint(p)
}

func conicLine(c value.Value, l value.Value, s int) value.Value {
	d := lineData(l)
	var p geom.Coordinate
	var ok bool
	if circ, isCircle := c.(value.Circle); isCircle {
		p, ok = geom.CircleLineIntersect(circ.Center, circ.Radius*circ.Radius, d, s)
	} else {
		conic, isConic := value.ToConic(c)
		if !isConic {
			return value.Invalid{}
		}
		p, ok = geom.ConicLineIntersect(conic.Cartesian, d, s)
	}
	if !ok || !onLineKind(l, p) {
		return value.Invalid{}
	}
	return value.NewPoint(p)
}

func circleCircle(c1, c2 value.Circle, s int) value.Value {
	p, ok := geom.CircleCircleIntersect(c1.Center, c1.Radius*c1.Radius, c2.Center, c2.Radius*c2.Radius, s)
	if !ok {
		return value.Invalid{}
	}
	return value.NewPoint(p)
}

func arcLine(a value.Arc, l value.Value, s int) value.Value {
	p, ok := geom.CircleLineIntersect(a.Center, a.Radius*a.Radius, lineData(l), s)
	if !ok || !onLineKind(l, p) || !geom.AngleInSpan(p.Sub(a.Center).Angle(), a.Start, a.Span) {
		return value.Invalid{}
	}
	return value.NewPoint(p)
}

// conicConic intersects the first conic with the first real line of the
// pencil through both conics.
func conicConic(c1, c2 value.Value, s int) value.Value {
	k1, ok1 := value.ToConic(c1)
	k2, ok2 := value.ToConic(c2)
	if !ok1 || !ok2 {
		return value.Invalid{}
	}
	l, ok := geom.ConicRadical(k1.Cartesian, k2.Cartesian, 1, 1)
	if !ok {
		return value.Invalid{}
	}
	p, ok := geom.ConicLineIntersect(k1.Cartesian, l, s)
	if !ok {
		return value.Invalid{}
	}
	return value.NewPoint(p)
}

func isLine(v value.Value) bool  { return v.Kind().Inherits(value.KindAbstractLine) }
func isConic(v value.Value) bool { return v.Kind().Inherits(value.KindConic) }

// intersect picks the algorithm from the kinds of a and b.
func intersect(a, b value.Value, s int) value.Value {
	switch {
	case isLine(a) && isLine(b):
		return lineLine(a, b)
	case isLine(b) && !isLine(a):
		a, b = b, a
	}
	// from here on, if either is a line it is a
	if isLine(a) {
		switch x := b.(type) {
		case value.Arc:
			return arcLine(x, a, s)
		case value.Circle, value.Conic:
			return conicLine(x, a, s)
		}
		return value.Invalid{}
	}
	if c1, ok := a.(value.Circle); ok {
		if c2, ok := b.(value.Circle); ok {
			return circleCircle(c1, c2, s)
		}
	}
	if isConic(a) && isConic(b) {
		return conicConic(a, b, s)
	}
	return value.Invalid{}
}

func intersectionTypes() []*Type {
	return []*Type{
		{
			Name:   "LineLineIntersection",
			Args:   []Arg{arg(value.KindAbstractLine, "first line"), arg(value.KindAbstractLine, "second line")},
			Result: value.KindPoint,
			Calc:   func(args []value.Value) value.Value { return lineLine(args[0], args[1]) },
		},
		{
			Name: "ConicLineIntersection",
			Args: []Arg{
				arg(value.KindConic, "conic"),
				arg(value.KindAbstractLine, "line"),
				arg(value.KindInt, "side"),
			},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				s, ok := side(args[2])
				if !ok {
					return value.Invalid{}
				}
				return conicLine(args[0], args[1], s)
			},
		},
		{
			Name: "ConicLineOtherIntersection",
			Args: []Arg{
				arg(value.KindConic, "conic"),
				arg(value.KindAbstractLine, "line"),
				arg(value.KindPoint, "known intersection"),
			},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				conic, ok := value.ToConic(args[0])
				if !ok {
					return value.Invalid{}
				}
				p, ok := geom.ConicLineOtherIntersect(conic.Cartesian, lineData(args[1]), coord(args[2]))
				if !ok || !onLineKind(args[1], p) {
					return value.Invalid{}
				}
				return value.NewPoint(p)
			},
		},
		{
			Name: "CircleCircleIntersection",
			Args: []Arg{
				arg(value.KindCircle, "first circle"),
				arg(value.KindCircle, "second circle"),
				arg(value.KindInt, "side"),
			},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				s, ok := side(args[2])
				if !ok {
					return value.Invalid{}
				}
				return circleCircle(args[0].(value.Circle), args[1].(value.Circle), s)
			},
		},
		{
			// The two intersections are mirror images in the line of
			// centres.
			Name: "CircleCircleOtherIntersection",
			Args: []Arg{
				arg(value.KindCircle, "first circle"),
				arg(value.KindCircle, "second circle"),
				arg(value.KindPoint, "known intersection"),
			},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				c1, c2 := args[0].(value.Circle), args[1].(value.Circle)
				centres := geom.LineData{A: c1.Center, B: c2.Center}
				if !centres.Valid() {
					return value.Invalid{}
				}
				return value.NewPoint(geom.MirrorPoint(centres, coord(args[2])))
			},
		},
		{
			Name: "ArcLineIntersection",
			Args: []Arg{
				arg(value.KindArc, "arc"),
				arg(value.KindAbstractLine, "line"),
				arg(value.KindInt, "side"),
			},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				s, ok := side(args[2])
				if !ok {
					return value.Invalid{}
				}
				return arcLine(args[0].(value.Arc), args[1], s)
			},
		},
		{
			Name: "Intersection",
			Args: []Arg{
				arg(value.KindCurve, "first curve"),
				arg(value.KindCurve, "second curve"),
				optional(value.KindInt, "side"),
			},
			Result: value.KindPoint,
			Calc: func(args []value.Value) value.Value {
				s, ok := side(args[2])
				if !ok {
					return value.Invalid{}
				}
				return intersect(args[0], args[1], s)
			},
		},
	}
}
