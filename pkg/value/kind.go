package value

// Kind enumerates the value variants plus the abstract kinds used to
// describe construction arguments.
type Kind int

const (
	KindInvalid Kind = iota
	KindDouble
	KindInt
	KindString
	KindPoint
	KindLine
	KindRay
	KindSegment
	KindVector
	KindCircle
	KindConic
	KindConicArc
	KindArc
	KindPolygon
	KindAngle
	KindTransformation
	KindLocus
	KindTextLabel
	KindHierarchy

	// abstract kinds, never carried by a value
	KindAbstractLine
	KindCurve
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindDouble:
		return "double"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindRay:
		return "ray"
	case KindSegment:
		return "segment"
	case KindVector:
		return "vector"
	case KindCircle:
		return "circle"
	case KindConic:
		return "conic"
	case KindConicArc:
		return "conic-arc"
	case KindArc:
		return "arc"
	case KindPolygon:
		return "polygon"
	case KindAngle:
		return "angle"
	case KindTransformation:
		return "transformation"
	case KindLocus:
		return "locus"
	case KindTextLabel:
		return "label"
	case KindHierarchy:
		return "hierarchy"
	case KindAbstractLine:
		return "abstract-line"
	case KindCurve:
		return "curve"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Inherits reports whether a value of kind k is acceptable where base is
// expected.
func (k Kind) Inherits(base Kind) bool {
	if k == base {
		return true
	}
	switch base {
	case KindAny:
		return k != KindInvalid && k < KindAbstractLine
	case KindAbstractLine:
		return k == KindLine || k == KindRay || k == KindSegment
	case KindConic:
		return k == KindCircle
	case KindCurve:
		switch k {
		case KindLine, KindRay, KindSegment, KindVector, KindCircle,
			KindConic, KindArc, KindConicArc, KindLocus:
			return true
		}
	}
	return false
}

// Abstract reports whether k only describes arguments.
func (k Kind) Abstract() bool {
	return k >= KindAbstractLine
}
