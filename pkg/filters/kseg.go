package filters

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/value"
)

const ksegFormat = "kseg"

const ksegMagic = "KSeg Document Version "

// KSeg object type bits.
const (
	ksegPoint          = 1 << 0
	ksegSegment        = 1 << 1
	ksegRay            = 1 << 2
	ksegLine           = 1 << 3
	ksegCircle         = 1 << 4
	ksegArc            = 1 << 5
	ksegPolygon        = 1 << 6
	ksegCircleInterior = 1 << 7
	ksegArcSector      = 1 << 8
	ksegArcSegment     = 1 << 9
	ksegLocus          = 1 << 10
	ksegMeasure        = 1 << 11
	ksegCalculate      = 1 << 12
	ksegAnnotation     = 1 << 13
	ksegLoop           = 1 << 14

	ksegCurve = ksegSegment | ksegRay | ksegLine | ksegCircle | ksegArc | ksegLocus
)

var ksegKinds = map[int]string{
	ksegPoint:          "point",
	ksegSegment:        "segment",
	ksegRay:            "ray",
	ksegLine:           "line",
	ksegCircle:         "circle",
	ksegArc:            "arc",
	ksegPolygon:        "polygon",
	ksegCircleInterior: "circle-interior",
	ksegArcSector:      "arc-sector",
	ksegArcSegment:     "arc-segment",
	ksegLocus:          "locus",
	ksegMeasure:        "measure",
	ksegCalculate:      "calculate",
	ksegAnnotation:     "annotation",
	ksegLoop:           "loop",
}

// Descend types 0-3 are shared by every kind.
var ksegTransforms = []string{"translated", "rotated", "scaled", "reflected"}

// Descend types from 4 on, per kind.
var ksegVariants = map[string][]string{
	"point":   {"free", "constrained", "intersection", "intersection2", "mid"},
	"segment": {"endpoints"},
	"ray":     {"two-points", "bisector"},
	"line":    {"two-points", "parallel", "perpendicular"},
	"circle":  {"center-point", "center-radius"},
	"arc":     {"three-points"},
	"locus":   {"object"},
	"measure": {"distance", "length", "radius", "angle", "ratio", "slope", "area"},
}

func ksegVariant(kind string, descend int) string {
	if descend < len(ksegTransforms) {
		return ksegTransforms[descend]
	}
	if vs := ksegVariants[kind]; descend-len(ksegTransforms) < len(vs) {
		return vs[descend-len(ksegTransforms)]
	}
	return fmt.Sprintf("%d", descend)
}

// KSeg point styles.
const (
	ksegSmallCircle = iota
	ksegMediumCircle
	ksegLargeCircle
)

type ksegStyle struct {
	pointStyle int8
	pen        qtPen
	brush      color.RGBA
}

// ksegCoordinate maps KSeg's 600×600 pixel frame with y pointing down
// onto the 14×14 unit square centred on the origin.
func ksegCoordinate(s *dataStream) geom.Coordinate {
	x, y := s.float32(), s.float32()
	return geom.Coordinate{X: x * 14 / 600, Y: (600 - y) * 14 / 600}.Sub(geom.Coordinate{X: 7, Y: 7})
}

func qtPenStyle(style uint8) document.PenStyle {
	switch style {
	case 2:
		return document.PenDash
	case 3:
		return document.PenDot
	case 4:
		return document.PenDashDot
	case 5:
		return document.PenDashDotDot
	}
	return document.PenSolid
}

// ReadKSeg parses a KSeg document into records. Parsing stops at the
// first object whose data layout is unknown; that object is the last
// record and has no builder.
func ReadKSeg(r io.Reader) ([]Record, error) {
	outer := newDataStream(r)
	version := outer.string()
	if outer.err != nil || !strings.HasPrefix(version, ksegMagic) {
		return nil, &ParseError{Format: ksegFormat, Record: -1, Msg: "not a KSeg document"}
	}
	payload := outer.bytes()
	if outer.err != nil {
		return nil, &ParseError{Format: ksegFormat, Record: -1, Msg: "read payload", Err: outer.err}
	}
	s := newDataStream(bytes.NewReader(payload))

	styles := make([]ksegStyle, max(int(s.int16()), 0))
	for i := range styles {
		st := &styles[i]
		st.pointStyle = int8(s.uint8())
		s.font()
		st.pen = s.pen()
		st.brush = s.brush()
	}
	if s.err != nil {
		return nil, &ParseError{Format: ksegFormat, Record: -1, Msg: "read draw styles", Err: s.err}
	}

	count := int(s.uint32())
	if count > maxChunk {
		return nil, &ParseError{Format: ksegFormat, Record: -1, Msg: fmt.Sprintf("object count %d too large", count)}
	}
	var records []Record
	for i := 0; i < count; i++ {
		rec, stop, err := readKSegObject(s, styles)
		if err != nil {
			return nil, &ParseError{Format: ksegFormat, Record: i, Msg: "read object", Err: err}
		}
		records = append(records, rec)
		if stop {
			return records, nil
		}
	}

	// selection groups carry nothing we keep
	groups := int(s.int32())
	for i := 0; i < groups && s.err == nil; i++ {
		s.string()
		size := int(s.int32())
		for j := 0; j < size && s.err == nil; j++ {
			s.int16()
		}
	}
	if s.err != nil {
		return nil, &ParseError{Format: ksegFormat, Record: -1, Msg: "read selection groups", Err: s.err}
	}
	return records, nil
}

func readKSegObject(s *dataStream, styles []ksegStyle) (Record, bool, error) {
	styleID := int(s.int16())
	parents := make([]int, max(int(s.int16()), 0))
	for j := range parents {
		parents[j] = int(s.int32())
	}
	info := int(s.int16())
	if s.err != nil {
		return Record{}, false, s.err
	}
	typ := 1 << (info & 31)
	descend := (info >> 5) & 15
	flags := info >> 9
	visible := flags&1 != 0

	kind, ok := ksegKinds[typ]
	if !ok {
		return Record{}, false, fmt.Errorf("unknown object type %d", typ)
	}
	rec := Record{
		Kind:    kind,
		Variant: ksegVariant(kind, descend),
		Parents: parents,
		Params:  Params{},
	}
	if typ == ksegLoop {
		rec.Variant = ""
		return rec, false, nil
	}
	if styleID < 0 || styleID >= len(styles) {
		return Record{}, false, fmt.Errorf("style %d out of range", styleID)
	}
	st := styles[styleID]
	rec.Style = document.Style{
		Color: st.pen.color,
		Width: st.pen.width,
		Pen:   qtPenStyle(st.pen.style),
		Shown: visible,
	}

	rec.Name = s.string()
	ksegCoordinate(s) // label position
	if typ&ksegCurve != 0 {
		ksegCoordinate(s)
	}

	switch {
	case typ == ksegPoint && rec.Variant == "free":
		c := ksegCoordinate(s)
		rec.Params["x"], rec.Params["y"] = formatFloat(c.X), formatFloat(c.Y)
	case typ == ksegPoint && rec.Variant == "constrained":
		rec.Params["param"] = formatFloat(s.float64())
	case typ == ksegMeasure:
		c := ksegCoordinate(s)
		rec.Params["x"], rec.Params["y"] = formatFloat(c.X), formatFloat(c.Y)
	case typ&(ksegCircleInterior|ksegArcSector|ksegArcSegment|ksegCalculate|ksegAnnotation) != 0:
		return rec, true, s.err
	}
	if typ == ksegPoint {
		rec.Style.Color = st.brush
		switch st.pointStyle {
		case ksegSmallCircle:
			rec.Style.Width = 2
		case ksegMediumCircle:
			rec.Style.Width = 3
		default:
			rec.Style.Width = 5
		}
	}
	return rec, false, s.err
}

// ---------------------------------------------------------------------------
// Builders
// ---------------------------------------------------------------------------

// KSegBuilders rebuilds KSeg objects.
func KSegBuilders() Builders {
	bs := Builders{
		"loop": func(*Build, Record, []graph.NodeID) (graph.NodeID, error) {
			return graph.NodeID{}, errSkip
		},
		"point/free": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(ksegFormat, r, parents, 0); err != nil {
				return graph.NodeID{}, err
			}
			c, err := r.Params.Coord("x", "y")
			if err != nil {
				return graph.NodeID{}, parseErr(ksegFormat, r, "%v", err)
			}
			return b.FixedPoint(c)
		},
		"point/constrained": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(ksegFormat, r, parents, 1); err != nil {
				return graph.NodeID{}, err
			}
			p, err := r.Params.Float("param")
			if err != nil {
				return graph.NodeID{}, parseErr(ksegFormat, r, "%v", err)
			}
			return b.ConstrainedPoint(parents[0], p)
		},
		"point/intersection":  ksegIntersection(-1),
		"point/intersection2": ksegIntersection(1),
		"point/mid": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(ksegFormat, r, parents, 1); err != nil {
				return graph.NodeID{}, err
			}
			if b.G.Kind(parents[0]) != value.KindSegment {
				return graph.NodeID{}, parseErr(ksegFormat, r, "midpoint of a %s", b.G.Kind(parents[0]))
			}
			return b.Property(parents[0], "mid-point")
		},
		"segment/endpoints":  ksegType("SegmentAB", 2),
		"ray/two-points":     ksegType("RayAB", 2),
		"line/two-points":    ksegType("LineAB", 2),
		"line/parallel":      ksegLinePoint("LineParallelLP"),
		"line/perpendicular": ksegLinePoint("LinePerpendLP"),
		"circle/center-point": ksegType("CircleBCP", 2),
		"arc/three-points":    ksegType("ArcBTP", 3),
		"ray/bisector": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(ksegFormat, r, parents, 3); err != nil {
				return graph.NodeID{}, err
			}
			angle, err := b.Construct("HalfAngle", parents...)
			if err != nil {
				return graph.NodeID{}, err
			}
			return b.Property(angle, "angle-bisector")
		},
		"circle/center-radius": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(ksegFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			point, segment := parents[0], parents[1]
			if b.G.Kind(point) != value.KindPoint {
				point, segment = segment, point
			}
			length, err := b.Property(segment, "length")
			if err != nil {
				return graph.NodeID{}, parseErr(ksegFormat, r, "%v", err)
			}
			return b.Construct("CircleBPR", point, length)
		},
		"polygon": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if len(parents) < 3 {
				return graph.NodeID{}, parseErr(ksegFormat, r, "polygon with %d vertices", len(parents))
			}
			return b.Construct("PolygonBNP", parents...)
		},
		"locus/object": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(ksegFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			return locus(b, parents[0], parents[1])
		},
		"measure/distance": ksegMeasure(2, func(b *Build, parents []graph.NodeID) (graph.NodeID, string, error) {
			seg, err := b.Construct("SegmentAB", parents...)
			return seg, "length", err
		}),
		"measure/length": ksegMeasure(1, func(b *Build, parents []graph.NodeID) (graph.NodeID, string, error) {
			switch b.G.Kind(parents[0]) {
			case value.KindSegment:
				return parents[0], "length", nil
			case value.KindCircle:
				return parents[0], "circumference", nil
			}
			return graph.NodeID{}, "", fmt.Errorf("length of a %s", b.G.Kind(parents[0]))
		}),
		"measure/radius": ksegMeasure(1, func(b *Build, parents []graph.NodeID) (graph.NodeID, string, error) {
			if b.G.Kind(parents[0]) != value.KindCircle {
				return graph.NodeID{}, "", fmt.Errorf("radius of a %s", b.G.Kind(parents[0]))
			}
			return parents[0], "radius", nil
		}),
		"measure/angle": ksegMeasure(3, func(b *Build, parents []graph.NodeID) (graph.NodeID, string, error) {
			angle, err := b.Construct("Angle", parents...)
			return angle, "angle-degrees", err
		}),
		"measure/slope": ksegMeasure(1, func(b *Build, parents []graph.NodeID) (graph.NodeID, string, error) {
			if !b.G.Kind(parents[0]).Inherits(value.KindAbstractLine) {
				return graph.NodeID{}, "", fmt.Errorf("slope of a %s", b.G.Kind(parents[0]))
			}
			return parents[0], "slope", nil
		}),
		"measure/area": ksegMeasure(1, func(b *Build, parents []graph.NodeID) (graph.NodeID, string, error) {
			if b.G.Kind(parents[0]) != value.KindPolygon {
				return graph.NodeID{}, "", fmt.Errorf("area of a %s", b.G.Kind(parents[0]))
			}
			return parents[0], "surface", nil
		}),
	}
	for kind := range ksegVariants {
		if kind == "measure" {
			continue
		}
		for _, t := range ksegTransforms {
			bs[kind+"/"+t] = ksegTransform
		}
	}
	for _, t := range ksegTransforms {
		bs["polygon/"+t] = ksegTransform
	}
	return bs
}

func ksegType(name string, n int) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(ksegFormat, r, parents, n); err != nil {
			return graph.NodeID{}, err
		}
		return b.Construct(name, parents...)
	}
}

// ksegLinePoint builds a type taking a line and a point, given in either
// order.
func ksegLinePoint(name string) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(ksegFormat, r, parents, 2); err != nil {
			return graph.NodeID{}, err
		}
		line, point := parents[0], parents[1]
		if b.G.Kind(line) == value.KindPoint {
			line, point = point, line
		}
		return b.Construct(name, line, point)
	}
}

func ksegIntersection(which int) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(ksegFormat, r, parents, 2); err != nil {
			return graph.NodeID{}, err
		}
		id, err := b.Intersection(parents[0], parents[1], which)
		if err != nil {
			return graph.NodeID{}, parseErr(ksegFormat, r, "%v", err)
		}
		return id, nil
	}
}

func ksegMeasure(n int, target func(b *Build, parents []graph.NodeID) (graph.NodeID, string, error)) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(ksegFormat, r, parents, n); err != nil {
			return graph.NodeID{}, err
		}
		c, err := r.Params.Coord("x", "y")
		if err != nil {
			return graph.NodeID{}, parseErr(ksegFormat, r, "%v", err)
		}
		obj, key, err := target(b, parents)
		if err != nil {
			return graph.NodeID{}, parseErr(ksegFormat, r, "%v", err)
		}
		return b.Label(c, obj, key)
	}
}

// ksegTransform builds the transformed copy of parents[0]; the other
// parents describe the transformation.
func ksegTransform(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
	if len(parents) < 2 {
		return graph.NodeID{}, parseErr(ksegFormat, r, "transformation with %d parents", len(parents))
	}
	obj, rest := parents[0], parents[1:]
	switch r.Variant {
	case "translated":
		if len(rest) != 2 {
			return graph.NodeID{}, parseErr(ksegFormat, r, "translation by %d points", len(rest))
		}
		vec, err := b.Construct("Vector", rest...)
		if err != nil {
			return graph.NodeID{}, err
		}
		return b.Transform("Translation", obj, vec)
	case "rotated":
		if len(rest) != 4 {
			return graph.NodeID{}, parseErr(ksegFormat, r, "rotation with %d parents", len(rest))
		}
		angle, err := b.Construct("Angle", rest[1:]...)
		if err != nil {
			return graph.NodeID{}, err
		}
		return b.Transform("Rotation", obj, rest[0], angle)
	case "scaled":
		if len(rest) != 3 {
			return graph.NodeID{}, &UnsupportedError{Format: ksegFormat, Kind: r.Kind, Variant: r.Variant}
		}
		return b.Transform("ScalingOverCenter2", obj, rest...)
	case "reflected":
		return b.Transform("LineReflection", obj, rest[0])
	}
	return graph.NodeID{}, &UnsupportedError{Format: ksegFormat, Kind: r.Kind, Variant: r.Variant}
}

// locus builds the locus of two points, one of which is constrained to
// a curve and drives the other.
func locus(b *Build, p, q graph.NodeID) (graph.NodeID, error) {
	id, err := b.G.Locus(p, q)
	if errors.Is(err, graph.ErrNotConstrained) || errors.Is(err, graph.ErrNotDependent) {
		id, err = b.G.Locus(q, p)
	}
	return id, err
}
