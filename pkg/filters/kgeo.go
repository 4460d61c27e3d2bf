package filters

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/value"
)

const kgeoFormat = "kgeo"

// KGeo object ids.
const (
	kgeoPoint         = 1
	kgeoSegment       = 2
	kgeoCircle        = 3
	kgeoLine          = 4
	kgeoFixedCircle   = 5
	kgeoArc           = 6
	kgeoTriangle      = 7
	kgeoPointOfConc   = 8
	kgeoBisection     = 9
	kgeoMoveObject    = 10
	kgeoRotation      = 11
	kgeoMirrorPoint   = 12
	kgeoVector        = 13
	kgeoParallel      = 14
	kgeoPerpendicular = 15
	kgeoDistance      = 16
	kgeoAngle         = 17
	kgeoArea          = 18
	kgeoSlope         = 19
	kgeoCircumference = 20
	kgeoText          = 21
)

var kgeoKinds = map[int]string{
	kgeoPoint:         "point",
	kgeoSegment:       "segment",
	kgeoCircle:        "circle",
	kgeoLine:          "line",
	kgeoFixedCircle:   "fixed-circle",
	kgeoArc:           "arc",
	kgeoTriangle:      "triangle",
	kgeoPointOfConc:   "intersection",
	kgeoBisection:     "mid-point",
	kgeoMoveObject:    "translation",
	kgeoRotation:      "rotation",
	kgeoMirrorPoint:   "mirror",
	kgeoVector:        "vector",
	kgeoParallel:      "parallel",
	kgeoPerpendicular: "perpendicular",
	kgeoDistance:      "distance",
	kgeoAngle:         "angle",
	kgeoArea:          "area",
	kgeoSlope:         "slope",
	kgeoCircumference: "circumference",
	kgeoText:          "text",
}

// kgeoCoord adds the fields x and y, mapping KGeo's 800 by 600 screen
// position into the default viewport.
func kgeoCoord(p Params) error {
	for _, k := range []string{"QPointX", "QPointY"} {
		if _, ok := p[k]; !ok {
			return nil
		}
	}
	c, err := p.Coord("QPointX", "QPointY")
	if err != nil {
		return err
	}
	p["x"] = formatFloat(c.X*14/600 - 28.0/3)
	p["y"] = formatFloat((600-c.Y)*14/600 - 7)
	return nil
}

// iniSections reads a KConfig file into its groups.
func iniSections(r io.Reader) (map[string]map[string]string, error) {
	sections := map[string]map[string]string{}
	var cur map[string]string
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		switch {
		case s == "", strings.HasPrefix(s, "#"), strings.HasPrefix(s, ";"):
			continue
		case strings.HasPrefix(s, "["):
			if !strings.HasSuffix(s, "]") {
				return nil, fmt.Errorf("line %d: malformed group %q", line, s)
			}
			name := s[1 : len(s)-1]
			cur = map[string]string{}
			sections[name] = cur
		default:
			k, v, ok := strings.Cut(s, "=")
			if !ok {
				return nil, fmt.Errorf("line %d: expected key=value", line)
			}
			if cur == nil {
				return nil, fmt.Errorf("line %d: entry outside a group", line)
			}
			cur[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return sections, sc.Err()
}

// ReadKGeo parses a KGeo file. Objects are numbered from 1 and name
// their parents by number; 0 stands for no parent.
func ReadKGeo(r io.Reader) ([]Record, error) {
	sections, err := iniSections(r)
	if err != nil {
		return nil, &ParseError{Format: kgeoFormat, Record: -1, Msg: "parse", Err: err}
	}
	main, ok := sections["Main"]
	if !ok {
		return nil, &ParseError{Format: kgeoFormat, Record: -1, Msg: "missing group Main"}
	}
	n, err := strconv.Atoi(main["Number"])
	if err != nil || n < 0 {
		return nil, &ParseError{Format: kgeoFormat, Record: -1, Msg: fmt.Sprintf("bad object count %q", main["Number"])}
	}

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		sec, ok := sections[fmt.Sprintf("Object %d", i+1)]
		if !ok {
			return nil, &ParseError{Format: kgeoFormat, Record: i, Msg: "missing group"}
		}
		geo, err := strconv.Atoi(sec["Geo"])
		if err != nil {
			return nil, &ParseError{Format: kgeoFormat, Record: i, Msg: fmt.Sprintf("bad object id %q", sec["Geo"])}
		}
		kind, ok := kgeoKinds[geo]
		if !ok {
			kind = "geo-" + strconv.Itoa(geo)
		}
		rec := Record{Kind: kind, Params: Params{}, Style: document.DefaultStyle()}
		for _, f := range strings.Split(sec["Parents"], ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			p, err := strconv.Atoi(f)
			if err != nil {
				return nil, &ParseError{Format: kgeoFormat, Record: i, Msg: fmt.Sprintf("bad parent %q", f)}
			}
			if p == 0 {
				continue
			}
			rec.Parents = append(rec.Parents, p-1)
		}
		for _, k := range []string{"QPointX", "QPointY", "Param", "Radius", "Text"} {
			if v, ok := sec[k]; ok {
				rec.Params[k] = v
			}
		}
		if err := kgeoCoord(rec.Params); err != nil {
			return nil, &ParseError{Format: kgeoFormat, Record: i, Msg: "position", Err: err}
		}
		if c, ok := sec["Color"]; ok {
			col, err := kgeoColor(c)
			if err != nil {
				return nil, &ParseError{Format: kgeoFormat, Record: i, Msg: "color", Err: err}
			}
			rec.Style.Color = col
		}
		if v, ok := sec["Visible"]; ok {
			rec.Style.Shown = v != "false"
		}
		records = append(records, rec)
	}
	return records, nil
}

// kgeoColor reads "r,g,b" or "#rrggbb".
func kgeoColor(s string) (color.RGBA, error) {
	if strings.HasPrefix(s, "#") {
		return document.ParseColor(s)
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("malformed color %q", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("malformed color %q", s)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// ---------------------------------------------------------------------------
// Builders
// ---------------------------------------------------------------------------

// KGeoBuilders rebuilds KGeo objects.
func KGeoBuilders() Builders {
	return Builders{
		"point": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			switch len(parents) {
			case 0:
				c, err := r.Params.Coord("x", "y")
				if err != nil {
					return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
				}
				return b.FixedPoint(c)
			case 1:
				p, err := r.Params.Float("Param")
				if err != nil {
					return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
				}
				return b.ConstrainedPoint(parents[0], p)
			}
			return graph.NodeID{}, parseErr(kgeoFormat, r, "point with %d parents", len(parents))
		},
		"segment":   kgeoType("SegmentAB", 2),
		"line":      kgeoType("LineAB", 2),
		"vector":    kgeoType("Vector", 2),
		"circle":    kgeoType("CircleBCP", 2),
		"arc":       kgeoType("ArcBTP", 3),
		"triangle":  kgeoType("TriangleB3P", 3),
		"mid-point": kgeoType("MidPoint", 2),
		"fixed-circle": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(kgeoFormat, r, parents, 1); err != nil {
				return graph.NodeID{}, err
			}
			radius, err := r.Params.Float("Radius")
			if err != nil {
				return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
			}
			return b.Construct("CircleBPR", parents[0], b.Const(value.Double(radius*14/600)))
		},
		"intersection": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(kgeoFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			which := -1
			if v, ok := r.Params["Param"]; ok && v != "0" {
				which = 1
			}
			id, err := b.Intersection(parents[0], parents[1], which)
			if err != nil {
				return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
			}
			return id, nil
		},
		"parallel":      kgeoLinePoint("LineParallelLP"),
		"perpendicular": kgeoLinePoint("LinePerpendLP"),
		"translation": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(kgeoFormat, r, parents, 3); err != nil {
				return graph.NodeID{}, err
			}
			vec, err := b.Construct("Vector", parents[1], parents[2])
			if err != nil {
				return graph.NodeID{}, err
			}
			return b.Transform("Translation", parents[0], vec)
		},
		"rotation": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(kgeoFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			deg, err := r.Params.Float("Param")
			if err != nil {
				return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
			}
			angle := b.Const(value.Angle{Size: deg * math.Pi / 180})
			return b.Transform("Rotation", parents[0], parents[1], angle)
		},
		"mirror": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(kgeoFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			obj, mirror := parents[0], parents[1]
			if b.G.Kind(mirror) == value.KindPoint {
				return b.Transform("PointReflection", obj, mirror)
			}
			return b.Transform("LineReflection", obj, mirror)
		},
		"distance": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(kgeoFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			seg, err := b.Construct("SegmentAB", parents...)
			if err != nil {
				return graph.NodeID{}, err
			}
			return kgeoLabel(b, r, seg, "length")
		},
		"angle": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(kgeoFormat, r, parents, 3); err != nil {
				return graph.NodeID{}, err
			}
			return b.Construct("Angle", parents...)
		},
		"area":          kgeoMeasure("surface"),
		"slope":         kgeoMeasure("slope"),
		"circumference": kgeoMeasure("circumference"),
		"text": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			c, err := r.Params.Coord("x", "y")
			if err != nil {
				return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
			}
			return b.Text(c, r.Params["Text"])
		},
	}
}

func kgeoType(name string, n int) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(kgeoFormat, r, parents, n); err != nil {
			return graph.NodeID{}, err
		}
		return b.Construct(name, parents...)
	}
}

func kgeoLinePoint(name string) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(kgeoFormat, r, parents, 2); err != nil {
			return graph.NodeID{}, err
		}
		line, point := parents[0], parents[1]
		if b.G.Kind(line) == value.KindPoint {
			line, point = point, line
		}
		return b.Construct(name, line, point)
	}
}

func kgeoMeasure(key string) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(kgeoFormat, r, parents, 1); err != nil {
			return graph.NodeID{}, err
		}
		return kgeoLabel(b, r, parents[0], key)
	}
}

func kgeoLabel(b *Build, r Record, obj graph.NodeID, key string) (graph.NodeID, error) {
	c, err := r.Params.Coord("x", "y")
	if err != nil {
		return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
	}
	id, err := b.Label(c, obj, key)
	if err != nil {
		return graph.NodeID{}, parseErr(kgeoFormat, r, "%v", err)
	}
	return id, nil
}
