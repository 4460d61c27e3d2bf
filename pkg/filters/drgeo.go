package filters

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/value"
)

const drgeoFormat = "drgeo"

// xmlElement is a generic XML tree node.
type xmlElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []xmlElement `xml:",any"`
	Text     string       `xml:",chardata"`
}

func (e *xmlElement) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (e *xmlElement) hasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// ReadDrGeo parses the first figure of a Dr. Geo file into records.
// Bounding boxes are dropped.
func ReadDrGeo(r io.Reader) ([]Record, error) {
	var root xmlElement
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, &ParseError{Format: drgeoFormat, Record: -1, Msg: "parse XML", Err: err}
	}
	var figure *xmlElement
	if root.XMLName.Local == "drgeo" {
		figure = &root
	}
	macros := 0
	for i := range root.Children {
		switch root.Children[i].XMLName.Local {
		case "drgeo":
			if figure == nil {
				figure = &root.Children[i]
			}
		case "macro":
			macros++
		}
	}
	if figure == nil {
		msg := "no figures"
		if macros > 0 {
			msg = "macro file without figures"
		}
		return nil, &ParseError{Format: drgeoFormat, Record: -1, Msg: msg}
	}

	index := make(map[string]int)
	var records []Record
	anonymous := 0
	for _, el := range figure.Children {
		if el.XMLName.Local == "boundingBox" {
			continue
		}
		i := len(records)
		id := el.attr("id")
		if !el.hasAttr("id") {
			id = fmt.Sprintf("#%d", anonymous)
			anonymous++
		}
		rec := Record{
			Kind:    el.XMLName.Local,
			Variant: el.attr("type"),
			Params:  Params{},
			Style:   drgeoStyle(&el),
			Name:    el.attr("name"),
		}
		for _, c := range el.Children {
			switch c.XMLName.Local {
			case "parent":
				ref := c.attr("ref")
				p, ok := index[ref]
				if !ok {
					return nil, &ParseError{Format: drgeoFormat, Record: i, Msg: fmt.Sprintf("unknown parent %q", ref)}
				}
				rec.Parents = append(rec.Parents, p)
			case "x", "y", "value", "code":
				rec.Params[c.XMLName.Local] = strings.TrimSpace(c.Text)
			}
		}
		if el.hasAttr("extra") {
			rec.Params["extra"] = el.attr("extra")
		}
		index[id] = i
		records = append(records, rec)
	}
	return records, nil
}

var drgeoColors = map[string]color.RGBA{
	"black":     {A: 255},
	"white":     {R: 255, G: 255, B: 255, A: 255},
	"red":       {R: 255, A: 255},
	"green":     {G: 128, A: 255},
	"darkgreen": {G: 100, A: 255},
	"blue":      {B: 255, A: 255},
	"darkblue":  {B: 139, A: 255},
	"yellow":    {R: 255, G: 255, A: 255},
	"orange":    {R: 255, G: 165, A: 255},
	"grey":      {R: 128, G: 128, B: 128, A: 255},
	"darkgrey":  {R: 169, G: 169, B: 169, A: 255},
	"bordeaux":  {R: 128, B: 32, A: 255},
}

var drgeoPointStyles = map[string]document.PointStyle{
	"Round":            document.PointRound,
	"RoundEmpty":       document.PointRoundEmpty,
	"Rectangular":      document.PointRectangular,
	"RectangularEmpty": document.PointRectangularEmpty,
	"Cross":            document.PointCross,
}

func drgeoStyle(el *xmlElement) document.Style {
	st := document.DefaultStyle()
	if c, ok := drgeoColors[strings.ToLower(el.attr("color"))]; ok {
		st.Color = c
	} else if c, err := document.ParseColor(el.attr("color")); err == nil {
		st.Color = c
	}
	thickness := el.attr("thickness")
	switch el.XMLName.Local {
	case "point":
		switch thickness {
		case "Normal":
			st.Width = 7
		case "Thick":
			st.Width = 9
		}
	case "line", "halfLine", "segment", "vector", "circle", "arcCircle", "angle":
		switch thickness {
		case "Dashed":
			st.Pen = document.PenDot
		case "Thick":
			st.Width = 2
		}
	}
	st.Point = drgeoPointStyles[el.attr("style")]
	masked := el.attr("masked")
	st.Shown = masked != "True" && masked != "Alway"
	return st
}

// ---------------------------------------------------------------------------
// Builders
// ---------------------------------------------------------------------------

// DrGeoBuilders rebuilds Dr. Geo elements.
func DrGeoBuilders() Builders {
	bs := Builders{
		"point/Free": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			c, err := r.Params.Coord("x", "y")
			if err != nil {
				return graph.NodeID{}, parseErr(drgeoFormat, r, "%v", err)
			}
			return b.FixedPoint(c)
		},
		"point/Middle_2pts": drgeoType("MidPoint", 2),
		"point/Middle_segment": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(drgeoFormat, r, parents, 1); err != nil {
				return graph.NodeID{}, err
			}
			if b.G.Kind(parents[0]) != value.KindSegment {
				return graph.NodeID{}, parseErr(drgeoFormat, r, "middle of a %s", b.G.Kind(parents[0]))
			}
			a, err := b.Property(parents[0], "end-point-A")
			if err != nil {
				return graph.NodeID{}, err
			}
			c, err := b.Property(parents[0], "end-point-B")
			if err != nil {
				return graph.NodeID{}, err
			}
			return b.Construct("MidPoint", a, c)
		},
		"point/On_curve": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(drgeoFormat, r, parents, 1); err != nil {
				return graph.NodeID{}, err
			}
			p, err := r.Params.Float("value")
			if err != nil {
				return graph.NodeID{}, parseErr(drgeoFormat, r, "%v", err)
			}
			switch b.G.Kind(parents[0]) {
			case value.KindCircle, value.KindSegment:
				return b.ConstrainedPoint(parents[0], p)
			case value.KindArc:
				// arcs run the other way
				return b.ConstrainedPoint(parents[0], 1-p)
			}
			return graph.NodeID{}, &UnsupportedError{Format: drgeoFormat, Kind: r.Kind, Variant: r.Variant + " on " + b.G.Kind(parents[0]).String()}
		},
		"point/Intersection": drgeoIntersection,
		"line/2pts":          drgeoType("LineAB", 2),
		"halfLine/2pts":      drgeoType("RayAB", 2),
		"segment/2pts":       drgeoType("SegmentAB", 2),
		"vector/2pts":        drgeoType("Vector", 2),
		"circle/2pts":        drgeoType("CircleBCP", 2),
		"arcCircle/3pts":     drgeoType("ArcBTP", 3),
		"circle/segment": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(drgeoFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			length, err := b.Property(parents[1], "length")
			if err != nil {
				return graph.NodeID{}, parseErr(drgeoFormat, r, "%v", err)
			}
			return b.Construct("CircleBPR", parents[0], length)
		},
		"line/perpendicular": drgeoLinePoint("LinePerpendLP"),
		"line/parallel":      drgeoLinePoint("LineParallelLP"),
		"angle/3pts":         drgeoType("Angle", 3),
		"script/nitems": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			c, err := r.Params.Coord("x", "y")
			if err != nil {
				return graph.NodeID{}, parseErr(drgeoFormat, r, "%v", err)
			}
			return b.Text(c, r.Params["code"])
		},
		"locus/None": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if err := wantParents(drgeoFormat, r, parents, 2); err != nil {
				return graph.NodeID{}, err
			}
			return locus(b, parents[0], parents[1])
		},
		"polygon": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			if len(parents) < 3 {
				return graph.NodeID{}, parseErr(drgeoFormat, r, "polygon with %d vertices", len(parents))
			}
			return b.Construct("PolygonBNP", parents...)
		},
		"numeric/value": func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
			c, err := r.Params.Coord("x", "y")
			if err != nil {
				return graph.NodeID{}, parseErr(drgeoFormat, r, "%v", err)
			}
			text := r.Params["value"]
			if f, err := strconv.ParseFloat(text, 64); err == nil {
				text = strconv.FormatFloat(f, 'g', 3, 64)
			}
			return b.Text(c, text)
		},
		"numeric/distance_2pts": drgeoMeasure(2, func(b *Build, parents []graph.NodeID) (graph.NodeID, error) {
			return b.Construct("SegmentAB", parents...)
		}, "length"),
		"numeric/distance_pt_line": drgeoMeasure(2, func(b *Build, parents []graph.NodeID) (graph.NodeID, error) {
			point, line := parents[0], parents[1]
			perp, err := b.Construct("LinePerpendLP", line, point)
			if err != nil {
				return graph.NodeID{}, err
			}
			foot, err := b.Construct("LineLineIntersection", line, perp)
			if err != nil {
				return graph.NodeID{}, err
			}
			return b.Construct("SegmentAB", point, foot)
		}, "length"),
	}
	for typ, key := range map[string]string{
		"numeric/pt_abscissa":      "coordinate-x",
		"numeric/pt_ordinate":      "coordinate-y",
		"numeric/segment_length":   "length",
		"numeric/circle_perimeter": "circumference",
		"numeric/arc_length":       "arc-length",
		"numeric/vector_norm":      "length",
		"numeric/vector_abscissa":  "length-x",
		"numeric/vector_ordinate":  "length-y",
		"numeric/slope":            "slope",
		"equation/line":            "equation",
		"equation/circle":          "simply-cartesian-equation",
	} {
		bs[typ] = drgeoMeasure(1, nil, key)
	}
	for _, tag := range []string{"point", "line", "halfLine", "segment", "vector", "circle", "arcCircle"} {
		bs[tag+"/Reflexion"] = drgeoTransform("LineReflection")
		bs[tag+"/Symmetry"] = drgeoTransform("PointReflection")
		bs[tag+"/Translation"] = drgeoTransform("Translation")
		bs[tag+"/Rotation"] = drgeoTransform("Rotation")
	}
	return bs
}

func drgeoType(name string, n int) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(drgeoFormat, r, parents, n); err != nil {
			return graph.NodeID{}, err
		}
		return b.Construct(name, parents...)
	}
}

func drgeoLinePoint(name string) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(drgeoFormat, r, parents, 2); err != nil {
			return graph.NodeID{}, err
		}
		line, point := parents[0], parents[1]
		if b.G.Kind(line) == value.KindPoint {
			line, point = point, line
		}
		return b.Construct(name, line, point)
	}
}

// drgeoSide maps Dr. Geo's intersection index to a branch selector.
func drgeoSide(r Record) (int, error) {
	extra, err := r.Params.Int("extra")
	if err != nil {
		return 0, parseErr(drgeoFormat, r, "%v", err)
	}
	switch extra {
	case 0:
		return -1, nil
	case 1:
		return 1, nil
	}
	return 0, parseErr(drgeoFormat, r, "intersection index %d", extra)
}

func drgeoIntersection(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
	if err := wantParents(drgeoFormat, r, parents, 2); err != nil {
		return graph.NodeID{}, err
	}
	a, c := parents[0], parents[1]
	ka, kc := b.G.Kind(a), b.G.Kind(c)
	lineA, lineC := ka.Inherits(value.KindAbstractLine), kc.Inherits(value.KindAbstractLine)
	switch {
	case lineA && lineC:
		return b.Construct("LineLineIntersection", a, c)
	case ka == value.KindCircle && kc == value.KindCircle:
		side, err := drgeoSide(r)
		if err != nil {
			return graph.NodeID{}, err
		}
		return b.Construct("CircleCircleIntersection", a, c, b.Const(value.Int(side)))
	case ka == value.KindCircle && lineC, lineA && kc == value.KindCircle:
		side, err := drgeoSide(r)
		if err != nil {
			return graph.NodeID{}, err
		}
		if lineA {
			a, c = c, a
		}
		return b.Construct("ConicLineIntersection", a, c, b.Const(value.Int(side)))
	}
	return graph.NodeID{}, &UnsupportedError{Format: drgeoFormat, Kind: r.Kind, Variant: fmt.Sprintf("%s of %s and %s", r.Variant, ka, kc)}
}

// drgeoMeasure labels a property of the first parent, or of the object
// target builds from the parents.
func drgeoMeasure(n int, target func(b *Build, parents []graph.NodeID) (graph.NodeID, error), key string) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if err := wantParents(drgeoFormat, r, parents, n); err != nil {
			return graph.NodeID{}, err
		}
		c, err := r.Params.Coord("x", "y")
		if err != nil {
			return graph.NodeID{}, parseErr(drgeoFormat, r, "%v", err)
		}
		obj := parents[0]
		if target != nil {
			if obj, err = target(b, parents); err != nil {
				return graph.NodeID{}, err
			}
		}
		id, err := b.Label(c, obj, key)
		if err != nil {
			return graph.NodeID{}, parseErr(drgeoFormat, r, "%v", err)
		}
		return id, nil
	}
}

// drgeoTransform applies a transformation to the first parent; the
// remaining parents describe it.
func drgeoTransform(name string) Builder {
	return func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error) {
		if len(parents) < 2 {
			return graph.NodeID{}, parseErr(drgeoFormat, r, "transformation with %d parents", len(parents))
		}
		return b.Transform(name, parents[0], parents[1:]...)
	}
}
