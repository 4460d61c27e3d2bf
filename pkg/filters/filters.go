// Package filters imports documents written by other geometry programs.
// A reader turns a file into a flat list of Records, each naming its
// parents by index; Reconstruct then replays the records against a fresh
// graph with the reader's builders.
package filters

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/value"
)

// ParseError reports a malformed file or record.
type ParseError struct {
	Format string
	Record int // -1 when the error is not tied to a record
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	s := e.Format + ": "
	if e.Record >= 0 {
		s += fmt.Sprintf("record %d: ", e.Record)
	}
	s += e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedError reports an object the importer cannot represent.
type UnsupportedError struct {
	Format  string
	Kind    string
	Variant string
}

func (e *UnsupportedError) Error() string {
	if e.Variant == "" {
		return fmt.Sprintf("%s: unsupported object %q", e.Format, e.Kind)
	}
	return fmt.Sprintf("%s: unsupported object %q of type %q", e.Format, e.Kind, e.Variant)
}

// Params holds the literal fields of a record as text. Numbers are
// parsed when a builder asks for them.
type Params map[string]string

// Float parses the field key.
func (p Params) Float(key string) (float64, error) {
	s, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return f, nil
}

// Int parses the field key.
func (p Params) Int(key string) (int, error) {
	s, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return i, nil
}

// Coord parses the fields x and y.
func (p Params) Coord(x, y string) (geom.Coordinate, error) {
	cx, err := p.Float(x)
	if err != nil {
		return geom.Coordinate{}, err
	}
	cy, err := p.Float(y)
	if err != nil {
		return geom.Coordinate{}, err
	}
	return geom.Coordinate{X: cx, Y: cy}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Record is one object of an imported file.
type Record struct {
	Kind    string
	Variant string
	Parents []int // indices of earlier records
	Params  Params
	Style   document.Style
	Name    string
}

// Builder turns a record into a node. parents holds the nodes of the
// records named by r.Parents. A builder returns the zero NodeID for a
// record that yields nothing.
type Builder func(b *Build, r Record, parents []graph.NodeID) (graph.NodeID, error)

// Builders maps a record kind to its builder. A key "kind/variant" takes
// precedence over a bare kind.
type Builders map[string]Builder

func (bs Builders) lookup(r Record) (Builder, bool) {
	if f, ok := bs[r.Kind+"/"+r.Variant]; ok {
		return f, true
	}
	f, ok := bs[r.Kind]
	return f, ok
}

// errSkip marks a record that builds nothing and has no holder.
var errSkip = errors.New("skip record")

// Build is the state shared by the builders of one reconstruction.
type Build struct {
	Format string
	Doc    *document.Document
	G      *graph.Graph
	Log    *slog.Logger
}

// Const adds a const node.
func (b *Build) Const(v value.Value) graph.NodeID {
	return b.G.Const(v)
}

// Construct adds a type node.
func (b *Build) Construct(name string, parents ...graph.NodeID) (graph.NodeID, error) {
	return b.G.Construct(name, parents)
}

// Property adds a property node.
func (b *Build) Property(parent graph.NodeID, key string) (graph.NodeID, error) {
	return b.G.Property(parent, key)
}

// FixedPoint adds a free point at c.
func (b *Build) FixedPoint(c geom.Coordinate) (graph.NodeID, error) {
	return b.Construct("FixedPoint", b.Const(value.Double(c.X)), b.Const(value.Double(c.Y)))
}

// ConstrainedPoint adds a point at parameter p of curve.
func (b *Build) ConstrainedPoint(curve graph.NodeID, p float64) (graph.NodeID, error) {
	return b.Construct("ConstrainedPoint", b.Const(value.Double(p)), curve)
}

// Label adds a text label at c showing the given property of parent.
func (b *Build) Label(c geom.Coordinate, parent graph.NodeID, key string) (graph.NodeID, error) {
	prop, err := b.Property(parent, key)
	if err != nil {
		return graph.NodeID{}, err
	}
	return b.Construct("TextLabel", b.Const(value.NewPoint(c)), b.Const(value.String("%1")), prop)
}

// Text adds a plain text label at c.
func (b *Build) Text(c geom.Coordinate, text string) (graph.NodeID, error) {
	return b.Construct("TextLabel", b.Const(value.NewPoint(c)), b.Const(value.String(text)))
}

// Intersection adds intersection point which (-1 or +1) of a and b.
// Two lines have a single intersection, asked for with -1.
func (b *Build) Intersection(a, c graph.NodeID, which int) (graph.NodeID, error) {
	ka, kc := b.G.Kind(a), b.G.Kind(c)
	lines := 0
	for _, k := range []value.Kind{ka, kc} {
		switch {
		case k.Inherits(value.KindAbstractLine):
			lines++
		case k.Inherits(value.KindConic), k.Inherits(value.KindArc):
		default:
			return graph.NodeID{}, fmt.Errorf("cannot intersect %s and %s", ka, kc)
		}
	}
	if lines == 2 {
		if which != -1 {
			return graph.NodeID{}, fmt.Errorf("two lines have one intersection")
		}
		return b.Construct("LineLineIntersection", a, c)
	}
	return b.Construct("Intersection", a, c, b.Const(value.Int(which)))
}

// Transform applies the transformation type name, built from args, to
// obj.
func (b *Build) Transform(name string, obj graph.NodeID, args ...graph.NodeID) (graph.NodeID, error) {
	return b.Construct(name, append(args, obj)...)
}

// Option configures Reconstruct.
type Option func(*Build)

// WithLogger sets the logger of the reconstruction and its graph.
func WithLogger(l *slog.Logger) Option {
	return func(b *Build) { b.Log = l }
}

// Reconstruct replays records into a new document. On any error no
// document is returned.
func Reconstruct(format string, records []Record, builders Builders, reg *construct.Registry, opts ...Option) (*document.Document, error) {
	b := &Build{Format: format, Log: slog.Default()}
	for _, o := range opts {
		o(b)
	}
	b.Doc = document.New(reg, b.Log)
	b.G = b.Doc.Graph()

	nodes := make([]graph.NodeID, len(records))
	for i, r := range records {
		parents := make([]graph.NodeID, len(r.Parents))
		for j, p := range r.Parents {
			if p < 0 || p >= i {
				return nil, &ParseError{Format: format, Record: i, Msg: fmt.Sprintf("parent index %d out of range", p)}
			}
			if nodes[p].IsZero() {
				return nil, &ParseError{Format: format, Record: i, Msg: fmt.Sprintf("parent %d has no object", p)}
			}
			parents[j] = nodes[p]
		}
		build, ok := builders.lookup(r)
		if !ok {
			err := &UnsupportedError{Format: format, Kind: r.Kind, Variant: r.Variant}
			b.Log.Warn("import aborted", "format", format, "record", i, "err", err)
			return nil, err
		}
		id, err := build(b, r, parents)
		switch {
		case errors.Is(err, errSkip):
			b.Log.Debug("record skipped", "format", format, "record", i, "kind", r.Kind)
			continue
		case err != nil:
			var ue *UnsupportedError
			var pe *ParseError
			switch {
			case errors.As(err, &pe):
				if pe.Record < 0 {
					pe.Record = i
				}
			case !errors.As(err, &ue):
				err = &ParseError{Format: format, Record: i, Msg: "build " + r.Kind, Err: err}
			}
			b.Log.Warn("import aborted", "format", format, "record", i, "err", err)
			return nil, err
		}
		nodes[i] = id
		h, err := b.Doc.Add(id, r.Style)
		if err != nil {
			return nil, &ParseError{Format: format, Record: i, Msg: "add object", Err: err}
		}
		if r.Name != "" {
			if err := b.Doc.SetName(h, r.Name); err != nil {
				return nil, &ParseError{Format: format, Record: i, Msg: "name object", Err: err}
			}
		}
		b.Log.Debug("record imported", "format", format, "record", i, "kind", r.Kind, "variant", r.Variant, "node", id)
	}
	b.G.Collect()
	if err := checkGraph(b.G); err != nil {
		b.Log.Error("imported graph is corrupt", "format", format, "err", err)
		return nil, &ParseError{Format: format, Record: -1, Msg: "validate graph", Err: err}
	}
	return b.Doc, nil
}

// checkGraph runs the structural checks on an imported graph.
var checkGraph = graph.Check

// parseErr builds a ParseError for the record being built.
func parseErr(format string, r Record, msg string, args ...any) error {
	return &ParseError{Format: format, Record: -1, Msg: fmt.Sprintf("%s %s: ", r.Kind, r.Variant) + fmt.Sprintf(msg, args...)}
}

// wantParents checks the parent count of r.
func wantParents(format string, r Record, parents []graph.NodeID, n int) error {
	if len(parents) != n {
		return parseErr(format, r, "want %d parents, got %d", n, len(parents))
	}
	return nil
}
