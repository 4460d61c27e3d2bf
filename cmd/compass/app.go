package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/chazu/compass/internal/config"
	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/engine"
	"github.com/chazu/compass/pkg/filters"
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/locus"
	"github.com/chazu/compass/pkg/value"
)

// App is the backend shared by the commands. It turns scripts and
// imported files into plain HolderView records.
type App struct {
	cfg    *config.Config
	log    *slog.Logger
	reg    *construct.Registry
	engine *engine.Engine

	// SampleLoci makes views of loci carry their sample count.
	SampleLoci bool
}

// HolderView is one drawable object of a result.
type HolderView struct {
	ID      string
	Name    string
	Type    string
	Kind    string
	Value   string
	Shown   bool
	Samples int
}

// ErrorView is a script error with its location.
type ErrorView struct {
	Line    int
	Col     int
	Message string
}

// Result is what a command prints.
type Result struct {
	Holders []HolderView
	Errors  []ErrorView
}

// OK reports whether the result carries no errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// NewApp creates an App from cfg. A nil logger logs nowhere.
func NewApp(cfg *config.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	reg := construct.DefaultRegistry()
	return &App{
		cfg: cfg,
		log: log,
		reg: reg,
		engine: engine.NewEngine(
			engine.WithRegistry(reg),
			engine.WithLogger(log),
			engine.WithTimeout(cfg.EvalTimeout),
		),
	}
}

// Evaluate runs a construction script.
func (a *App) Evaluate(source string) Result {
	doc, result := a.evaluate(source)
	if doc != nil {
		result.Holders = a.views(doc, doc.Holders())
	}
	return result
}

func (a *App) evaluate(source string) (*document.Document, Result) {
	result := Result{Holders: []HolderView{}, Errors: []ErrorView{}}

	doc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, ErrorView{Message: err.Error()})
		return nil, result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ErrorView{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return nil, result
	}
	return doc, result
}

// EvaluateFile runs the script at path.
func (a *App) EvaluateFile(path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return a.Evaluate(string(src)), nil
}

// Hit runs the script at path and keeps the shown objects passing within
// the configured tolerance of c, topmost first.
func (a *App) Hit(path string, c geom.Coordinate) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, result := a.evaluate(string(src))
	if doc != nil {
		result.Holders = a.views(doc, doc.HitTest(c, a.cfg.HitTolerance))
	}
	return result, nil
}

// Import reconstructs the file at path, picking the format from its
// extension. Unsupported objects and malformed files come back as result
// errors; a missing file or an unknown extension is an error.
func (a *App) Import(path string) (Result, error) {
	return a.imported(filters.Load(path, a.reg, filters.WithLogger(a.log)))
}

func (a *App) importAs(format, path string) (Result, error) {
	im, err := filters.ForName(format)
	if err != nil {
		return Result{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return a.imported(filters.Import(im, f, a.reg, filters.WithLogger(a.log)))
}

func (a *App) imported(doc *document.Document, err error) (Result, error) {
	result := Result{Holders: []HolderView{}, Errors: []ErrorView{}}
	var (
		pe *filters.ParseError
		ue *filters.UnsupportedError
	)
	switch {
	case errors.As(err, &pe), errors.As(err, &ue):
		result.Errors = append(result.Errors, ErrorView{Message: err.Error()})
		return result, nil
	case err != nil:
		return result, err
	}

	result.Holders = a.views(doc, doc.Holders())
	return result, nil
}

// Types lists the registered construction types as signatures.
func (a *App) Types() []string {
	types := a.reg.Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = signature(t)
	}
	return out
}

func signature(t *construct.Type) string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		s := arg.Kind.String()
		switch {
		case arg.Variadic:
			s += "..."
		case arg.Optional:
			s += "?"
		}
		args[i] = s
	}
	return fmt.Sprintf("%s(%s) %s", t.Name, strings.Join(args, ", "), t.Result)
}

func (a *App) views(doc *document.Document, hs []*document.Holder) []HolderView {
	g := doc.Graph()
	var sampler *locus.Sampler
	if a.SampleLoci {
		sampler = a.cfg.Sampler(a.log)
	}

	out := make([]HolderView, 0, len(hs))
	for _, h := range hs {
		v := doc.Value(h)
		view := HolderView{
			ID:    h.ID.String(),
			Name:  doc.Name(h),
			Type:  typeName(g, h.Node),
			Kind:  v.Kind().String(),
			Value: v.String(),
			Shown: h.Style.Shown,
		}
		if l, ok := v.(value.Locus); ok && sampler != nil {
			view.Samples = len(sampler.SampleValue(l, a.cfg.Viewport()))
		}
		out = append(out, view)
	}
	return out
}

func typeName(g *graph.Graph, id graph.NodeID) string {
	if t := g.Type(id); t != nil {
		return t.Name
	}
	kind, err := g.NodeKind(id)
	if err != nil {
		return "?"
	}
	if kind == graph.PropertyNode {
		return "property:" + g.PropertyKey(id)
	}
	return kind.String()
}

// ---------------------------------------------------------------------------
// Output
// ---------------------------------------------------------------------------

// Print writes r to w, one holder per line.
func Print(w io.Writer, r Result) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "%s line %d: %s\n", color.RedString("error"), e.Line, e.Message)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", color.RedString("error"), e.Message)
	}
	for i, h := range r.Holders {
		name := h.Name
		if name == "" {
			name = "-"
		}
		line := fmt.Sprintf("%3d %-8s %-26s %-12s %s", i, name, h.Type, h.Kind, h.Value)
		if h.Samples > 0 {
			line += fmt.Sprintf(" [%d samples]", h.Samples)
		}
		if !h.Shown {
			line = color.HiBlackString("%s (hidden)", line)
		}
		fmt.Fprintln(w, line)
	}
}
