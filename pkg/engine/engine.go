// Package engine evaluates construction scripts. It wraps zygomys in a
// sandboxed environment whose builtins build a document: every point,
// construction, property or locus a script creates becomes a holder.
package engine

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a non-fatal error in a script: a parse error or a
// runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates scripts. It is safe for concurrent use; each call to
// Evaluate runs in a fresh sandbox.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	reg     *construct.Registry
	log     *slog.Logger
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the construction types scripts may use.
func WithRegistry(reg *construct.Registry) Option {
	return func(e *Engine) { e.reg = reg }
}

// WithLogger sets the logger of the engine and of the documents it
// builds.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithTimeout bounds a single evaluation.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// NewEngine creates an Engine using the default registry.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout}
	for _, o := range opts {
		o(e)
	}
	if e.reg == nil {
		e.reg = construct.DefaultRegistry()
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	return e
}

// Evaluate runs source and returns the document it built.
//
// Return semantics:
//   - On success: returns document + nil errors + nil error
//   - On parse/eval failure: returns nil document + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*document.Document, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		doc, evalErrs, err := e.evaluate(source)
		ch <- evalResult{doc: doc, errors: evalErrs, err: err}
	}()

	doc, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
	switch {
	case err != nil:
		e.log.Error("evaluation failed", "generation", gen, "err", err)
	case len(evalErrs) > 0:
		e.log.Warn("script error", "generation", gen, "err", evalErrs[0])
	default:
		e.log.Debug("script evaluated", "generation", gen, "holders", doc.Len())
	}
	return doc, evalErrs, err
}

// evaluate runs source in a fresh sandbox.
func (e *Engine) evaluate(source string) (*document.Document, []EvalError, error) {
	doc := document.New(e.reg, e.log)
	if strings.TrimSpace(source) == "" {
		return doc, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, newScene(doc))

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	doc.Graph().Collect()
	if err := checkGraph(doc.Graph()); err != nil {
		return nil, nil, fmt.Errorf("script built a corrupt graph: %w", err)
	}
	return doc, nil, nil
}

// checkGraph runs the structural checks on a script's graph.
var checkGraph = graph.Check

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalErrors, extracting
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
