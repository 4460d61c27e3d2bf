package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chazu/compass/pkg/graph"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	for _, src := range []string{"", "   \n\t  \n  "} {
		doc, evalErrs, err := eng.Evaluate(src)
		if err != nil {
			t.Fatalf("%q: unexpected fatal error: %v", src, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("%q: unexpected eval errors: %v", src, evalErrs)
		}
		if doc == nil {
			t.Fatalf("%q: expected non-nil document", src)
		}
		if doc.Len() != 0 {
			t.Errorf("%q: expected empty document, got %d holders", src, doc.Len())
		}
	}
}

func TestEvaluatePlainLisp(t *testing.T) {
	eng := NewEngine()

	source := `
(def x 10)
(def y 20)
(+ x y)
`
	doc, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if doc == nil || doc.Len() != 0 {
		t.Fatalf("expected an empty document, got %v", doc)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	doc, evalErrs, err := eng.Evaluate("(point 1 2)\n(+ 3")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if doc != nil {
		t.Fatal("expected nil document on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
	if evalErrs[0].Line > 0 {
		t.Logf("extracted line info: line=%d, message=%q", evalErrs[0].Line, evalErrs[0].Message)
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	doc, evalErrs, err := eng.Evaluate("(+ 1 undefined-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if doc != nil {
		t.Fatal("expected nil document on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	var err error = EvalError{Line: 5, Message: "something went wrong"}
	if got, want := err.Error(), "line 5: something went wrong"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (EvalError{Message: "no location"}).Error(); got != "no location" {
		t.Errorf("Error() without a line = %q", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()
	source := `(construct "MidPoint" (point 0 0) (point 2 4))`

	var first string
	for i := 0; i < 5; i++ {
		doc, evalErrs, err := eng.Evaluate(source)
		if err != nil || len(evalErrs) > 0 {
			t.Fatalf("iteration %d: %v %v", i, err, evalErrs)
		}
		hs := doc.Holders()
		got := doc.Value(hs[len(hs)-1]).String()
		if i == 0 {
			first = got
		} else if got != first {
			t.Errorf("iteration %d: got %s, want %s", i, got, first)
		}
	}
}

func TestEvaluateValidatesGraph(t *testing.T) {
	defer func(f func(*graph.Graph) error) { checkGraph = f }(checkGraph)
	eng := NewEngine()
	source := `(construct "MidPoint" (point 0 0) (point 2 4))`

	calls := 0
	checkGraph = func(g *graph.Graph) error {
		calls++
		return graph.Check(g)
	}
	if _, _, err := eng.Evaluate(source); err != nil {
		t.Fatalf("sound script: %v", err)
	}
	if calls != 1 {
		t.Errorf("graph checked %d times, want 1", calls)
	}

	checkGraph = func(*graph.Graph) error { return graph.ErrCorrupt }
	doc, _, err := eng.Evaluate(source)
	if !errors.Is(err, graph.ErrCorrupt) {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
	if doc != nil {
		t.Error("corrupt graph returned a document")
	}
}

func TestWaitWithTimeout(t *testing.T) {
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult) // never sends

	start := time.Now()
	_, _, err := waitWithTimeout(ch, 1, &mu, &gen, 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out after 20ms") {
		t.Errorf("expected timeout error message, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2)

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	_, _, err := waitWithTimeout(ch, 1, &mu, &gen, time.Second)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("got %v, want ErrSuperseded", err)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line format", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"no line info", "some generic error", 0, "some generic error"},
		{"line format lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short line format", "line 3: bad point", 3, "bad point"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errors.New(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if errs[0].Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}
