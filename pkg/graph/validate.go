package graph

import (
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by Check when a graph fails its structural checks.
var ErrCorrupt = errors.New("graph is corrupt")

// ValidationSeverity indicates whether a validation finding means the
// graph is corrupt or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // the graph is corrupt
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID, e.Message)
}

// Validate runs the structural checks on g and returns its findings. An
// empty slice means the graph is sound. Validate never mutates g.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateRefcounts(g)...)
	return errs
}

// Check runs Validate and turns its error-severity findings into one error
// wrapping ErrCorrupt. Warnings are ignored.
func Check(g *Graph) error {
	var errs []error
	for _, v := range Validate(g) {
		if v.Severity == SeverityError {
			errs = append(errs, v)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCorrupt, errors.Join(errs...))
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
// If we encounter a gray node during traversal, we have found a cycle.
func validateDAG(g *Graph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		n, err := g.get(id)
		if err != nil {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		for _, c := range n.children {
			if visit(c) {
				return true
			}
		}

		color[id] = black
		return false
	}

	for _, id := range g.Nodes() {
		if color[id] == white {
			if visit(id) {
				// One cycle report is enough to fail the graph.
				return errs
			}
		}
	}
	return errs
}

// validateReferences checks that every parent and child handle is live and
// that the two edge lists mirror each other.
func validateReferences(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, id := range g.Nodes() {
		n := &g.nodes[id.index]
		for _, p := range n.parents {
			pn, err := g.get(p)
			if err != nil {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("parent %s does not exist", p),
					Severity: SeverityError,
				})
				continue
			}
			if count(pn.children, id) != count(n.parents, p) {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("parent %s does not list it as a child", p),
					Severity: SeverityError,
				})
			}
		}
		for _, c := range n.children {
			if _, err := g.get(c); err != nil {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("child %s does not exist", c),
					Severity: SeverityError,
				})
			}
		}
		if n.kind == PropertyNode && len(n.parents) != 1 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("property node has %d parents", len(n.parents)),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateRefcounts checks that each node is referenced at least by its
// children, and warns about floating nodes nothing references.
func validateRefcounts(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, id := range g.Nodes() {
		n := &g.nodes[id.index]
		switch {
		case n.refs < len(n.children):
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("%d references but %d child edges", n.refs, len(n.children)),
				Severity: SeverityError,
			})
		case n.refs == 0:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "node is not referenced (floating)",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

func count(ids []NodeID, id NodeID) int {
	n := 0
	for _, c := range ids {
		if c == id {
			n++
		}
	}
	return n
}
