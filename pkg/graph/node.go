package graph

import (
	"fmt"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/value"
)

// NodeKind enumerates the kinds of nodes in the graph.
type NodeKind int

const (
	ConstNode    NodeKind = iota // owns a fixed value
	TypeNode                     // computes its value with a construction type
	PropertyNode                 // reads one property of its parent
)

func (k NodeKind) String() string {
	switch k {
	case ConstNode:
		return "const"
	case TypeNode:
		return "type"
	case PropertyNode:
		return "property"
	default:
		return "unknown"
	}
}

// NodeID is a handle to a node slot. A slot's generation is bumped when
// its node is freed, so handles to freed nodes go stale instead of
// aliasing a newer node. The zero NodeID never refers to a node.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool { return id.gen == 0 }

func (id NodeID) String() string {
	if id.IsZero() {
		return "n-"
	}
	return fmt.Sprintf("n%d:%d", id.index, id.gen)
}

// node is one arena slot.
type node struct {
	gen  uint32
	live bool

	kind     NodeKind
	typ      *construct.Type
	parents  []NodeID
	children []NodeID

	val   value.Value
	dirty bool
	// changed is set by SetValue and consumed by InvalidateAndRecalc.
	changed bool

	// refs counts root registrations plus appearances as a parent.
	refs int

	propKey   string
	propIndex int        // -1 until resolved
	propKind  value.Kind // the parent kind propIndex was resolved for
}
