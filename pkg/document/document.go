// Package document pairs the nodes of a construction graph with their
// presentation. A Document owns one graph; each Holder roots one node and
// carries its style and optional name.
package document

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/value"
	"github.com/google/uuid"
)

// ErrHeld is returned when a node already has a holder.
var ErrHeld = errors.New("node already held")

// ErrNoHolder is returned for a holder that is not part of the document.
var ErrNoHolder = errors.New("no such holder")

// Holder is a drawable object of a document.
type Holder struct {
	ID    uuid.UUID
	Node  graph.NodeID
	Name  graph.NodeID // zero when unnamed; holds a String
	Style Style
}

// Document is a graph plus its ordered holders.
type Document struct {
	g       *graph.Graph
	holders []*Holder
	byNode  map[graph.NodeID]*Holder
	log     *slog.Logger
}

// New returns an empty document over a fresh graph.
func New(reg *construct.Registry, log *slog.Logger) *Document {
	if log == nil {
		log = slog.Default()
	}
	return &Document{
		g:      graph.New(reg, graph.WithLogger(log)),
		byNode: make(map[graph.NodeID]*Holder),
		log:    log,
	}
}

// Graph returns the document's graph.
func (d *Document) Graph() *graph.Graph { return d.g }

// Holders returns the holders in insertion order.
func (d *Document) Holders() []*Holder {
	return slices.Clone(d.holders)
}

// Len returns the number of holders.
func (d *Document) Len() int { return len(d.holders) }

// Add makes node a drawable object of the document and roots it.
func (d *Document) Add(node graph.NodeID, style Style) (*Holder, error) {
	if _, ok := d.byNode[node]; ok {
		return nil, fmt.Errorf("add %s: %w", node, ErrHeld)
	}
	if err := d.g.AddRoot(node); err != nil {
		return nil, fmt.Errorf("add %s: %w", node, err)
	}
	h := &Holder{ID: uuid.New(), Node: node, Style: style}
	d.holders = append(d.holders, h)
	d.byNode[node] = h
	return h, nil
}

// Lookup returns the holder with the given id.
func (d *Document) Lookup(id uuid.UUID) (*Holder, bool) {
	for _, h := range d.holders {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}

// HolderOf returns the holder rooting node.
func (d *Document) HolderOf(node graph.NodeID) (*Holder, bool) {
	h, ok := d.byNode[node]
	return h, ok
}

// Value returns the current value of h's node.
func (d *Document) Value(h *Holder) value.Value {
	return d.g.Value(h.Node)
}

// SetName labels h with a const String node, replacing any earlier name.
func (d *Document) SetName(h *Holder, name string) error {
	if !d.owns(h) {
		return ErrNoHolder
	}
	n := d.g.Const(value.String(name))
	if err := d.g.AddRoot(n); err != nil {
		return err
	}
	return d.setNameNode(h, n)
}

// SetNameNode labels h with an existing node, which must hold a String.
func (d *Document) SetNameNode(h *Holder, n graph.NodeID) error {
	if !d.owns(h) {
		return ErrNoHolder
	}
	if err := d.g.AddRoot(n); err != nil {
		return err
	}
	return d.setNameNode(h, n)
}

func (d *Document) setNameNode(h *Holder, n graph.NodeID) error {
	old := h.Name
	h.Name = n
	if old.IsZero() {
		return nil
	}
	return d.g.Release(old)
}

// Name returns the text of h's name node, or "" when unnamed.
func (d *Document) Name(h *Holder) string {
	if h.Name.IsZero() {
		return ""
	}
	s, _ := d.g.Value(h.Name).(value.String)
	return string(s)
}

// Find returns the first holder named name.
func (d *Document) Find(name string) (*Holder, bool) {
	for _, h := range d.holders {
		if d.Name(h) == name {
			return h, true
		}
	}
	return nil, false
}

// Remove drops h and releases its nodes. Nodes still read by other
// holders stay alive.
func (d *Document) Remove(h *Holder) error {
	i := slices.Index(d.holders, h)
	if i < 0 {
		return ErrNoHolder
	}
	d.holders = slices.Delete(d.holders, i, i+1)
	delete(d.byNode, h.Node)
	if !h.Name.IsZero() {
		if err := d.g.Release(h.Name); err != nil {
			return fmt.Errorf("remove %s: %w", h.ID, err)
		}
	}
	if err := d.g.Release(h.Node); err != nil {
		return fmt.Errorf("remove %s: %w", h.ID, err)
	}
	return nil
}

// HitTest returns the shown holders whose value passes within tol of p,
// topmost first.
func (d *Document) HitTest(p geom.Coordinate, tol float64) []*Holder {
	var ret []*Holder
	for i := len(d.holders) - 1; i >= 0; i-- {
		h := d.holders[i]
		if h.Style.Shown && d.Value(h).Contains(p, tol) {
			ret = append(ret, h)
		}
	}
	return ret
}

// InRect returns the shown holders with some part inside r.
func (d *Document) InRect(r geom.Rect, tol float64) []*Holder {
	var ret []*Holder
	for _, h := range d.holders {
		if h.Style.Shown && d.Value(h).InRect(r, tol) {
			ret = append(ret, h)
		}
	}
	return ret
}

// Move drags the point held by h to c and returns the holders whose value
// changed.
func (d *Document) Move(h *Holder, c geom.Coordinate) ([]*Holder, error) {
	if !d.owns(h) {
		return nil, ErrNoHolder
	}
	changed, err := d.g.MovePoint(h.Node, c)
	if err != nil {
		return nil, err
	}
	var ret []*Holder
	for _, id := range changed {
		if ch, ok := d.byNode[id]; ok {
			ret = append(ret, ch)
		}
	}
	d.log.Debug("moved", "holder", h.ID, "to", c, "changed", len(ret))
	return ret, nil
}

func (d *Document) owns(h *Holder) bool {
	return h != nil && d.byNode[h.Node] == h
}
