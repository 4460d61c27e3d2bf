// Package graph holds the live dependency graph of a geometric
// construction. Nodes are kept in an arena and addressed by generation
// checked handles; each node caches the value computed from its parents,
// and edits are propagated along child edges in topological order.
//
// A Graph is not safe for concurrent mutation. Callers serialise edits.
package graph
