// Package kernel defines the shape kernel used for hit testing.
// Implementations build signed distance fields for the closed shapes of a
// construction (circles and polygons) behind this interface, so the value
// model never depends on a particular backend.
package kernel

import (
	"math"

	"github.com/chazu/compass/pkg/geom"
)

// Shape is an opaque handle to a kernel shape.
type Shape interface {
	// Distance returns the signed distance from p to the shape's boundary,
	// negative inside.
	Distance(p geom.Coordinate) float64
	// Bounds returns the axis-aligned bounding box.
	Bounds() geom.Rect
}

// Kernel builds shapes.
type Kernel interface {
	Circle(center geom.Coordinate, radius float64) (Shape, error)
	Polygon(vertices []geom.Coordinate) (Shape, error)
	Translate(s Shape, v geom.Coordinate) Shape
}

// OnBoundary reports whether p lies within tol of the boundary of s.
func OnBoundary(s Shape, p geom.Coordinate, tol float64) bool {
	return math.Abs(s.Distance(p)) <= tol
}

// Inside reports whether p lies inside s or within tol of it.
func Inside(s Shape, p geom.Coordinate, tol float64) bool {
	return s.Distance(p) <= tol
}
