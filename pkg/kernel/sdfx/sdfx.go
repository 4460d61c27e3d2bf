// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// sdfxShape wraps an sdf.SDF2 to implement kernel.Shape.
type sdfxShape struct {
	s sdf.SDF2
}

func (s *sdfxShape) Distance(p geom.Coordinate) float64 {
	return s.s.Evaluate(p.Vec())
}

func (s *sdfxShape) Bounds() geom.Rect {
	bb := s.s.BoundingBox()
	return geom.Rect{Min: geom.FromVec(bb.Min), Max: geom.FromVec(bb.Max)}
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Shape.
func unwrap(s kernel.Shape) sdf.SDF2 {
	return s.(*sdfxShape).s
}

// wrap creates a kernel.Shape from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Shape {
	return &sdfxShape{s: s}
}

// Circle creates a disc. sdf.Circle2D is centred on the origin, so the
// result is moved to center.
func (k *SdfxKernel) Circle(center geom.Coordinate, radius float64) (kernel.Shape, error) {
	s, err := sdf.Circle2D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Circle2D: %w", err)
	}
	return k.Translate(wrap(s), center), nil
}

// Polygon creates a closed polygon from its vertices in order.
func (k *SdfxKernel) Polygon(vertices []geom.Coordinate) (kernel.Shape, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("sdfx.Polygon2D: need at least 3 vertices, got %d", len(vertices))
	}
	vs := make([]v2.Vec, len(vertices))
	for i, p := range vertices {
		vs[i] = p.Vec()
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return wrap(s), nil
}

// Translate moves a shape by v.
func (k *SdfxKernel) Translate(s kernel.Shape, v geom.Coordinate) kernel.Shape {
	return wrap(sdf.Transform2D(unwrap(s), sdf.Translate2d(v.Vec())))
}
