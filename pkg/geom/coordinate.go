// Package geom holds the 2D primitives and numeric routines that the
// construction types are built from. Everything here is a pure function of
// its arguments.
package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Epsilon is the tolerance used for "is this zero" decisions in the
// numeric routines.
const Epsilon = 1e-10

// Coordinate is a point or a displacement in the plane.
type Coordinate struct {
	X, Y float64
}

// InvalidCoordinate returns a coordinate that reports !Valid().
func InvalidCoordinate() Coordinate {
	return Coordinate{X: math.NaN(), Y: math.NaN()}
}

// Valid reports whether both components are finite numbers.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.X) && !math.IsNaN(c.Y) && !math.IsInf(c.X, 0) && !math.IsInf(c.Y, 0)
}

func (c Coordinate) Add(o Coordinate) Coordinate { return Coordinate{c.X + o.X, c.Y + o.Y} }
func (c Coordinate) Sub(o Coordinate) Coordinate { return Coordinate{c.X - o.X, c.Y - o.Y} }
func (c Coordinate) Scale(f float64) Coordinate  { return Coordinate{c.X * f, c.Y * f} }
func (c Coordinate) Neg() Coordinate             { return Coordinate{-c.X, -c.Y} }

// Dot returns the dot product of c and o.
func (c Coordinate) Dot(o Coordinate) float64 { return c.X*o.X + c.Y*o.Y }

// Cross returns the z component of the cross product of c and o.
func (c Coordinate) Cross(o Coordinate) float64 { return c.X*o.Y - c.Y*o.X }

func (c Coordinate) Length() float64       { return math.Hypot(c.X, c.Y) }
func (c Coordinate) SquareLength() float64 { return c.X*c.X + c.Y*c.Y }

// Distance returns the euclidean distance between c and o.
func (c Coordinate) Distance(o Coordinate) float64 { return c.Sub(o).Length() }

// Orthogonal returns c rotated by a quarter turn counter-clockwise.
func (c Coordinate) Orthogonal() Coordinate { return Coordinate{-c.Y, c.X} }

// Normalize returns c scaled to the given length. The zero vector stays
// zero.
func (c Coordinate) Normalize(length float64) Coordinate {
	l := c.Length()
	if l == 0 {
		return c
	}
	return c.Scale(length / l)
}

// Angle returns the angle of c measured from the positive x axis, in
// (-π, π].
func (c Coordinate) Angle() float64 { return math.Atan2(c.Y, c.X) }

// Equal reports whether c and o are identical.
func (c Coordinate) Equal(o Coordinate) bool { return c.X == o.X && c.Y == o.Y }

// Near reports whether c and o are within tol of each other.
func (c Coordinate) Near(o Coordinate, tol float64) bool { return c.Distance(o) <= tol }

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g)", c.X, c.Y)
}

// Vec converts c to an sdfx 2D vector.
func (c Coordinate) Vec() v2.Vec { return v2.Vec{X: c.X, Y: c.Y} }

// FromVec converts an sdfx 2D vector to a coordinate.
func FromVec(v v2.Vec) Coordinate { return Coordinate{X: v.X, Y: v.Y} }

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b Coordinate, t float64) Coordinate {
	return a.Add(b.Sub(a).Scale(t))
}

// Polar returns the point at the given distance and angle from the origin.
func Polar(r, theta float64) Coordinate {
	return Coordinate{r * math.Cos(theta), r * math.Sin(theta)}
}
