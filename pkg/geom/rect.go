package geom

import "math"

// Rect is an axis-aligned rectangle. A Rect built with NewRect is always
// normalized so that Min <= Max component-wise.
type Rect struct {
	Min, Max Coordinate
}

// NewRect returns the rectangle spanned by two opposite corners.
func NewRect(a, b Coordinate) Rect {
	return Rect{
		Min: Coordinate{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Coordinate{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// RectAround returns the square of the given half-size centred on c.
func RectAround(c Coordinate, half float64) Rect {
	return Rect{
		Min: Coordinate{c.X - half, c.Y - half},
		Max: Coordinate{c.X + half, c.Y + half},
	}
}

func (r Rect) Width() float64      { return r.Max.X - r.Min.X }
func (r Rect) Height() float64     { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Coordinate  { return Lerp(r.Min, r.Max, 0.5) }
func (r Rect) IsEmpty() bool       { return r.Width() <= 0 || r.Height() <= 0 }
func (r Rect) TopLeft() Coordinate { return Coordinate{r.Min.X, r.Max.Y} }

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Coordinate) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsWithin is Contains with the rectangle grown by margin on every
// side.
func (r Rect) ContainsWithin(p Coordinate, margin float64) bool {
	return r.Grow(margin).Contains(p)
}

// Grow returns r enlarged by margin on every side.
func (r Rect) Grow(margin float64) Rect {
	return Rect{
		Min: Coordinate{r.Min.X - margin, r.Min.Y - margin},
		Max: Coordinate{r.Max.X + margin, r.Max.Y + margin},
	}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Coordinate) Rect {
	return Rect{
		Min: Coordinate{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Coordinate{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// BorderPoints clips the infinite line through l to r. ok is false when the
// line misses the rectangle.
func BorderPoints(l LineData, r Rect) (LineData, bool) {
	if !l.Valid() {
		return LineData{}, false
	}
	d := l.Dir()
	tmin, tmax := math.Inf(-1), math.Inf(1)
	clip := func(p, dp, lo, hi float64) bool {
		if math.Abs(dp) < Epsilon {
			return p >= lo && p <= hi
		}
		t0 := (lo - p) / dp
		t1 := (hi - p) / dp
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		return true
	}
	if !clip(l.A.X, d.X, r.Min.X, r.Max.X) || !clip(l.A.Y, d.Y, r.Min.Y, r.Max.Y) {
		return LineData{}, false
	}
	if tmin > tmax {
		return LineData{}, false
	}
	return LineData{l.A.Add(d.Scale(tmin)), l.A.Add(d.Scale(tmax))}, true
}
