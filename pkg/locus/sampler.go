// Package locus turns parametric curves into point samples for drawing.
// The sampler bisects the parameter range until neighbouring samples are
// closer than a pixel or the sample budget runs out.
package locus

import (
	"log/slog"
	"math"
	"slices"

	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/value"
)

// Hard limits of the sampler.
const (
	MaxSamples         = 500
	DefaultForcedDepth = 20
	DefaultPixelFactor = 1.5
	DefaultPixelWidth  = 14.0 / 600
)

// minParamGap keeps bisection from chasing a discontinuity forever.
const minParamGap = 1e-9

// Parametric is a curve defined over the parameter range [0, 1].
// value.Curve and value.Locus satisfy it.
type Parametric interface {
	PointAt(p float64) (geom.Coordinate, bool)
}

// Viewport is the part of the plane being drawn.
type Viewport struct {
	Rect       geom.Rect
	PixelWidth float64 // plane units per pixel
}

// DefaultViewport is the 14×14 unit square centred on the origin, 600
// pixels wide.
func DefaultViewport() Viewport {
	return Viewport{
		Rect:       geom.NewRect(geom.Coordinate{X: -7, Y: -7}, geom.Coordinate{X: 7, Y: 7}),
		PixelWidth: DefaultPixelWidth,
	}
}

func (v Viewport) shows(s Sample) bool {
	return s.Valid && v.Rect.ContainsWithin(s.Point, v.PixelWidth)
}

// Sample is one evaluated parameter. Point is meaningless when Valid is
// false.
type Sample struct {
	Param float64
	Point geom.Coordinate
	Valid bool
}

// Sampler holds the tuning of the adaptive sampling.
type Sampler struct {
	MaxSamples  int     // clamped to [2, MaxSamples]
	ForcedDepth int     // bisections made before any span may stop
	PixelFactor float64 // spans longer than this many pixels are split
	Logger      *slog.Logger
}

// NewSampler returns a sampler with the default tuning.
func NewSampler() *Sampler {
	return &Sampler{
		MaxSamples:  MaxSamples,
		ForcedDepth: DefaultForcedDepth,
		PixelFactor: DefaultPixelFactor,
	}
}

func (s *Sampler) budget() int {
	return min(max(s.MaxSamples, 2), MaxSamples)
}

func (s *Sampler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

type span struct {
	lo, hi Sample
}

func sampleAt(c Parametric, p float64) Sample {
	pt, ok := c.PointAt(p)
	return Sample{Param: p, Point: pt, Valid: ok && pt.Valid()}
}

// Sample evaluates c over [0, 1]. Spans are split breadth first, so a
// sampling cut short by the budget is still spread over the whole range.
// The result is sorted by parameter and always holds both endpoints.
func (s *Sampler) Sample(c Parametric, view Viewport) []Sample {
	budget := s.budget()
	maxDist := s.PixelFactor * view.PixelWidth

	first, last := sampleAt(c, 0), sampleAt(c, 1)
	out := []Sample{first, last}
	queue := []span{{first, last}}
	forced := 0
	for len(queue) > 0 && len(out) < budget {
		sp := queue[0]
		queue = queue[1:]
		if sp.hi.Param-sp.lo.Param < minParamGap {
			continue
		}
		if forced >= s.ForcedDepth && !s.wantsSplit(sp, view, maxDist) {
			continue
		}
		forced++
		mid := sampleAt(c, (sp.lo.Param+sp.hi.Param)/2)
		out = append(out, mid)
		queue = append(queue, span{sp.lo, mid}, span{mid, sp.hi})
	}
	slices.SortFunc(out, func(a, b Sample) int {
		switch {
		case a.Param < b.Param:
			return -1
		case a.Param > b.Param:
			return 1
		}
		return 0
	})
	s.logger().Debug("locus sampled", "samples", len(out), "budget", budget, "pending", len(queue))
	return out
}

func (s *Sampler) wantsSplit(sp span, view Viewport, maxDist float64) bool {
	switch {
	case !sp.lo.Valid && !sp.hi.Valid:
		return false
	case sp.lo.Valid != sp.hi.Valid:
		// narrow down where the curve stops
		return view.shows(sp.lo) || view.shows(sp.hi)
	case !view.shows(sp.lo) && !view.shows(sp.hi):
		return false
	}
	d := sp.lo.Point.Distance(sp.hi.Point)
	return d > maxDist || math.IsNaN(d)
}

// SampleValue samples v when it is a drawable curve and returns nil
// otherwise.
func (s *Sampler) SampleValue(v value.Value, view Viewport) []Sample {
	if !value.IsValid(v) {
		return nil
	}
	c, ok := v.(Parametric)
	if !ok {
		return nil
	}
	return s.Sample(c, view)
}

// Polyline splits samples into runs of valid points. Runs of a single
// point are dropped.
func Polyline(samples []Sample) [][]geom.Coordinate {
	var (
		ret [][]geom.Coordinate
		cur []geom.Coordinate
	)
	flush := func() {
		if len(cur) > 1 {
			ret = append(ret, cur)
		}
		cur = nil
	}
	for _, s := range samples {
		if !s.Valid {
			flush()
			continue
		}
		cur = append(cur, s.Point)
	}
	flush()
	return ret
}
