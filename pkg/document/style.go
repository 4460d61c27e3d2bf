package document

import (
	"fmt"
	"image/color"
)

// PenStyle is the stroke pattern of a drawn curve.
type PenStyle int

const (
	PenSolid PenStyle = iota
	PenDash
	PenDot
	PenDashDot
	PenDashDotDot
)

var penNames = [...]string{"solid", "dash", "dot", "dash-dot", "dash-dot-dot"}

func (p PenStyle) String() string {
	if p < 0 || int(p) >= len(penNames) {
		return fmt.Sprintf("PenStyle(%d)", int(p))
	}
	return penNames[p]
}

// PointStyle is the marker drawn for a point.
type PointStyle int

const (
	PointRound PointStyle = iota
	PointRoundEmpty
	PointRectangular
	PointRectangularEmpty
	PointCross
)

var pointNames = [...]string{"round", "round-empty", "rectangular", "rectangular-empty", "cross"}

func (p PointStyle) String() string {
	if p < 0 || int(p) >= len(pointNames) {
		return fmt.Sprintf("PointStyle(%d)", int(p))
	}
	return pointNames[p]
}

// ParsePointStyle maps a point style name back to its value.
func ParsePointStyle(s string) (PointStyle, bool) {
	for i, n := range pointNames {
		if n == s {
			return PointStyle(i), true
		}
	}
	return PointRound, false
}

// ParsePenStyle maps a pen style name back to its value.
func ParsePenStyle(s string) (PenStyle, bool) {
	for i, n := range penNames {
		if n == s {
			return PenStyle(i), true
		}
	}
	return PenSolid, false
}

// DefaultWidth lets the renderer pick a width for the object's kind.
const DefaultWidth = -1

// Style is the presentation of a holder. It never affects computation.
type Style struct {
	Color color.RGBA
	Width int
	Pen   PenStyle
	Point PointStyle
	Shown bool
}

// DefaultColor is the blue new objects are drawn in.
var DefaultColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}

// DefaultStyle returns the style of a newly constructed object.
func DefaultStyle() Style {
	return Style{Color: DefaultColor, Width: DefaultWidth, Shown: true}
}

// WithColor returns s drawn in c.
func (s Style) WithColor(c color.RGBA) Style {
	s.Color = c
	return s
}

// Hidden returns s with the object hidden.
func (s Style) Hidden() Style {
	s.Shown = false
	return s
}

// ColorHex formats c as #rrggbb, dropping alpha.
func ColorHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor reads a #rrggbb or rrggbb string.
func ParseColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
