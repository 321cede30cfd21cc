// Package wing computes the procedural feather layout of a bird wing.
//
// Generate maps a Params value to an immutable Model: one Placement per
// feather, grouped in layers that grow outward from the wing root. It is a
// pure function and is re-run from scratch whenever a parameter changes.
package wing

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Params is the user-adjustable parameter set shared by the layout
// generator and the frame animator.
type Params struct {
	Curvature    float64        // impulse sharpness that bows the leading edge
	Distribution float64        // drives the number of layers
	Count        float64        // feathers in the first layer
	Size         float64        // feather scale multiplier
	Color        colorful.Color // base color of the innermost layer
	Orientation  float64        // added to every feather's twist, radians
	FlapSpeed    float64        // flap amplitude multiplier
	FlapMotion   float64        // flap frequency multiplier
	WindSpeed    float64        // wind frequency multiplier
}

// DefaultParams returns the slider positions a fresh wing starts with.
func DefaultParams() Params {
	return Params{
		Curvature:    0.5,
		Distribution: 0.1,
		Count:        100,
		Size:         1,
		Color:        colorful.Color{R: 0xaa / 255.0, G: 0xaa / 255.0, B: 0xaa / 255.0},
		Orientation:  -1,
		FlapSpeed:    1,
		FlapMotion:   1,
		WindSpeed:    1,
	}
}

// Range is an inclusive bound for one parameter.
type Range struct {
	Min, Max float64
}

// Clamp limits v to the range. NaN becomes Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Ranges are the slider bounds exposed to users. Generate does not enforce
// them; callers that accept external input clamp with Params.Clamped.
var Ranges = struct {
	Curvature, Distribution, Count, Size, Orientation Range
	FlapSpeed, FlapMotion, WindSpeed                  Range
}{
	Curvature:    Range{0, 1},
	Distribution: Range{0, 0.2},
	Count:        Range{1, 500},
	Size:         Range{0.5, 1.5},
	Orientation:  Range{-1, 1},
	FlapSpeed:    Range{1, 2},
	FlapMotion:   Range{1, 2},
	WindSpeed:    Range{1, 10},
}

// Clamped returns a copy of p with every numeric field limited to Ranges
// and the color clamped to [0, 1].
func (p Params) Clamped() Params {
	p.Curvature = Ranges.Curvature.Clamp(p.Curvature)
	p.Distribution = Ranges.Distribution.Clamp(p.Distribution)
	p.Count = Ranges.Count.Clamp(p.Count)
	p.Size = Ranges.Size.Clamp(p.Size)
	p.Orientation = Ranges.Orientation.Clamp(p.Orientation)
	p.FlapSpeed = Ranges.FlapSpeed.Clamp(p.FlapSpeed)
	p.FlapMotion = Ranges.FlapMotion.Clamp(p.FlapMotion)
	p.WindSpeed = Ranges.WindSpeed.Clamp(p.WindSpeed)
	p.Color = p.Color.Clamped()
	return p
}

// LayoutEqual reports whether a and b produce the same Model. Only the
// animation fields may differ.
func (p Params) LayoutEqual(o Params) bool {
	return p.Curvature == o.Curvature &&
		p.Distribution == o.Distribution &&
		p.Count == o.Count &&
		p.Size == o.Size &&
		p.Color == o.Color &&
		p.Orientation == o.Orientation
}
