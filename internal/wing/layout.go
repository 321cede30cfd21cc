package wing

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"featherwing/internal/easing"
	"featherwing/internal/mathutil"
)

// Layout constants.
const (
	layerStep     = 0.1 // per-layer spacing increment and Distribution unit
	layersPerStep = 6
	whiteningStep = 0.1 // blend toward white per layer
	scaleStep     = 0.5 // scale growth per layer
	twistRange    = math.Pi / 2
	twistBias     = 1.0
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// LayerCount returns K = ceil(6 × distribution / 0.1). A tolerance absorbs
// float error so that 0.1 gives exactly 6. Non-positive or NaN gives 0.
func LayerCount(distribution float64) int {
	if !(distribution > 0) {
		return 0
	}
	k := layersPerStep * distribution / layerStep
	if math.IsInf(k, 0) {
		return 0
	}
	return int(math.Ceil(k - 1e-9))
}

// Generate lays out every feather of the wing for p. The same p always
// yields the same Model.
func Generate(p Params) Model {
	k := LayerCount(p.Distribution)
	m := Model{Params: p, Layers: make([]LayerInfo, 0, k)}

	for i := 1; i <= k; i++ {
		fi := float64(i)
		info := LayerInfo{
			Index:        i,
			Distribution: layerStep * fi,
			Count:        p.Count / fi,
			Scale:        fi * scaleStep * p.Size,
			Color:        p.Color.BlendRgb(white, whiteningStep*fi),
		}
		info.Length = info.Distribution * info.Count

		before := len(m.Placements)
		m.Placements = appendLayer(m.Placements, p, info, (fi-1)/4)
		info.Feathers = len(m.Placements) - before
		m.Layers = append(m.Layers, info)
	}
	return m
}

// appendLayer emits one feather per multiple of the layer spacing strictly
// inside the layer length. Stepping by an integer counter keeps the count
// exact and the loop finite for any input.
func appendLayer(dst []Placement, p Params, l LayerInfo, zOffset float64) []Placement {
	if math.IsInf(l.Count, 0) {
		return dst
	}
	for j := 1; float64(j) < l.Count; j++ {
		x := l.Distribution * float64(j)
		y := easing.Impulse(x, p.Curvature)
		z := easing.EaseInOutQuadratic(x/l.Length) - zOffset/4

		dst = append(dst, Placement{
			Position: mathutil.Vec3{x, y, z},
			Scale:    l.Scale,
			Rotation: mathutil.Vec3{math.Pi / 2, Twist(x, p.Orientation), math.Pi},
			Color:    l.Color,
			Layer:    l.Index,
		})
	}
	return dst
}

// Twist is the Y rotation of a feather at span position x: a bounded
// oscillation that fans neighbouring feathers apart.
func Twist(x, orientation float64) float64 {
	fan := math.Abs(0.5 * math.Sin(2*x) * math.Cos(2*x))
	return twistRange*fan + orientation + twistBias
}
