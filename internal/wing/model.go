package wing

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"featherwing/internal/mathutil"
)

// RestRootRotation is the wing root's orientation right after a rebuild,
// tilted 45° back about X. Flapping accumulates on top of it.
var RestRootRotation = mathutil.Vec3{-math.Pi / 4, 0, 0}

// Placement is the transform and color of one feather instance.
type Placement struct {
	Position mathutil.Vec3
	Scale    float64
	Rotation mathutil.Vec3 // Euler XYZ, radians
	Color    colorful.Color
	Layer    int // 1-based, innermost first
}

// LayerInfo summarizes one generated layer.
type LayerInfo struct {
	Index        int
	Distribution float64 // spacing between feathers along the span
	Count        float64 // nominal feather population, may be fractional
	Length       float64 // Distribution × Count
	Scale        float64
	Color        colorful.Color
	Feathers     int // placements actually emitted
}

// Model is the result of one layout pass. It is never mutated after
// Generate returns; the scene copies placements into its own nodes.
type Model struct {
	Params     Params
	Placements []Placement
	Layers     []LayerInfo
}

// Len returns the number of feathers.
func (m Model) Len() int {
	return len(m.Placements)
}

// Layer returns the placements of layer i (1-based).
func (m Model) Layer(i int) []Placement {
	start := 0
	for _, l := range m.Layers {
		if l.Index == i {
			return m.Placements[start : start+l.Feathers]
		}
		start += l.Feathers
	}
	return nil
}
