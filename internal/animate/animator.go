// Package animate applies the per-frame flap and wind motion to a wing.
//
// Both motions are accumulators: each call adds a small delta to the current
// rotation and nothing is ever reset or clamped, so rotations drift without
// bound over very long runs. Only a rebuild of the wing resets them.
package animate

import (
	"math"
	"math/rand/v2"

	"featherwing/internal/scene"
	"featherwing/internal/wing"
)

// Motion constants.
const (
	FlapGain  = 0.02   // root X rotation per frame at full amplitude
	WindGainZ = 0.0005 // feather Z rotation per frame
	WindGainY = 0.0002 // feather Y rotation per frame
	Period    = 500.0  // ms divisor of the phase
)

// Animator holds the random source used to pick each feather's wind axis.
// It is not safe for concurrent use.
type Animator struct {
	rng *rand.Rand
}

// New returns an animator with a deterministic source seeded by seed.
func New(seed uint64) *Animator {
	return &Animator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewWithRand uses the given source; r must not be nil.
func NewWithRand(r *rand.Rand) *Animator {
	return &Animator{rng: r}
}

// FlapDelta is the root X rotation added at timeMs.
func FlapDelta(timeMs float64, p wing.Params) float64 {
	return FlapGain * math.Cos(timeMs*p.FlapMotion/Period) * p.FlapSpeed
}

// Flap rotates the wing root about X.
func Flap(root *scene.Transform, timeMs float64, p wing.Params) {
	root.Rotation[0] += FlapDelta(timeMs, p)
}

// Wind perturbs every feather: about half of them, chosen at random each
// frame, turn about Z and the rest about Y.
func (a *Animator) Wind(w *scene.Wing, timeMs float64, p wing.Params) {
	s := math.Sin(timeMs * p.WindSpeed / Period)
	for i := range w.Feathers {
		rot := &w.Feathers[i].Transform.Rotation
		if a.rng.Float64()*10 < 5 {
			rot[2] += WindGainZ * s
		} else {
			rot[1] -= WindGainY * s
		}
	}
}

// Step runs Flap then Wind for one frame.
func (a *Animator) Step(w *scene.Wing, timeMs float64, p wing.Params) {
	Flap(&w.Root, timeMs, p)
	a.Wind(w, timeMs, p)
}
