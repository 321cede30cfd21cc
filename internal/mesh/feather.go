package mesh

import "math"

// Built-in feather proportions, in model units before placement scaling.
const (
	featherLength    = 3.0
	featherHalfWidth = 0.45
	featherSegments  = 16
)

// Feather returns a flat procedural feather lying in the XZ plane, the way a
// feather OBJ is modelled: the shaft runs from the origin along +Z and the
// vane spreads along X. After the wing's (π/2, twist, π) placement rotation
// the vane faces up out of the wing, and the twist fans it within its own
// plane. The outline tapers to a point at the tip and narrows at the quill.
// Used when no OBJ shape is supplied.
func Feather() *Mesh {
	m := &Mesh{Name: "feather"}

	// One row per shaft station: left edge, shaft, right edge.
	for s := 0; s <= featherSegments; s++ {
		t := float64(s) / featherSegments
		z := float32(t * featherLength)
		w := float32(featherHalfWidth * vaneProfile(t))
		m.Verts = append(m.Verts,
			[3]float32{-w, 0, z},
			[3]float32{0, 0, z},
			[3]float32{w, 0, z},
		)
		v := float32(t)
		m.UVs = append(m.UVs,
			[2]float32{0, v},
			[2]float32{0.5, v},
			[2]float32{1, v},
		)
	}

	for s := 0; s < featherSegments; s++ {
		r0 := s * 3
		r1 := r0 + 3
		for c := 0; c < 2; c++ {
			a, b := r0+c, r0+c+1
			d, e := r1+c, r1+c+1
			m.Tris = append(m.Tris,
				Triangle{VI: [3]int{a, b, e}, TI: [3]int{a, b, e}},
				Triangle{VI: [3]int{a, e, d}, TI: [3]int{a, e, d}},
			)
		}
	}
	return m
}

// vaneProfile is the relative half-width along the shaft: 0 at both ends,
// widest a little past the middle.
func vaneProfile(t float64) float64 {
	return math.Pow(math.Sin(math.Pi*t), 0.7) * (0.6 + 0.4*t)
}
