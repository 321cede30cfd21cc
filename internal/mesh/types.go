package mesh

import (
	"math"

	"featherwing/internal/mathutil"
)

// Triangle holds index triples into the vertex and texcoord arrays.
// TI entries are -1 when the face has no texture coordinates.
type Triangle struct {
	VI [3]int
	TI [3]int
}

// Mesh is the base feather shape, instanced once per feather placement.
// It is read-only after loading and may be shared across goroutines.
type Mesh struct {
	Name  string
	Verts [][3]float32
	UVs   [][2]float32
	Tris  []Triangle
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh yields two zero vectors.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return mathutil.Vec3{}, mathutil.Vec3{}
	}
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Verts {
		p := mathutil.Vec3f(v)
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// HasUVs reports whether any triangle references texture coordinates.
func (m *Mesh) HasUVs() bool {
	for _, t := range m.Tris {
		if t.TI[0] >= 0 {
			return true
		}
	}
	return false
}
