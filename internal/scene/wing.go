// Package scene holds the live wing: a root transform with one child node
// per feather, plus the Host that rebuilds and animates it.
package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"featherwing/internal/mathutil"
	"featherwing/internal/wing"
)

// Transform is a node's local position, uniform scale and Euler XYZ rotation.
type Transform struct {
	Position mathutil.Vec3
	Scale    float64
	Rotation mathutil.Vec3
}

// Matrix returns T × R × S.
func (t Transform) Matrix() mathutil.Mat4 {
	return mathutil.Compose(t.Position, t.Rotation, mathutil.Vec3{t.Scale, t.Scale, t.Scale})
}

// FeatherID identifies a feather node within one build of a Wing.
// IDs are never reused across rebuilds, so a stale handle resolves to nil.
type FeatherID uint64

// Feather is one visual child of the wing root.
type Feather struct {
	ID        FeatherID
	Layer     int
	Transform Transform
	Color     colorful.Color
}

// Wing is the scene container: feathers are positioned relative to Root.
type Wing struct {
	Root     Transform
	Feathers []Feather

	nextID FeatherID
	index  map[FeatherID]int
}

// NewWing returns an empty wing at its rest orientation.
func NewWing() *Wing {
	return &Wing{
		Root:  Transform{Scale: 1, Rotation: wing.RestRootRotation},
		index: make(map[FeatherID]int),
	}
}

// Clear removes every feather.
func (w *Wing) Clear() {
	w.Feathers = w.Feathers[:0]
	clear(w.index)
}

// Build replaces all feathers with the placements of m and resets the root
// to its rest orientation. It returns the handles of the new feathers in
// placement order.
func (w *Wing) Build(m wing.Model) []FeatherID {
	w.Clear()
	w.Root = Transform{Scale: 1, Rotation: wing.RestRootRotation}

	ids := make([]FeatherID, 0, len(m.Placements))
	for _, p := range m.Placements {
		ids = append(ids, w.add(p))
	}
	return ids
}

func (w *Wing) add(p wing.Placement) FeatherID {
	if w.index == nil {
		w.index = make(map[FeatherID]int)
	}
	w.nextID++
	id := w.nextID
	w.index[id] = len(w.Feathers)
	w.Feathers = append(w.Feathers, Feather{
		ID:    id,
		Layer: p.Layer,
		Transform: Transform{
			Position: p.Position,
			Scale:    p.Scale,
			Rotation: p.Rotation,
		},
		Color: p.Color,
	})
	return id
}

// Feather resolves a handle, returning nil if it belongs to an earlier build.
func (w *Wing) Feather(id FeatherID) *Feather {
	i, ok := w.index[id]
	if !ok {
		return nil
	}
	return &w.Feathers[i]
}

// Len returns the number of feathers.
func (w *Wing) Len() int {
	return len(w.Feathers)
}

// Snapshot is an immutable copy of the wing's transforms at one frame,
// safe to hand to render workers.
type Snapshot struct {
	Frame    int
	TimeMs   float64
	Root     Transform
	Feathers []Feather
}

// Snapshot deep-copies the current state.
func (w *Wing) Snapshot(frame int, timeMs float64) Snapshot {
	fs := make([]Feather, len(w.Feathers))
	copy(fs, w.Feathers)
	return Snapshot{Frame: frame, TimeMs: timeMs, Root: w.Root, Feathers: fs}
}
