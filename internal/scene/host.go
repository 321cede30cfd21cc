package scene

import (
	"featherwing/internal/mesh"
	"featherwing/internal/wing"
)

// Animator advances the wing by one frame.
type Animator interface {
	Step(w *Wing, timeMs float64, p wing.Params)
}

// Host owns the parameter set, the base feather shape and the wing, and
// serializes the three events that touch them: the shape finishing loading,
// a parameter edit and a frame tick. It is driven from a single goroutine.
type Host struct {
	params   wing.Params
	shape    *mesh.Mesh
	wing     *Wing
	model    wing.Model
	animator Animator

	pending bool
	builds  int
}

// NewHost returns a host with no shape loaded yet. Generation is pending
// until SetShape is called.
func NewHost(p wing.Params, a Animator) *Host {
	return &Host{
		params:   p,
		wing:     NewWing(),
		animator: a,
		pending:  true,
	}
}

// SetShape is the load-completion callback for the base feather mesh. It
// runs any generation that was waiting for the shape.
func (h *Host) SetShape(m *mesh.Mesh) {
	h.shape = m
	if m != nil && h.pending {
		h.regenerate()
	}
}

// SetParams replaces the parameter set. A change to any layout field
// rebuilds the wing from scratch; changes to the flap and wind speeds only
// affect later frames and keep the accumulated motion. Without a shape the
// rebuild is deferred to SetShape.
func (h *Host) SetParams(p wing.Params) {
	if h.Ready() && h.params.LayoutEqual(p) {
		h.params = p
		return
	}
	h.params = p
	h.pending = true
	if h.shape != nil {
		h.regenerate()
	}
}

// Frame applies one animation step at timeMs. It does nothing until the
// wing has been generated.
func (h *Host) Frame(timeMs float64) {
	if h.shape == nil || h.pending || h.animator == nil {
		return
	}
	h.animator.Step(h.wing, timeMs, h.params)
}

func (h *Host) regenerate() {
	h.model = wing.Generate(h.params)
	h.wing.Build(h.model)
	h.pending = false
	h.builds++
}

// Params returns the current parameter set.
func (h *Host) Params() wing.Params { return h.params }

// Shape returns the loaded base shape, or nil.
func (h *Host) Shape() *mesh.Mesh { return h.shape }

// Wing returns the live wing. Callers must not retain feather pointers
// across SetParams.
func (h *Host) Wing() *Wing { return h.wing }

// Model returns the layout of the most recent build.
func (h *Host) Model() wing.Model { return h.model }

// Ready reports whether the wing has been generated for the current params.
func (h *Host) Ready() bool { return h.shape != nil && !h.pending }

// Builds counts completed regenerations.
func (h *Host) Builds() int { return h.builds }
