// Package timeline schedules parameter edits by frame number, the offline
// stand-in for a user dragging sliders while the wing animates.
package timeline

import (
	"errors"
	"fmt"
	"sort"

	"featherwing/internal/wing"
)

// ErrBadFrame is returned for edits scheduled before frame 0.
var ErrBadFrame = errors.New("timeline: frame must be >= 0")

// Edit sets some parameters at the start of Frame.
type Edit struct {
	Frame int        `json:"frame" yaml:"frame" toml:"frame"`
	Set   wing.Patch `json:"set" yaml:"set" toml:"set"`
}

// Timeline is an ordered list of edits. Edits sharing a frame apply in the
// order they were given.
type Timeline struct {
	edits []Edit
}

// New validates and orders edits.
func New(edits []Edit) (*Timeline, error) {
	sorted := make([]Edit, 0, len(edits))
	for i, e := range edits {
		if e.Frame < 0 {
			return nil, fmt.Errorf("edit %d at frame %d: %w", i, e.Frame, ErrBadFrame)
		}
		if e.Set.Empty() {
			continue
		}
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	return &Timeline{edits: sorted}, nil
}

// Len returns the number of non-empty edits.
func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.edits)
}

// At returns the edits scheduled for frame.
func (t *Timeline) At(frame int) []Edit {
	if t == nil {
		return nil
	}
	lo := sort.Search(len(t.edits), func(i int) bool { return t.edits[i].Frame >= frame })
	hi := lo
	for hi < len(t.edits) && t.edits[hi].Frame == frame {
		hi++
	}
	return t.edits[lo:hi]
}

// Apply folds the edits of frame into p. changed reports whether any edit
// was scheduled, even if it left the values as they were.
func (t *Timeline) Apply(frame int, p wing.Params) (out wing.Params, changed bool, err error) {
	out = p
	for _, e := range t.At(frame) {
		out, err = e.Set.Apply(out)
		if err != nil {
			return p, false, fmt.Errorf("timeline: frame %d: %w", frame, err)
		}
		changed = true
	}
	return out, changed, nil
}
