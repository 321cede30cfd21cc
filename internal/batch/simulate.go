package batch

import (
	"fmt"

	"featherwing/internal/mesh"
	"featherwing/internal/scene"
	"featherwing/internal/timeline"
	"featherwing/internal/wing"
)

// Job describes the animation to simulate.
type Job struct {
	Params   wing.Params
	Shape    *mesh.Mesh
	Animator scene.Animator
	Timeline *timeline.Timeline // may be nil

	Frames  int
	StartMs float64
	FrameMs float64
}

// Frame is one simulated frame, ready to be rasterized.
type Frame struct {
	Snapshot scene.Snapshot
	Params   wing.Params
	Builds   int
}

// Simulate drives a Host through job.Frames ticks and snapshots the wing
// after each one. Edits scheduled for a frame apply before its tick.
// Animation accumulates across frames, so this runs sequentially.
func Simulate(job Job) ([]Frame, error) {
	host := scene.NewHost(job.Params, job.Animator)
	host.SetShape(job.Shape)

	frames := make([]Frame, 0, max(job.Frames, 0))
	for i := 0; i < job.Frames; i++ {
		p, changed, err := job.Timeline.Apply(i, host.Params())
		if err != nil {
			return nil, fmt.Errorf("batch: simulate: %w", err)
		}
		if changed {
			host.SetParams(p)
		}

		t := job.StartMs + float64(i)*job.FrameMs
		host.Frame(t)
		frames = append(frames, Frame{
			Snapshot: host.Wing().Snapshot(i, t),
			Params:   host.Params(),
			Builds:   host.Builds(),
		})
	}
	return frames, nil
}
