package raster

import (
	"math"

	"featherwing/internal/mathutil"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mathutil.Vec3
	Target   mathutil.Vec3
	Up       mathutil.Vec3
	FOV      float64 // vertical field of view, degrees
	Near     float64
}

// DefaultCamera frames the wing from above and slightly to the left.
func DefaultCamera() Camera {
	return Camera{
		Position: mathutil.Vec3{-2, 10, 15},
		Up:       mathutil.Vec3{0, 1, 0},
		FOV:      75,
		Near:     0.1,
	}
}

// projector maps camera-space points to pixel coordinates.
type projector struct {
	view  mathutil.Mat4
	focal float64 // pixels per unit at depth 1
	halfW float64
	halfH float64
	near  float64
}

func newProjector(c Camera, width, height int) projector {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 75
	}
	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	up := c.Up
	if up.Len() == 0 {
		up = mathutil.Vec3{0, 1, 0}
	}
	h := float64(height)
	return projector{
		view:  mathutil.LookAt(c.Position, c.Target, up),
		focal: (h / 2) / math.Tan(mathutil.Deg2Rad(fov)/2),
		halfW: float64(width) / 2,
		halfH: h / 2,
		near:  near,
	}
}

// screenVertex is a projected vertex. Depth is 1/distance along the view
// axis, so larger means closer and it interpolates linearly in screen space.
type screenVertex struct {
	X, Y  float64
	Depth float64
}

// project converts a camera-space point. ok is false behind the near plane.
func (p *projector) project(c mathutil.Vec3) (screenVertex, bool) {
	d := -c[2]
	if d < p.near {
		return screenVertex{}, false
	}
	inv := 1 / d
	return screenVertex{
		X:     p.halfW + c[0]*p.focal*inv,
		Y:     p.halfH - c[1]*p.focal*inv,
		Depth: inv,
	}, true
}
