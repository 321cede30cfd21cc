package raster

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"featherwing/internal/mathutil"
	"featherwing/internal/mesh"
	"featherwing/internal/scene"
)

// Default sky, used when no background image is given.
var (
	SkyTop    = colorful.Color{R: 0.36, G: 0.58, B: 0.86}
	SkyBottom = colorful.Color{R: 0.86, G: 0.91, B: 0.96}
)

// Options controls one frame render. Width and Height are the final render
// target size in pixels, already multiplied by any supersampling factor.
type Options struct {
	Width, Height int
	Camera        Camera
	Light         LightConfig

	// Background must be Width×Height when set. Otherwise the sky gradient
	// is painted, or nothing at all when Transparent is set.
	Background  *image.NRGBA
	Transparent bool

	// FeatherTexture modulates every feather's color when the shape has UVs.
	FeatherTexture *image.NRGBA
}

// RenderWing rasterizes one wing snapshot, instancing shape once per feather.
func RenderWing(snap *scene.Snapshot, shape *mesh.Mesh, opts *Options) *image.NRGBA {
	fb := NewFrameBuffer(opts.Width, opts.Height)
	switch {
	case opts.Background != nil && fb.FillImage(opts.Background):
	case opts.Transparent:
	default:
		fb.FillGradient(SkyTop, SkyBottom)
	}

	if shape == nil || len(shape.Tris) == 0 || len(snap.Feathers) == 0 {
		return fb.Image()
	}

	proj := newProjector(opts.Camera, opts.Width, opts.Height)
	lc := opts.Light
	// Light is given in world space; shading happens in camera space.
	lc.LightDir = proj.view.MulDir(lc.LightDir).Normalize()

	rootView := mathutil.Mat4Mul(proj.view, snap.Root.Matrix())

	hasUV := opts.FeatherTexture != nil && shape.HasUVs()
	camVerts := make([]mathutil.Vec3, len(shape.Verts))

	for fi := range snap.Feathers {
		f := &snap.Feathers[fi]
		mv := mathutil.Mat4Mul(rootView, f.Transform.Matrix())
		for i, v := range shape.Verts {
			camVerts[i] = mv.MulPoint(mathutil.Vec3f(v))
		}

		mat := Material{Tex: opts.FeatherTexture}
		mat.Linear[0], mat.Linear[1], mat.Linear[2] = f.Color.Clamped().LinearRgb()

		for _, tri := range shape.Tris {
			drawTriangle(fb, &proj, &lc, shape, camVerts, tri, &mat, hasUV)
		}
	}
	return fb.Image()
}

func drawTriangle(
	fb *FrameBuffer,
	proj *projector,
	lc *LightConfig,
	shape *mesh.Mesh,
	camVerts []mathutil.Vec3,
	tri mesh.Triangle,
	mat *Material,
	hasUV bool,
) {
	nv := len(camVerts)
	var sv [3]screenVertex
	var cv [3]mathutil.Vec3
	for k, i := range tri.VI {
		if i < 0 || i >= nv {
			return
		}
		cv[k] = camVerts[i]
		p, ok := proj.project(cv[k])
		if !ok {
			return
		}
		sv[k] = p
	}

	normal := cv[1].Sub(cv[0]).Cross(cv[2].Sub(cv[0]))
	if normal.Len() < 1e-12 {
		return
	}
	normal = normal.Normalize()
	// camera sits at the origin of camera space
	viewDir := cv[0].Scale(-1).Normalize()
	shade := lc.ComputeShade(normal, viewDir)

	var uvp *[3][2]float64
	if hasUV {
		var uv [3][2]float64
		for k, i := range tri.TI {
			if i < 0 || i >= len(shape.UVs) {
				uvp = nil
				break
			}
			uv[k] = [2]float64{float64(shape.UVs[i][0]), float64(shape.UVs[i][1])}
			uvp = &uv
		}
	}

	RasterizeTriangle(fb, sv, uvp, mat, shade, lc)
}
