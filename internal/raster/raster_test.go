package raster

import (
	"image"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featherwing/internal/mathutil"
	"featherwing/internal/mesh"
	"featherwing/internal/scene"
	"featherwing/internal/wing"
)

func defaultSnapshot(t *testing.T) scene.Snapshot {
	t.Helper()
	w := scene.NewWing()
	w.Build(wing.Generate(wing.DefaultParams()))
	return w.Snapshot(0, 0)
}

func opaquePixels(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestRenderWingTransparent(t *testing.T) {
	snap := defaultSnapshot(t)
	opts := &Options{
		Width:       160,
		Height:      120,
		Camera:      DefaultCamera(),
		Light:       DefaultLightConfig(),
		Transparent: true,
	}

	img := RenderWing(&snap, mesh.Feather(), opts)
	require.Equal(t, image.Rect(0, 0, 160, 120), img.Bounds())

	n := opaquePixels(img)
	// the vanes face the camera, so the wing is clearly visible
	assert.Greater(t, n, 160*120/50, "wing should cover part of the frame")
	assert.Less(t, n, 160*120, "wing should not cover the whole frame")
}

func TestRenderEmptyWingKeepsBackground(t *testing.T) {
	w := scene.NewWing()
	snap := w.Snapshot(0, 0)
	opts := &Options{Width: 32, Height: 16, Camera: DefaultCamera(), Light: DefaultLightConfig()}

	img := RenderWing(&snap, mesh.Feather(), opts)
	assert.Equal(t, 32*16, opaquePixels(img))

	top := img.NRGBAAt(0, 0)
	bottom := img.NRGBAAt(0, 15)
	tr, tg, tb := SkyTop.BlendLab(SkyBottom, 0).Clamped().RGB255()
	assert.Equal(t, [3]uint8{tr, tg, tb}, [3]uint8{top.R, top.G, top.B})
	assert.NotEqual(t, top, bottom)

	opts.Transparent = true
	assert.Zero(t, opaquePixels(RenderWing(&snap, mesh.Feather(), opts)))
}

func TestRenderUsesBackgroundImage(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(bg.Pix); i += 4 {
		bg.Pix[i], bg.Pix[i+1], bg.Pix[i+2], bg.Pix[i+3] = 10, 20, 30, 255
	}
	snap := scene.NewWing().Snapshot(0, 0)
	opts := &Options{Width: 8, Height: 8, Camera: DefaultCamera(), Background: bg}

	img := RenderWing(&snap, mesh.Feather(), opts)
	assert.Equal(t, bg.Pix, img.Pix)
}

func TestRenderIsDeterministic(t *testing.T) {
	snap := defaultSnapshot(t)
	opts := &Options{Width: 64, Height: 48, Camera: DefaultCamera(), Light: DefaultLightConfig()}
	a := RenderWing(&snap, mesh.Feather(), opts)
	b := RenderWing(&snap, mesh.Feather(), opts)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRasterizeDepthTest(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	lc := DefaultLightConfig()
	shade := [3]float64{1, 1, 1}

	tri := func(depth float64) [3]screenVertex {
		return [3]screenVertex{{0, 0, depth}, {10, 0, depth}, {0, 10, depth}}
	}
	red := &Material{Linear: [3]float64{1, 0, 0}}
	blue := &Material{Linear: [3]float64{0, 0, 1}}

	RasterizeTriangle(fb, tri(0.5), nil, red, shade, &lc)
	RasterizeTriangle(fb, tri(0.2), nil, blue, shade, &lc) // farther: hidden
	px := fb.Image().NRGBAAt(1, 1)
	assert.Greater(t, px.R, uint8(200))
	assert.Zero(t, px.B)

	RasterizeTriangle(fb, tri(0.9), nil, blue, shade, &lc) // closer: wins
	px = fb.Image().NRGBAAt(1, 1)
	assert.Zero(t, px.R)
	assert.Greater(t, px.B, uint8(200))

	// outside the triangle stays empty
	assert.Zero(t, fb.Image().NRGBAAt(9, 9).A)
}

func TestRasterizeTexture(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(tex.Pix); i += 4 {
		tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2], tex.Pix[i+3] = 255, 255, 255, 0
	}
	fb := NewFrameBuffer(4, 4)
	lc := DefaultLightConfig()
	uv := [3][2]float64{{0, 0}, {1, 0}, {0, 1}}
	sv := [3]screenVertex{{0, 0, 1}, {4, 0, 1}, {0, 4, 1}}

	// fully transparent texels are cut out
	RasterizeTriangle(fb, sv, &uv, &Material{Linear: [3]float64{1, 1, 1}, Tex: tex}, [3]float64{1, 1, 1}, &lc)
	assert.Zero(t, opaquePixels(fb.Image()))
}

func TestComputeShadeDoubleSided(t *testing.T) {
	lc := NewLightConfig(mathutil.Vec3{0, 0, 1}, colorful.Color{R: 1, G: 1, B: 1})
	view := mathutil.Vec3{0, 0, 1}
	front := lc.ComputeShade(mathutil.Vec3{0, 0, 1}, view)
	back := lc.ComputeShade(mathutil.Vec3{0, 0, -1}, view)
	assert.Equal(t, front, back)

	side := lc.ComputeShade(mathutil.Vec3{1, 0, 0}, mathutil.Vec3{1, 0, 0})
	assert.Greater(t, front[0], side[0])
}

func TestProjector(t *testing.T) {
	p := newProjector(DefaultCamera(), 200, 100)

	// the look-at target projects to the frame center
	c := p.view.MulPoint(mathutil.Vec3{})
	sv, ok := p.project(c)
	require.True(t, ok)
	assert.InDelta(t, 100, sv.X, 1e-9)
	assert.InDelta(t, 50, sv.Y, 1e-9)

	// points behind the camera are rejected
	_, ok = p.project(mathutil.Vec3{0, 0, 1})
	assert.False(t, ok)
}
