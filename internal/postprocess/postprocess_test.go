package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsample(t *testing.T) {
	c := color.NRGBA{200, 100, 50, 255}
	out := Downsample(solid(64, 32, c), 32, 16)
	assert.Equal(t, image.Rect(0, 0, 32, 16), out.Bounds())
	got := out.NRGBAAt(10, 8)
	assert.InDelta(t, 200, int(got.R), 1)
	assert.InDelta(t, 100, int(got.G), 1)
	assert.InDelta(t, 50, int(got.B), 1)
	assert.Equal(t, uint8(255), got.A)

	// already small enough: returned as is
	small := solid(8, 8, c)
	assert.Same(t, small, Downsample(small, 16, 16))
}

func TestDownsampleNoDarkHalo(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	out := Downsample(img, 4, 4)
	for x := 0; x < 4; x++ {
		px := out.NRGBAAt(x, 2)
		if px.A > 8 {
			assert.Greater(t, px.R, uint8(230), "edge pixel %d darkened: %v", x, px)
		}
	}
}

func TestCover(t *testing.T) {
	// wide source: left half red, right half blue
	src := image.NewNRGBA(image.Rect(0, 0, 40, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			c := color.NRGBA{255, 0, 0, 255}
			if x >= 20 {
				c = color.NRGBA{0, 0, 255, 255}
			}
			src.SetNRGBA(x, y, c)
		}
	}
	out := Cover(src, 20, 20)
	assert.Equal(t, image.Rect(0, 0, 20, 20), out.Bounds())
	assert.Greater(t, out.NRGBAAt(1, 10).R, uint8(200))
	assert.Greater(t, out.NRGBAAt(18, 10).B, uint8(200))

	assert.Equal(t, image.Rect(0, 0, 4, 4), Cover(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 4, 4).Bounds())
}
