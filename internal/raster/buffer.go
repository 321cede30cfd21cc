package raster

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // inverse view depth per pixel, 0 = infinitely far
}

// NewFrameBuffer allocates a transparent color buffer and an empty z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   make([]float64, n),
	}
}

// FillImage copies img into the color buffer. img must match the buffer size.
func (fb *FrameBuffer) FillImage(img *image.NRGBA) bool {
	b := img.Bounds()
	if b.Dx() != fb.Width || b.Dy() != fb.Height {
		return false
	}
	rowBytes := fb.Width * 4
	for y := 0; y < fb.Height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowBytes]
		copy(fb.Color[y*rowBytes:], src)
	}
	return true
}

// FillGradient paints a vertical sky gradient from top to bottom,
// interpolated in CIE L*a*b* so the midtones stay even.
func (fb *FrameBuffer) FillGradient(top, bottom colorful.Color) {
	for y := 0; y < fb.Height; y++ {
		t := 0.0
		if fb.Height > 1 {
			t = float64(y) / float64(fb.Height-1)
		}
		r, g, b := top.BlendLab(bottom, t).Clamped().RGB255()
		row := y * fb.Width * 4
		for x := 0; x < fb.Width; x++ {
			i := row + x*4
			fb.Color[i] = r
			fb.Color[i+1] = g
			fb.Color[i+2] = b
			fb.Color[i+3] = 255
		}
	}
}

// Image wraps the color buffer as an NRGBA image (no copy).
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}
