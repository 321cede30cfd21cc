package raster

import (
	"image"
	"math"
)

// Material is the surface of one feather: a base color in linear RGB,
// optionally modulated by a texture.
type Material struct {
	Linear [3]float64
	Tex    *image.NRGBA
}

// RasterizeTriangle fills a projected triangle with z-buffering, texture
// modulation, per-face shading, ACES tone mapping and sRGB encoding.
//
// This is the HOT PATH: zero allocation in the pixel loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	sv [3]screenVertex,
	uv *[3][2]float64,
	mat *Material,
	shade [3]float64,
	lc *LightConfig,
) {
	x0, y0, z0 := sv[0].X, sv[0].Y, sv[0].Depth
	x1, y1, z1 := sv[1].X, sv[1].Y, sv[1].Depth
	x2, y2, z2 := sv[2].X, sv[2].Y, sv[2].Depth

	hasUV := uv != nil && mat.Tex != nil

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Shade is constant over the face: fold it into the base color once.
	var lit [3]float64
	for k := 0; k < 3; k++ {
		lit[k] = mat.Linear[k] * shade[k] * lc.Exposure
	}
	var flat [3]uint8
	if !hasUV {
		for k := 0; k < 3; k++ {
			flat[k] = encode(lit[k], lc.InvGamma)
		}
	}

	stride := fb.Width
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * stride
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			pxIdx := zIdx * 4
			if !hasUV {
				fb.ZBuf[zIdx] = z
				fb.Color[pxIdx] = flat[0]
				fb.Color[pxIdx+1] = flat[1]
				fb.Color[pxIdx+2] = flat[2]
				fb.Color[pxIdx+3] = 255
				continue
			}

			u := w0*uv[0][0] + w1*uv[1][0] + w2*uv[2][0]
			v := w0*uv[0][1] + w1*uv[1][1] + w2*uv[2][1]
			cr, cg, cb, ca := SampleTexture(mat.Tex, u, v)

			// Cut-out: skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			fb.Color[pxIdx] = encode(srgbToLinear[cr]*lit[0], lc.InvGamma)
			fb.Color[pxIdx+1] = encode(srgbToLinear[cg]*lit[1], lc.InvGamma)
			fb.Color[pxIdx+2] = encode(srgbToLinear[cb]*lit[2], lc.InvGamma)
			fb.Color[pxIdx+3] = 255
		}
	}
}

// encode tone-maps a linear value and converts it to an 8-bit sRGB channel.
func encode(linear, invGamma float64) uint8 {
	return clamp255(math.Pow(ACESTonemap(linear), invGamma) * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
