package raster

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"featherwing/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in
// world space and point from the surface toward the light.
type LightConfig struct {
	LightDir   mathutil.Vec3
	LightColor [3]float64 // linear RGB
	Ambient    float64
	Hemi       float64
	Direct     float64
	SpecInt    float64
	SpecPow    float64
	Exposure   float64
	InvGamma   float64
}

// DefaultLightConfig is a single warm directional light placed at (1, 3, 2)
// with a soft sky fill. The feather material is almost matte.
func DefaultLightConfig() LightConfig {
	return NewLightConfig(mathutil.Vec3{1, 3, 2}, colorful.Hsl(0.1*360, 1, 0.95))
}

// NewLightConfig builds a light at position pos (direction toward the origin)
// with the given color.
func NewLightConfig(pos mathutil.Vec3, c colorful.Color) LightConfig {
	r, g, b := c.LinearRgb()
	return LightConfig{
		LightDir:   pos.Normalize(),
		LightColor: [3]float64{r, g, b},
		Ambient:    0.35,
		Hemi:       0.30,
		Direct:     1.10,
		SpecInt:    0.08,
		SpecPow:    4.0,
		Exposure:   1.05,
		InvGamma:   1.0 / 2.2,
	}
}

// ComputeShade returns the per-channel lighting multiplier for a face with
// the given normal, seen along viewDir (surface toward camera). Faces are
// double sided.
func (lc *LightConfig) ComputeShade(normal, viewDir mathutil.Vec3) [3]float64 {
	if normal.Dot(viewDir) < 0 {
		normal = normal.Scale(-1)
	}

	ndl := normal.Dot(lc.LightDir)
	if ndl < 0 {
		ndl = 0
	}

	// Hemisphere fill: brighter for upward-facing surfaces
	hemi := (normal[1]*0.5 + 0.5) * lc.Hemi

	// Blinn-Phong specular
	half := lc.LightDir.Add(viewDir).Normalize()
	ndh := normal.Dot(half)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	var out [3]float64
	for k := 0; k < 3; k++ {
		out[k] = lc.Ambient + hemi + (ndl*lc.Direct+spec)*lc.LightColor[k]
	}
	return out
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
