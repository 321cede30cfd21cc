package wing

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Patch is a partial parameter set as read from config files. Nil fields
// leave the current value alone. Color is a "#rrggbb" string.
type Patch struct {
	Curvature    *float64 `json:"curvature,omitempty" yaml:"curvature,omitempty" toml:"curvature,omitempty"`
	Distribution *float64 `json:"distribution,omitempty" yaml:"distribution,omitempty" toml:"distribution,omitempty"`
	Count        *float64 `json:"count,omitempty" yaml:"count,omitempty" toml:"count,omitempty"`
	Size         *float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Color        *string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Orientation  *float64 `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	FlapSpeed    *float64 `json:"flap_speed,omitempty" yaml:"flap_speed,omitempty" toml:"flap_speed,omitempty"`
	FlapMotion   *float64 `json:"flap_motion,omitempty" yaml:"flap_motion,omitempty" toml:"flap_motion,omitempty"`
	WindSpeed    *float64 `json:"wind_speed,omitempty" yaml:"wind_speed,omitempty" toml:"wind_speed,omitempty"`
}

// Apply returns p with the patch's fields overlaid, clamped to Ranges.
func (pt Patch) Apply(p Params) (Params, error) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Curvature, pt.Curvature)
	set(&p.Distribution, pt.Distribution)
	set(&p.Count, pt.Count)
	set(&p.Size, pt.Size)
	set(&p.Orientation, pt.Orientation)
	set(&p.FlapSpeed, pt.FlapSpeed)
	set(&p.FlapMotion, pt.FlapMotion)
	set(&p.WindSpeed, pt.WindSpeed)

	if pt.Color != nil {
		c, err := colorful.Hex(*pt.Color)
		if err != nil {
			return p, fmt.Errorf("wing: color %q: %w", *pt.Color, err)
		}
		p.Color = c
	}
	return p.Clamped(), nil
}

// Empty reports whether the patch changes nothing.
func (pt Patch) Empty() bool {
	return pt == Patch{}
}
