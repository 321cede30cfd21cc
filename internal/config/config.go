package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"featherwing/internal/timeline"
	"featherwing/internal/wing"
)

// Config holds input paths, render settings, the starting wing parameters
// and scripted parameter edits.
type Config struct {
	// Paths
	FeatherOBJ     string `json:"feather_obj" yaml:"feather_obj" toml:"feather_obj"`             // empty = built-in feather
	FeatherTexture string `json:"feather_texture" yaml:"feather_texture" toml:"feather_texture"` // optional
	Background     string `json:"background" yaml:"background" toml:"background"`                // optional sky image
	Output         string `json:"output" yaml:"output" toml:"output"`                            // .webp file, or directory with PerFrame

	// Render settings
	Width       int     `json:"width" yaml:"width" toml:"width"`
	Height      int     `json:"height" yaml:"height" toml:"height"`
	Supersample int     `json:"supersample" yaml:"supersample" toml:"supersample"`
	Frames      int     `json:"frames" yaml:"frames" toml:"frames"`
	FrameMs     float64 `json:"frame_ms" yaml:"frame_ms" toml:"frame_ms"`
	StartMs     float64 `json:"start_ms" yaml:"start_ms" toml:"start_ms"`
	FOV         float64 `json:"fov" yaml:"fov" toml:"fov"`
	Seed        uint64  `json:"seed" yaml:"seed" toml:"seed"`
	Workers     int     `json:"workers" yaml:"workers" toml:"workers"`
	Transparent bool    `json:"transparent" yaml:"transparent" toml:"transparent"`
	PerFrame    bool    `json:"per_frame" yaml:"per_frame" toml:"per_frame"`
	LoopCount   int     `json:"loop_count" yaml:"loop_count" toml:"loop_count"` // 0 = forever

	Wing     wing.Patch      `json:"wing" yaml:"wing" toml:"wing"`
	Timeline []timeline.Edit `json:"timeline" yaml:"timeline" toml:"timeline"`

	// dir is the directory of the loaded file; relative paths resolve against it.
	dir string
}

// Load reads a JSON, YAML or TOML config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean "not set".
type Flags struct {
	FeatherOBJ string
	Background string
	Output     string
	Width      int
	Height     int
	Frames     int
	Workers    int
	Seed       uint64
	FOV        float64
	PerFrame   bool
}

// Resolve applies CLI overrides, fills empty fields with defaults and
// resolves relative paths against the config file's directory.
func (c *Config) Resolve(flags Flags) {
	// Relative paths in the file are relative to the file; flag paths
	// are relative to the working directory.
	c.FeatherOBJ = c.resolvePath(c.FeatherOBJ)
	c.FeatherTexture = c.resolvePath(c.FeatherTexture)
	c.Background = c.resolvePath(c.Background)

	// CLI flags override config file
	if flags.FeatherOBJ != "" {
		c.FeatherOBJ = flags.FeatherOBJ
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Seed > 0 {
		c.Seed = flags.Seed
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	if flags.PerFrame {
		c.PerFrame = true
	}

	if c.Output == "" {
		if c.PerFrame {
			c.Output = "wing-frames"
		} else {
			c.Output = "wing.webp"
		}
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 480
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Frames <= 0 {
		c.Frames = 90
	}
	if c.FrameMs <= 0 {
		c.FrameMs = 1000.0 / 30
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = 75
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.LoopCount < 0 {
		c.LoopCount = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Params returns the starting wing parameters: defaults overlaid with the
// config's wing section, clamped to slider ranges.
func (c *Config) Params() (wing.Params, error) {
	p, err := c.Wing.Apply(wing.DefaultParams())
	if err != nil {
		return wing.Params{}, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// BuildTimeline validates the scripted edits.
func (c *Config) BuildTimeline() (*timeline.Timeline, error) {
	tl, err := timeline.New(c.Timeline)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return tl, nil
}
