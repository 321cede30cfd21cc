package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
feather_obj: geo/feather.obj
background: /abs/sky.png
width: 320
height: 240
frames: 12
seed: 7
wing:
  curvature: 0.8
  count: 60
  color: "#336699"
timeline:
  - frame: 6
    set:
      count: 30
`

const jsonConfig = `{
  "feather_obj": "geo/feather.obj",
  "background": "/abs/sky.png",
  "width": 320,
  "height": 240,
  "frames": 12,
  "seed": 7,
  "wing": {"curvature": 0.8, "count": 60, "color": "#336699"},
  "timeline": [{"frame": 6, "set": {"count": 30}}]
}`

const tomlConfig = `
feather_obj = "geo/feather.obj"
background = "/abs/sky.png"
width = 320
height = 240
frames = 12
seed = 7

[wing]
curvature = 0.8
count = 60.0
color = "#336699"

[[timeline]]
frame = 6

[timeline.set]
count = 30.0
`

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAMLAndJSONAgree(t *testing.T) {
	y, err := Load(write(t, "wing.yaml", yamlConfig))
	require.NoError(t, err)
	j, err := Load(write(t, "wing.json", jsonConfig))
	require.NoError(t, err)

	py, err := y.Params()
	require.NoError(t, err)
	pj, err := j.Params()
	require.NoError(t, err)
	assert.Equal(t, py, pj)
	assert.Equal(t, 0.8, py.Curvature)
	assert.Equal(t, 60.0, py.Count)

	assert.Equal(t, y.Width, j.Width)
	assert.Equal(t, y.Frames, j.Frames)
	require.Len(t, y.Timeline, 1)
	require.Len(t, j.Timeline, 1)
	assert.Equal(t, *y.Timeline[0].Set.Count, *j.Timeline[0].Set.Count)
}

func TestLoadTOML(t *testing.T) {
	y, err := Load(write(t, "wing.yaml", yamlConfig))
	require.NoError(t, err)
	tc, err := Load(write(t, "wing.toml", tomlConfig))
	require.NoError(t, err)

	py, err := y.Params()
	require.NoError(t, err)
	pt, err := tc.Params()
	require.NoError(t, err)
	assert.Equal(t, py, pt)
	assert.Equal(t, y.Width, tc.Width)
	assert.Equal(t, y.Seed, tc.Seed)
	assert.Equal(t, y.FeatherOBJ, tc.FeatherOBJ)
	require.Len(t, tc.Timeline, 1)
	assert.Equal(t, 6, tc.Timeline[0].Frame)
	assert.Equal(t, 30.0, *tc.Timeline[0].Set.Count)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Load(write(t, "wing.ini", "x = 1"))
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = Load(write(t, "wing.json", "{"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	assert.Equal(t, "", c.FeatherOBJ)
	assert.Equal(t, "wing.webp", c.Output)
	assert.Equal(t, 480, c.Width)
	assert.Equal(t, 360, c.Height)
	assert.Equal(t, 2, c.Supersample)
	assert.Equal(t, 90, c.Frames)
	assert.InDelta(t, 33.333, c.FrameMs, 1e-3)
	assert.Equal(t, 75.0, c.FOV)
	assert.Equal(t, uint64(1), c.Seed)
	assert.Equal(t, runtime.NumCPU(), c.Workers)

	pf := Config{PerFrame: true}
	pf.Resolve(Flags{})
	assert.Equal(t, "wing-frames", pf.Output)
}

func TestResolveFlagsAndPaths(t *testing.T) {
	path := write(t, "wing.yaml", yamlConfig)
	c, err := Load(path)
	require.NoError(t, err)

	c.Resolve(Flags{Frames: 3, Workers: 2, Output: "out.webp"})
	assert.Equal(t, 3, c.Frames)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, "out.webp", c.Output)
	assert.Equal(t, 320, c.Width)
	assert.Equal(t, uint64(7), c.Seed)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "geo", "feather.obj"), c.FeatherOBJ)
	assert.Equal(t, "/abs/sky.png", c.Background)
}

func TestResolveFlagPathsStayRelative(t *testing.T) {
	path := write(t, "wing.yaml", yamlConfig)
	c, err := Load(path)
	require.NoError(t, err)

	c.Resolve(Flags{FeatherOBJ: "cli/feather.obj", Background: "sky.png"})
	assert.Equal(t, "cli/feather.obj", c.FeatherOBJ)
	assert.Equal(t, "sky.png", c.Background)
}

func TestParamsAndTimelineErrors(t *testing.T) {
	bad := "blue"
	c := Config{}
	c.Wing.Color = &bad
	_, err := c.Params()
	assert.ErrorContains(t, err, "config: wing: color")

	c, err = Load(write(t, "wing.yaml", "timeline:\n  - frame: -2\n    set:\n      count: 5\n"))
	require.NoError(t, err)
	_, err = c.BuildTimeline()
	assert.ErrorContains(t, err, "frame must be >= 0")

	c, err = Load(write(t, "wing.yaml", yamlConfig))
	require.NoError(t, err)
	tl, err := c.BuildTimeline()
	require.NoError(t, err)
	assert.Equal(t, 1, tl.Len())
}
