package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featherwing/internal/mathutil"
)

const quadOBJ = `# exported feather
mtllib feather.mtl
o Feather
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
o Other
v 5 5 5
v 6 5 5
v 6 6 5
f 5 6 7
`

func TestParseOBJ(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, "Feather", m.Name)
	assert.Len(t, m.Verts, 4)
	assert.Len(t, m.UVs, 4)
	require.Len(t, m.Tris, 2)
	assert.Equal(t, [3]int{0, 1, 2}, m.Tris[0].VI)
	assert.Equal(t, [3]int{0, 2, 3}, m.Tris[1].VI)
	assert.Equal(t, [3]int{0, 2, 3}, m.Tris[1].TI)
	assert.True(t, m.HasUVs())

	min, max := m.Bounds()
	assert.Equal(t, mathutil.Vec3{0, 0, 0}, min)
	assert.Equal(t, mathutil.Vec3{1, 1, 0}, max)
}

func TestParseOBJIndexForms(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
f -3 -2 -1
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Tris, 2)
	assert.Equal(t, m.Tris[0].VI, m.Tris[1].VI)
	assert.Equal(t, [3]int{-1, -1, -1}, m.Tris[0].TI)
	assert.False(t, m.HasUVs())
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"no faces", "v 0 0 0\nv 1 0 0\n", ErrNoFaces},
		{"index out of range", "v 0 0 0\nf 1 2 3\n", nil},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", nil},
		{"bad number", "v 0 x 0\n", nil},
		{"two-vertex face", "v 0 0 0\nv 1 0 0\nf 1 2\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feather.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0644))

	m, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Len(t, m.Tris, 2)

	_, err = LoadOBJ(filepath.Join(dir, "missing.obj"))
	assert.ErrorContains(t, err, "mesh: read")
}

func TestFeather(t *testing.T) {
	m := Feather()
	assert.Len(t, m.Verts, (featherSegments+1)*3)
	assert.Len(t, m.Tris, featherSegments*4)
	assert.True(t, m.HasUVs())

	for _, tri := range m.Tris {
		for _, i := range tri.VI {
			assert.Less(t, i, len(m.Verts))
		}
	}

	// flat in XZ, shaft along +Z, symmetric vane
	min, max := m.Bounds()
	assert.InDelta(t, 0, min[2], 1e-6)
	assert.InDelta(t, featherLength, max[2], 1e-6)
	assert.InDelta(t, -max[0], min[0], 1e-6)
	assert.Greater(t, max[0], 0.0)
	assert.Zero(t, min[1])
	assert.Zero(t, max[1])
}
