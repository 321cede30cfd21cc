package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoFaces is returned when an OBJ file contains no usable faces.
var ErrNoFaces = errors.New("mesh: no faces")

// LoadOBJ reads a Wavefront OBJ file and returns the geometry of its first
// object. Polygons are triangulated as fans; normals are ignored since the
// renderer shades per face.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ decodes OBJ text. Only the first "o"/"g" block that has faces is
// kept, matching how the wing host uses children[0] of the loaded object.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	p := &objParser{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.done {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(p.mesh.Tris) == 0 {
		return nil, ErrNoFaces
	}
	return p.finish(), nil
}

type objParser struct {
	verts [][3]float32
	uvs   [][2]float32
	mesh  Mesh
	done  bool

	// remap global OBJ indices to the compacted mesh arrays
	vmap  map[int]int
	uvmap map[int]int
}

func (p *objParser) parseLine(s string) error {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.verts = append(p.verts, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		p.uvs = append(p.uvs, [2]float32{v[0], v[1]})
	case "o", "g":
		if len(p.mesh.Tris) > 0 {
			p.done = true
			return nil
		}
		if len(fields) > 1 {
			p.mesh.Name = strings.Join(fields[1:], " ")
		}
	case "f":
		return p.parseFace(fields[1:])
	}
	return nil
}

func (p *objParser) parseFace(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("face with %d vertices", len(corners))
	}
	vi := make([]int, len(corners))
	ti := make([]int, len(corners))
	for k, c := range corners {
		parts := strings.Split(c, "/")
		v, err := resolveIndex(parts[0], len(p.verts))
		if err != nil {
			return err
		}
		vi[k] = p.vertex(v)
		ti[k] = -1
		if len(parts) > 1 && parts[1] != "" {
			t, err := resolveIndex(parts[1], len(p.uvs))
			if err != nil {
				return err
			}
			ti[k] = p.uv(t)
		}
	}

	// Fan triangulation: 0-1-2, 0-2-3, ...
	for k := 1; k+1 < len(corners); k++ {
		p.mesh.Tris = append(p.mesh.Tris, Triangle{
			VI: [3]int{vi[0], vi[k], vi[k+1]},
			TI: [3]int{ti[0], ti[k], ti[k+1]},
		})
	}
	return nil
}

func (p *objParser) vertex(global int) int {
	if p.vmap == nil {
		p.vmap = make(map[int]int)
	}
	if local, ok := p.vmap[global]; ok {
		return local
	}
	local := len(p.mesh.Verts)
	p.mesh.Verts = append(p.mesh.Verts, p.verts[global])
	p.vmap[global] = local
	return local
}

func (p *objParser) uv(global int) int {
	if p.uvmap == nil {
		p.uvmap = make(map[int]int)
	}
	if local, ok := p.uvmap[global]; ok {
		return local
	}
	local := len(p.mesh.UVs)
	p.mesh.UVs = append(p.mesh.UVs, p.uvs[global])
	p.uvmap[global] = local
	return local
}

func (p *objParser) finish() *Mesh {
	m := p.mesh
	return &m
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into a
// 0-based index into an array of length n.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i = n + i
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, n)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for k := 0; k < n; k++ {
		v, err := strconv.ParseFloat(fields[k], 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", fields[k])
		}
		out[k] = float32(v)
	}
	return out, nil
}
