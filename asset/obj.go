package asset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/varlet/backend"
)

// OBJImporter reads Wavefront OBJ files: positions, normals, texture
// coordinates and faces. Polygons are fan-triangulated; "o" and "g"
// start a new mesh. Materials, lines and smoothing groups are ignored.
type OBJImporter struct{}

// Import opens and decodes path.
func (OBJImporter) Import(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := DecodeOBJ(f, name)
	if err != nil {
		return nil, fmt.Errorf("asset: %s: %w", path, err)
	}
	return m, nil
}

type objIndex struct{ v, vt, vn int }

type objDecoder struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2

	root    *Node
	current *MeshData
	dedup   map[objIndex]uint32
}

// DecodeOBJ decodes OBJ text into a model whose root is named name.
// Each "o"/"g" section becomes a child node holding one mesh.
func DecodeOBJ(r io.Reader, name string) (*Model, error) {
	d := &objDecoder{root: &Node{Name: name}}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if err := d.directive(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	d.flush()
	return &Model{Root: d.root}, nil
}

func (d *objDecoder) directive(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		d.positions = append(d.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		d.normals = append(d.normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		d.uvs = append(d.uvs, mgl32.Vec2{v[0], v[1]})
	case "f":
		return d.face(fields[1:])
	case "o", "g":
		d.flush()
		name := "default"
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		d.begin(name)
	}
	return nil
}

func (d *objDecoder) begin(name string) {
	d.current = &MeshData{Name: name}
	d.dedup = make(map[objIndex]uint32)
}

func (d *objDecoder) flush() {
	if d.current == nil || len(d.current.Indices) == 0 {
		return
	}
	d.root.Children = append(d.root.Children, &Node{
		Name:   d.current.Name,
		Meshes: []MeshData{*d.current},
	})
	d.current = nil
}

func (d *objDecoder) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("%w: face with %d vertices", ErrMalformed, len(refs))
	}
	if d.current == nil {
		d.begin("default")
	}
	idx := make([]uint32, len(refs))
	for i, ref := range refs {
		key, err := d.resolve(ref)
		if err != nil {
			return err
		}
		idx[i] = d.vertex(key)
	}
	for i := 1; i+1 < len(idx); i++ {
		d.current.Indices = append(d.current.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// resolve parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based
// indices, -1 meaning absent. Negative OBJ indices count from the end.
func (d *objDecoder) resolve(ref string) (objIndex, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objIndex{}, fmt.Errorf("%w: vertex reference %q", ErrMalformed, ref)
	}
	key := objIndex{v: -1, vt: -1, vn: -1}
	counts := [3]int{len(d.positions), len(d.uvs), len(d.normals)}
	targets := [3]*int{&key.v, &key.vt, &key.vn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return objIndex{}, fmt.Errorf("%w: vertex reference %q", ErrMalformed, ref)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return objIndex{}, fmt.Errorf("%w: vertex reference %q", ErrMalformed, ref)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return objIndex{}, fmt.Errorf("%w: zero index in %q", ErrMalformed, ref)
		}
		if n < 0 || n >= counts[i] {
			return objIndex{}, fmt.Errorf("%w: index out of range in %q", ErrMalformed, ref)
		}
		*targets[i] = n
	}
	return key, nil
}

func (d *objDecoder) vertex(key objIndex) uint32 {
	if i, ok := d.dedup[key]; ok {
		return i
	}
	v := backend.Vertex{Position: d.positions[key.v]}
	if key.vt >= 0 {
		v.UV = d.uvs[key.vt]
	}
	if key.vn >= 0 {
		v.Normal = d.normals[key.vn]
	}
	i := uint32(len(d.current.Vertices))
	d.current.Vertices = append(d.current.Vertices, v)
	d.dedup[key] = i
	return i
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d components, got %d", ErrMalformed, n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// ImporterFor returns the importer registered for path's extension.
func ImporterFor(path string) (Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return OBJImporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Import loads path with the importer for its extension.
func Import(path string) (*Model, error) {
	imp, err := ImporterFor(path)
	if err != nil {
		return nil, err
	}
	return imp.Import(path)
}
