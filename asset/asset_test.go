package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

const quadOBJ = `# unit quad
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
`

func TestDecodeOBJQuadFan(t *testing.T) {
	m, err := DecodeOBJ(strings.NewReader(quadOBJ), "quad")
	require.NoError(t, err)

	meshes := m.Meshes()
	require.Len(t, meshes, 1)
	mesh := meshes[0]
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	require.Len(t, mesh.Vertices, 4)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, mesh.Vertices[2].Position)
	assert.Equal(t, mgl32.Vec2{1, 1}, mesh.Vertices[2].UV)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, mesh.Vertices[2].Normal)
	assert.Equal(t, "quad", m.Root.Name)
}

func TestDecodeOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	m, err := DecodeOBJ(strings.NewReader(src), "tri")
	require.NoError(t, err)
	mesh := m.Meshes()[0]
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, mesh.Vertices[2].Position)
}

func TestDecodeOBJReferenceForms(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5 0.5
vn 0 0 1
f 1//1 2//1 3//1
f 1/1 2/1 3/1
`
	m, err := DecodeOBJ(strings.NewReader(src), "forms")
	require.NoError(t, err)
	mesh := m.Meshes()[0]
	assert.Len(t, mesh.Indices, 6)
	assert.Len(t, mesh.Vertices, 6, "v//vn and v/vt are distinct vertices")
}

func TestDecodeOBJObjectsSplitMeshes(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
o first
f 1 2 3
g second part
f 1 3 2
o empty
`
	m, err := DecodeOBJ(strings.NewReader(src), "multi")
	require.NoError(t, err)

	require.Len(t, m.Root.Children, 2, "sections without faces are dropped")
	assert.Equal(t, "first", m.Root.Children[0].Name)
	assert.Equal(t, "second part", m.Root.Children[1].Name)
	assert.Len(t, m.Meshes(), 2)
}

func TestDecodeOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 2\n"},
		{"two-vertex face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"out of range", "v 0 0 0\nf 1 2 3\n"},
		{"zero index", "v 0 0 0\nf 0 1 1\n"},
		{"garbage ref", "v 0 0 0\nf a b c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOBJ(strings.NewReader(tt.src), "bad")
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestDecodeOBJIgnoresUnknown(t *testing.T) {
	src := "mtllib x.mtl\nusemtl red\ns off\n" + quadOBJ
	m, err := DecodeOBJ(strings.NewReader(src), "quad")
	require.NoError(t, err)
	assert.Len(t, m.Meshes(), 1)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(p, []byte(quadOBJ), 0o600))

	m, err := Import(p)
	require.NoError(t, err)
	assert.Equal(t, "quad", m.Root.Name)

	_, err = Import(filepath.Join(dir, "model.fbx"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Import(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestModelMeshesNil(t *testing.T) {
	var m *Model
	assert.Nil(t, m.Meshes())
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(3, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	return img
}

func TestDecodeImageFormats(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer) error{
		"png": func(b *bytes.Buffer) error { return png.Encode(b, testImage()) },
		"bmp": func(b *bytes.Buffer) error { return bmp.Encode(b, testImage()) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, enc(&buf))

			img, err := DecodeImage(&buf)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
			assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 255}, img.RGBAAt(3, 1))
		})
	}
}

func TestDecodeImageUnknown(t *testing.T) {
	_, err := DecodeImage(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadImage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tex.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o600))

	img, err := LoadImage(p)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestDownscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))

	small := Downscale(img, 100)
	assert.Equal(t, image.Rect(0, 0, 100, 25), small.Bounds())
	assert.Same(t, img, Downscale(img, 1000))
	assert.Same(t, img, Downscale(img, 0))
}

func TestCube(t *testing.T) {
	m := Cube(2)
	meshes := m.Meshes()
	require.Len(t, meshes, 1)
	md := meshes[0]
	assert.Len(t, md.Vertices, 24)
	assert.Len(t, md.Indices, 36)

	for i := 0; i < len(md.Indices); i += 3 {
		a := md.Vertices[md.Indices[i]]
		b := md.Vertices[md.Indices[i+1]]
		c := md.Vertices[md.Indices[i+2]]
		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, face.Dot(a.Normal), float32(0), "triangle %d winds counter-clockwise", i/3)
	}
	for _, v := range md.Vertices {
		for _, p := range v.Position {
			assert.InDelta(t, 1, abs32(p), 1e-6)
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
