package asset

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/varlet/backend"
)

// cubeFaces lists each face's normal and the two in-plane axes whose
// cross product is the normal, so corners wind counter-clockwise.
var cubeFaces = [6][3]mgl32.Vec3{
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
}

// Cube returns an axis-aligned cube centered on the origin with the given
// edge length. Each face has its own four vertices so normals stay flat.
func Cube(size float32) *Model {
	h := size / 2
	md := MeshData{
		Name:     "cube",
		Vertices: make([]backend.Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(md.Vertices))
		for _, c := range corners {
			p := n.Add(u.Mul(c.X())).Add(v.Mul(c.Y())).Mul(h)
			md.Vertices = append(md.Vertices, backend.Vertex{
				Position: p,
				Normal:   n,
				UV:       mgl32.Vec2{(c.X() + 1) / 2, (c.Y() + 1) / 2},
			})
		}
		md.Indices = append(md.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return &Model{Root: &Node{Name: "cube", Meshes: []MeshData{md}}}
}
