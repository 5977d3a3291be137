package kernel

import (
	"fmt"

	"github.com/chazu/linework/pkg/meshio"
	"github.com/chazu/linework/pkg/shape"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a flat triangle mesh produced by a kernel.
// Vertices has 3 floats per vertex (x,y,z), normals has 3 floats per
// vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"` // scene node the mesh came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

func (m *Mesh) vertex(i uint32) v3.Vec {
	j := int(i) * 3
	return v3.Vec{X: float64(m.Vertices[j]), Y: float64(m.Vertices[j+1]), Z: float64(m.Vertices[j+2])}
}

// ToShape converts the mesh into a renderable shape.Mesh. Triangles that
// reference vertices outside the vertex array are skipped.
func (m *Mesh) ToShape() *shape.Mesh {
	n := m.VertexCount()
	triangles := make([]*shape.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= n || int(b) >= n || int(c) >= n {
			continue
		}
		triangles = append(triangles, shape.NewTriangle(m.vertex(a), m.vertex(b), m.vertex(c)))
	}
	return shape.NewMesh(triangles)
}

// SaveSTL tessellates s with k and writes the result to path as binary STL.
func SaveSTL(path string, k Kernel, s Solid, cells int) error {
	m, err := k.ToMesh(s, cells)
	if err != nil {
		return fmt.Errorf("kernel: save %s: %w", path, err)
	}
	return meshio.SaveSTL(path, m.ToShape())
}
