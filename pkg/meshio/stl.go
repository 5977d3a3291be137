package meshio

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/linework/pkg/shape"
)

// LoadSTL reads an ASCII or binary STL file.
func LoadSTL(path string) (*shape.Mesh, error) {
	tris, err := render.LoadSTL(path)
	if err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}
	return fromSDF(tris), nil
}

// SaveSTL writes m to path as binary STL.
func SaveSTL(path string, m *shape.Mesh) error {
	if err := render.SaveSTL(path, toSDF(m)); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	return nil
}

func fromSDF(tris []*sdf.Triangle3) *shape.Mesh {
	out := make([]*shape.Triangle, 0, len(tris))
	for _, t := range tris {
		if t == nil {
			continue
		}
		out = append(out, shape.NewTriangle(t[0], t[1], t[2]))
	}
	return shape.NewMesh(out)
}

func toSDF(m *shape.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, len(m.Triangles))
	for i, t := range m.Triangles {
		out[i] = &sdf.Triangle3{t.V1, t.V2, t.V3}
	}
	return out
}
