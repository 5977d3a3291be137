// Package sdfx builds kernel solids as signed distance fields with
// github.com/deadsy/sdfx and meshes them with marching cubes.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/kernel"
)

var _ kernel.Kernel = (*Kernel)(nil)

// DefaultCells is used by ToMesh when cells <= 0.
const DefaultCells = 64

var errNilSolid = errors.New("sdfx: nil solid")

type solid struct{ sdf.SDF3 }

func (s solid) BoundingBox() (min, max [3]float64) {
	bb := s.SDF3.BoundingBox()
	return [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}, [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
}

// Kernel is a stateless kernel.Kernel backed by sdfx.
type Kernel struct{}

func New() *Kernel { return &Kernel{} }

func sdf3(s kernel.Solid) sdf.SDF3 { return s.(solid).SDF3 }

// must turns an sdfx constructor failure into a panic. Callers that take
// user input recover it (see tessellate.Solid).
func must(s sdf.SDF3, err error) kernel.Solid {
	if err != nil {
		panic(fmt.Sprintf("sdfx: %v", err))
	}
	return solid{s}
}

func moved(s sdf.SDF3, d v3.Vec) kernel.Solid {
	return solid{sdf.Transform3D(s, sdf.Translate3d(d))}
}

// Box spans min to max. sdf.Box3D is centred on the origin.
func (*Kernel) Box(min, max [3]float64) kernel.Solid {
	lo := v3.Vec{X: min[0], Y: min[1], Z: min[2]}
	hi := v3.Vec{X: max[0], Y: max[1], Z: max[2]}
	b := must(sdf.Box3D(hi.Sub(lo), 0))
	return moved(sdf3(b), lo.Add(hi).MulScalar(0.5))
}

func (*Kernel) Sphere(radius float64) kernel.Solid {
	return must(sdf.Sphere3D(radius))
}

func (*Kernel) Cylinder(height, radius float64) kernel.Solid {
	return must(sdf.Cylinder3D(height, radius, 0))
}

// Cone puts the base on z=0. sdf.Cone3D is centred on the origin.
func (*Kernel) Cone(height, radius float64) kernel.Solid {
	c := must(sdf.Cone3D(height, radius, 0, 0))
	return moved(sdf3(c), v3.Vec{Z: height / 2})
}

func (*Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return solid{sdf.Union3D(sdf3(a), sdf3(b))}
}

func (*Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return solid{sdf.Difference3D(sdf3(a), sdf3(b))}
}

func (*Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return solid{sdf.Intersect3D(sdf3(a), sdf3(b))}
}

func (*Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return moved(sdf3(s), v3.Vec{X: x, Y: y, Z: z})
}

// Rotate uses the same Euler convention as geom.EulerDegrees: x first,
// then y, then z.
func (*Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.RotateZ(geom.Radians(z)).Mul(sdf.RotateY(geom.Radians(y))).Mul(sdf.RotateX(geom.Radians(x)))
	return solid{sdf.Transform3D(sdf3(s), m)}
}

func (*Kernel) Scale(s kernel.Solid, x, y, z float64) kernel.Solid {
	return solid{sdf.Transform3D(sdf3(s), sdf.Scale3d(v3.Vec{X: x, Y: y, Z: z}))}
}

// ToMesh runs uniform marching cubes with cells along the longest axis.
// Vertices are not shared between triangles; each carries its face normal.
func (*Kernel) ToMesh(s kernel.Solid, cells int) (*kernel.Mesh, error) {
	if s == nil {
		return nil, errNilSolid
	}
	if cells <= 0 {
		cells = DefaultCells
	}
	tris := render.ToTriangles(sdf3(s), render.NewMarchingCubesUniform(cells))

	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(tris)*9),
		Normals:  make([]float32, 0, len(tris)*9),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	for _, t := range tris {
		n := t.Normal()
		for _, p := range t {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)/3))
			m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	return m, nil
}
