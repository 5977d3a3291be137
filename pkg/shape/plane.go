package shape

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/path"
)

// Plane is used to slice meshes into contour segments.
type Plane struct {
	Point  v3.Vec
	Normal v3.Vec
}

func NewPlane(point, normal v3.Vec) Plane {
	return Plane{Point: point, Normal: normal}
}

// IntersectSegment returns the point where v0 -> v1 crosses the plane.
func (p Plane) IntersectSegment(v0, v1 v3.Vec) (v3.Vec, bool) {
	u := v1.Sub(v0)
	w := v0.Sub(p.Point)
	d := p.Normal.Dot(u)
	n := -p.Normal.Dot(w)
	if d > -eps && d < eps {
		return v3.Vec{}, false
	}
	t := n / d
	if t < 0 || t > 1 {
		return v3.Vec{}, false
	}
	return v0.Add(u.MulScalar(t)), true
}

// IntersectTriangle returns the segment where the plane cuts t, taking the
// first two edges that cross it.
func (p Plane) IntersectTriangle(t *Triangle) (v3.Vec, v3.Vec, bool) {
	var hits []v3.Vec
	for _, e := range [3][2]v3.Vec{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
		if v, ok := p.IntersectSegment(e[0], e[1]); ok {
			hits = append(hits, v)
		}
	}
	if len(hits) < 2 {
		return v3.Vec{}, v3.Vec{}, false
	}
	return hits[0], hits[1], true
}

// IntersectMesh returns one two-point path per triangle the plane cuts.
func (p Plane) IntersectMesh(m *Mesh) path.Paths {
	var ps path.Paths
	for _, t := range m.Triangles {
		if v1, v2, ok := p.IntersectTriangle(t); ok {
			ps = append(ps, path.Path{v1, v2})
		}
	}
	return ps
}
