package shape

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

// Triangle is a single face. It has no interior.
type Triangle struct {
	V1, V2, V3 v3.Vec
	box        geom.Box
}

var _ Shape = (*Triangle)(nil)

func NewTriangle(v1, v2, v3 v3.Vec) *Triangle {
	t := &Triangle{V1: v1, V2: v2, V3: v3}
	t.updateBoundingBox()
	return t
}

func (t *Triangle) updateBoundingBox() {
	t.box = geom.Box{
		Min: t.V1.Min(t.V2).Min(t.V3),
		Max: t.V1.Max(t.V2).Max(t.V3),
	}
}

func (t *Triangle) Compile() {}

func (t *Triangle) BoundingBox() geom.Box { return t.box }

func (t *Triangle) Contains(v v3.Vec, f float64) bool { return false }

// Intersect is the Möller-Trumbore test.
func (t *Triangle) Intersect(r geom.Ray) geom.Hit {
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V1)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return geom.NoHit
	}
	inv := 1 / det
	tv := r.Origin.Sub(t.V1)
	u := tv.Dot(p) * inv
	if u < 0 || u > 1 {
		return geom.NoHit
	}
	q := tv.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return geom.NoHit
	}
	d := e2.Dot(q) * inv
	if d < eps {
		return geom.NoHit
	}
	return geom.NewHit(d)
}

func (t *Triangle) Paths() path.Paths {
	return path.Paths{
		{t.V1, t.V2},
		{t.V2, t.V3},
		{t.V3, t.V1},
	}
}
