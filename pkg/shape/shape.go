// Package shape defines the capability every renderable solid exposes to
// the pipeline, together with the analytic primitives, triangle meshes,
// height-field surfaces and transformed wrappers.
//
// Shapes are shared and treated as read-only once they have been compiled
// and indexed; none of the methods report errors. A missing hit is NoHit, a
// point outside is false and a shape without curves returns no paths.
package shape

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

// Shape is a solid the renderer can draw.
type Shape interface {
	// Compile runs one-time preprocessing. It must be idempotent.
	Compile()
	BoundingBox() geom.Box
	// Contains reports whether v lies inside the solid, grown by f.
	Contains(v v3.Vec, f float64) bool
	Intersect(r geom.Ray) geom.Hit
	// Paths returns the surface curves to draw.
	Paths() path.Paths
}

// eps guards divisions in the triangle and plane tests.
const eps = 1e-9

// Empty contains nothing and draws nothing.
type Empty struct{}

var _ Shape = Empty{}

func (Empty) Compile() {}

func (Empty) BoundingBox() geom.Box { return geom.Box{} }

func (Empty) Contains(v v3.Vec, f float64) bool { return false }

func (Empty) Intersect(r geom.Ray) geom.Hit { return geom.NoHit }

func (Empty) Paths() path.Paths { return nil }

// Transformed places a shape in the world with a matrix.
type Transformed struct {
	Shape   Shape
	Matrix  geom.Matrix
	Inverse geom.Matrix
}

var _ Shape = (*Transformed)(nil)

// NewTransformed wraps s with the transform m.
func NewTransformed(s Shape, m geom.Matrix) *Transformed {
	return &Transformed{Shape: s, Matrix: m, Inverse: m.Inverse()}
}

func (t *Transformed) Compile() {
	t.Shape.Compile()
}

func (t *Transformed) BoundingBox() geom.Box {
	return t.Matrix.MulBox(t.Shape.BoundingBox())
}

func (t *Transformed) Contains(v v3.Vec, f float64) bool {
	return t.Shape.Contains(t.Inverse.MulPosition(v), f)
}

// Intersect maps the ray into the shape's frame without renormalizing the
// direction, so the returned parameter is valid for the caller's ray.
func (t *Transformed) Intersect(r geom.Ray) geom.Hit {
	local := geom.Ray{
		Origin:    t.Inverse.MulPosition(r.Origin),
		Direction: t.Inverse.MulVector(r.Direction),
	}
	return t.Shape.Intersect(local)
}

func (t *Transformed) Paths() path.Paths {
	return t.Shape.Paths().Transform(t.Matrix)
}

// alignZ returns the transform taking the local z axis (as up) onto the
// segment v0 -> v1, and the segment length.
func alignZ(up, v0, v1 v3.Vec) (geom.Matrix, float64) {
	d := v1.Sub(v0)
	z := d.Length()
	a := math.Acos(d.Normalize().Dot(up))
	if a == 0 {
		return geom.Translate(v0), z
	}
	u := d.Cross(up).Normalize()
	return geom.Rotate(u, a).Translated(v0), z
}
