package shape

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

// Cone has its base circle of Radius on z=0 and its apex at (0,0,Height).
// It has no interior, so it cannot take part in CSG.
type Cone struct {
	Radius float64
	Height float64
}

var _ Shape = (*Cone)(nil)

func NewCone(radius, height float64) *Cone {
	return &Cone{Radius: radius, Height: height}
}

func (c *Cone) Compile() {}

func (c *Cone) BoundingBox() geom.Box {
	r := c.Radius
	return geom.Box{Min: geom.Vec(-r, -r, 0), Max: geom.Vec(r, r, c.Height)}
}

func (c *Cone) Contains(v v3.Vec, f float64) bool { return false }

func (c *Cone) Intersect(ray geom.Ray) geom.Hit {
	o, d := ray.Origin, ray.Direction
	h := c.Height
	k := c.Radius / h
	k *= k
	a := d.X*d.X + d.Y*d.Y - k*d.Z*d.Z
	b := 2 * (d.X*o.X + d.Y*o.Y - k*d.Z*(o.Z-h))
	cc := o.X*o.X + o.Y*o.Y - k*(o.Z-h)*(o.Z-h)
	q := b*b - 4*a*cc
	if q <= 0 {
		return geom.NoHit
	}
	s := math.Sqrt(q)
	t0 := (-b + s) / (2 * a)
	t1 := (-b - s) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	for _, t := range []float64{t0, t1} {
		if t <= 1e-6 {
			continue
		}
		if z := ray.Position(t).Z; z > 0 && z < h {
			return geom.NewHit(t)
		}
	}
	return geom.NoHit
}

// Paths draws a line from the base to the apex every 30 degrees.
func (c *Cone) Paths() path.Paths {
	apex := geom.Vec(0, 0, c.Height)
	var ps path.Paths
	for a := 0; a < 360; a += 30 {
		x := c.Radius * math.Cos(geom.Radians(float64(a)))
		y := c.Radius * math.Sin(geom.Radians(float64(a)))
		ps = append(ps, path.Path{geom.Vec(x, y, 0), apex})
	}
	return ps
}

// OutlineCone is drawn as its base circle and the two silhouette lines
// seen from Eye.
type OutlineCone struct {
	*Cone
	Eye v3.Vec
	Up  v3.Vec
}

var _ Shape = (*OutlineCone)(nil)

func NewOutlineCone(eye, up v3.Vec, radius, height float64) *OutlineCone {
	return &OutlineCone{Cone: NewCone(radius, height), Eye: eye, Up: up}
}

func (c *OutlineCone) Paths() path.Paths {
	r, h := c.Radius, c.Height
	base := make(path.Path, 0, 360)
	for i := 0; i < 360; i++ {
		a := geom.Radians(float64(i))
		base = append(base, geom.Vec(r*math.Cos(a), r*math.Sin(a), 0))
	}

	ratio := r * (1 - c.Eye.Z/h) / math.Hypot(c.Eye.X, c.Eye.Y)
	if math.Abs(ratio) > 1 || math.IsNaN(ratio) {
		return path.Paths{base}
	}
	azimuth := math.Atan2(c.Eye.Y, c.Eye.X)
	offset := math.Acos(ratio)
	theta1 := azimuth + offset
	theta2 := azimuth - offset

	const scale = 1.01
	apex := geom.Vec(0, 0, h)
	a0 := geom.Vec(r*scale*math.Cos(theta1), r*scale*math.Sin(theta1), 0)
	b0 := geom.Vec(r*scale*math.Cos(theta2), r*scale*math.Sin(theta2), 0)
	return path.Paths{base, {a0, apex}, {b0, apex}}
}

// NewTransformedCone returns a cone with its base at v0 and apex at v1.
func NewTransformedCone(up, v0, v1 v3.Vec, radius float64) *Transformed {
	m, z := alignZ(up, v0, v1)
	return NewTransformed(NewCone(radius, z), m)
}

// NewTransformedOutlineCone is NewTransformedCone drawn as an outline.
func NewTransformedOutlineCone(eye, up, v0, v1 v3.Vec, radius float64) *Transformed {
	m, z := alignZ(up, v0, v1)
	return NewTransformed(NewOutlineCone(m.Inverse().MulPosition(eye), up, radius, z), m)
}
