package shape

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

// Cylinder is a z-aligned cylinder of Radius between Z0 and Z1.
type Cylinder struct {
	Radius float64
	Z0, Z1 float64
}

var _ Shape = (*Cylinder)(nil)

func NewCylinder(radius, z0, z1 float64) *Cylinder {
	return &Cylinder{Radius: radius, Z0: z0, Z1: z1}
}

func (c *Cylinder) Compile() {}

func (c *Cylinder) BoundingBox() geom.Box {
	r := c.Radius
	return geom.Box{Min: geom.Vec(-r, -r, c.Z0), Max: geom.Vec(r, r, c.Z1)}
}

func (c *Cylinder) Contains(v v3.Vec, f float64) bool {
	if math.Hypot(v.X, v.Y) > c.Radius+f {
		return false
	}
	return v.Z >= c.Z0-f && v.Z <= c.Z1+f
}

// Intersect only reports hits on the side wall; the caps are open.
func (c *Cylinder) Intersect(ray geom.Ray) geom.Hit {
	o, d := ray.Origin, ray.Direction
	a := d.X*d.X + d.Y*d.Y
	b := 2*o.X*d.X + 2*o.Y*d.Y
	cc := o.X*o.X + o.Y*o.Y - c.Radius*c.Radius
	q := b*b - 4*a*cc
	if q < 0 || a == 0 {
		return geom.NoHit
	}
	s := math.Sqrt(q)
	t0 := (-b + s) / (2 * a)
	t1 := (-b - s) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	z0 := o.Z + t0*d.Z
	z1 := o.Z + t1*d.Z
	if t0 > 1e-6 && c.Z0 < z0 && z0 < c.Z1 {
		return geom.NewHit(t0)
	}
	if t1 > 1e-6 && c.Z0 < z1 && z1 < c.Z1 {
		return geom.NewHit(t1)
	}
	return geom.NoHit
}

// Paths draws a vertical line every 10 degrees.
func (c *Cylinder) Paths() path.Paths {
	var ps path.Paths
	for a := 0; a < 360; a += 10 {
		x := c.Radius * math.Cos(geom.Radians(float64(a)))
		y := c.Radius * math.Sin(geom.Radians(float64(a)))
		ps = append(ps, path.Path{geom.Vec(x, y, c.Z0), geom.Vec(x, y, c.Z1)})
	}
	return ps
}

// OutlineCylinder is drawn as its two rims plus the two silhouette lines
// seen from Eye.
type OutlineCylinder struct {
	*Cylinder
	Eye v3.Vec
	Up  v3.Vec
}

var _ Shape = (*OutlineCylinder)(nil)

func NewOutlineCylinder(eye, up v3.Vec, radius, z0, z1 float64) *OutlineCylinder {
	return &OutlineCylinder{Cylinder: NewCylinder(radius, z0, z1), Eye: eye, Up: up}
}

func (c *OutlineCylinder) Paths() path.Paths {
	r := c.Radius
	ratio := r / math.Hypot(c.Eye.X, c.Eye.Y)
	if math.Abs(ratio) > 1 || math.IsNaN(ratio) {
		// eye inside the cylinder: no silhouette, draw the rims only
		return path.Paths{c.rim(c.Z0, nil), c.rim(c.Z1, nil)}
	}

	azimuth := math.Atan2(c.Eye.Y, c.Eye.X)
	offset := math.Acos(ratio)
	theta1 := azimuth + offset
	theta2 := azimuth - offset

	// the arc facing the eye is pushed out slightly so the visibility test
	// does not hide it behind the wall it lies on
	outer := 1 / math.Cos(math.Pi/360)
	scale := func(a float64) float64 {
		if math.Cos(a-azimuth) >= ratio {
			return outer
		}
		return 1
	}

	a0 := geom.Vec(r*math.Cos(theta1), r*math.Sin(theta1), c.Z0)
	a1 := geom.Vec(r*math.Cos(theta1), r*math.Sin(theta1), c.Z1)
	b0 := geom.Vec(r*math.Cos(theta2), r*math.Sin(theta2), c.Z0)
	b1 := geom.Vec(r*math.Cos(theta2), r*math.Sin(theta2), c.Z1)
	return path.Paths{c.rim(c.Z0, scale), c.rim(c.Z1, scale), {a0, a1}, {b0, b1}}
}

func (c *OutlineCylinder) rim(z float64, scale func(float64) float64) path.Path {
	p := make(path.Path, 0, 361)
	for i := 0; i <= 360; i++ {
		a := geom.Radians(float64(i))
		r := c.Radius
		if scale != nil {
			r *= scale(a)
		}
		p = append(p, geom.Vec(r*math.Cos(a), r*math.Sin(a), z))
	}
	return p
}

// NewTransformedCylinder returns a cylinder running from v0 to v1.
func NewTransformedCylinder(up, v0, v1 v3.Vec, radius float64) *Transformed {
	m, z := alignZ(up, v0, v1)
	return NewTransformed(NewCylinder(radius, 0, z), m)
}

// NewTransformedOutlineCylinder is NewTransformedCylinder drawn as an outline.
func NewTransformedOutlineCylinder(eye, up, v0, v1 v3.Vec, radius float64) *Transformed {
	m, z := alignZ(up, v0, v1)
	c := NewOutlineCylinder(m.Inverse().MulPosition(eye), up, radius, 0, z)
	return NewTransformed(c, m)
}
