package shape

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

// CubeTexture selects how a cube is drawn.
type CubeTexture int

const (
	// CubeVanilla draws the twelve edges.
	CubeVanilla CubeTexture = iota
	// CubeStriped draws evenly spaced stripes across the faces.
	CubeStriped
)

func (t CubeTexture) String() string {
	switch t {
	case CubeVanilla:
		return "vanilla"
	case CubeStriped:
		return "striped"
	default:
		return "unknown"
	}
}

// cubeHitEpsilon separates entry hits from hits at the ray origin.
const cubeHitEpsilon = 1e-3

// Cube is an axis-aligned box solid.
type Cube struct {
	Min     v3.Vec
	Max     v3.Vec
	Texture CubeTexture
	// Stripes is the stripe count for CubeStriped.
	Stripes int
	box     geom.Box
}

var _ Shape = (*Cube)(nil)

func NewCube(min, max v3.Vec) *Cube {
	return &Cube{Min: min, Max: max, box: geom.Box{Min: min, Max: max}}
}

// NewStripedCube returns a cube drawn with the given number of stripes.
func NewStripedCube(min, max v3.Vec, stripes int) *Cube {
	c := NewCube(min, max)
	c.Texture = CubeStriped
	c.Stripes = stripes
	return c
}

func (c *Cube) Compile() {}

func (c *Cube) BoundingBox() geom.Box { return c.box }

func (c *Cube) Contains(v v3.Vec, f float64) bool {
	if v.X < c.Min.X-f || v.X > c.Max.X+f {
		return false
	}
	if v.Y < c.Min.Y-f || v.Y > c.Max.Y+f {
		return false
	}
	return v.Z >= c.Min.Z-f && v.Z <= c.Max.Z+f
}

// Intersect returns the exit parameter when the origin is inside the cube
// and the entry parameter otherwise.
func (c *Cube) Intersect(r geom.Ray) geom.Hit {
	n := c.Min.Sub(r.Origin).Div(r.Direction)
	f := c.Max.Sub(r.Origin).Div(r.Direction)
	n, f = n.Min(f), n.Max(f)
	t0 := math.Max(math.Max(n.X, n.Y), n.Z)
	t1 := math.Min(math.Min(f.X, f.Y), f.Z)
	if t0 < cubeHitEpsilon && t1 > cubeHitEpsilon {
		return geom.NewHit(t1)
	}
	if t0 >= cubeHitEpsilon && t0 < t1 {
		return geom.NewHit(t0)
	}
	return geom.NoHit
}

func (c *Cube) Paths() path.Paths {
	if c.Texture == CubeStriped && c.Stripes > 0 {
		return c.stripedPaths()
	}
	return c.edgePaths()
}

func (c *Cube) edgePaths() path.Paths {
	x1, y1, z1 := c.Min.X, c.Min.Y, c.Min.Z
	x2, y2, z2 := c.Max.X, c.Max.Y, c.Max.Z
	return path.Paths{
		{geom.Vec(x1, y1, z1), geom.Vec(x1, y1, z2)},
		{geom.Vec(x1, y1, z1), geom.Vec(x1, y2, z1)},
		{geom.Vec(x1, y1, z1), geom.Vec(x2, y1, z1)},
		{geom.Vec(x1, y1, z2), geom.Vec(x1, y2, z2)},
		{geom.Vec(x1, y1, z2), geom.Vec(x2, y1, z2)},
		{geom.Vec(x1, y2, z1), geom.Vec(x1, y2, z2)},
		{geom.Vec(x1, y2, z1), geom.Vec(x2, y2, z1)},
		{geom.Vec(x1, y2, z2), geom.Vec(x2, y2, z2)},
		{geom.Vec(x2, y1, z1), geom.Vec(x2, y1, z2)},
		{geom.Vec(x2, y1, z1), geom.Vec(x2, y2, z1)},
		{geom.Vec(x2, y1, z2), geom.Vec(x2, y2, z2)},
		{geom.Vec(x2, y2, z1), geom.Vec(x2, y2, z2)},
	}
}

func (c *Cube) stripedPaths() path.Paths {
	x1, y1, z1 := c.Min.X, c.Min.Y, c.Min.Z
	x2, y2, z2 := c.Max.X, c.Max.Y, c.Max.Z
	var ps path.Paths
	for i := 0; i <= c.Stripes; i++ {
		p := float64(i) / float64(c.Stripes)
		x := x1 + (x2-x1)*p
		y := y1 + (y2-y1)*p
		xr := x2 - (x2-x1)*p
		yr := y2 - (y2-y1)*p
		if i != c.Stripes {
			ps = append(ps,
				path.Path{geom.Vec(x, y1, z1), geom.Vec(x, y1, z2)},
				path.Path{geom.Vec(xr, y2, z1), geom.Vec(xr, y2, z2)},
				path.Path{geom.Vec(x1, yr, z1), geom.Vec(x1, yr, z2)},
				path.Path{geom.Vec(x2, y, z1), geom.Vec(x2, y, z2)},
			)
		}
		for _, z := range []float64{z1, z2} {
			ps = append(ps,
				path.Path{geom.Vec(x, y, z), geom.Vec(xr, y, z)},
				path.Path{geom.Vec(x, y, z), geom.Vec(x, yr, z)},
			)
		}
	}
	return ps
}
