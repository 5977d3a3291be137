package shape

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

// Direction says which side of a height field is solid.
type Direction int

const (
	Above Direction = iota
	Below
)

func (d Direction) String() string {
	if d == Below {
		return "below"
	}
	return "above"
}

// FunctionTexture selects how a height field is drawn.
type FunctionTexture int

const (
	// FunctionGrid draws lines of constant x and constant y.
	FunctionGrid FunctionTexture = iota
	// FunctionSwirl draws radial lines twisted by depth.
	FunctionSwirl
	// FunctionSpiral draws a single dense spiral.
	FunctionSpiral
)

func (t FunctionTexture) String() string {
	switch t {
	case FunctionGrid:
		return "grid"
	case FunctionSwirl:
		return "swirl"
	case FunctionSpiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// ParseDirection parses "above" or "below".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "above", "":
		return Above, nil
	case "below":
		return Below, nil
	}
	return Above, fmt.Errorf("unknown direction %q", s)
}

// ParseFunctionTexture parses a texture name; the empty string is a grid.
func ParseFunctionTexture(s string) (FunctionTexture, error) {
	switch s {
	case "grid", "":
		return FunctionGrid, nil
	case "swirl":
		return FunctionSwirl, nil
	case "spiral":
		return FunctionSpiral, nil
	}
	return FunctionGrid, fmt.Errorf("unknown function texture %q", s)
}

const (
	functionStep    = 1.0 / 64
	functionMaxDist = 50.0
)

// Function is the solid on one side of the surface z = F(x, y), clipped to
// Box.
type Function struct {
	F         func(x, y float64) float64
	Box       geom.Box
	Direction Direction
	Texture   FunctionTexture
}

var _ Shape = (*Function)(nil)

func NewFunction(f func(x, y float64) float64, box geom.Box, dir Direction) *Function {
	return &Function{F: f, Box: box, Direction: dir}
}

func (s *Function) Compile() {}

func (s *Function) BoundingBox() geom.Box { return s.Box }

func (s *Function) Contains(v v3.Vec, f float64) bool {
	if s.Direction == Below {
		return v.Z < s.F(v.X, v.Y)
	}
	return v.Z > s.F(v.X, v.Y)
}

// Intersect marches along the ray in fixed steps looking for a change of
// side inside the box.
func (s *Function) Intersect(r geom.Ray) geom.Hit {
	sign := s.Contains(r.Position(functionStep), 0)
	for t := functionStep; t < functionMaxDist; t += functionStep {
		v := r.Position(t)
		if s.Contains(v, 0) != sign && s.Box.Contains(v) {
			return geom.NewHit(t)
		}
	}
	return geom.NoHit
}

func (s *Function) Paths() path.Paths {
	switch s.Texture {
	case FunctionSwirl:
		return s.swirlPaths()
	case FunctionSpiral:
		return s.spiralPaths()
	default:
		return s.gridPaths()
	}
}

func (s *Function) clampZ(z float64) float64 {
	return math.Max(math.Min(z, s.Box.Max.Z), s.Box.Min.Z)
}

func (s *Function) gridPaths() path.Paths {
	const step, fine = 1.0 / 8, 1.0 / 64
	b := s.Box
	var ps path.Paths
	for x := b.Min.X; x <= b.Max.X; x += step {
		var p path.Path
		for y := b.Min.Y; y <= b.Max.Y; y += fine {
			p = append(p, geom.Vec(x, y, s.clampZ(s.F(x, y))))
		}
		ps = append(ps, p)
	}
	for y := b.Min.Y; y <= b.Max.Y; y += step {
		var p path.Path
		for x := b.Min.X; x <= b.Max.X; x += fine {
			p = append(p, geom.Vec(x, y, s.clampZ(s.F(x, y))))
		}
		ps = append(ps, p)
	}
	return ps
}

func (s *Function) swirlPaths() path.Paths {
	const fine = 1.0 / 256
	var ps path.Paths
	for a := 0; a < 360; a += 5 {
		ar := geom.Radians(float64(a))
		var p path.Path
		for r := 0.0; r <= 8; r += fine {
			z := s.F(math.Cos(ar)*r, math.Sin(ar)*r)
			o := 0.0
			if z < 0 {
				o = -math.Pow(-z, 1.4)
			}
			x := math.Cos(ar-o) * r
			y := math.Sin(ar-o) * r
			p = append(p, geom.Vec(x, y, s.clampZ(z)))
		}
		ps = append(ps, p)
	}
	return ps
}

func (s *Function) spiralPaths() path.Paths {
	const n = 10000
	p := make(path.Path, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / n
		r := 8 - math.Pow(t, 0.1)*8
		a := geom.Radians(t * 2 * math.Pi * 3000)
		x := math.Cos(a) * r
		y := math.Sin(a) * r
		p = append(p, geom.Vec(x, y, s.clampZ(s.F(x, y))))
	}
	return path.Paths{p}
}
