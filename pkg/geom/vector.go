package geom

import (
	"math"
	"math/rand"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec builds a vector from its components.
func Vec(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}

// Component returns the coordinate of v along axis. AxisNone yields 0.
func Component(v v3.Vec, axis Axis) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return 0
}

// Distance returns |a - b|.
func Distance(a, b v3.Vec) float64 {
	return a.Sub(b).Length()
}

// MinAxis returns the unit vector along the smallest absolute component of v.
// Ties prefer X, then Y, then Z.
func MinAxis(v v3.Vec) v3.Vec {
	x, y, z := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case x <= y && x <= z:
		return Vec(1, 0, 0)
	case y <= x && y <= z:
		return Vec(0, 1, 0)
	}
	return Vec(0, 0, 1)
}

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b v3.Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.Length2()
	if l2 == 0 {
		return Distance(p, a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		return Distance(p, a)
	}
	if t > 1 {
		return Distance(p, b)
	}
	return Distance(p, a.Add(ab.MulScalar(t)))
}

// RandomUnitVector returns a uniformly distributed direction.
func RandomUnitVector(rng *rand.Rand) v3.Vec {
	for {
		v := Vec(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
		if l := v.Length(); l > 0 && l <= 1 {
			return v.DivScalar(l)
		}
	}
}
