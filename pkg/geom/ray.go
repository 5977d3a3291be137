package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Ray is a half-line query. Direction need not be unit length.
type Ray struct {
	Origin    v3.Vec
	Direction v3.Vec
}

// Position returns the point at parameter t along the ray.
func (r Ray) Position(t float64) v3.Vec {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// Hit is the result of a ray query. T is only meaningful when Ok is set.
type Hit struct {
	T  float64
	Ok bool
}

// NoHit is the sentinel for a ray that hits nothing.
var NoHit = Hit{T: math.Inf(1), Ok: false}

// NewHit returns a successful hit at t.
func NewHit(t float64) Hit {
	return Hit{T: t, Ok: true}
}

// Min returns the nearer of h and b, preferring h on ties.
func (h Hit) Min(b Hit) Hit {
	if h.T <= b.T {
		return h
	}
	return b
}

// Max returns the farther of h and b, preferring b on ties.
func (h Hit) Max(b Hit) Hit {
	if h.T > b.T {
		return h
	}
	return b
}
