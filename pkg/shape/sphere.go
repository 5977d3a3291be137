package shape

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

// sphereHitEpsilon rejects hits at the ray origin.
const sphereHitEpsilon = 1e-2

// Sphere is drawn as a globe of latitude and longitude lines.
type Sphere struct {
	Center v3.Vec
	Radius float64
	box    geom.Box
}

var _ Shape = (*Sphere)(nil)

func NewSphere(center v3.Vec, radius float64) *Sphere {
	r := v3.Vec{X: radius, Y: radius, Z: radius}
	return &Sphere{
		Center: center,
		Radius: radius,
		box:    geom.Box{Min: center.Sub(r), Max: center.Add(r)},
	}
}

func (s *Sphere) Compile() {}

func (s *Sphere) BoundingBox() geom.Box { return s.box }

func (s *Sphere) Contains(v v3.Vec, f float64) bool {
	return v.Sub(s.Center).Length() <= s.Radius+f
}

// Intersect returns the nearest root beyond a small epsilon. The quadratic
// is solved in full so non-unit directions give the same parameter as the
// caller's ray.
func (s *Sphere) Intersect(r geom.Ray) geom.Hit {
	to := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return geom.NoHit
	}
	b := to.Dot(r.Direction)
	c := to.Dot(to) - s.Radius*s.Radius
	d := b*b - a*c
	if d <= 0 {
		return geom.NoHit
	}
	d = math.Sqrt(d)
	if t := (-b - d) / a; t > sphereHitEpsilon {
		return geom.NewHit(t)
	}
	if t := (-b + d) / a; t > sphereHitEpsilon {
		return geom.NewHit(t)
	}
	return geom.NoHit
}

// Paths draws parallels and meridians every 10 degrees, leaving the caps
// near the poles empty.
func (s *Sphere) Paths() path.Paths {
	const n, o = 10, 10
	var ps path.Paths
	for lat := -90 + o; lat <= 90-o; lat += n {
		var p path.Path
		for lng := 0; lng <= 360; lng++ {
			p = append(p, LatLngToXYZ(float64(lat), float64(lng), s.Radius).Add(s.Center))
		}
		ps = append(ps, p)
	}
	for lng := 0; lng <= 360; lng += n {
		var p path.Path
		for lat := -90 + o; lat <= 90-o; lat++ {
			p = append(p, LatLngToXYZ(float64(lat), float64(lng), s.Radius).Add(s.Center))
		}
		ps = append(ps, p)
	}
	return ps
}

// LatLngToXYZ converts degrees of latitude and longitude to a point on a
// sphere of the given radius centred at the origin.
func LatLngToXYZ(lat, lng, radius float64) v3.Vec {
	lat, lng = geom.Radians(lat), geom.Radians(lng)
	return v3.Vec{
		X: radius * math.Cos(lat) * math.Cos(lng),
		Y: radius * math.Cos(lat) * math.Sin(lng),
		Z: radius * math.Sin(lat),
	}
}

// OutlineSphere is drawn as the silhouette circle seen from Eye.
type OutlineSphere struct {
	*Sphere
	Eye v3.Vec
	Up  v3.Vec
}

var _ Shape = (*OutlineSphere)(nil)

func NewOutlineSphere(eye, up, center v3.Vec, radius float64) *OutlineSphere {
	return &OutlineSphere{Sphere: NewSphere(center, radius), Eye: eye, Up: up}
}

func (s *OutlineSphere) Paths() path.Paths {
	center := s.Center
	hyp := center.Sub(s.Eye).Length()
	theta := math.Asin(s.Radius / hyp)
	adj := s.Radius / math.Tan(theta)
	d := math.Cos(theta) * adj
	r := math.Sin(theta) * adj

	w := center.Sub(s.Eye).Normalize()
	u := w.Cross(s.Up)
	if u.Length2() < 1e-18 {
		// looking straight along up
		u = w.Cross(geom.MinAxis(w))
	}
	u = u.Normalize()
	v := w.Cross(u).Normalize()
	c := s.Eye.Add(w.MulScalar(d))

	p := make(path.Path, 0, 361)
	for i := 0; i <= 360; i++ {
		a := geom.Radians(float64(i))
		q := c.Add(u.MulScalar(math.Cos(a) * r)).Add(v.MulScalar(math.Sin(a) * r))
		p = append(p, q)
	}
	return path.Paths{p}
}
