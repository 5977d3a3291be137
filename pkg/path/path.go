// Package path holds polylines and the operations the renderer applies to
// them: chopping into finer samples, filtering into visible runs,
// Douglas-Peucker simplification and matrix transforms.
package path

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
)

// Path is an ordered polyline.
type Path []v3.Vec

// Paths is an ordered collection of polylines.
type Paths []Path

// Filter maps a point to an output point and reports whether it survives.
type Filter interface {
	Filter(v v3.Vec) (v3.Vec, bool)
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(v v3.Vec) (v3.Vec, bool)

// Filter calls f(v).
func (f FilterFunc) Filter(v v3.Vec) (v3.Vec, bool) {
	return f(v)
}

// Predicate adapts a point test to a Filter that leaves points unchanged.
func Predicate(keep func(v v3.Vec) bool) Filter {
	return FilterFunc(func(v v3.Vec) (v3.Vec, bool) {
		return v, keep(v)
	})
}

// BoundingBox returns the box around the points of p.
func (p Path) BoundingBox() geom.Box {
	return geom.BoxForVectors(p)
}

// Transform returns a copy of p with every point multiplied by m.
func (p Path) Transform(m geom.Matrix) Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[i] = m.MulPosition(v)
	}
	return out
}

// Chop inserts points along every segment so that consecutive points are
// at most step apart. Original vertices are kept.
func (p Path) Chop(step float64) Path {
	var out Path
	for i := 0; i+1 < len(p); i++ {
		a := p[i]
		b := p[i+1]
		v := b.Sub(a)
		l := v.Length()
		if i == 0 {
			out = append(out, a)
		}
		for d := step; d < l; d += step {
			out = append(out, a.Add(v.MulScalar(d/l)))
		}
		out = append(out, b)
	}
	return out
}

// Filter splits p into the maximal runs of points accepted by f. Runs with
// fewer than two points are dropped.
func (p Path) Filter(f Filter) Paths {
	var out Paths
	var run Path
	for _, v := range p {
		w, ok := f.Filter(v)
		if ok {
			run = append(run, w)
			continue
		}
		if len(run) > 1 {
			out = append(out, run)
		}
		run = nil
	}
	if len(run) > 1 {
		out = append(out, run)
	}
	return out
}

// Simplify applies Ramer-Douglas-Peucker with the given threshold.
func (p Path) Simplify(threshold float64) Path {
	if len(p) < 3 {
		return p
	}
	a := p[0]
	b := p[len(p)-1]
	index := -1
	distance := 0.0
	for i := 1; i < len(p)-1; i++ {
		d := geom.SegmentDistance(p[i], a, b)
		if d > distance {
			index = i
			distance = d
		}
	}
	if distance > threshold {
		r1 := p[:index+1].Simplify(threshold)
		r2 := p[index:].Simplify(threshold)
		out := make(Path, 0, len(r1)+len(r2)-1)
		out = append(out, r1[:len(r1)-1]...)
		return append(out, r2...)
	}
	return Path{a, b}
}

// Length returns the total length of the polyline.
func (p Path) Length() float64 {
	var l float64
	for i := 1; i < len(p); i++ {
		l += geom.Distance(p[i-1], p[i])
	}
	return l
}
