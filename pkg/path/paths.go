package path

import (
	"github.com/chazu/linework/pkg/geom"
)

// Push appends a single path.
func (ps *Paths) Push(p Path) {
	*ps = append(*ps, p)
}

// Extend appends every path of o.
func (ps *Paths) Extend(o Paths) {
	*ps = append(*ps, o...)
}

// BoundingBox returns the box around every point of the collection.
func (ps Paths) BoundingBox() geom.Box {
	boxes := make([]geom.Box, 0, len(ps))
	for _, p := range ps {
		if len(p) > 0 {
			boxes = append(boxes, p.BoundingBox())
		}
	}
	return geom.BoxForBoxes(boxes)
}

// Transform returns a transformed copy of the collection.
func (ps Paths) Transform(m geom.Matrix) Paths {
	out := make(Paths, len(ps))
	for i, p := range ps {
		out[i] = p.Transform(m)
	}
	return out
}

// Chop chops every path.
func (ps Paths) Chop(step float64) Paths {
	out := make(Paths, len(ps))
	for i, p := range ps {
		out[i] = p.Chop(step)
	}
	return out
}

// Filter filters every path, concatenating the surviving runs in order.
func (ps Paths) Filter(f Filter) Paths {
	var out Paths
	for _, p := range ps {
		out = append(out, p.Filter(f)...)
	}
	return out
}

// Simplify simplifies every path.
func (ps Paths) Simplify(threshold float64) Paths {
	out := make(Paths, len(ps))
	for i, p := range ps {
		out[i] = p.Simplify(threshold)
	}
	return out
}

// Points returns the total number of points in the collection.
func (ps Paths) Points() int {
	n := 0
	for _, p := range ps {
		n += len(p)
	}
	return n
}

// Length returns the summed length of every path.
func (ps Paths) Length() float64 {
	var l float64
	for _, p := range ps {
		l += p.Length()
	}
	return l
}
