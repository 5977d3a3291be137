package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min v3.Vec
	Max v3.Vec
}

// Boxer is anything with a bounding box.
type Boxer interface {
	BoundingBox() Box
}

// BoxForBoxes returns the union of boxes. An empty list yields the zero box.
func BoxForBoxes(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}
	b := boxes[0]
	for _, o := range boxes[1:] {
		b = b.Extend(o)
	}
	return b
}

// BoxForVectors returns the tightest box around points.
func BoxForVectors(points []v3.Vec) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Anchor returns the point at fractional position anchor inside the box,
// so (0,0,0) is Min, (1,1,1) is Max and (0.5,0.5,0.5) is the centre.
func (b Box) Anchor(anchor v3.Vec) v3.Vec {
	return b.Min.Add(b.Size().Mul(anchor))
}

// Center returns the midpoint of the box.
func (b Box) Center() v3.Vec {
	return b.Anchor(Vec(0.5, 0.5, 0.5))
}

// Size returns Max - Min.
func (b Box) Size() v3.Vec {
	return b.Max.Sub(b.Min)
}

// Contains reports whether v lies inside or on the box.
func (b Box) Contains(v v3.Vec) bool {
	return b.Min.X <= v.X && v.X <= b.Max.X &&
		b.Min.Y <= v.Y && v.Y <= b.Max.Y &&
		b.Min.Z <= v.Z && v.Z <= b.Max.Z
}

// Extend returns the union of b and o.
func (b Box) Extend(o Box) Box {
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Intersect returns the entry and exit parameters of r against the box
// using the slab method. Zero direction components produce infinities or
// NaN which are left to propagate into the comparisons of the caller.
func (b Box) Intersect(r Ray) (float64, float64) {
	x1 := (b.Min.X - r.Origin.X) / r.Direction.X
	y1 := (b.Min.Y - r.Origin.Y) / r.Direction.Y
	z1 := (b.Min.Z - r.Origin.Z) / r.Direction.Z
	x2 := (b.Max.X - r.Origin.X) / r.Direction.X
	y2 := (b.Max.Y - r.Origin.Y) / r.Direction.Y
	z2 := (b.Max.Z - r.Origin.Z) / r.Direction.Z
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if z1 > z2 {
		z1, z2 = z2, z1
	}
	t1 := math.Max(math.Max(x1, y1), z1)
	t2 := math.Min(math.Min(x2, y2), z2)
	return t1, t2
}

// Partition reports which sides of the plane axis = p the box touches.
// Both results are true when the box straddles the plane.
func (b Box) Partition(axis Axis, p float64) (left, right bool) {
	switch axis {
	case AxisX:
		left = b.Min.X <= p
		right = b.Max.X >= p
	case AxisY:
		left = b.Min.Y <= p
		right = b.Max.Y >= p
	case AxisZ:
		left = b.Min.Z <= p
		right = b.Max.Z >= p
	}
	return left, right
}
