// Package tree implements the spatial index used to answer nearest-hit ray
// queries over a set of shapes. The index is an adaptive binary partition:
// each internal node splits space with an axis-aligned plane placed at the
// median of its shapes' box coordinates, and shapes straddling the plane are
// kept on both sides.
package tree

import (
	"sort"

	"github.com/chazu/linework/pkg/geom"
)

// Shape is the part of a solid the index needs.
type Shape interface {
	BoundingBox() geom.Box
	Intersect(r geom.Ray) geom.Hit
}

// leafSize is the shape count below which a node is never split.
const leafSize = 8

// splitThreshold is the fraction of a node's shapes that the larger side of
// a split must stay strictly below for the split to be taken.
const splitThreshold = 0.85

// Tree is an immutable spatial index over a fixed list of shapes.
type Tree struct {
	box  geom.Box
	root *Node
	n    int
}

// New builds an index over shapes. The bounding box is a snapshot of the
// shapes at construction time.
func New(shapes []Shape) *Tree {
	boxes := make([]geom.Box, len(shapes))
	for i, s := range shapes {
		boxes[i] = s.BoundingBox()
	}
	root := newNode(append([]Shape(nil), shapes...))
	root.split()
	return &Tree{box: geom.BoxForBoxes(boxes), root: root, n: len(shapes)}
}

// Box returns the union of the indexed shapes' boxes.
func (t *Tree) Box() geom.Box {
	return t.box
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of indexed shapes.
func (t *Tree) Len() int {
	return t.n
}

// Intersect returns the nearest hit among all indexed shapes.
func (t *Tree) Intersect(r geom.Ray) geom.Hit {
	tmin, tmax := t.box.Intersect(r)
	if tmax < tmin || tmax <= 0 {
		return geom.NoHit
	}
	return t.root.intersect(r, tmin, tmax)
}

// Walk visits every node depth first, left before right, with its depth.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil {
			return
		}
		fn(n, depth)
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(t.root, 0)
}

// Node is either a leaf holding shapes (Axis is AxisNone) or an internal
// node with a split plane and two children.
type Node struct {
	axis   geom.Axis
	point  float64
	shapes []Shape
	left   *Node
	right  *Node
}

func newNode(shapes []Shape) *Node {
	return &Node{axis: geom.AxisNone, shapes: shapes}
}

// Axis returns the split axis, or AxisNone for a leaf.
func (n *Node) Axis() geom.Axis { return n.axis }

// Point returns the split coordinate of an internal node.
func (n *Node) Point() float64 { return n.point }

// Shapes returns the shapes held by a leaf.
func (n *Node) Shapes() []Shape { return n.shapes }

// Left returns the lower child of an internal node.
func (n *Node) Left() *Node { return n.left }

// Right returns the upper child of an internal node.
func (n *Node) Right() *Node { return n.right }

// IsLeaf reports whether n holds shapes directly.
func (n *Node) IsLeaf() bool { return n.axis == geom.AxisNone }

func (n *Node) intersect(r geom.Ray, tmin, tmax float64) geom.Hit {
	if n.axis == geom.AxisNone {
		return n.intersectShapes(r)
	}

	o := geom.Component(r.Origin, n.axis)
	d := geom.Component(r.Direction, n.axis)
	tsplit := (n.point - o) / d
	leftFirst := o < n.point || (o == n.point && d <= 0)

	first, second := n.left, n.right
	if !leftFirst {
		first, second = n.right, n.left
	}

	if tsplit > tmax || tsplit <= 0 {
		return first.intersect(r, tmin, tmax)
	}
	if tsplit < tmin {
		return second.intersect(r, tmin, tmax)
	}
	h1 := first.intersect(r, tmin, tsplit)
	if h1.T <= tsplit {
		return h1
	}
	h2 := second.intersect(r, tsplit, min(tmax, h1.T))
	if h1.T <= h2.T {
		return h1
	}
	return h2
}

func (n *Node) intersectShapes(r geom.Ray) geom.Hit {
	hit := geom.NoHit
	for _, s := range n.shapes {
		h := s.Intersect(r)
		if h.T < hit.T {
			hit = h
		}
	}
	return hit
}

func (n *Node) partitionScore(axis geom.Axis, point float64) int {
	left, right := 0, 0
	for _, s := range n.shapes {
		l, r := s.BoundingBox().Partition(axis, point)
		if l {
			left++
		}
		if r {
			right++
		}
	}
	return max(left, right)
}

func (n *Node) partition(axis geom.Axis, point float64) (left, right []Shape) {
	for _, s := range n.shapes {
		l, r := s.BoundingBox().Partition(axis, point)
		if l {
			left = append(left, s)
		}
		if r {
			right = append(right, s)
		}
	}
	return left, right
}

func (n *Node) split() {
	if len(n.shapes) < leafSize {
		return
	}

	xs := make([]float64, 0, len(n.shapes)*2)
	ys := make([]float64, 0, len(n.shapes)*2)
	zs := make([]float64, 0, len(n.shapes)*2)
	for _, s := range n.shapes {
		b := s.BoundingBox()
		xs = append(xs, b.Min.X, b.Max.X)
		ys = append(ys, b.Min.Y, b.Max.Y)
		zs = append(zs, b.Min.Z, b.Max.Z)
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	sort.Float64s(zs)
	candidates := []struct {
		axis  geom.Axis
		point float64
	}{
		{geom.AxisX, geom.Median(xs)},
		{geom.AxisY, geom.Median(ys)},
		{geom.AxisZ, geom.Median(zs)},
	}

	best := int(float64(len(n.shapes)) * splitThreshold)
	bestAxis := geom.AxisNone
	bestPoint := 0.0
	for _, c := range candidates {
		if s := n.partitionScore(c.axis, c.point); s < best {
			best = s
			bestAxis = c.axis
			bestPoint = c.point
		}
	}
	if bestAxis == geom.AxisNone {
		return
	}

	l, r := n.partition(bestAxis, bestPoint)
	n.axis = bestAxis
	n.point = bestPoint
	n.left = newNode(l)
	n.right = newNode(r)
	n.left.split()
	n.right.split()
	n.shapes = nil
}
