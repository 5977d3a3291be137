// Package csg combines solids with boolean intersection and difference.
//
// A combinator is itself a shape.Shape: its paths are the operands' paths
// trimmed to the boundary of the combined solid, and its ray intersection
// skips operand crossings that fall inside removed or excluded regions.
package csg

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
	"github.com/chazu/linework/pkg/shape"
)

// Op is a boolean operation.
type Op int

const (
	Intersection Op = iota
	Difference
)

func (o Op) String() string {
	switch o {
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// ParseOp maps an operation name to an Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "intersection":
		return Intersection, nil
	case "difference":
		return Difference, nil
	default:
		return 0, fmt.Errorf("csg: unknown operation %q", s)
	}
}

const (
	// DefaultMaxRetries bounds the rejected operand hits Intersect skips
	// before giving up on a ray.
	DefaultMaxRetries = 1000

	containsFuzz = 1e-3
	nudge        = 0.01
	chopStep     = 0.01
)

// Boolean is the combination of A and B under Op.
type Boolean struct {
	Op         Op
	A, B       shape.Shape
	MaxRetries int
}

var _ shape.Shape = (*Boolean)(nil)
var _ path.Filter = (*Boolean)(nil)

// New returns A op B with the default retry bound.
func New(op Op, a, b shape.Shape) *Boolean {
	return &Boolean{Op: op, A: a, B: b, MaxRetries: DefaultMaxRetries}
}

// Combine folds shapes left to right under op. No shapes gives
// shape.Empty and a single shape is returned unchanged. maxRetries <= 0
// selects DefaultMaxRetries.
func Combine(op Op, maxRetries int, shapes ...shape.Shape) shape.Shape {
	if len(shapes) == 0 {
		return shape.Empty{}
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	s := shapes[0]
	for _, o := range shapes[1:] {
		s = &Boolean{Op: op, A: s, B: o, MaxRetries: maxRetries}
	}
	return s
}

// NewIntersection returns the intersection of shapes.
func NewIntersection(shapes ...shape.Shape) shape.Shape {
	return Combine(Intersection, DefaultMaxRetries, shapes...)
}

// NewDifference returns the first shape minus every following shape.
func NewDifference(shapes ...shape.Shape) shape.Shape {
	return Combine(Difference, DefaultMaxRetries, shapes...)
}

func (b *Boolean) Compile() {
	b.A.Compile()
	b.B.Compile()
}

func (b *Boolean) BoundingBox() geom.Box {
	return b.A.BoundingBox().Extend(b.B.BoundingBox())
}

// Contains ignores f and applies a fixed fuzz to the operands.
func (b *Boolean) Contains(v v3.Vec, f float64) bool {
	switch b.Op {
	case Difference:
		return b.A.Contains(v, containsFuzz) && !b.B.Contains(v, -containsFuzz)
	default:
		return b.A.Contains(v, containsFuzz) && b.B.Contains(v, containsFuzz)
	}
}

// Intersect returns the nearest operand hit that lies on the combined
// solid. Rejected hits are stepped past and the ray is cast again; the
// returned parameter is always along the caller's ray.
func (b *Boolean) Intersect(r geom.Ray) geom.Hit {
	limit := b.MaxRetries
	if limit <= 0 {
		limit = DefaultMaxRetries
	}
	offset := 0.0
	for i := 0; i <= limit; i++ {
		h := b.A.Intersect(r).Min(b.B.Intersect(r))
		if !h.Ok {
			return h
		}
		if b.Contains(r.Position(h.T), 0) {
			return geom.NewHit(offset + h.T)
		}
		offset += h.T + nudge
		r = geom.Ray{Origin: r.Position(h.T + nudge), Direction: r.Direction}
	}
	return geom.NoHit
}

// Paths keeps the parts of both operands' paths that lie on the combined
// solid.
func (b *Boolean) Paths() path.Paths {
	var ps path.Paths
	ps.Extend(b.A.Paths())
	ps.Extend(b.B.Paths())
	return ps.Chop(chopStep).Filter(b)
}

// Filter accepts points inside the combined solid unchanged.
func (b *Boolean) Filter(v v3.Vec) (v3.Vec, bool) {
	return v, b.Contains(v, 0)
}
