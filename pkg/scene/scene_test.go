package scene

import (
	"context"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
	"github.com/chazu/linework/pkg/shape"
)

var (
	up     = geom.Vec(0, 1, 0)
	origin = v3.Vec{}
)

func render(s *Scene, eye v3.Vec, step float64) path.Paths {
	return s.Render(eye, origin, up, 1000, 1000, 50, 0.1, 100, step)
}

func TestStateTransitions(t *testing.T) {
	s := New()
	assert.Equal(t, Uncompiled, s.State())

	s.Compile()
	assert.Equal(t, Compiled, s.State())

	s.Add(shape.NewSphere(origin, 1))
	assert.Equal(t, Uncompiled, s.State())
	assert.Equal(t, 1, s.Len())

	s.Compile()
	assert.Equal(t, Compiled, s.State())
	s.Invalidate()
	assert.Equal(t, Uncompiled, s.State())
	assert.Equal(t, "uncompiled", s.State().String())
}

// countingShape counts Compile calls on a wrapped shape.
type countingShape struct {
	shape.Shape
	compiles int
}

func (c *countingShape) Compile() {
	c.compiles++
	c.Shape.Compile()
}

func TestCompileRunsOnce(t *testing.T) {
	c := &countingShape{Shape: shape.NewSphere(origin, 1)}
	s := New(c)
	s.Compile()
	s.Compile()
	render(s, geom.Vec(0, 0, 10), 0)
	assert.Equal(t, 1, c.compiles)

	s.Invalidate()
	s.Compile()
	assert.Equal(t, 2, c.compiles)
}

func TestVisible(t *testing.T) {
	s := New(shape.NewSphere(origin, 1))
	eye := geom.Vec(0, 0, 10)
	assert.True(t, s.Visible(eye, geom.Vec(0, 0, 1)))
	assert.False(t, s.Visible(eye, geom.Vec(0, 0, -1)))
	assert.True(t, s.Visible(eye, geom.Vec(5, 0, 0)))

	h := s.Intersect(geom.Ray{Origin: geom.Vec(0, 0, 10), Direction: geom.Vec(0, 0, -1)})
	require.True(t, h.Ok)
	assert.InDelta(t, 9, h.T, 1e-9)
}

func TestClipFilter(t *testing.T) {
	s := New()
	eye := geom.Vec(0, 0, 10)
	m := geom.LookAt(eye, origin, up).WithPerspective(50, 1, 0.1, 100)
	f := &ClipFilter{Matrix: m, Eye: eye, Scene: s}

	w, ok := f.Filter(origin)
	require.True(t, ok)
	assert.InDelta(t, 0, w.X, 1e-9)
	assert.InDelta(t, 0, w.Y, 1e-9)

	_, ok = f.Filter(geom.Vec(0, 0, 20))
	assert.False(t, ok, "behind the eye")
	_, ok = f.Filter(geom.Vec(100, 0, 0))
	assert.False(t, ok, "outside the view")
	_, ok = f.Filter(eye)
	assert.False(t, ok, "degenerate projection")
}

func TestRenderEmptyScene(t *testing.T) {
	assert.Empty(t, render(New(), geom.Vec(0, 0, 10), 0.01))
}

func TestRenderMapsToPixels(t *testing.T) {
	s := New(shape.NewCube(geom.Vec(-1, -1, -1), geom.Vec(1, 1, 1)))
	ps := render(s, geom.Vec(3, 4, 5), 0.01)
	require.NotEmpty(t, ps)
	for _, p := range ps {
		assert.Greater(t, len(p), 1)
		for _, v := range p {
			assert.True(t, v.X >= 0 && v.X <= 1000, "x = %v", v.X)
			assert.True(t, v.Y >= 0 && v.Y <= 1000, "y = %v", v.Y)
			assert.Equal(t, 0.0, v.Z)
		}
	}
}

func TestRenderHidesBackEdges(t *testing.T) {
	s := New(shape.NewCube(geom.Vec(-1, -1, -1), geom.Vec(1, 1, 1)))
	eye := geom.Vec(0, 0, 10)
	ps := render(s, eye, 0)
	// looking straight down z only the four front edges have both
	// endpoints visible
	assert.Len(t, ps, 4)
}

func TestRenderDisjointSpheres(t *testing.T) {
	s := New(
		shape.NewSphere(geom.Vec(-2.5, 0, 0), 1),
		shape.NewSphere(geom.Vec(2.5, 0, 0), 1),
	)
	ps := render(s, geom.Vec(0, 0, 20), 0.01)
	require.NotEmpty(t, ps)

	left, right := 0, 0
	for _, p := range ps {
		box := p.BoundingBox()
		switch {
		case box.Max.X < 500:
			left++
		case box.Min.X > 500:
			right++
		default:
			t.Errorf("path spans both spheres: %v", box)
		}
	}
	assert.Positive(t, left)
	assert.Positive(t, right)
}

func TestRenderMutualOcclusion(t *testing.T) {
	eye := geom.Vec(0, 0, 10)
	front := func() shape.Shape { return shape.NewSphere(origin, 1) }
	back := func() shape.Shape { return shape.NewSphere(geom.Vec(0, 0, -1.5), 1) }

	both := render(New(front(), back()), eye, 0).Points()
	frontOnly := render(New(front()), eye, 0).Points()
	backOnly := render(New(back()), eye, 0).Points()

	require.Positive(t, backOnly)
	assert.Less(t, both-frontOnly, backOnly)
}

func TestRenderOrderIndependentOfWorkers(t *testing.T) {
	build := func(workers int) path.Paths {
		s := New(
			shape.NewSphere(geom.Vec(-1, 0, 0), 1),
			shape.NewCube(geom.Vec(0, -1, -1), geom.Vec(2, 1, 1)),
		)
		s.Workers = workers
		return render(s, geom.Vec(2, 3, 8), 0.05)
	}
	assert.Equal(t, build(1), build(8))
}

func TestRenderContextCancelled(t *testing.T) {
	s := New(shape.NewSphere(origin, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eye := geom.Vec(0, 0, 10)
	m := geom.LookAt(eye, origin, up).WithPerspective(50, 1, 0.1, 100)
	_, err := s.RenderContext(ctx, m, eye, 100, 100, 0.01)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderDegenerateFovDropsEverything(t *testing.T) {
	s := New(shape.NewSphere(origin, 1))
	ps := s.Render(geom.Vec(0, 0, 10), origin, up, 100, 100, 0, 0.1, 100, 0)
	for _, p := range ps {
		for _, v := range p {
			assert.False(t, math.IsNaN(v.X))
		}
	}
}
