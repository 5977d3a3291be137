package shape

import (
	"context"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/linework/pkg/geom"
)

// square returns the unit square in the y=0 plane as two triangles.
func square() *Mesh {
	return NewMesh([]*Triangle{
		NewTriangle(geom.Vec(0, 0, 0), geom.Vec(1, 0, 0), geom.Vec(1, 0, 1)),
		NewTriangle(geom.Vec(0, 0, 0), geom.Vec(1, 0, 1), geom.Vec(0, 0, 1)),
	})
}

func TestMeshIntersectNeedsCompile(t *testing.T) {
	m := square()
	r := ray(0.25, -2, 0.6, 0, 1, 0)
	assert.False(t, m.Intersect(r).Ok)

	m.Compile()
	m.Compile()
	assertHit(t, 2, m.Intersect(r))
	assert.False(t, m.Contains(geom.Vec(0.5, 0, 0.5), 1))
	assert.Len(t, m.Paths(), 6)
}

func TestMeshTransformResetsIndex(t *testing.T) {
	m := square()
	m.Compile()
	m.Transform(geom.Translate(geom.Vec(0, 1, 0)))
	r := ray(0.25, -2, 0.6, 0, 1, 0)
	assert.False(t, m.Intersect(r).Ok)

	m.Compile()
	assertHit(t, 3, m.Intersect(r))
	assert.Equal(t, geom.Vec(0, 1, 0), m.BoundingBox().Min)
}

func TestMeshUnitCube(t *testing.T) {
	m := NewMesh([]*Triangle{
		NewTriangle(geom.Vec(0, 0, 0), geom.Vec(2, 0, 0), geom.Vec(0, 4, 2)),
		NewTriangle(geom.Vec(2, 0, 0), geom.Vec(2, 4, 2), geom.Vec(0, 4, 2)),
	})
	m.UnitCube()
	box := m.BoundingBox()
	assertVec := func(want, got v3.Vec) {
		t.Helper()
		assert.InDelta(t, want.X, got.X, 1e-9)
		assert.InDelta(t, want.Y, got.Y, 1e-9)
		assert.InDelta(t, want.Z, got.Z, 1e-9)
	}
	assertVec(geom.Vec(-0.25, -0.5, -0.25), box.Min)
	assertVec(geom.Vec(0.25, 0.5, 0.25), box.Max)
}

func TestMeshMoveTo(t *testing.T) {
	m := square()
	m.MoveTo(geom.Vec(10, 10, 10), geom.Vec(0.5, 0.5, 0.5))
	c := m.BoundingBox().Center()
	assert.InDelta(t, 10, c.X, 1e-9)
	assert.InDelta(t, 10, c.Z, 1e-9)
}

func TestPlaneIntersectMesh(t *testing.T) {
	m := square()
	ps := NewPlane(geom.Vec(0, 0, 0.5), geom.Vec(0, 0, 1)).IntersectMesh(m)
	require.Len(t, ps, 2)
	for _, p := range ps {
		require.Len(t, p, 2)
		assert.InDelta(t, 0.5, p[0].Z, 1e-12)
	}
}

func TestMeshVoxelize(t *testing.T) {
	m := square()
	cubes := m.Voxelize(0.5)
	require.NotEmpty(t, cubes)
	for _, c := range cubes {
		size := c.BoundingBox().Size()
		assert.InDelta(t, 0.5, size.X, 1e-9)
		assert.InDelta(t, 0.5, size.Z, 1e-9)
		assert.InDelta(t, 0, c.BoundingBox().Center().Y, 1e-9)
	}
	again := m.Voxelize(0.5)
	assert.Equal(t, len(cubes), len(again))
	assert.Equal(t, cubes[0].Min, again[0].Min, "voxels come back in a stable order")
}

func TestMeshSlice(t *testing.T) {
	m := square()
	slices, err := m.Slice(context.Background(), []float64{0.25, 0.5, 2}, 2)
	require.NoError(t, err)
	require.Len(t, slices, 3)
	assert.Len(t, slices[0], 2)
	assert.Len(t, slices[1], 2)
	assert.Empty(t, slices[2])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Slice(ctx, []float64{0.5}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
