package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/shape"
	"github.com/chazu/linework/pkg/tree"
)

// Same row of nine cubes as TestNineCubesSplitOnX, built from real cubes.
// A cube reports its exit face when the ray starts inside it, so walking
// the row yields an entry and an exit per cube.
func TestNineShapeCubesEntryAndExit(t *testing.T) {
	var shapes []tree.Shape
	for i := 0; i < 9; i++ {
		x := float64(i) * 2
		shapes = append(shapes, shape.NewCube(geom.Vec(x, 0, 0), geom.Vec(x+1, 1, 1)))
	}
	tr := tree.New(shapes)
	require.Equal(t, geom.AxisX, tr.Root().Axis())

	const step = 1e-6
	r := geom.Ray{Origin: geom.Vec(-1, 0.5, 0.5), Direction: geom.Vec(1, 0, 0)}
	travelled := 0.0
	var xs []float64
	for len(xs) < 100 {
		h := tr.Intersect(r)
		if !h.Ok {
			break
		}
		travelled += h.T
		xs = append(xs, r.Position(h.T).X)
		r.Origin = r.Position(h.T + step)
		travelled += step
	}

	require.Len(t, xs, 18)
	for i := 1; i < len(xs); i++ {
		assert.Greater(t, xs[i], xs[i-1])
	}
	for i, x := range xs {
		assert.InDelta(t, float64(i), x, 1e-5, "hit %d", i)
	}
	assert.InDelta(t, 18.0, travelled-step, 1e-5)
}
