package path

import (
	"math"
	"math/rand"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/linework/pkg/geom"
)

func TestChopKeepsVerticesAndBoundsGaps(t *testing.T) {
	p := Path{geom.Vec(0, 0, 0), geom.Vec(1, 0, 0), geom.Vec(1, 2.5, 0), geom.Vec(0, 0, 1)}

	for _, step := range []float64{0.01, 0.1, 0.3, 1, 5} {
		got := p.Chop(step)

		// Every original vertex survives, in order.
		j := 0
		for _, v := range got {
			if j < len(p) && v == p[j] {
				j++
			}
		}
		assert.Equal(t, len(p), j, "step %v dropped a vertex", step)

		for i := 1; i < len(got); i++ {
			gap := geom.Distance(got[i-1], got[i])
			assert.LessOrEqual(t, gap, step+1e-9, "step %v gap at %d", step, i)
		}
		assert.Equal(t, p[0], got[0])
		assert.Equal(t, p[len(p)-1], got[len(got)-1])
	}
}

func TestChopPointCount(t *testing.T) {
	p := Path{geom.Vec(0, 0, 0), geom.Vec(1, 0, 0)}
	got := p.Chop(0.25)
	require.Len(t, got, 5)
	assert.InDelta(t, 0.5, got[2].X, 1e-12)
}

func TestChopSinglePoint(t *testing.T) {
	assert.Empty(t, Path{geom.Vec(1, 1, 1)}.Chop(0.1))
}

func TestFilterRuns(t *testing.T) {
	var p Path
	for i := 0; i < 10; i++ {
		p = append(p, geom.Vec(float64(i), 0, 0))
	}
	// Reject x in {2, 4, 5, 8}: runs are [0,1], [3], [6,7], [9].
	reject := map[float64]bool{2: true, 4: true, 5: true, 8: true}
	got := p.Filter(Predicate(func(v v3.Vec) bool { return !reject[v.X] }))

	require.Len(t, got, 2)
	assert.Equal(t, Path{geom.Vec(0, 0, 0), geom.Vec(1, 0, 0)}, got[0])
	assert.Equal(t, Path{geom.Vec(6, 0, 0), geom.Vec(7, 0, 0)}, got[1])
}

func TestFilterNeverEmitsShortRuns(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var p Path
	for i := 0; i < 500; i++ {
		p = append(p, geom.Vec(rng.Float64(), rng.Float64(), rng.Float64()))
	}
	got := p.Filter(Predicate(func(v v3.Vec) bool { return v.X > 0.3 }))
	for _, run := range got {
		assert.Greater(t, len(run), 1)
	}
}

func TestFilterTransformsPoints(t *testing.T) {
	p := Path{geom.Vec(0, 0, 0), geom.Vec(1, 0, 0), geom.Vec(2, 0, 0)}
	double := FilterFunc(func(v v3.Vec) (v3.Vec, bool) { return v.MulScalar(2), true })
	got := p.Filter(double)
	require.Len(t, got, 1)
	assert.Equal(t, geom.Vec(4, 0, 0), got[0][2])
}

func TestSimplify(t *testing.T) {
	// Collinear points collapse to the endpoints.
	line := Path{geom.Vec(0, 0, 0), geom.Vec(1, 0, 0), geom.Vec(2, 0, 0), geom.Vec(3, 0, 0)}
	assert.Equal(t, Path{geom.Vec(0, 0, 0), geom.Vec(3, 0, 0)}, line.Simplify(1e-6))

	// A corner survives.
	corner := Path{geom.Vec(0, 0, 0), geom.Vec(1, 0, 0), geom.Vec(1, 1, 0)}
	assert.Equal(t, corner, corner.Simplify(1e-6))

	// Short paths are returned unchanged.
	two := Path{geom.Vec(0, 0, 0), geom.Vec(5, 5, 5)}
	assert.Equal(t, two, two.Simplify(10))
}

func TestSimplifyIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		var p Path
		for i := 0; i < 60; i++ {
			a := float64(i) / 10
			p = append(p, geom.Vec(a, math.Sin(a)+rng.Float64()*0.05, 0))
		}
		for _, threshold := range []float64{0, 1e-6, 0.01, 0.1, 1} {
			once := p.Simplify(threshold)
			twice := once.Simplify(threshold)
			assert.Equal(t, once, twice, "threshold %v", threshold)
		}
	}
}

func TestTransform(t *testing.T) {
	p := Path{geom.Vec(0, 0, 0), geom.Vec(1, 2, 3)}
	got := p.Transform(geom.Translate(geom.Vec(1, 1, 1)))
	assert.Equal(t, Path{geom.Vec(1, 1, 1), geom.Vec(2, 3, 4)}, got)
	assert.Equal(t, geom.Vec(0, 0, 0), p[0], "transform copies")
}

func TestLength(t *testing.T) {
	p := Path{geom.Vec(0, 0, 0), geom.Vec(3, 4, 0), geom.Vec(3, 4, 2)}
	assert.InDelta(t, 7.0, p.Length(), 1e-12)
}
