package shape

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
	"github.com/chazu/linework/pkg/tree"
)

// Mesh is a triangle soup intersected through its own spatial index.
// It has no interior.
type Mesh struct {
	Triangles []*Triangle
	box       geom.Box

	once  sync.Once
	index *tree.Tree
}

var _ Shape = (*Mesh)(nil)

func NewMesh(triangles []*Triangle) *Mesh {
	m := &Mesh{Triangles: triangles}
	m.updateBoundingBox()
	return m
}

func (m *Mesh) updateBoundingBox() {
	boxes := make([]geom.Box, len(m.Triangles))
	for i, t := range m.Triangles {
		boxes[i] = t.BoundingBox()
	}
	m.box = geom.BoxForBoxes(boxes)
}

// Compile builds the triangle index. Calls after the first are no-ops
// until the mesh is transformed.
func (m *Mesh) Compile() {
	m.once.Do(func() {
		shapes := make([]tree.Shape, len(m.Triangles))
		for i, t := range m.Triangles {
			shapes[i] = t
		}
		m.index = tree.New(shapes)
	})
}

func (m *Mesh) BoundingBox() geom.Box { return m.box }

func (m *Mesh) Contains(v v3.Vec, f float64) bool { return false }

// Intersect reports NoHit until the mesh has been compiled.
func (m *Mesh) Intersect(r geom.Ray) geom.Hit {
	if m.index == nil {
		return geom.NoHit
	}
	return m.index.Intersect(r)
}

// Paths draws every triangle edge.
func (m *Mesh) Paths() path.Paths {
	ps := make(path.Paths, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		ps = append(ps, t.Paths()...)
	}
	return ps
}

// UnitCube scales the mesh uniformly to fit the unit cube and centres it on
// the origin.
func (m *Mesh) UnitCube() {
	m.FitInside(geom.Box{Max: geom.Vec(1, 1, 1)}, v3.Vec{})
	m.MoveTo(v3.Vec{}, geom.Vec(0.5, 0.5, 0.5))
}

// MoveTo translates the mesh so its box anchor lands on position.
func (m *Mesh) MoveTo(position, anchor v3.Vec) {
	m.Transform(geom.Translate(position.Sub(m.box.Anchor(anchor))))
}

// FitInside scales the mesh uniformly into box, using anchor to place it
// along the axes with slack.
func (m *Mesh) FitInside(box geom.Box, anchor v3.Vec) {
	ratio := box.Size().Div(m.box.Size())
	scale := math.Min(math.Min(ratio.X, ratio.Y), ratio.Z)
	extra := box.Size().Sub(m.box.Size().MulScalar(scale))
	mat := geom.Identity().
		Translated(m.box.Min.Neg()).
		Scaled(geom.Vec(scale, scale, scale)).
		Translated(box.Min.Add(extra.Mul(anchor)))
	m.Transform(mat)
}

// Transform moves every vertex and drops the index; Compile must be called
// again before intersecting.
func (m *Mesh) Transform(mat geom.Matrix) {
	for _, t := range m.Triangles {
		t.V1 = mat.MulPosition(t.V1)
		t.V2 = mat.MulPosition(t.V2)
		t.V3 = mat.MulPosition(t.V3)
		t.updateBoundingBox()
	}
	m.updateBoundingBox()
	m.index = nil
	m.once = sync.Once{}
}

// Slice cuts the mesh with a horizontal plane at each height and returns
// the contour segments per height. workers <= 0 uses GOMAXPROCS.
func (m *Mesh) Slice(ctx context.Context, zs []float64, workers int) ([]path.Paths, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]path.Paths, len(zs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, z := range zs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = NewPlane(geom.Vec(0, 0, z), geom.Vec(0, 0, 1)).IntersectMesh(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Voxelize approximates the mesh surface with cubes of the given size,
// slicing it with horizontal planes.
func (m *Mesh) Voxelize(size float64) []*Cube {
	type key struct{ x, y, z int64 }
	snap := func(a float64) int64 {
		return int64(math.Floor(a/size+0.5) * size * 1000)
	}
	var zs []float64
	for z := m.box.Min.Z; z <= m.box.Max.Z; z += size {
		zs = append(zs, z)
	}
	// background context: slicing cannot fail
	slices, _ := m.Slice(context.Background(), zs, 0)
	seen := make(map[key]struct{})
	for _, ps := range slices {
		for _, p := range ps {
			for _, v := range p {
				seen[key{snap(v.X), snap(v.Y), snap(v.Z)}] = struct{}{}
			}
		}
	}

	keys := make([]key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.z != b.z {
			return a.z < b.z
		}
		if a.y != b.y {
			return a.y < b.y
		}
		return a.x < b.x
	})

	half := geom.Vec(size/2, size/2, size/2)
	cubes := make([]*Cube, len(keys))
	for i, k := range keys {
		v := geom.Vec(float64(k.x)/1000, float64(k.y)/1000, float64(k.z)/1000)
		cubes[i] = NewCube(v.Sub(half), v.Add(half))
	}
	return cubes
}
