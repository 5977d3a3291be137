// Package scene renders a set of solids to the 2D polylines visible from a
// camera.
//
// A Scene moves between two states. Adding shapes leaves it Uncompiled;
// Compile prepares every shape and builds the spatial index once, after
// which the scene is Compiled and read-only until it is invalidated.
package scene

import (
	"context"
	"runtime"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
	"github.com/chazu/linework/pkg/shape"
	"github.com/chazu/linework/pkg/tree"
)

// State reports whether the scene's index is current.
type State int

const (
	Uncompiled State = iota
	Compiled
)

func (s State) String() string {
	if s == Compiled {
		return "compiled"
	}
	return "uncompiled"
}

// simplifyThreshold is the RDP tolerance applied after chopped rendering.
const simplifyThreshold = 1e-6

// Scene is an ordered collection of shapes and the index over them.
type Scene struct {
	// Workers bounds the goroutines filtering paths during a render.
	// Zero means runtime.GOMAXPROCS.
	Workers int

	shapes []shape.Shape
	index  *tree.Tree
	state  State
}

func New(shapes ...shape.Shape) *Scene {
	s := &Scene{}
	s.Add(shapes...)
	return s
}

// Add appends shapes and marks the scene Uncompiled.
func (s *Scene) Add(shapes ...shape.Shape) {
	s.shapes = append(s.shapes, shapes...)
	s.Invalidate()
}

// Invalidate drops the index so the next Compile rebuilds it.
func (s *Scene) Invalidate() {
	s.state = Uncompiled
	s.index = nil
}

func (s *Scene) State() State { return s.state }

func (s *Scene) Len() int { return len(s.shapes) }

// Shapes returns the scene's shapes in insertion order.
func (s *Scene) Shapes() []shape.Shape { return s.shapes }

// Compile compiles every shape and indexes them. It is a no-op while the
// scene is Compiled.
func (s *Scene) Compile() {
	if s.state == Compiled {
		return
	}
	start := time.Now()
	items := make([]tree.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		sh.Compile()
		items[i] = sh
	}
	s.index = tree.New(items)
	s.state = Compiled
	Logger().Debug("scene compiled", "shapes", len(s.shapes), "elapsed", time.Since(start))
}

// Intersect returns the nearest hit along r, compiling first if needed.
func (s *Scene) Intersect(r geom.Ray) geom.Hit {
	s.Compile()
	return s.index.Intersect(r)
}

// Visible reports whether nothing lies strictly between point and eye.
func (s *Scene) Visible(eye, point v3.Vec) bool {
	v := eye.Sub(point)
	r := geom.Ray{Origin: point, Direction: v.Normalize()}
	return s.Intersect(r).T >= v.Length()
}

// Paths returns every shape's paths in insertion order.
func (s *Scene) Paths() path.Paths {
	var ps path.Paths
	for _, sh := range s.shapes {
		ps.Extend(sh.Paths())
	}
	return ps
}

// Render draws the scene with a perspective camera. fovy is in degrees.
// step > 0 resamples paths at that spacing before the visibility test and
// simplifies them afterwards; step <= 0 tests only the original vertices.
func (s *Scene) Render(eye, center, up v3.Vec, width, height, fovy, near, far, step float64) path.Paths {
	aspect := width / height
	m := geom.LookAt(eye, center, up).WithPerspective(fovy, aspect, near, far)
	return s.RenderWithMatrix(m, eye, width, height, step)
}

// RenderWithMatrix renders with a precomputed world-to-clip matrix. The
// result is in pixel coordinates with the origin at the bottom left.
func (s *Scene) RenderWithMatrix(m geom.Matrix, eye v3.Vec, width, height, step float64) path.Paths {
	ps, _ := s.RenderContext(context.Background(), m, eye, width, height, step)
	return ps
}

// RenderContext is RenderWithMatrix with cancellation. It only fails when
// ctx is done.
func (s *Scene) RenderContext(ctx context.Context, m geom.Matrix, eye v3.Vec, width, height, step float64) (path.Paths, error) {
	s.Compile()
	start := time.Now()

	ps := s.Paths()
	if step > 0 {
		ps = ps.Chop(step)
	}
	points := ps.Points()

	ps, err := s.filter(ctx, ps, &ClipFilter{Matrix: m, Eye: eye, Scene: s})
	if err != nil {
		return nil, err
	}
	if step > 0 {
		ps = ps.Simplify(simplifyThreshold)
	}
	ps = ps.Transform(geom.Translate(geom.Vec(1, 1, 0)).Scaled(geom.Vec(width/2, height/2, 0)))

	Logger().Debug("scene rendered",
		"shapes", len(s.shapes),
		"tested", points,
		"paths", len(ps),
		"points", ps.Points(),
		"elapsed", time.Since(start))
	return ps, nil
}

// filter applies f to each path concurrently, keeping input order.
func (s *Scene) filter(ctx context.Context, ps path.Paths, f path.Filter) (path.Paths, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]path.Paths, len(ps))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range ps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = p.Filter(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var result path.Paths
	for _, o := range out {
		result.Extend(o)
	}
	return result, nil
}

// clipBox is the canonical view volume.
var clipBox = geom.Box{Min: geom.Vec(-1, -1, -1), Max: geom.Vec(1, 1, 1)}

// ClipFilter keeps points that are visible from Eye and inside the view
// volume, replacing them with their clip-space position.
type ClipFilter struct {
	Matrix geom.Matrix
	Eye    v3.Vec
	Scene  *Scene
}

var _ path.Filter = (*ClipFilter)(nil)

func (f *ClipFilter) Filter(v v3.Vec) (v3.Vec, bool) {
	w := f.Matrix.MulPositionW(v)
	if !f.Scene.Visible(f.Eye, v) {
		return w, false
	}
	// NaN fails Contains, so degenerate points are dropped.
	if !clipBox.Contains(w) {
		return w, false
	}
	return w, true
}
