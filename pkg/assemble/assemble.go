// Package assemble turns a scene graph into the shapes a scene renders.
//
// The walk carries a matrix stack. Ray-traceable primitives are wrapped in
// shape.Transformed with the accumulated matrix, meshes are transformed in
// place, boolean nodes fold through package csg and tessellate nodes are
// built as SDF solids and converted to meshes.
package assemble

import (
	"fmt"
	"path/filepath"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/csg"
	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/graph"
	"github.com/chazu/linework/pkg/kernel"
	"github.com/chazu/linework/pkg/kernel/sdfx"
	"github.com/chazu/linework/pkg/meshio"
	"github.com/chazu/linework/pkg/scene"
	"github.com/chazu/linework/pkg/shape"
	"github.com/chazu/linework/pkg/tessellate"
)

// maxProduct bounds the operand combinations an intersection may expand to.
const maxProduct = 4096

// Options control assembly.
type Options struct {
	// MaxRetries is passed to csg.Combine; <= 0 selects the default.
	MaxRetries int
	// Cells is the marching cubes resolution for tessellate nodes.
	Cells int
	// BaseDir resolves relative mesh paths.
	BaseDir string
	// Kernel builds tessellated solids; nil selects sdfx.
	Kernel kernel.Kernel
	// Eye and Up orient outline primitives.
	Eye, Up v3.Vec
}

type assembler struct {
	g        *graph.SceneGraph
	opts     Options
	stack    *matrixStack
	visiting map[graph.NodeID]bool
}

// Assemble walks every root of g and returns the resulting shapes in root
// order. Unions and groups flatten into their operands' shapes.
func Assemble(g *graph.SceneGraph, opts Options) ([]shape.Shape, error) {
	if g == nil {
		return nil, nil
	}
	if opts.Kernel == nil {
		opts.Kernel = sdfx.New()
	}
	a := &assembler{
		g:        g,
		opts:     opts,
		stack:    newMatrixStack(),
		visiting: make(map[graph.NodeID]bool),
	}

	var shapes []shape.Shape
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			return nil, fmt.Errorf("assemble: root %s not found", rootID.Short())
		}
		ss, err := a.node(root)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		shapes = append(shapes, ss...)
	}
	scene.Logger().Debug("assembled scene", "roots", len(g.Roots), "shapes", len(shapes))
	return shapes, nil
}

func (a *assembler) node(n *graph.Node) ([]shape.Shape, error) {
	if a.visiting[n.ID] {
		return nil, fmt.Errorf("cycle through node %s", label(n))
	}
	a.visiting[n.ID] = true
	defer delete(a.visiting, n.ID)

	switch n.Kind {
	case graph.NodePrimitive:
		s, err := a.primitive(n)
		if err != nil {
			return nil, err
		}
		return []shape.Shape{s}, nil

	case graph.NodeTransform:
		td, ok := n.Data.(graph.TransformData)
		if !ok {
			return nil, fmt.Errorf("transform node %s has unexpected data type %T", label(n), n.Data)
		}
		a.stack.push(localMatrix(td))
		defer a.stack.pop()
		return a.children(n)

	case graph.NodeGroup:
		return a.children(n)

	case graph.NodeBoolean:
		bd, ok := n.Data.(graph.BooleanData)
		if !ok {
			return nil, fmt.Errorf("boolean node %s has unexpected data type %T", label(n), n.Data)
		}
		return a.boolean(n, bd.Op)

	case graph.NodeTessellate:
		return a.tessellate(n)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func (a *assembler) children(n *graph.Node) ([]shape.Shape, error) {
	var shapes []shape.Shape
	for _, child := range a.g.Children(n) {
		ss, err := a.node(child)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, ss...)
	}
	return shapes, nil
}

// operands assembles each child separately.
func (a *assembler) operands(n *graph.Node) ([][]shape.Shape, error) {
	var ops [][]shape.Shape
	for _, child := range a.g.Children(n) {
		ss, err := a.node(child)
		if err != nil {
			return nil, err
		}
		ops = append(ops, ss)
	}
	return ops, nil
}

// boolean folds the operands of n. An operand that assembles to several
// shapes is their union, so the operation distributes over it.
func (a *assembler) boolean(n *graph.Node, op graph.BooleanOp) ([]shape.Shape, error) {
	if op == graph.BoolUnion {
		return a.children(n)
	}
	ops, err := a.operands(n)
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return nil, nil
	}

	switch op {
	case graph.BoolDifference:
		var subtrahends []shape.Shape
		for _, o := range ops[1:] {
			subtrahends = append(subtrahends, o...)
		}
		out := make([]shape.Shape, 0, len(ops[0]))
		for _, minuend := range ops[0] {
			operands := append([]shape.Shape{minuend}, subtrahends...)
			out = append(out, csg.Combine(csg.Difference, a.opts.MaxRetries, operands...))
		}
		return out, nil

	case graph.BoolIntersection:
		combos := [][]shape.Shape{nil}
		for _, o := range ops {
			if len(combos)*len(o) > maxProduct {
				return nil, fmt.Errorf("intersection %s expands to more than %d combinations", label(n), maxProduct)
			}
			next := make([][]shape.Shape, 0, len(combos)*len(o))
			for _, c := range combos {
				for _, s := range o {
					next = append(next, append(append([]shape.Shape(nil), c...), s))
				}
			}
			combos = next
		}
		out := make([]shape.Shape, 0, len(combos))
		for _, c := range combos {
			out = append(out, csg.Combine(csg.Intersection, a.opts.MaxRetries, c...))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("boolean node %s has unknown operation %v", label(n), op)
	}
}

func (a *assembler) tessellate(n *graph.Node) ([]shape.Shape, error) {
	solid, err := tessellate.Solid(a.g, a.opts.Kernel, n)
	if err != nil {
		return nil, err
	}
	cells := a.opts.Cells
	if td, ok := n.Data.(graph.TessellateData); ok && td.Cells > 0 {
		cells = td.Cells
	}
	km, err := a.opts.Kernel.ToMesh(solid, cells)
	if err != nil {
		return nil, fmt.Errorf("tessellate %s: %w", label(n), err)
	}
	m := km.ToShape()
	if !a.stack.identity() {
		m.Transform(a.stack.top())
	}
	scene.Logger().Debug("tessellated", "node", label(n), "triangles", len(m.Triangles))
	return []shape.Shape{m}, nil
}

// primitive builds the shape for a primitive node in world space.
func (a *assembler) primitive(n *graph.Node) (shape.Shape, error) {
	if md, ok := n.Data.(graph.MeshData); ok {
		return a.mesh(n, md)
	}

	eye, up := a.opts.Eye, a.opts.Up
	if !a.stack.identity() {
		inv := a.stack.top().Inverse()
		eye = inv.MulPosition(eye)
		up = inv.MulDirection(up)
	}

	var s shape.Shape
	switch d := n.Data.(type) {
	case graph.SphereData:
		if d.Outline {
			s = shape.NewOutlineSphere(eye, up, d.Center.Vec(), d.Radius)
		} else {
			s = shape.NewSphere(d.Center.Vec(), d.Radius)
		}
	case graph.CubeData:
		if d.Stripes > 0 {
			s = shape.NewStripedCube(d.Min.Vec(), d.Max.Vec(), d.Stripes)
		} else {
			s = shape.NewCube(d.Min.Vec(), d.Max.Vec())
		}
	case graph.CylinderData:
		if d.Outline {
			s = shape.NewOutlineCylinder(eye, up, d.Radius, d.Z0, d.Z1)
		} else {
			s = shape.NewCylinder(d.Radius, d.Z0, d.Z1)
		}
	case graph.ConeData:
		if d.Outline {
			s = shape.NewOutlineCone(eye, up, d.Radius, d.Height)
		} else {
			s = shape.NewCone(d.Radius, d.Height)
		}
	case graph.FunctionData:
		fn, err := function(d)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", label(n), err)
		}
		s = fn
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", label(n), n.Data)
	}

	if a.stack.identity() {
		return s, nil
	}
	return shape.NewTransformed(s, a.stack.top()), nil
}

func function(d graph.FunctionData) (*shape.Function, error) {
	f, ok := shape.Surface(d.Surface)
	if !ok {
		return nil, fmt.Errorf("unknown surface %q", d.Surface)
	}
	dir, err := shape.ParseDirection(d.Direction)
	if err != nil {
		return nil, err
	}
	tex, err := shape.ParseFunctionTexture(d.Texture)
	if err != nil {
		return nil, err
	}
	box := geom.Box{Min: d.Bounds.Min.Vec(), Max: d.Bounds.Max.Vec()}
	fn := shape.NewFunction(f, box, dir)
	fn.Texture = tex
	return fn, nil
}

// mesh loads a mesh file, fits it and moves it into world space.
func (a *assembler) mesh(n *graph.Node, d graph.MeshData) (shape.Shape, error) {
	p := d.Path
	if !filepath.IsAbs(p) && a.opts.BaseDir != "" {
		p = filepath.Join(a.opts.BaseDir, p)
	}
	m, err := meshio.Load(p)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", label(n), err)
	}
	if d.Fit != nil {
		box := geom.Box{Min: d.Fit.Min.Vec(), Max: d.Fit.Max.Vec()}
		m.FitInside(box, geom.Vec(0.5, 0.5, 0.5))
	}
	if !a.stack.identity() {
		m.Transform(a.stack.top())
	}
	scene.Logger().Debug("loaded mesh", "path", p, "triangles", len(m.Triangles))
	return m, nil
}

func label(n *graph.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}
