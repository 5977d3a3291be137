// Package tessellate walks a scene graph and builds SDF kernel solids and
// triangle meshes from the parts of it the kernel can represent.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/linework/pkg/graph"
	"github.com/chazu/linework/pkg/kernel"
	"github.com/chazu/linework/pkg/scene"
)

// ErrNotRepresentable is returned for subtrees containing meshes or
// height fields, which have no signed distance form.
var ErrNotRepresentable = errors.New("tessellate: node not representable by the kernel")

// walker builds solids, tracking the current path to reject cycles.
type walker struct {
	g        *graph.SceneGraph
	k        kernel.Kernel
	visiting map[graph.NodeID]bool
}

// Solid builds the kernel solid for the subtree rooted at n. Transforms
// apply scale, then rotation, then translation. Groups and tessellate
// nodes are the union of their children.
func Solid(g *graph.SceneGraph, k kernel.Kernel, n *graph.Node) (s kernel.Solid, err error) {
	// Kernels panic on invalid primitive parameters.
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("tessellate: node %s: %v", n.ID.Short(), r)
		}
	}()
	w := &walker{g: g, k: k, visiting: make(map[graph.NodeID]bool)}
	return w.solid(n)
}

func (w *walker) solid(n *graph.Node) (kernel.Solid, error) {
	if w.visiting[n.ID] {
		return nil, fmt.Errorf("tessellate: cycle through node %s", n.ID.Short())
	}
	w.visiting[n.ID] = true
	defer delete(w.visiting, n.ID)

	switch n.Kind {
	case graph.NodePrimitive:
		return w.primitive(n)

	case graph.NodeTransform:
		return w.transform(n)

	case graph.NodeBoolean:
		bd, ok := n.Data.(graph.BooleanData)
		if !ok {
			return nil, fmt.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		return w.fold(n, bd.Op)

	case graph.NodeGroup, graph.NodeTessellate:
		return w.fold(n, graph.BoolUnion)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// primitive creates geometry for a primitive node.
func (w *walker) primitive(n *graph.Node) (kernel.Solid, error) {
	k := w.k
	switch d := n.Data.(type) {
	case graph.SphereData:
		return k.Translate(k.Sphere(d.Radius), d.Center.X, d.Center.Y, d.Center.Z), nil
	case graph.CubeData:
		return k.Box([3]float64{d.Min.X, d.Min.Y, d.Min.Z}, [3]float64{d.Max.X, d.Max.Y, d.Max.Z}), nil
	case graph.CylinderData:
		return k.Translate(k.Cylinder(d.Z1-d.Z0, d.Radius), 0, 0, (d.Z0+d.Z1)/2), nil
	case graph.ConeData:
		return k.Cone(d.Height, d.Radius), nil
	case graph.MeshData, graph.FunctionData:
		return nil, fmt.Errorf("node %s (%T): %w", n.ID.Short(), n.Data, ErrNotRepresentable)
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}

func (w *walker) transform(n *graph.Node) (kernel.Solid, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	s, err := w.fold(n, graph.BoolUnion)
	if err != nil {
		return nil, err
	}
	if td.Scale != nil {
		s = w.k.Scale(s, td.Scale.X, td.Scale.Y, td.Scale.Z)
	}
	if td.Rotation != nil {
		s = w.k.Rotate(s, td.Rotation.X, td.Rotation.Y, td.Rotation.Z)
	}
	if td.Translation != nil {
		s = w.k.Translate(s, td.Translation.X, td.Translation.Y, td.Translation.Z)
	}
	return s, nil
}

// fold combines the node's children left to right with op.
func (w *walker) fold(n *graph.Node, op graph.BooleanOp) (kernel.Solid, error) {
	children := w.g.Children(n)
	if len(children) == 0 {
		return nil, fmt.Errorf("node %s has no children to tessellate", n.ID.Short())
	}
	var acc kernel.Solid
	for _, child := range children {
		s, err := w.solid(child)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = s
			continue
		}
		switch op {
		case graph.BoolIntersection:
			acc = w.k.Intersection(acc, s)
		case graph.BoolDifference:
			acc = w.k.Difference(acc, s)
		default:
			acc = w.k.Union(acc, s)
		}
	}
	return acc, nil
}

// Tessellate walks the scene graph and produces one triangle mesh per
// kernel-representable root. A root that is not representable is searched
// for representable groups and tessellate blocks; whatever remains is
// skipped. The tessellator is read-only and never mutates the graph.
func Tessellate(g *graph.SceneGraph, k kernel.Kernel, cells int) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := collect(g, k, root, cells, 0)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}

	return meshes, nil
}

// maxDepth bounds the search for representable subtrees.
const maxDepth = 256

func collect(g *graph.SceneGraph, k kernel.Kernel, n *graph.Node, cells, depth int) ([]*kernel.Mesh, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("graph nested deeper than %d", maxDepth)
	}

	s, err := Solid(g, k, n)
	if err == nil {
		if td, ok := n.Data.(graph.TessellateData); ok && td.Cells > 0 {
			cells = td.Cells
		}
		mesh, err := k.ToMesh(s, cells)
		if err != nil {
			return nil, fmt.Errorf("ToMesh failed for node %s: %w", n.ID.Short(), err)
		}
		if n.Name != "" {
			mesh.PartName = n.Name
		} else {
			mesh.PartName = n.ID.Short()
		}
		return []*kernel.Mesh{mesh}, nil
	}
	if !errors.Is(err, ErrNotRepresentable) {
		return nil, err
	}
	if n.Kind != graph.NodeGroup {
		scene.Logger().Debug("tessellate: skipping node", "node", n.ID.Short(), "kind", n.Kind.String())
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, child := range g.Children(n) {
		collected, err := collect(g, k, child, cells, depth+1)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}
