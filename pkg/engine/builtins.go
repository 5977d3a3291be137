package engine

import (
	"fmt"

	"github.com/chazu/linework/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// Values that only exist inside the interpreter. Builtins hand these to
// each other; none of them is a registered zygomys type.

// sexpPrimitive wraps a primitive payload so it can be returned from a
// primitive builtin and consumed by defshape, place or a boolean. It only
// becomes a graph node once something uses it.
type sexpPrimitive struct {
	kind string
	data graph.NodeData
}

func (p *sexpPrimitive) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s ...)", p.kind)
}
func (p *sexpPrimitive) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a graph.Vec3.
type sexpVec3 struct {
	vec graph.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// number accepts an integer or float literal.
func number(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, typeError("number", s)
}

func integer(s zygo.Sexp) (int, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok {
		return 0, typeError("integer", s)
	}
	return int(v.Val), nil
}

func text(s zygo.Sexp) (string, error) {
	v, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", typeError("string", s)
	}
	return v.S, nil
}

// keywordOrText accepts :below as well as "below".
func keywordOrText(s zygo.Sexp) (string, error) {
	if name, ok := keyword(s); ok {
		return name, nil
	}
	v, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", typeError("keyword or string", s)
	}
	return v.S, nil
}

func vector(s zygo.Sexp) (graph.Vec3, error) {
	v, ok := s.(*sexpVec3)
	if !ok {
		return graph.Vec3{}, typeError("vec3", s)
	}
	return v.vec, nil
}

// scaleVector accepts a vec3 or one number for a uniform scale.
func scaleVector(s zygo.Sexp) (graph.Vec3, error) {
	if f, err := number(s); err == nil {
		return graph.Vec3{X: f, Y: f, Z: f}, nil
	}
	return vector(s)
}

// items flattens a list or array; nil is the empty list.
func items(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	}
	if s == zygo.SexpNull {
		return nil, nil
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func typeError(want string, got zygo.Sexp) error {
	return fmt.Errorf("expected %s, got %T (%s)", want, got, got.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Graph building
// ---------------------------------------------------------------------------

// builder populates one SceneGraph during one evaluation. Anonymous nodes
// get IDs from a per-evaluation counter so the same source always yields
// the same IDs.
type builder struct {
	g       *graph.SceneGraph
	counter uint64
}

func (b *builder) anonID(kind string) graph.NodeID {
	b.counter++
	return graph.NewNodeID(fmt.Sprintf("%s/_anon_%d", kind, b.counter))
}

// toNodeRef extracts a NodeID from a sexpNodeRef, materialising a bare
// primitive as an anonymous node.
func (b *builder) toNodeRef(s zygo.Sexp) (graph.NodeID, error) {
	switch v := s.(type) {
	case *sexpNodeRef:
		return v.id, nil
	case *sexpPrimitive:
		id := b.anonID(v.kind)
		b.g.AddNode(&graph.Node{ID: id, Kind: graph.NodePrimitive, Data: v.data})
		return id, nil
	}
	return graph.ZeroID, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRefs converts every element of args, flattening lists.
func (b *builder) toNodeRefs(fn string, args []zygo.Sexp) ([]graph.NodeID, error) {
	var ids []graph.NodeID
	for i, arg := range args {
		if _, ok := arg.(*zygo.SexpPair); ok {
			elems, err := items(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: operand %d: %w", fn, i+1, err)
			}
			sub, err := b.toNodeRefs(fn, elems)
			if err != nil {
				return nil, err
			}
			ids = append(ids, sub...)
			continue
		}
		id, err := b.toNodeRef(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: operand %d: %w", fn, i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// add inserts a composite node with an anonymous ID.
func (b *builder) add(kind graph.NodeKind, path string, children []graph.NodeID, data graph.NodeData) *sexpNodeRef {
	id := b.anonID(path)
	b.g.AddNode(&graph.Node{ID: id, Kind: kind, Children: children, Data: data})
	return &sexpNodeRef{id: id}
}

// kwFloat reads an optional numeric keyword into dst.
func kwFloat(pa callArgs, fn, key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := number(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = f
	return nil
}

// kwVec reads an optional vec3 keyword into dst.
func kwVec(pa callArgs, fn, key string, dst *graph.Vec3) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	vec, err := vector(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = vec
	return nil
}

// kwKeyword reads an optional keyword-or-string keyword into dst.
func kwKeyword(pa callArgs, fn, key string, dst *string) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	s, err := keywordOrText(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = s
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene language builtins into a zygomys
// environment. The builtins operate on the provided SceneGraph, populating
// it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, g *graph.SceneGraph) {
	b := &builder{g: g}

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := number(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := number(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := number(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: graph.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 1 :center (vec3 0 0 0))
	// (outline-sphere :radius 1 :center (vec3 0 0 0))
	// -----------------------------------------------------------------------
	sphere := func(outline bool) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			sd := graph.SphereData{Radius: 1, Outline: outline}
			if err := kwFloat(pa, name, "radius", &sd.Radius); err != nil {
				return zygo.SexpNull, err
			}
			if err := kwVec(pa, name, "center", &sd.Center); err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPrimitive{kind: "sphere", data: sd}, nil
		}
	}
	env.AddFunction("sphere", sphere(false))
	env.AddFunction("outline_sphere", sphere(true))

	// -----------------------------------------------------------------------
	// (cube :min (vec3 -1 -1 -1) :max (vec3 1 1 1) :stripes 8)
	// -----------------------------------------------------------------------
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cd := graph.CubeData{
			Min: graph.Vec3{X: -1, Y: -1, Z: -1},
			Max: graph.Vec3{X: 1, Y: 1, Z: 1},
		}
		if err := kwVec(pa, name, "min", &cd.Min); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwVec(pa, name, "max", &cd.Max); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["stripes"]; ok {
			n, err := integer(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cube: stripes: %w", err)
			}
			cd.Stripes = n
		}
		return &sexpPrimitive{kind: "cube", data: cd}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :radius 0.5 :z0 -1 :z1 1)
	// (outline-cylinder :radius 0.5 :z0 -1 :z1 1)
	// -----------------------------------------------------------------------
	cylinder := func(outline bool) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			cd := graph.CylinderData{Radius: 1, Z0: -1, Z1: 1, Outline: outline}
			if err := kwFloat(pa, name, "radius", &cd.Radius); err != nil {
				return zygo.SexpNull, err
			}
			if err := kwFloat(pa, name, "z0", &cd.Z0); err != nil {
				return zygo.SexpNull, err
			}
			if err := kwFloat(pa, name, "z1", &cd.Z1); err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPrimitive{kind: "cylinder", data: cd}, nil
		}
	}
	env.AddFunction("cylinder", cylinder(false))
	env.AddFunction("outline_cylinder", cylinder(true))

	// -----------------------------------------------------------------------
	// (cone :radius 1 :height 2)
	// (outline-cone :radius 1 :height 2)
	// -----------------------------------------------------------------------
	cone := func(outline bool) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			cd := graph.ConeData{Radius: 1, Height: 1, Outline: outline}
			if err := kwFloat(pa, name, "radius", &cd.Radius); err != nil {
				return zygo.SexpNull, err
			}
			if err := kwFloat(pa, name, "height", &cd.Height); err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPrimitive{kind: "cone", data: cd}, nil
		}
	}
	env.AddFunction("cone", cone(false))
	env.AddFunction("outline_cone", cone(true))

	// -----------------------------------------------------------------------
	// (mesh "bunny.stl" :fit-min (vec3 -1 -1 0) :fit-max (vec3 1 1 2))
	// -----------------------------------------------------------------------
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("mesh requires a file path")
		}
		p, err := text(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: path: %w", err)
		}
		md := graph.MeshData{Path: p}

		_, hasMin := pa.kw["fit-min"]
		_, hasMax := pa.kw["fit-max"]
		if hasMin != hasMax {
			return zygo.SexpNull, fmt.Errorf("mesh: fit-min and fit-max must be given together")
		}
		if hasMin {
			fit := &graph.Bounds{}
			if err := kwVec(pa, name, "fit-min", &fit.Min); err != nil {
				return zygo.SexpNull, err
			}
			if err := kwVec(pa, name, "fit-max", &fit.Max); err != nil {
				return zygo.SexpNull, err
			}
			md.Fit = fit
		}
		return &sexpPrimitive{kind: "mesh", data: md}, nil
	})

	// -----------------------------------------------------------------------
	// (function :surface "saddle" :min (vec3 -2 -2 -4) :max (vec3 2 2 4)
	//           :direction :below :texture :swirl)
	// -----------------------------------------------------------------------
	env.AddFunction("function", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		fd := graph.FunctionData{
			Bounds: graph.Bounds{
				Min: graph.Vec3{X: -1, Y: -1, Z: -1},
				Max: graph.Vec3{X: 1, Y: 1, Z: 1},
			},
		}
		if err := kwKeyword(pa, name, "surface", &fd.Surface); err != nil {
			return zygo.SexpNull, err
		}
		if fd.Surface == "" {
			return zygo.SexpNull, fmt.Errorf("function requires :surface")
		}
		if err := kwVec(pa, name, "min", &fd.Bounds.Min); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwVec(pa, name, "max", &fd.Bounds.Max); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwKeyword(pa, name, "direction", &fd.Direction); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwKeyword(pa, name, "texture", &fd.Texture); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPrimitive{kind: "function", data: fd}, nil
	})

	// -----------------------------------------------------------------------
	// (defshape "name" (sphere ...))
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a body expression")
		}

		shapeName, err := text(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		if g.Lookup(shapeName) != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %q is already defined", shapeName)
		}

		id := graph.NewNodeID("defshape/" + shapeName)
		switch body := args[1].(type) {
		case *sexpPrimitive:
			g.AddNode(&graph.Node{
				ID:   id,
				Kind: graph.NodePrimitive,
				Name: shapeName,
				Data: body.data,
			})
		case *sexpNodeRef:
			// Composite bodies are named through a single-child group.
			g.AddNode(&graph.Node{
				ID:       id,
				Kind:     graph.NodeGroup,
				Name:     shapeName,
				Children: []graph.NodeID{body.id},
				Data:     graph.GroupData{},
			})
		default:
			return zygo.SexpNull, fmt.Errorf("defshape: expected shape expression, got %T", args[1])
		}

		return &sexpNodeRef{id: id, name: shapeName}, nil
	})

	// -----------------------------------------------------------------------
	// (shape "name")
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}

		shapeName, err := text(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}

		n := g.Lookup(shapeName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", shapeName)
		}

		return &sexpNodeRef{id: n.ID, name: shapeName}, nil
	})

	// -----------------------------------------------------------------------
	// (place (shape "ball") :at (vec3 0 0 1) :rotate (vec3 0 0 90) :scale 2)
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires exactly one shape, got %d", len(pa.positional))
		}

		childID, err := b.toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		td := graph.TransformData{}
		if v, ok := pa.kw["at"]; ok {
			vec, err := vector(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			td.Translation = &vec
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := vector(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			td.Rotation = &vec
		}
		if v, ok := pa.kw["scale"]; ok {
			vec, err := scaleVector(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: scale: %w", err)
			}
			td.Scale = &vec
		}

		return b.add(graph.NodeTransform, "place", []graph.NodeID{childID}, td), nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...) (intersection a b ...) (difference a b ...)
	// -----------------------------------------------------------------------
	boolean := func(op graph.BooleanOp) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			children, err := b.toNodeRefs(name, args)
			if err != nil {
				return zygo.SexpNull, err
			}
			if len(children) == 0 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least one shape", name)
			}
			return b.add(graph.NodeBoolean, op.String(), children, graph.BooleanData{Op: op}), nil
		}
	}
	env.AddFunction("union", boolean(graph.BoolUnion))
	env.AddFunction("intersection", boolean(graph.BoolIntersection))
	env.AddFunction("difference", boolean(graph.BoolDifference))

	// -----------------------------------------------------------------------
	// (tessellate :cells 64 (difference ...))
	// -----------------------------------------------------------------------
	env.AddFunction("tessellate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		td := graph.TessellateData{}
		if v, ok := pa.kw["cells"]; ok {
			n, err := integer(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tessellate: cells: %w", err)
			}
			td.Cells = n
		}
		children, err := b.toNodeRefs(name, pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(children) == 0 {
			return zygo.SexpNull, fmt.Errorf("tessellate requires at least one shape")
		}
		return b.add(graph.NodeTessellate, "tessellate", children, td), nil
	})

	// -----------------------------------------------------------------------
	// (scene "name" (place ...) (shape "ball") ...)
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		sceneName := ""
		if len(args) > 0 {
			if s, ok := args[0].(*zygo.SexpStr); ok {
				if _, kw := keyword(s); !kw {
					sceneName = s.S
					args = args[1:]
				}
			}
		}

		children, err := b.toNodeRefs(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}

		var id graph.NodeID
		if sceneName != "" {
			if g.Lookup(sceneName) != nil {
				return zygo.SexpNull, fmt.Errorf("scene: %q is already defined", sceneName)
			}
			id = graph.NewNodeID("scene/" + sceneName)
		} else {
			id = b.anonID("scene")
		}
		g.AddNode(&graph.Node{
			ID:       id,
			Kind:     graph.NodeGroup,
			Name:     sceneName,
			Children: children,
			Data:     graph.GroupData{},
		})
		g.AddRoot(id)

		return &sexpNodeRef{id: id, name: sceneName}, nil
	})

	// -----------------------------------------------------------------------
	// (camera :eye (vec3 4 3 2) :center (vec3 0 0 0) :up (vec3 0 0 1) :fovy 50)
	// -----------------------------------------------------------------------
	env.AddFunction("camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cam := &graph.Camera{}
		for key, dst := range map[string]**graph.Vec3{"eye": &cam.Eye, "center": &cam.Center, "up": &cam.Up} {
			v, ok := pa.kw[key]
			if !ok {
				continue
			}
			vec, err := vector(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: %s: %w", key, err)
			}
			*dst = &vec
		}
		if err := kwFloat(pa, name, "fovy", &cam.Fovy); err != nil {
			return zygo.SexpNull, err
		}
		g.Camera = cam
		return zygo.SexpNull, nil
	})
}
