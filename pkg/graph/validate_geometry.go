package graph

import (
	"math"

	"github.com/chazu/linework/pkg/shape"
)

// validateGeometry checks dimensions, transforms, tessellation resolution
// and the scene camera. Errors and warnings are returned separately.
func validateGeometry(g *SceneGraph) ([]ValidationError, []ValidationWarning) {
	var r report
	for _, n := range sortedNodes(g) {
		switch d := n.Data.(type) {
		case TransformData:
			checkScale(n.ID, d, &r)
		case TessellateData:
			if d.Cells < 0 {
				r.errorf(n.ID, "tessellate cells is %d, must be positive", d.Cells)
			}
		default:
			checkPrimitive(n.ID, d, &r)
		}
	}
	checkCamera(g.Camera, &r)

	var errs []ValidationError
	var warnings []ValidationWarning
	for _, f := range r {
		if f.Severity == SeverityWarning {
			warnings = append(warnings, ValidationWarning{NodeID: f.NodeID, Message: f.Message})
		} else {
			errs = append(errs, f)
		}
	}
	return errs, warnings
}

// positive reports whether v is a positive finite number.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func checkBounds(id NodeID, what string, b Bounds, r *report) {
	axes := [3]struct {
		name     string
		min, max float64
	}{
		{"X", b.Min.X, b.Max.X},
		{"Y", b.Min.Y, b.Max.Y},
		{"Z", b.Min.Z, b.Max.Z},
	}
	for _, a := range axes {
		if !(a.min < a.max) {
			r.errorf(id, "%s min %s %.4f is not below max %.4f", what, a.name, a.min, a.max)
		}
	}
}

// checkPrimitive checks the dimensions of a primitive payload.
func checkPrimitive(id NodeID, data NodeData, r *report) {
	switch d := data.(type) {
	case SphereData:
		if !positive(d.Radius) {
			r.errorf(id, "sphere radius is %.4f, must be positive", d.Radius)
		}
	case CubeData:
		checkBounds(id, "cube", Bounds{Min: d.Min, Max: d.Max}, r)
		if d.Stripes < 0 {
			r.errorf(id, "cube stripes is %d, must not be negative", d.Stripes)
		}
	case CylinderData:
		if !positive(d.Radius) {
			r.errorf(id, "cylinder radius is %.4f, must be positive", d.Radius)
		}
		if !(d.Z0 < d.Z1) {
			r.errorf(id, "cylinder z0 %.4f is not below z1 %.4f", d.Z0, d.Z1)
		}
	case ConeData:
		if !positive(d.Radius) {
			r.errorf(id, "cone radius is %.4f, must be positive", d.Radius)
		}
		if !positive(d.Height) {
			r.errorf(id, "cone height is %.4f, must be positive", d.Height)
		}
	case MeshData:
		if d.Path == "" {
			r.errorf(id, "mesh has no file path")
		}
		if d.Fit != nil {
			checkBounds(id, "mesh fit box", *d.Fit, r)
		}
	case FunctionData:
		if _, ok := shape.Surface(d.Surface); !ok {
			r.errorf(id, "unknown surface %q, expected one of %v", d.Surface, shape.SurfaceNames())
		}
		checkBounds(id, "function box", d.Bounds, r)
		if _, err := shape.ParseDirection(d.Direction); err != nil {
			r.errorf(id, "function: %v", err)
		}
		if _, err := shape.ParseFunctionTexture(d.Texture); err != nil {
			r.errorf(id, "function: %v", err)
		}
	}
}

// checkScale rejects zero scale components, which make the transform
// singular.
func checkScale(id NodeID, td TransformData, r *report) {
	if td.Scale == nil {
		return
	}
	s := *td.Scale
	if s.X == 0 || s.Y == 0 || s.Z == 0 {
		r.errorf(id, "scale (%g, %g, %g) has a zero component", s.X, s.Y, s.Z)
	}
}

// checkCamera checks the optional scene camera. An eye on the centre, or an
// up vector parallel to the view direction, leaves the view unoriented.
func checkCamera(c *Camera, r *report) {
	if c == nil {
		return
	}
	if c.Fovy != 0 && !(c.Fovy > 0 && c.Fovy < 180) {
		r.errorf(ZeroID, "camera fovy %.2f must be in (0, 180)", c.Fovy)
	}
	if c.Eye == nil || c.Center == nil {
		return
	}
	view := c.Center.Vec().Sub(c.Eye.Vec())
	switch {
	case view.Length() == 0:
		r.warnf(ZeroID, "degenerate camera: eye and center coincide")
	case c.Up != nil && view.Cross(c.Up.Vec()).Length() == 0:
		r.warnf(ZeroID, "degenerate camera: up is parallel to the view direction")
	}
}
