package graph

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// SphereData is a sphere. Outline draws only the silhouette circle.
type SphereData struct {
	Center  Vec3    `json:"center"`
	Radius  float64 `json:"radius"`
	Outline bool    `json:"outline,omitempty"`
}

func (SphereData) nodeData() {}

// CubeData is an axis-aligned box. Stripes > 0 draws that many
// vertical stripes per face instead of the edges alone.
type CubeData struct {
	Min     Vec3 `json:"min"`
	Max     Vec3 `json:"max"`
	Stripes int  `json:"stripes,omitempty"`
}

func (CubeData) nodeData() {}

// CylinderData is a z-aligned cylinder between Z0 and Z1.
type CylinderData struct {
	Radius  float64 `json:"radius"`
	Z0      float64 `json:"z0"`
	Z1      float64 `json:"z1"`
	Outline bool    `json:"outline,omitempty"`
}

func (CylinderData) nodeData() {}

// ConeData is a cone with its base on z=0 and apex at z=Height.
type ConeData struct {
	Radius  float64 `json:"radius"`
	Height  float64 `json:"height"`
	Outline bool    `json:"outline,omitempty"`
}

func (ConeData) nodeData() {}

// MeshData loads a triangle mesh from an OBJ or STL file. When Fit is set
// the mesh is scaled uniformly to fit inside it.
type MeshData struct {
	Path string  `json:"path"`
	Fit  *Bounds `json:"fit,omitempty"`
}

func (MeshData) nodeData() {}

// FunctionData is a height field z = f(x, y) chosen from the named
// surface catalog, clipped to Bounds.
type FunctionData struct {
	Surface   string `json:"surface"`
	Bounds    Bounds `json:"bounds"`
	Direction string `json:"direction,omitempty"` // "above" or "below"
	Texture   string `json:"texture,omitempty"`   // "grid", "swirl" or "spiral"
}

func (FunctionData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData is applied to the single child as scale, then rotation,
// then translation. Created by the (place ...) form.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
	Scale       *Vec3 `json:"scale,omitempty"`
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// BooleanOp selects the set operation of a boolean node.
type BooleanOp int

const (
	BoolUnion BooleanOp = iota
	BoolIntersection
	BoolDifference
)

func (op BooleanOp) String() string {
	switch op {
	case BoolUnion:
		return "union"
	case BoolIntersection:
		return "intersection"
	case BoolDifference:
		return "difference"
	default:
		return "unknown"
	}
}

// BooleanData combines the node's children left to right.
type BooleanData struct {
	Op BooleanOp `json:"op"`
}

func (BooleanData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData is a logical grouping. Created by the (scene ...) form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// ---------------------------------------------------------------------------
// Tessellate
// ---------------------------------------------------------------------------

// TessellateData meshes the union of its children through the SDF kernel.
// Cells is the marching cubes resolution; zero means the configured default.
type TessellateData struct {
	Cells int `json:"cells,omitempty"`
}

func (TessellateData) nodeData() {}
