// Package kernel defines the solid modeling interface used to tessellate
// parts of a scene that are easier to describe as signed distance fields
// than as ray-traceable primitives. The resulting triangle meshes are
// rendered like any other mesh.
package kernel

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds solids and turns them into triangle meshes.
type Kernel interface {
	// Primitives
	Box(min, max [3]float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid // centred on the origin along z
	Cone(height, radius float64) Solid     // base at z=0, apex at z=height

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
	Scale(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid, cells int) (*Mesh, error)
}
