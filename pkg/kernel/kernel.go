// Package kernel defines the solid-modeling interface the tessellator uses
// to turn walls and roofs into renderable solids. The sdfx subpackage
// provides the implementation.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds building elements from a small set of primitives.
// Coordinates are internal units (feet).
type Kernel interface {
	// Box is centred on the origin.
	Box(x, y, z float64) Solid
	// Extrude sweeps a closed polygon drawn in the XY plane along +Z from
	// 0 to length. Wall sections and roof profiles are built this way.
	Extrude(profile [][2]float64, length float64) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, X applied first

	ToMesh(s Solid) (*Mesh, error)
}
