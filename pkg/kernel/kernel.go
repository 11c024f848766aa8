// Package kernel defines the abstract geometry kernel interface used by the
// part generators. Implementations provide solid modeling and boolean
// operations behind this interface; the abstraction allows swapping backends
// by configuration without changing the generators.
package kernel

import "github.com/chazu/flexion/pkg/mesh"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Both are centered on the origin.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output. The result is welded so triangles share edges.
	ToMesh(s Solid) (*mesh.Mesh, error)
}
