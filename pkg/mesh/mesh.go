// Package mesh defines the triangle mesh consumed by the analysis pipeline.
// A mesh is immutable once loaded; every pipeline stage treats it as
// read-only input.
package mesh

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector with float64 components. Units are millimeters
// throughout the pipeline.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// IsFinite reports whether every component of v is a finite number.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Triangle references three vertices by index, in winding order.
type Triangle [3]int

// Mesh is an indexed triangle mesh. Vertices may be referenced by any number
// of triangles; an unreferenced vertex is permitted (some generators emit
// full vertex grids and omit only faces).
type Mesh struct {
	Vertices  []Vec3
	Triangles []Triangle
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Validate checks the structural invariants: the mesh has at least one
// triangle and every triangle index is within vertex bounds.
func (m *Mesh) Validate() error {
	if len(m.Triangles) == 0 {
		return fmt.Errorf("mesh has no triangles")
	}
	n := len(m.Vertices)
	for ti, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				return fmt.Errorf("triangle %d references vertex %d, mesh has %d vertices", ti, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// Both extremes are zero for an empty vertex list.
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min = m.Vertices[0]
	max = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}

// TriangleArea returns the area of triangle ti.
func (m *Mesh) TriangleArea(ti int) float64 {
	t := m.Triangles[ti]
	a := m.Vertices[t[0]]
	b := m.Vertices[t[1]]
	c := m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

// SurfaceArea returns the sum of all triangle areas.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := range m.Triangles {
		total += m.TriangleArea(i)
	}
	return total
}

// TriangleNormal returns the unit normal of triangle ti, following the
// winding order. Degenerate triangles yield the zero vector.
func (m *Mesh) TriangleNormal(ti int) Vec3 {
	t := m.Triangles[ti]
	a := m.Vertices[t[0]]
	b := m.Vertices[t[1]]
	c := m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
