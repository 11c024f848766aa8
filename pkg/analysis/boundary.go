package analysis

import (
	"fmt"
	"sort"

	"github.com/chazu/flexion/pkg/feature"
	"github.com/chazu/flexion/pkg/material"
	"github.com/chazu/flexion/pkg/mesh"
)

// Request is the caller-facing description of one analysis: which detected
// holes are fixed, which one carries the load, how hard, and in what.
type Request struct {
	FixedHoles []int
	LoadHole   int
	Force      float64    // newtons, ≥ 0
	Direction  *mesh.Vec3 // optional; defaults to the load loop's normal
	Material   string     // library key
}

// FixedSupport anchors a fully constrained boundary condition to a hole.
type FixedSupport struct {
	Feature feature.HoleFeature
}

// LoadApplication anchors the applied force to a hole.
type LoadApplication struct {
	Feature   feature.HoleFeature
	Force     float64   // newtons
	Direction mesh.Vec3 // unit vector
}

// Case is the validated bundle of boundary conditions and material that the
// estimator consumes. It is built once per analysis and never mutated.
type Case struct {
	Supports []FixedSupport
	Load     LoadApplication
	Material material.Material
}

// ResolveBoundary validates a request against the detected hole features and
// produces a Case. All input problems are caught here, before any physics
// runs: hole range, constraint count, material name, force sign.
func ResolveBoundary(m *mesh.Mesh, holes []feature.HoleFeature, req Request) (*Case, error) {
	if len(holes) == 0 {
		return nil, &GeometryError{Reason: "no closed boundary loops detected on mesh"}
	}

	mat, ok := material.Lookup(req.Material)
	if !ok {
		return nil, &MaterialNotFoundError{Name: req.Material, Known: material.Keys()}
	}

	if len(req.FixedHoles) == 0 {
		return nil, &UnderconstrainedError{}
	}
	if req.Force < 0 {
		return nil, &BoundaryConditionError{
			Reason: fmt.Sprintf("force must be non-negative, got %g N", req.Force),
		}
	}

	// De-duplicate fixed indices, keep deterministic order.
	seen := make(map[int]bool)
	fixed := make([]int, 0, len(req.FixedHoles))
	for _, idx := range req.FixedHoles {
		if idx < 0 || idx >= len(holes) {
			return nil, &BoundaryConditionError{
				Reason: fmt.Sprintf("fixed hole index %d out of range, mesh has %d holes", idx, len(holes)),
			}
		}
		if !seen[idx] {
			seen[idx] = true
			fixed = append(fixed, idx)
		}
	}
	sort.Ints(fixed)

	if req.LoadHole < 0 || req.LoadHole >= len(holes) {
		return nil, &BoundaryConditionError{
			Reason: fmt.Sprintf("load hole index %d out of range, mesh has %d holes", req.LoadHole, len(holes)),
		}
	}
	if seen[req.LoadHole] {
		return nil, &BoundaryConditionError{
			Reason: fmt.Sprintf("hole %d cannot be both fixed and loaded", req.LoadHole),
		}
	}

	supports := make([]FixedSupport, 0, len(fixed))
	for _, idx := range fixed {
		supports = append(supports, FixedSupport{Feature: holes[idx]})
	}

	loadFeature := holes[req.LoadHole]
	dir := loadDirection(m, &loadFeature, req.Direction)
	if dir == (mesh.Vec3{}) {
		return nil, &BoundaryConditionError{Reason: "load direction is zero-length"}
	}

	return &Case{
		Supports: supports,
		Load: LoadApplication{
			Feature:   loadFeature,
			Force:     req.Force,
			Direction: dir,
		},
		Material: mat,
	}, nil
}

// loadDirection picks the applied-force direction: an explicit vector wins,
// otherwise the load loop's surface normal, otherwise -Z (gravity-style
// default for degenerate loops).
func loadDirection(m *mesh.Mesh, f *feature.HoleFeature, explicit *mesh.Vec3) mesh.Vec3 {
	if explicit != nil {
		return explicit.Normalize()
	}
	n := f.Normal(m)
	if n == (mesh.Vec3{}) {
		return mesh.Vec3{Z: -1}
	}
	return n
}
