package analysis

import (
	"errors"
	"testing"

	"github.com/chazu/flexion/pkg/feature"
	"github.com/chazu/flexion/pkg/mesh"
	"github.com/chazu/flexion/pkg/part"
)

// plateCase returns the reference plate, its holes, and a valid request.
func plateCase() (*mesh.Mesh, []feature.HoleFeature, Request) {
	m := part.ReferencePlate()
	holes := feature.Detect(m)
	req := Request{
		FixedHoles: []int{0, 1},
		LoadHole:   2,
		Force:      100,
		Direction:  &mesh.Vec3{Z: -1},
		Material:   "aluminum-6061-T6",
	}
	return m, holes, req
}

func TestResolveBoundaryValid(t *testing.T) {
	m, holes, req := plateCase()
	c, err := ResolveBoundary(m, holes, req)
	if err != nil {
		t.Fatalf("ResolveBoundary: %v", err)
	}
	if len(c.Supports) != 2 {
		t.Errorf("supports = %d, want 2", len(c.Supports))
	}
	if c.Load.Feature.Index != 2 {
		t.Errorf("load feature index = %d, want 2", c.Load.Feature.Index)
	}
	if c.Load.Direction != (mesh.Vec3{Z: -1}) {
		t.Errorf("load direction = %v", c.Load.Direction)
	}
	if c.Material.Name != "Aluminum 6061-T6" {
		t.Errorf("material = %q", c.Material.Name)
	}
}

func TestResolveBoundaryNoHoles(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []mesh.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
		},
		Triangles: []mesh.Triangle{
			{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2},
		},
	}
	_, _, req := plateCase()
	_, err := ResolveBoundary(m, feature.Detect(m), req)
	var geomErr *GeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("expected GeometryError, got %v", err)
	}
}

func TestResolveBoundaryUnknownMaterial(t *testing.T) {
	m, holes, req := plateCase()
	req.Material = "unobtainium"
	_, err := ResolveBoundary(m, holes, req)
	var matErr *MaterialNotFoundError
	if !errors.As(err, &matErr) {
		t.Fatalf("expected MaterialNotFoundError, got %v", err)
	}
	if matErr.Name != "unobtainium" || len(matErr.Known) == 0 {
		t.Errorf("error carries %q with %d known keys", matErr.Name, len(matErr.Known))
	}
}

func TestResolveBoundaryUnderconstrained(t *testing.T) {
	m, holes, req := plateCase()
	req.FixedHoles = nil
	_, err := ResolveBoundary(m, holes, req)
	var underErr *UnderconstrainedError
	if !errors.As(err, &underErr) {
		t.Fatalf("expected UnderconstrainedError, got %v", err)
	}
}

func TestResolveBoundaryBadRequests(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"negative force", func(r *Request) { r.Force = -5 }},
		{"fixed out of range", func(r *Request) { r.FixedHoles = []int{0, 9} }},
		{"fixed negative", func(r *Request) { r.FixedHoles = []int{-1} }},
		{"load out of range", func(r *Request) { r.LoadHole = 9 }},
		{"load negative", func(r *Request) { r.LoadHole = -1 }},
		{"load is fixed", func(r *Request) { r.LoadHole = 0 }},
		{"zero direction", func(r *Request) { r.Direction = &mesh.Vec3{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, holes, req := plateCase()
			tc.mutate(&req)
			_, err := ResolveBoundary(m, holes, req)
			var bcErr *BoundaryConditionError
			if !errors.As(err, &bcErr) {
				t.Fatalf("expected BoundaryConditionError, got %v", err)
			}
		})
	}
}

func TestResolveBoundaryDeduplicatesFixed(t *testing.T) {
	m, holes, req := plateCase()
	req.FixedHoles = []int{1, 0, 1, 0}
	c, err := ResolveBoundary(m, holes, req)
	if err != nil {
		t.Fatalf("ResolveBoundary: %v", err)
	}
	if len(c.Supports) != 2 {
		t.Fatalf("supports = %d, want 2 after dedup", len(c.Supports))
	}
	if c.Supports[0].Feature.Index != 0 || c.Supports[1].Feature.Index != 1 {
		t.Errorf("supports not in ascending order: %d, %d",
			c.Supports[0].Feature.Index, c.Supports[1].Feature.Index)
	}
}

func TestLoadDirectionDefaultsToLoopNormal(t *testing.T) {
	m, holes, req := plateCase()
	req.Direction = nil
	c, err := ResolveBoundary(m, holes, req)
	if err != nil {
		t.Fatalf("ResolveBoundary: %v", err)
	}
	// The plate's loops are planar in z=0, so the inferred direction is ±Z.
	d := c.Load.Direction
	if d.X != 0 || d.Y != 0 || d.Z*d.Z != 1 {
		t.Errorf("inferred direction = %v, want ±Z", d)
	}
}
