package part

import (
	"math"
	"testing"

	"github.com/chazu/flexion/pkg/mesh"
)

func TestReferencePlateGeometry(t *testing.T) {
	m := ReferencePlate()

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// 17x15 full vertex grid, faces for all cells except the 4 per opening.
	if m.VertexCount() != 255 {
		t.Errorf("vertex count = %d, want 255", m.VertexCount())
	}
	if m.TriangleCount() != 424 {
		t.Errorf("triangle count = %d, want 424", m.TriangleCount())
	}

	// 80*70 minus three 10x10 openings.
	if area := m.SurfaceArea(); math.Abs(area-5300) > 1e-9 {
		t.Errorf("surface area = %g, want 5300", area)
	}

	min, max := m.Bounds()
	if min != (mesh.Vec3{}) || max != (mesh.Vec3{X: 80, Y: 70}) {
		t.Errorf("bounds = %v..%v", min, max)
	}
}

func TestReferencePlateStrandedCenters(t *testing.T) {
	m := ReferencePlate()

	// The opening centers stay in the vertex grid but no face references
	// them.
	referenced := make([]bool, m.VertexCount())
	for _, tri := range m.Triangles {
		for _, vi := range tri {
			referenced[vi] = true
		}
	}

	centers := []mesh.Vec3{
		{X: 15, Y: 10},
		{X: 65, Y: 10},
		{X: 40, Y: 60},
	}
	for _, c := range centers {
		found := false
		for vi, v := range m.Vertices {
			if v == c {
				found = true
				if referenced[vi] {
					t.Errorf("opening center %v is referenced by a face", c)
				}
			}
		}
		if !found {
			t.Errorf("opening center %v missing from vertex grid", c)
		}
	}
}

func TestHolePlateErrors(t *testing.T) {
	cases := []struct {
		name string
		spec PlateSpec
	}{
		{"zero spacing", PlateSpec{Width: 10, Height: 10, Spacing: 0}},
		{"negative spacing", PlateSpec{Width: 10, Height: 10, Spacing: -1}},
		{"too small", PlateSpec{Width: 1, Height: 1, Spacing: 5}},
		{"not a multiple", PlateSpec{Width: 12, Height: 10, Spacing: 5}},
		{
			"opening too small",
			PlateSpec{
				Width: 40, Height: 40, Spacing: 5,
				Openings: []SquareOpening{{CenterX: 20, CenterY: 20, Size: 5}},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := HolePlate(tc.spec); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHolePlateSolid(t *testing.T) {
	// No openings: every cell faced, every vertex referenced.
	m, err := HolePlate(PlateSpec{Width: 20, Height: 10, Spacing: 5})
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 15 {
		t.Errorf("vertex count = %d, want 15", m.VertexCount())
	}
	if m.TriangleCount() != 16 {
		t.Errorf("triangle count = %d, want 16", m.TriangleCount())
	}
	if area := m.SurfaceArea(); math.Abs(area-200) > 1e-9 {
		t.Errorf("surface area = %g, want 200", area)
	}
}

func TestHolePlateNormalsFaceUp(t *testing.T) {
	m, err := HolePlate(PlateSpec{Width: 10, Height: 10, Spacing: 5})
	if err != nil {
		t.Fatal(err)
	}
	for ti := range m.Triangles {
		if n := m.TriangleNormal(ti); n != (mesh.Vec3{Z: 1}) {
			t.Fatalf("triangle %d normal = %v, want +Z", ti, n)
		}
	}
}

func TestInsetPoint(t *testing.T) {
	x, y := insetPoint(0, 10, 4)
	if x != 0 || math.Abs(y-6) > 1e-12 {
		t.Errorf("insetPoint(0,10,4) = (%g, %g), want (0, 6)", x, y)
	}
	// Origin stays put rather than dividing by zero.
	if x, y := insetPoint(0, 0, 5); x != 0 || y != 0 {
		t.Errorf("insetPoint at origin = (%g, %g)", x, y)
	}
}
