package part

import (
	"fmt"
	"math"

	"github.com/chazu/flexion/pkg/mesh"
)

// SquareOpening is an axis-aligned square cutout in a grid plate, given by
// its center and edge length. Center and size must align with the plate grid
// so the opening covers whole cells.
type SquareOpening struct {
	CenterX float64
	CenterY float64
	Size    float64
}

// PlateSpec parameterizes HolePlate. All dimensions are millimeters.
type PlateSpec struct {
	Width    float64 // extent along X
	Height   float64 // extent along Y
	Spacing  float64 // grid cell edge length
	Openings []SquareOpening
}

const gridEps = 1e-9

// HolePlate builds a flat single-sided plate in the z=0 plane, triangulated
// on a regular grid, with the cells inside each opening left unfaced. The
// full vertex grid is always emitted, openings included, so vertices interior
// to an opening remain in the mesh unreferenced by any face. Opening rims and
// the outer rim are the only boundary edges, which is what makes the plate
// the reference geometry for hole detection.
func HolePlate(spec PlateSpec) (*mesh.Mesh, error) {
	if spec.Spacing <= 0 {
		return nil, fmt.Errorf("plate spacing must be positive, got %g", spec.Spacing)
	}
	nx := int(math.Round(spec.Width / spec.Spacing))
	ny := int(math.Round(spec.Height / spec.Spacing))
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("plate %gx%g too small for spacing %g", spec.Width, spec.Height, spec.Spacing)
	}
	if math.Abs(float64(nx)*spec.Spacing-spec.Width) > gridEps ||
		math.Abs(float64(ny)*spec.Spacing-spec.Height) > gridEps {
		return nil, fmt.Errorf("plate %gx%g is not a multiple of spacing %g", spec.Width, spec.Height, spec.Spacing)
	}
	for _, o := range spec.Openings {
		if o.Size < spec.Spacing*2 {
			return nil, fmt.Errorf("opening at (%g, %g) smaller than two cells", o.CenterX, o.CenterY)
		}
	}

	m := &mesh.Mesh{
		Vertices:  make([]mesh.Vec3, 0, (nx+1)*(ny+1)),
		Triangles: make([]mesh.Triangle, 0, nx*ny*2),
	}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.Vertices = append(m.Vertices, mesh.Vec3{
				X: float64(i) * spec.Spacing,
				Y: float64(j) * spec.Spacing,
			})
		}
	}

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if cellInOpening(spec, i, j) {
				continue
			}
			v00 := j*(nx+1) + i
			v10 := v00 + 1
			v01 := v00 + (nx + 1)
			v11 := v01 + 1
			// Counter-clockwise so normals face +Z.
			m.Triangles = append(m.Triangles,
				mesh.Triangle{v00, v10, v11},
				mesh.Triangle{v00, v11, v01},
			)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// cellInOpening reports whether grid cell (i, j) lies entirely inside one of
// the plate's openings.
func cellInOpening(spec PlateSpec, i, j int) bool {
	x0 := float64(i) * spec.Spacing
	y0 := float64(j) * spec.Spacing
	x1 := x0 + spec.Spacing
	y1 := y0 + spec.Spacing
	for _, o := range spec.Openings {
		half := o.Size / 2
		if x0 >= o.CenterX-half-gridEps && x1 <= o.CenterX+half+gridEps &&
			y0 >= o.CenterY-half-gridEps && y1 <= o.CenterY+half+gridEps {
			return true
		}
	}
	return false
}

// ReferencePlate is the canonical analysis fixture: an 80x70 plate on a 5 mm
// grid with three 10 mm square openings, two along the bottom edge and one
// near the top. Feature ordering on this plate is stable: hole 0 at (15,10),
// hole 1 at (65,10), hole 2 at (40,60). The outer rim is not counted.
func ReferencePlate() *mesh.Mesh {
	m, err := HolePlate(PlateSpec{
		Width:   80,
		Height:  70,
		Spacing: 5,
		Openings: []SquareOpening{
			{CenterX: 15, CenterY: 10, Size: 10},
			{CenterX: 65, CenterY: 10, Size: 10},
			{CenterX: 40, CenterY: 60, Size: 10},
		},
	})
	if err != nil {
		panic("reference plate: " + err.Error())
	}
	return m
}
