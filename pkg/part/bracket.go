// Package part generates the built-in test parts: a parametric triangular
// mounting bracket modeled through the geometry kernel, and a flat grid
// plate with square openings used as the analysis reference geometry.
package part

import (
	"math"

	"github.com/chazu/flexion/pkg/kernel"
)

// Default triangular bracket parameters. The hole diameter is an M6
// clearance fit.
const (
	DefaultSide         = 80.0
	DefaultThickness    = 6.0
	DefaultHoleDiameter = 6.5
	DefaultHoleInset    = 15.0
)

// BracketSpec parameterizes TriangleBracket. All dimensions are millimeters.
type BracketSpec struct {
	Side         float64 // triangle edge length
	Thickness    float64 // plate thickness
	HoleDiameter float64 // bolt hole diameter
	HoleInset    float64 // corner-to-hole-center distance
}

// DefaultBracket returns the stock bracket parameters.
func DefaultBracket() BracketSpec {
	return BracketSpec{
		Side:         DefaultSide,
		Thickness:    DefaultThickness,
		HoleDiameter: DefaultHoleDiameter,
		HoleInset:    DefaultHoleInset,
	}
}

// TriangleBracket builds an equilateral-triangle bracket plate with one bolt
// hole inset from each corner. The part is centered on the origin with the
// triangle in the XY plane and the apex pointing +Y.
//
// The prism is the intersection of three slabs, one per triangle side, each
// a large box whose inner face lies at the triangle's inradius. Holes are
// cylinders subtracted through the full thickness.
func TriangleBracket(k kernel.Kernel, spec BracketSpec) kernel.Solid {
	height := math.Sqrt(3) / 2 * spec.Side
	inradius := spec.Side / (2 * math.Sqrt(3))

	// Slab big enough to cover the whole triangle from any rotation.
	extent := spec.Side * 5

	// Material above the bottom side y = -inradius, then rotated copies for
	// the other two sides.
	slab := k.Translate(k.Box(extent, extent, spec.Thickness), 0, extent/2-inradius, 0)
	prism := slab
	for _, deg := range []float64{120, 240} {
		prism = k.Intersection(prism, k.Rotate(slab, 0, 0, deg))
	}

	// Corner vertices; holes sit on the corner-to-centroid line, inset from
	// the corner.
	corners := [3][2]float64{
		{0, 2 * height / 3},
		{-spec.Side / 2, -height / 3},
		{spec.Side / 2, -height / 3},
	}
	for _, c := range corners {
		px, py := insetPoint(c[0], c[1], spec.HoleInset)
		drill := k.Cylinder(spec.Thickness*2, spec.HoleDiameter/2)
		prism = k.Difference(prism, k.Translate(drill, px, py, 0))
	}
	return prism
}

// insetPoint moves (x, y) toward the origin by inset.
func insetPoint(x, y, inset float64) (float64, float64) {
	length := math.Hypot(x, y)
	if length == 0 {
		return x, y
	}
	scale := 1 - inset/length
	return x * scale, y * scale
}
