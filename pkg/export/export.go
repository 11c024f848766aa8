// Package export packages an analysis result into the transport-neutral
// JSON bundle consumed by the external viewer. This stage is a deterministic
// presentation transform; it performs no physics.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chazu/flexion/pkg/analysis"
	"github.com/chazu/flexion/pkg/material"
	"github.com/chazu/flexion/pkg/mesh"
)

// SchemaVersion identifies the bundle layout for downstream consumers.
const SchemaVersion = 1

// rampStops is the fixed five-stop stress color ramp, low to high.
var rampStops = [5][3]float64{
	{0, 0, 1}, // blue
	{0, 1, 1}, // cyan
	{0, 1, 0}, // green
	{1, 1, 0}, // yellow
	{1, 0, 0}, // red
}

// FeatureAnchor describes one detected hole feature for the viewer.
type FeatureAnchor struct {
	Index    int       `json:"index"`
	Centroid mesh.Vec3 `json:"centroid"`
	Radius   float64   `json:"radius"`
}

// LoadInfo describes the applied load.
type LoadInfo struct {
	FeatureAnchor
	Force     float64   `json:"force"` // newtons
	Direction mesh.Vec3 `json:"direction"`
}

// LegendStop is one entry of the color legend.
type LegendStop struct {
	Value float64 `json:"value"` // stress at this stop, MPa
	Color string  `json:"color"` // #RRGGBB
}

// Legend carries the scale metadata the viewer renders next to the part.
type Legend struct {
	Min   float64       `json:"min"`
	Max   float64       `json:"max"`
	Stops [5]LegendStop `json:"stops"`
	Units string        `json:"units"`
}

// Bundle is the complete viewer payload. Per-vertex arrays are flattened
// the way renderers consume them: positions and displacements as
// [x0,y0,z0, x1,y1,z1, ...].
type Bundle struct {
	SchemaVersion int `json:"schemaVersion"`
	VertexCount   int `json:"vertexCount"`
	TriangleCount int `json:"triangleCount"`

	Positions     []float64 `json:"positions"`
	Indices       []int     `json:"indices"`
	Stress        []float64 `json:"stress"`        // MPa per vertex
	Displacements []float64 `json:"displacements"` // mm, flattened vectors
	Normalized    []float64 `json:"normalized"`    // stress rescaled to [0,1]
	Colors        []string  `json:"colors"`        // #RRGGBB per vertex

	SafetyFactor *float64 `json:"safetyFactor"` // nil when unloaded
	Unloaded     bool     `json:"unloaded"`
	Verdict      string   `json:"verdict"`

	Material material.Material `json:"material"`
	Supports []FeatureAnchor   `json:"supports"`
	Load     LoadInfo          `json:"load"`
	Legend   Legend            `json:"legend"`
}

// Build converts a result into its viewer bundle.
func Build(r *analysis.Result) *Bundle {
	m := r.Mesh
	f := r.Field

	b := &Bundle{
		SchemaVersion: SchemaVersion,
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		Positions:     make([]float64, 0, m.VertexCount()*3),
		Indices:       make([]int, 0, m.TriangleCount()*3),
		Stress:        append([]float64(nil), f.Stress...),
		Displacements: make([]float64, 0, m.VertexCount()*3),
		Normalized:    make([]float64, m.VertexCount()),
		Colors:        make([]string, m.VertexCount()),
		Unloaded:      r.Safety.Unloaded,
		Verdict:       r.Safety.Classification(),
		Material:      r.Case.Material,
	}

	for _, v := range m.Vertices {
		b.Positions = append(b.Positions, v.X, v.Y, v.Z)
	}
	for _, t := range m.Triangles {
		b.Indices = append(b.Indices, t[0], t[1], t[2])
	}
	for _, d := range f.Displacement {
		b.Displacements = append(b.Displacements, d.X, d.Y, d.Z)
	}

	if !r.Safety.Unloaded {
		v := r.Safety.Value
		b.SafetyFactor = &v
	}

	min := f.MinStress()
	max, _ := f.MaxStress()
	span := max - min
	for i, s := range f.Stress {
		t := 0.0
		if span > 0 {
			t = (s - min) / span
		}
		b.Normalized[i] = t
		b.Colors[i] = rampColor(t)
	}

	b.Legend = Legend{Min: min, Max: max, Units: "MPa"}
	for i := range rampStops {
		frac := float64(i) / float64(len(rampStops)-1)
		b.Legend.Stops[i] = LegendStop{
			Value: min + span*frac,
			Color: rampColor(frac),
		}
	}

	for _, s := range r.Case.Supports {
		b.Supports = append(b.Supports, FeatureAnchor{
			Index:    s.Feature.Index,
			Centroid: s.Feature.Centroid,
			Radius:   s.Feature.Radius,
		})
	}
	b.Load = LoadInfo{
		FeatureAnchor: FeatureAnchor{
			Index:    r.Case.Load.Feature.Index,
			Centroid: r.Case.Load.Feature.Centroid,
			Radius:   r.Case.Load.Feature.Radius,
		},
		Force:     r.Case.Load.Force,
		Direction: r.Case.Load.Direction,
	}
	return b
}

// rampColor maps t ∈ [0,1] through the five-stop ramp with linear
// interpolation between adjacent stops.
func rampColor(t float64) string {
	if t <= 0 {
		return hexColor(rampStops[0])
	}
	if t >= 1 {
		return hexColor(rampStops[len(rampStops)-1])
	}
	scaled := t * float64(len(rampStops)-1)
	lo := int(scaled)
	frac := scaled - float64(lo)
	a, b := rampStops[lo], rampStops[lo+1]
	return hexColor([3]float64{
		a[0] + (b[0]-a[0])*frac,
		a[1] + (b[1]-a[1])*frac,
		a[2] + (b[2]-a[2])*frac,
	})
}

func hexColor(rgb [3]float64) string {
	return fmt.Sprintf("#%02X%02X%02X",
		int(rgb[0]*255+0.5), int(rgb[1]*255+0.5), int(rgb[2]*255+0.5))
}

// WriteFile writes the bundle as indented JSON. The file handle is closed on
// every exit path; a partial file may remain only if the write itself fails.
func WriteFile(path string, b *Bundle) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating bundle file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return nil
}
