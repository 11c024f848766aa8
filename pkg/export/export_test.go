package export

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/flexion/pkg/analysis"
	"github.com/chazu/flexion/pkg/mesh"
	"github.com/chazu/flexion/pkg/part"
)

func referenceResult(t *testing.T, force float64) *analysis.Result {
	t.Helper()
	r, err := analysis.Run(part.ReferencePlate(), analysis.Request{
		FixedHoles: []int{0, 1},
		LoadHole:   2,
		Force:      force,
		Direction:  &mesh.Vec3{Z: -1},
		Material:   "aluminum-6061-T6",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return r
}

func TestBuildBundleShape(t *testing.T) {
	r := referenceResult(t, 100)
	b := Build(r)

	if b.SchemaVersion != SchemaVersion {
		t.Errorf("schema version = %d", b.SchemaVersion)
	}
	n := r.Mesh.VertexCount()
	if b.VertexCount != n {
		t.Errorf("vertex count = %d, want %d", b.VertexCount, n)
	}
	if len(b.Positions) != n*3 {
		t.Errorf("positions = %d entries, want %d", len(b.Positions), n*3)
	}
	if len(b.Indices) != r.Mesh.TriangleCount()*3 {
		t.Errorf("indices = %d entries, want %d", len(b.Indices), r.Mesh.TriangleCount()*3)
	}
	if len(b.Stress) != n || len(b.Displacements) != n*3 ||
		len(b.Normalized) != n || len(b.Colors) != n {
		t.Fatalf("per-vertex array lengths inconsistent: stress %d, disp %d, norm %d, colors %d",
			len(b.Stress), len(b.Displacements), len(b.Normalized), len(b.Colors))
	}

	if len(b.Supports) != 2 {
		t.Errorf("supports = %d, want 2", len(b.Supports))
	}
	if b.Load.Index != 2 || b.Load.Force != 100 {
		t.Errorf("load anchor = hole %d, %g N", b.Load.Index, b.Load.Force)
	}
	if b.Material.Name != "Aluminum 6061-T6" {
		t.Errorf("material = %q", b.Material.Name)
	}
}

func TestBuildNormalization(t *testing.T) {
	r := referenceResult(t, 100)
	b := Build(r)

	min := r.Field.MinStress()
	max, maxAt := r.Field.MaxStress()

	for i, v := range b.Normalized {
		if v < 0 || v > 1 {
			t.Fatalf("normalized[%d] = %g, outside [0,1]", i, v)
		}
	}
	if b.Normalized[maxAt] != 1 {
		t.Errorf("normalized at peak = %g, want 1", b.Normalized[maxAt])
	}
	if b.Legend.Min != min || b.Legend.Max != max {
		t.Errorf("legend range = [%g, %g], want [%g, %g]", b.Legend.Min, b.Legend.Max, min, max)
	}
	if b.Legend.Units != "MPa" {
		t.Errorf("legend units = %q", b.Legend.Units)
	}

	// Ramp endpoints: blue at the low stop, red at the high stop.
	if b.Legend.Stops[0].Color != "#0000FF" {
		t.Errorf("low stop color = %q, want #0000FF", b.Legend.Stops[0].Color)
	}
	if b.Legend.Stops[4].Color != "#FF0000" {
		t.Errorf("high stop color = %q, want #FF0000", b.Legend.Stops[4].Color)
	}
	if b.Colors[maxAt] != "#FF0000" {
		t.Errorf("peak vertex color = %q, want #FF0000", b.Colors[maxAt])
	}

	if b.SafetyFactor == nil {
		t.Fatal("safety factor missing on loaded case")
	}
	if math.Abs(*b.SafetyFactor-r.Safety.Value) > 1e-12 {
		t.Errorf("safety factor = %g, want %g", *b.SafetyFactor, r.Safety.Value)
	}
	if b.Unloaded {
		t.Error("loaded case flagged unloaded")
	}
}

func TestBuildUnloaded(t *testing.T) {
	r := referenceResult(t, 0)
	b := Build(r)

	if !b.Unloaded {
		t.Fatal("zero-force bundle not flagged unloaded")
	}
	// +Inf does not survive JSON; the field is omitted via nil instead.
	if b.SafetyFactor != nil {
		t.Errorf("safety factor = %v, want nil", *b.SafetyFactor)
	}
	if b.Verdict != "unloaded" {
		t.Errorf("verdict = %q", b.Verdict)
	}
	// A flat zero field normalizes to all zeros, not NaN.
	for i, v := range b.Normalized {
		if v != 0 {
			t.Fatalf("normalized[%d] = %g on flat field", i, v)
		}
	}
	if b.Colors[0] != "#0000FF" {
		t.Errorf("flat field color = %q, want #0000FF", b.Colors[0])
	}
}

func TestRampColorInterpolation(t *testing.T) {
	cases := []struct {
		t    float64
		want string
	}{
		{-1, "#0000FF"},
		{0, "#0000FF"},
		{0.25, "#00FFFF"},
		{0.5, "#00FF00"},
		{0.75, "#FFFF00"},
		{1, "#FF0000"},
		{2, "#FF0000"},
	}
	for _, tc := range cases {
		if got := rampColor(tc.t); got != tc.want {
			t.Errorf("rampColor(%g) = %q, want %q", tc.t, got, tc.want)
		}
	}
	// Halfway between blue and cyan.
	if got := rampColor(0.125); got != "#0080FF" {
		t.Errorf("rampColor(0.125) = %q, want #0080FF", got)
	}
}

func TestWriteFile(t *testing.T) {
	r := referenceResult(t, 100)
	b := Build(r)

	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := WriteFile(path, b); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Bundle
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("bundle is not valid JSON: %v", err)
	}
	if got.SchemaVersion != SchemaVersion || got.VertexCount != b.VertexCount {
		t.Errorf("round trip lost data: schema %d, vertices %d", got.SchemaVersion, got.VertexCount)
	}
}
