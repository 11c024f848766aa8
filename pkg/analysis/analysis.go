// Package analysis estimates stress and displacement fields for a
// triangulated part under a declared load, using closed-form approximations
// instead of a finite element solve. The pipeline is pure and synchronous:
// each invocation builds everything fresh from its inputs, holds no shared
// state, and may run concurrently with other invocations.
package analysis

import (
	"github.com/chazu/flexion/pkg/feature"
	"github.com/chazu/flexion/pkg/material"
	"github.com/chazu/flexion/pkg/mesh"
)

// Result aggregates everything one analysis produces. It is the unit handed
// to the exporter; no stage mutates it after Run returns.
type Result struct {
	Mesh   *mesh.Mesh
	Holes  []feature.HoleFeature
	Case   *Case
	Field  *Field
	Safety SafetyFactor
}

// MaterialUsed returns the resolved material.
func (r *Result) MaterialUsed() material.Material {
	return r.Case.Material
}

// LoadMesh reads and validates the input mesh. This is the input I/O
// boundary of the pipeline; all failure modes surface as InputError.
func LoadMesh(path string) (*mesh.Mesh, error) {
	m, err := mesh.ReadSTL(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	if err := m.Validate(); err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return m, nil
}

// Run executes the analysis pipeline on an already-loaded mesh:
// hole detection, boundary resolution, field estimation, safety evaluation.
// On failure the typed error is returned and no partial result.
func Run(m *mesh.Mesh, req Request) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, &InputError{Path: "(in-memory mesh)", Err: err}
	}

	holes := feature.Detect(m)
	c, err := ResolveBoundary(m, holes, req)
	if err != nil {
		return nil, err
	}

	field, err := EstimateField(m, c)
	if err != nil {
		return nil, err
	}

	return &Result{
		Mesh:   m,
		Holes:  holes,
		Case:   c,
		Field:  field,
		Safety: EvaluateSafety(field, c.Material),
	}, nil
}

// Analyze is the file-path convenience wrapper: load, validate, run.
func Analyze(path string, req Request) (*Result, error) {
	m, err := LoadMesh(path)
	if err != nil {
		return nil, err
	}
	return Run(m, req)
}
