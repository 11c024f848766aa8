package analysis

import (
	"math"

	"github.com/chazu/flexion/pkg/material"
)

// SafetyFactor is the scalar verdict of an analysis: material yield strength
// divided by peak stress. An unloaded part (zero peak stress) reports the
// explicit Unloaded sentinel instead of dividing by zero; Value is +Inf in
// that case.
type SafetyFactor struct {
	Value    float64
	Unloaded bool
}

// Interpretation thresholds for Classification. These are reporting bands
// only; nothing in the pipeline branches on them.
const (
	failThreshold     = 2.0
	overdesignedAbove = 4.0
)

// EvaluateSafety reduces a stress field to its safety factor.
func EvaluateSafety(f *Field, mat material.Material) SafetyFactor {
	max, _ := f.MaxStress()
	if max == 0 {
		return SafetyFactor{Value: math.Inf(1), Unloaded: true}
	}
	return SafetyFactor{Value: mat.YieldStrength / max}
}

// Classification maps the factor to a user-facing band.
func (s SafetyFactor) Classification() string {
	switch {
	case s.Unloaded:
		return "unloaded"
	case s.Value < failThreshold:
		return "fail"
	case s.Value <= overdesignedAbove:
		return "acceptable"
	default:
		return "overdesigned"
	}
}
