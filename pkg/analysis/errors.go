package analysis

import (
	"fmt"
	"strings"
)

// The analysis error taxonomy. Every failure mode of the pipeline maps to
// exactly one of these types so callers can branch with errors.As and report
// a distinct message per kind. None of them are transient; nothing in the
// pipeline retries.

// InputError reports a mesh file that is missing, unreadable, or empty.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input mesh %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// GeometryError reports a mesh with no closed boundary loops when hole-based
// boundary conditions were requested.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "geometry: " + e.Reason
}

// BoundaryConditionError reports an invalid boundary condition, such as a
// hole index outside the detected range.
type BoundaryConditionError struct {
	Reason string
}

func (e *BoundaryConditionError) Error() string {
	return "boundary condition: " + e.Reason
}

// UnderconstrainedError reports that no fixed supports were supplied. An
// unconstrained body has no well-defined stress reference.
type UnderconstrainedError struct{}

func (e *UnderconstrainedError) Error() string {
	return "underconstrained: at least one fixed support is required"
}

// MaterialNotFoundError reports a material name absent from the library.
type MaterialNotFoundError struct {
	Name  string
	Known []string
}

func (e *MaterialNotFoundError) Error() string {
	return fmt.Sprintf("unknown material %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// NumericError reports degenerate geometry that would produce a non-finite
// field, such as a zero effective cross-section.
type NumericError struct {
	Reason string
}

func (e *NumericError) Error() string {
	return "numeric: " + e.Reason
}
