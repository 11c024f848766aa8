package scenario

import (
	"fmt"

	"github.com/chazu/flexion/pkg/mesh"
	zygo "github.com/glycerine/zygomys/zygo"
)

// registerBuiltins installs the scenario DSL into a zygomys environment.
// Each builtin mutates the scenario under construction; the script is a
// sequence of declarations, not an expression tree.
func registerBuiltins(env *zygo.Zlisp, s *Scenario) {

	// (mesh "path.stl") names the mesh under test.
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mesh: expected 1 argument, got %d", len(args))
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
		}
		s.MeshPath = path
		return zygo.SexpNull, nil
	})

	// (fix 0 1 ...) marks one or more holes as fixed supports.
	env.AddFunction("fix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("fix: expected at least one hole index")
		}
		for _, a := range args {
			idx, err := toInt(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fix: %w", err)
			}
			s.Request.FixedHoles = append(s.Request.FixedHoles, idx)
		}
		return zygo.SexpNull, nil
	})

	// (load 2) names the loaded hole.
	env.AddFunction("load", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("load: expected 1 argument, got %d", len(args))
		}
		idx, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load: %w", err)
		}
		s.Request.LoadHole = idx
		return zygo.SexpNull, nil
	})

	// (force 100) sets the load magnitude in newtons.
	env.AddFunction("force", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("force: expected 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("force: %w", err)
		}
		s.Request.Force = f
		return zygo.SexpNull, nil
	})

	// (material "aluminum-6061-T6") selects the material by library key.
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("material: expected 1 argument, got %d", len(args))
		}
		key, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		s.Request.Material = key
		return zygo.SexpNull, nil
	})

	// (direction x y z) overrides the inferred load direction.
	env.AddFunction("direction", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("direction: expected 3 arguments, got %d", len(args))
		}
		var d mesh.Vec3
		for i, dst := range []*float64{&d.X, &d.Y, &d.Z} {
			v, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("direction: %w", err)
			}
			*dst = v
		}
		s.Request.Direction = &d
		return zygo.SexpNull, nil
	})
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}
