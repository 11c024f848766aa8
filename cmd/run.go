package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/flexion/pkg/analysis"
	"github.com/chazu/flexion/pkg/export"
	"github.com/chazu/flexion/pkg/logging"
	"github.com/chazu/flexion/pkg/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runOut string

var runCmd = &cobra.Command{
	Use:   "run <scenario.lisp>",
	Short: "Evaluate a load-case script and run its analysis",
	Long: `Evaluate a scenario script in the sandboxed interpreter and run the
analysis it declares. Mesh paths in the script resolve relative to the
script's directory.

A scenario script looks like:

  ; bracket pull test
  (mesh "plate.stl")
  (fix 0 1)
  (load 2)
  (force 100)
  (material "aluminum-6061-T6")
  (direction 0 0 -1)`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runOut, "out", "", "write the viewer bundle JSON to this path")
}

func runScenario(cmd *cobra.Command, args []string) error {
	eng := scenario.NewEngine()
	s, evalErrs, err := eng.EvaluateFile(args[0])
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], e.Error())
		}
		return fmt.Errorf("scenario has %d error(s)", len(evalErrs))
	}

	meshPath := s.MeshPath
	if !filepath.IsAbs(meshPath) {
		meshPath = filepath.Join(filepath.Dir(args[0]), meshPath)
	}
	if s.Request.Material == "" {
		s.Request.Material = cfg.Analysis.DefaultMaterial
	}

	logging.Log.Info("running scenario",
		zap.String("script", args[0]),
		zap.String("mesh", meshPath))

	result, err := analysis.Analyze(meshPath, s.Request)
	if err != nil {
		return err
	}

	printResult(result)

	if runOut != "" {
		bundle := export.Build(result)
		if err := export.WriteFile(runOut, bundle); err != nil {
			return err
		}
		fmt.Printf("Viewer bundle written to %s\n\n", runOut)
	}
	return nil
}
