package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chazu/flexion/pkg/analysis"
	"github.com/chazu/flexion/pkg/export"
	"github.com/chazu/flexion/pkg/logging"
	"github.com/chazu/flexion/pkg/mesh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeFix       []int
	analyzeLoad      int
	analyzeForce     float64
	analyzeMaterial  string
	analyzeDirection []float64
	analyzeOut       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <mesh.stl>",
	Short: "Estimate the stress field and safety factor of a part",
	Long: `Load an STL mesh, detect its bolt holes, apply the declared boundary
conditions and estimate the stress and displacement field.

Hole indices refer to the output of 'flexion holes', which is stable for a
given mesh.

Examples:
  # Fix holes 0 and 1, pull 100 N on hole 2
  flexion analyze part.stl --fix 0,1 --load 2 --force 100

  # Explicit pull direction, export the viewer bundle
  flexion analyze part.stl --fix 0,1 --load 2 --force 100 \
      --direction 0,0,-1 --out part.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntSliceVar(&analyzeFix, "fix", nil, "hole indices to fix [required]")
	analyzeCmd.Flags().IntVar(&analyzeLoad, "load", 0, "hole index carrying the load [required]")
	analyzeCmd.Flags().Float64Var(&analyzeForce, "force", 0, "load magnitude (N)")
	analyzeCmd.Flags().StringVar(&analyzeMaterial, "material", "", "material key (default from config)")
	analyzeCmd.Flags().Float64SliceVar(&analyzeDirection, "direction", nil, "load direction x,y,z (default: load hole normal)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "write the viewer bundle JSON to this path")

	analyzeCmd.MarkFlagRequired("fix")
	analyzeCmd.MarkFlagRequired("load")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req := analysis.Request{
		FixedHoles: analyzeFix,
		LoadHole:   analyzeLoad,
		Force:      analyzeForce,
		Material:   analyzeMaterial,
	}
	if req.Material == "" {
		req.Material = cfg.Analysis.DefaultMaterial
	}
	if cmd.Flags().Changed("direction") {
		if len(analyzeDirection) != 3 {
			return fmt.Errorf("--direction needs exactly 3 components, got %d", len(analyzeDirection))
		}
		req.Direction = &mesh.Vec3{
			X: analyzeDirection[0],
			Y: analyzeDirection[1],
			Z: analyzeDirection[2],
		}
	}

	logging.Log.Info("analyzing mesh",
		zap.String("path", args[0]),
		zap.Ints("fix", req.FixedHoles),
		zap.Int("load", req.LoadHole),
		zap.Float64("force", req.Force),
		zap.String("material", req.Material))

	result, err := analysis.Analyze(args[0], req)
	if err != nil {
		return err
	}

	printResult(result)

	if analyzeOut != "" {
		bundle := export.Build(result)
		if err := export.WriteFile(analyzeOut, bundle); err != nil {
			return err
		}
		logging.Log.Info("bundle written", zap.String("path", analyzeOut))
		fmt.Printf("Viewer bundle written to %s\n\n", analyzeOut)
	}
	return nil
}

// printResult writes the human-readable analysis summary to stdout.
func printResult(r *analysis.Result) {
	maxStress, maxAt := r.Field.MaxStress()
	mat := r.MaterialUsed()

	fmt.Println()
	fmt.Println("ANALYSIS SUMMARY")
	fmt.Println("───────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Vertices:\t%d\n", r.Mesh.VertexCount())
	fmt.Fprintf(w, "  Triangles:\t%d\n", r.Mesh.TriangleCount())
	fmt.Fprintf(w, "  Holes detected:\t%d\n", len(r.Holes))
	fmt.Fprintf(w, "  Material:\t%s\n", mat.Name)
	fmt.Fprintf(w, "  Yield strength:\t%.0f MPa\n", mat.YieldStrength)
	w.Flush()
	fmt.Println()

	fmt.Println("BOUNDARY CONDITIONS")
	fmt.Println("───────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range r.Case.Supports {
		f := s.Feature
		fmt.Fprintf(w, "  Fixed hole %d:\tcentroid (%.1f, %.1f, %.1f), r = %.2f mm\n",
			f.Index, f.Centroid.X, f.Centroid.Y, f.Centroid.Z, f.Radius)
	}
	l := r.Case.Load
	fmt.Fprintf(w, "  Loaded hole %d:\t%.1f N along (%.2f, %.2f, %.2f)\n",
		l.Feature.Index, l.Force, l.Direction.X, l.Direction.Y, l.Direction.Z)
	w.Flush()
	fmt.Println()

	fmt.Println("RESULTS")
	fmt.Println("───────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Max stress:\t%.3f MPa (vertex %d)\n", maxStress, maxAt)
	fmt.Fprintf(w, "  Max displacement:\t%.5f mm\n", r.Field.MaxDisplacement())
	if r.Safety.Unloaded {
		fmt.Fprintf(w, "  Safety factor:\tn/a (part is unloaded)\n")
	} else {
		fmt.Fprintf(w, "  Safety factor:\t%.2f (%s)\n", r.Safety.Value, r.Safety.Classification())
	}
	w.Flush()
	fmt.Println()
}
