package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chazu/flexion/pkg/analysis"
	"github.com/chazu/flexion/pkg/feature"
	"github.com/spf13/cobra"
)

var holesCmd = &cobra.Command{
	Use:   "holes <mesh.stl>",
	Short: "List the hole features detected on a mesh",
	Long: `Detect and list the closed boundary loops of a mesh. The reported
indices are stable for a given mesh and are the indices that 'analyze'
and scenario scripts refer to.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := analysis.LoadMesh(args[0])
		if err != nil {
			return err
		}
		holes := feature.Detect(m)
		if len(holes) == 0 {
			fmt.Println("No holes detected.")
			return nil
		}

		fmt.Printf("\n%d hole(s) detected:\n\n", len(holes))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  INDEX\tCENTROID\tRADIUS\tLOOP VERTICES")
		for _, h := range holes {
			fmt.Fprintf(w, "  %d\t(%.1f, %.1f, %.1f)\t%.2f mm\t%d\n",
				h.Index, h.Centroid.X, h.Centroid.Y, h.Centroid.Z, h.Radius, len(h.Loop))
		}
		w.Flush()
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(holesCmd)
}
