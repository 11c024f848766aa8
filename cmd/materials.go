package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chazu/flexion/pkg/material"
	"github.com/spf13/cobra"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the built-in material library",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  KEY\tNAME\tYIELD (MPa)\tE (MPa)\tPOISSON\tDENSITY (kg/m³)")
		for _, key := range material.Keys() {
			m, _ := material.Lookup(key)
			fmt.Fprintf(w, "  %s\t%s\t%.0f\t%.0f\t%.2f\t%.0f\n",
				key, m.Name, m.YieldStrength, m.ElasticModulus, m.PoissonRatio, m.Density)
		}
		w.Flush()
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}
