// Package cmd implements the flexion command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/chazu/flexion/pkg/analysis"
	"github.com/chazu/flexion/pkg/config"
	"github.com/chazu/flexion/pkg/logging"
	"github.com/spf13/cobra"
)

// Exit codes, one per failure kind, so scripts driving the tool can branch
// without parsing stderr.
const (
	exitOK               = 0
	exitGeneral          = 1
	exitInput            = 2
	exitGeometry         = 3
	exitBoundary         = 4
	exitUnderconstrained = 5
	exitMaterial         = 6
	exitNumeric          = 7
)

var (
	cfgPath  string
	logLevel string
	logFile  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flexion",
	Short: "Approximate structural analysis for 3D-printable parts",
	Long: `flexion - approximate stress and displacement estimation

Estimates the stress field, displacement field and safety factor of a
triangulated part under a declared load, using closed-form approximations
instead of a finite element solve. Bolt holes detected on the mesh serve
as anchors for fixed supports and the applied force.

Results export as a JSON bundle for the external viewer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		file := cfg.Logging.LogFile
		if cmd.Flags().Changed("log-file") {
			file = logFile
		}
		return logging.Init(level, file)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// Execute runs the root command and exits with a code describing the
// failure kind.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logging.Sync()
		os.Exit(exitCode(err))
	}
}

// exitCode maps the analysis error taxonomy onto process exit codes.
func exitCode(err error) int {
	var (
		inputErr    *analysis.InputError
		geomErr     *analysis.GeometryError
		bcErr       *analysis.BoundaryConditionError
		underErr    *analysis.UnderconstrainedError
		materialErr *analysis.MaterialNotFoundError
		numericErr  *analysis.NumericError
	)
	switch {
	case errors.As(err, &inputErr):
		return exitInput
	case errors.As(err, &geomErr):
		return exitGeometry
	case errors.As(err, &bcErr):
		return exitBoundary
	case errors.As(err, &underErr):
		return exitUnderconstrained
	case errors.As(err, &materialErr):
		return exitMaterial
	case errors.As(err, &numericErr):
		return exitNumeric
	}
	return exitGeneral
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: ./flexion.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also log to this file, with rotation")
}
