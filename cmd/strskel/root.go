// Package strskel implements the Cobra CLI driver: it loads a polygon,
// runs the kinetic triangulation simulator over it, and prints the
// resulting straight-skeleton segments as WKT.
package strskel

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	inputPath  string
	configPath string
	logLevel   string
	internal   bool
	noShrink   bool
)

var rootCmd = &cobra.Command{
	Use:   "strskel",
	Short: "Straight-skeleton / kinetic triangulation simulator",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the straight skeleton of a polygon and print it as WKT",
	RunE:  runRun,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	level, err := logrus.ParseLevel("info")
	if err == nil {
		logrus.SetLevel(level)
	}

	runCmd.Flags().StringVar(&inputPath, "input", "", "path to a polygon JSON file (required)")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML run configuration (optional)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&internal, "internal-only", false, "filter output to internal skeleton edges only")
	runCmd.Flags().BoolVar(&noShrink, "no-shrink", false, "disable the shrink-to-unit-box pre-normalizer")
	_ = runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}
