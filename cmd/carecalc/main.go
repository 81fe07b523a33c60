package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rgehrsitz/carecalc/internal/calculation"
	"github.com/rgehrsitz/carecalc/internal/config"
	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "carecalc %s (commit %s, built %s)\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "reference dataset %s\n", dataset.Default().Metadata.Version)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "carecalc",
		Short: "CARE pension calculator CLI",
		Long: "Computes the monthly CARE pension of a social security member from a year-by-year\n" +
			"contribution history, with the legacy-formula comparison and transitional compensation.",
		SilenceUsage: true,
	}
	root.AddCommand(calculateCmd(), validateCmd(), compareCmd(), breakEvenCmd(), datasetCmd(), versionCmd())
	return root
}

// loadInput parses the input file and resolves the dataset it runs against.
// datasetPath wins over the file's metadata; relative metadata paths are
// taken from the input file's directory.
func loadInput(inputFile, datasetPath string) (*config.InputFile, *dataset.Dataset, error) {
	input, err := config.NewInputParser().LoadFromFile(inputFile)
	if err != nil {
		return nil, nil, err
	}
	if datasetPath == "" && input.Metadata.Dataset != "" {
		datasetPath = input.Metadata.Dataset
		if !filepath.IsAbs(datasetPath) {
			datasetPath = filepath.Join(filepath.Dir(inputFile), datasetPath)
		}
	}
	ds, err := loadDataset(datasetPath)
	if err != nil {
		return nil, nil, err
	}
	return input, ds, nil
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Default().Extend(calculation.DefaultProjectionLimit), nil
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	return ds.Extend(calculation.DefaultProjectionLimit), nil
}

func newEngine(cmd *cobra.Command, ds *dataset.Dataset) *calculation.CalculationEngine {
	debugMode, _ := cmd.Flags().GetBool("debug")
	engine := calculation.NewCalculationEngineWithDataset(ds)
	engine.SetLogger(newCLILogger(cmd.ErrOrStderr(), debugMode))
	return engine
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
