package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canarysec/canary/internal/engine"
	"github.com/canarysec/canary/internal/report"
)

var flagBaselineOut string

func init() {
	cmd := &cobra.Command{
		Use:   "baseline [path]",
		Short: "Record current findings as accepted",
		Long:  "Scans the target and writes fingerprints of all current findings to the baseline file. Subsequent scans suppress baselined findings so CI only fails on new secrets.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBaseline,
	}
	cmd.Flags().StringVar(&flagBaselineOut, "out", report.DefaultBaselinePath, "baseline file to write")
	cmd.Flags().StringVar(&flagPatterns, "patterns", "", "path to a patterns YAML file (default: built-in ruleset)")
	rootCmd.AddCommand(cmd)
}

func runBaseline(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve path %s: %w", target, err)
	}

	reg, _, err := loadRegistry(flagPatterns)
	if err != nil {
		return err
	}
	res, err := engine.Scan(engine.Config{Root: abs, Registry: reg, Threads: flagThreads})
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if err := report.SaveBaseline(flagBaselineOut, res.Findings); err != nil {
		return fmt.Errorf("write baseline: %w", err)
	}
	fmt.Printf("baseline written: %s (%d findings accepted)\n", flagBaselineOut, len(res.Findings))
	return nil
}
