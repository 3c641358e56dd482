package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/canarysec/canary/internal/config"
	"github.com/canarysec/canary/internal/engine"
	"github.com/canarysec/canary/internal/gitmeta"
	"github.com/canarysec/canary/internal/patterns"
	"github.com/canarysec/canary/internal/report"
)

var (
	flagPatterns        string
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagBaseline        string
	flagNoBaseline      bool
	flagShowSecrets     bool
	flagRevealLength    int
	flagArchives        bool
	flagContainers      bool
	flagMaxArchiveBytes int64
	flagMaxEntries      int
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a file or directory for secrets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagPatterns, "patterns", "", "path to a patterns YAML file (default: built-in ruleset)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 1 MiB)")
	cmd.Flags().StringVar(&flagBaseline, "baseline", report.DefaultBaselinePath, "baseline file of accepted findings")
	cmd.Flags().BoolVar(&flagNoBaseline, "no-baseline", false, "report findings even if baselined")
	cmd.Flags().BoolVar(&flagShowSecrets, "show-secrets", false, "print raw secret values in console output (use with caution)")
	cmd.Flags().IntVar(&flagRevealLength, "reveal-length", 0, "unmasked preview prefix length (default 4)")
	cmd.Flags().BoolVar(&flagArchives, "archives", false, "scan inside zip/tar/gz archives")
	cmd.Flags().BoolVar(&flagContainers, "containers", false, "scan inside container image tarballs (docker save)")
	cmd.Flags().Int64Var(&flagMaxArchiveBytes, "max-archive-bytes", 0, "max decompressed bytes per artifact (default 32 MiB)")
	cmd.Flags().IntVar(&flagMaxEntries, "max-entries", 0, "max entries per artifact (default 1000)")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve path %s: %w", target, err)
	}

	// Configuration precedence: CLI > repo-local file > global file.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	reg, loadErrs, err := loadRegistry(pickString(flagPatterns, lcfg.Patterns, gcfg.Patterns))
	if err != nil {
		return err
	}
	for _, le := range loadErrs {
		log.Warn().Msg(le.Error())
	}

	cfg := engine.Config{
		Root:            abs,
		Registry:        reg,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		RevealLength:    pickInt(flagRevealLength, lcfg.Reveal, gcfg.Reveal),
		MediumEntropy:   pickFloat(0, lcfg.MediumEntropy, gcfg.MediumEntropy),
		LowEntropy:      pickFloat(0, lcfg.LowEntropy, gcfg.LowEntropy),
		ScanArchives:    pickBool(flagArchives, lcfg.Archives, gcfg.Archives),
		ScanContainers:  pickBool(flagContainers, lcfg.Containers, gcfg.Containers),
		MaxArchiveBytes: pickInt64(flagMaxArchiveBytes, lcfg.MaxArchiveBytes, gcfg.MaxArchiveBytes),
		MaxEntries:      pickInt(flagMaxEntries, lcfg.MaxEntries, gcfg.MaxEntries),
	}

	res, err := engine.Scan(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	findings := res.Findings
	if !flagNoBaseline {
		if base, err := report.LoadBaseline(flagBaseline); err == nil {
			findings = report.FilterNew(findings, base)
		}
	}

	var errStrings []string
	for _, le := range loadErrs {
		errStrings = append(errStrings, le.Error())
	}
	rep := report.Build(version, abs, findings, res.Stats, reg.Len(), errStrings, gitmeta.Resolve(abs))

	noColor := flagNoColor || pickBool(false, lcfg.NoColor, gcfg.NoColor) || !term.IsTerminal(int(os.Stdout.Fd()))
	var r report.Reporter
	switch {
	case flagSARIF:
		r = report.SARIFReporter{}
	case flagJSON:
		r = report.JSONReporter{}
	default:
		if flagShowSecrets {
			log.Warn().Msg("printing raw secret values; do not share this output")
		}
		r = report.ConsoleReporter{NoColor: noColor, Reveal: flagShowSecrets}
	}
	if err := r.Write(os.Stdout, rep); err != nil {
		return err
	}

	if report.ShouldFail(findings, pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)) {
		os.Exit(1)
	}
	return nil
}

// loadRegistry loads the pattern source selected by path, falling back to
// the built-in ruleset. An empty registry is fatal for the CLI: a scan that
// can match nothing would report a misleading all-clear.
func loadRegistry(path string) (*patterns.Registry, []patterns.LoadError, error) {
	if path == "" {
		reg, err := patterns.Default()
		return reg, nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pattern source: %w", err)
	}
	reg, loadErrs, err := patterns.Load(src)
	if err != nil {
		return nil, loadErrs, err
	}
	if reg.Len() == 0 {
		return nil, loadErrs, fmt.Errorf("pattern source %s: %w", path, engine.ErrNoPatterns)
	}
	return reg, loadErrs, nil
}
