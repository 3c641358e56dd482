// Package engine implements the detection pipeline: traversal, tiered
// pattern matching, entropy validation, and finding aggregation.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/canarysec/canary/internal/artifacts"
	"github.com/canarysec/canary/internal/patterns"
	"github.com/canarysec/canary/internal/redact"
	"github.com/canarysec/canary/internal/types"
)

// ErrNoPatterns is returned when a scan is started against a registry with
// zero usable patterns.
var ErrNoPatterns = errors.New("pattern registry contains no usable patterns")

// Config controls one scan invocation. Zero values select defaults.
type Config struct {
	Root         string
	Registry     *patterns.Registry
	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64
	Threads      int

	// Detection policy knobs; zero selects the documented defaults.
	RevealLength  int
	MediumEntropy float64
	LowEntropy    float64

	// Deep artifact scanning (optional).
	ScanArchives    bool
	ScanContainers  bool
	MaxArchiveBytes int64
	MaxEntries      int

	Progress func()
}

func (cfg *Config) applyDefaults() {
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	if cfg.Threads > 32 {
		cfg.Threads = 32
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 1 << 20
	}
	if cfg.RevealLength == 0 {
		cfg.RevealLength = redact.DefaultReveal
	}
	if cfg.MediumEntropy == 0 {
		cfg.MediumEntropy = DefaultMediumEntropy
	}
	if cfg.LowEntropy == 0 {
		cfg.LowEntropy = DefaultLowEntropy
	}
	if cfg.MaxArchiveBytes == 0 {
		cfg.MaxArchiveBytes = 32 << 20
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = 1000
	}
}

// Result carries the outcome of one scan: findings sorted by (path, line)
// and the run's statistics.
type Result struct {
	Findings []types.Finding
	Stats    types.Stats
}

type fileResult struct {
	findings []types.Finding
	skipped  bool
}

// Scan walks cfg.Root and runs every discovered file through the match →
// entropy → aggregation pipeline using a bounded worker pool. Fatal
// conditions (unreadable root, empty registry) abort before traversal;
// per-file failures are counted as skips and never abort the scan.
func Scan(cfg Config) (Result, error) {
	cfg.applyDefaults()
	var res Result

	if cfg.Registry == nil || cfg.Registry.Len() == 0 {
		return res, ErrNoPatterns
	}
	if _, err := os.Stat(cfg.Root); err != nil {
		return res, fmt.Errorf("root path %s: %w", cfg.Root, err)
	}

	started := time.Now()

	type job struct{ path, rel string }
	jobs := make(chan job)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- processFile(cfg, j.path, j.rel)
			}
		}()
	}

	var walkErr error
	go func() {
		walkErr = walkTargets(cfg,
			func(path, rel string) { jobs <- job{path, rel} },
			func(rel string) {
				log.Debug().Str("path", rel).Msg("excluded from scan")
				results <- fileResult{skipped: true}
			})
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// Single accumulating owner for findings and statistics.
	for r := range results {
		if r.skipped {
			res.Stats.FilesSkipped++
		} else {
			res.Stats.FilesScanned++
			for _, f := range r.findings {
				res.Stats.AddFinding(f)
			}
			res.Findings = append(res.Findings, r.findings...)
		}
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}
	if walkErr != nil {
		return Result{}, walkErr
	}

	if cfg.ScanArchives || cfg.ScanContainers {
		scanArtifacts(cfg, &res)
	}

	// Workers complete out of order; restore a reproducible ordering.
	sortFindings(res.Findings)
	res.Stats.Duration = time.Since(started)
	return res, nil
}

func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].FilePath != fs[j].FilePath {
			return fs[i].FilePath < fs[j].FilePath
		}
		if fs[i].LineNumber != fs[j].LineNumber {
			return fs[i].LineNumber < fs[j].LineNumber
		}
		if fs[i].Confidence.Rank() != fs[j].Confidence.Rank() {
			return fs[i].Confidence.Rank() > fs[j].Confidence.Rank()
		}
		return fs[i].RuleID < fs[j].RuleID
	})
}

// processFile runs one file through the pipeline. Unreadable, binary, and
// over-long-line files are reported as skips with no partial findings.
func processFile(cfg Config, path, rel string) fileResult {
	f, err := os.Open(path)
	if err != nil {
		log.Debug().Str("path", rel).Err(err).Msg("unreadable file skipped")
		return fileResult{skipped: true}
	}
	defer f.Close()
	return processReader(cfg, rel, f)
}

// processReader streams r through the match → entropy → mask pipeline under
// the virtual path name. Per-file line handling is single-threaded.
func processReader(cfg Config, name string, r io.Reader) fileResult {
	var found []types.Finding
	err := forEachLine(r, func(n int, line string) {
		for _, c := range matchLine(cfg.Registry, line) {
			if !acceptCandidate(c, cfg.MediumEntropy, cfg.LowEntropy) {
				continue
			}
			found = append(found, types.Finding{
				FilePath:      name,
				LineNumber:    n,
				RuleID:        c.pattern.RuleID,
				Description:   c.pattern.Description,
				Confidence:    c.pattern.Confidence,
				SecretValue:   c.text,
				SecretPreview: redact.Mask(c.text, cfg.RevealLength),
			})
		}
	})
	if err != nil {
		if err == errBinary {
			log.Debug().Str("path", name).Msg("binary file skipped")
		} else {
			log.Debug().Str("path", name).Err(err).Msg("file skipped mid-read")
		}
		return fileResult{skipped: true}
	}
	return fileResult{findings: found}
}

// scanArtifacts streams archive and image-tarball entries through the same
// pipeline, sequentially for deterministic ordering. Artifact errors are
// logged and never abort the scan.
func scanArtifacts(cfg Config, res *Result) {
	lim := artifacts.Limits{
		MaxArchiveBytes: cfg.MaxArchiveBytes,
		MaxEntries:      cfg.MaxEntries,
	}
	handle := func(virtual string, r io.Reader) {
		fr := processReader(cfg, virtual, r)
		if fr.skipped {
			res.Stats.FilesSkipped++
			return
		}
		res.Stats.FilesScanned++
		for _, f := range fr.findings {
			res.Stats.AddFinding(f)
		}
		res.Findings = append(res.Findings, fr.findings...)
	}
	if cfg.ScanArchives {
		if err := artifacts.ScanArchives(cfg.Root, lim, handle); err != nil {
			log.Warn().Err(err).Msg("archive scan incomplete")
		}
	}
	if cfg.ScanContainers {
		if err := artifacts.ScanImageTarballs(cfg.Root, lim, handle); err != nil {
			log.Warn().Err(err).Msg("container scan incomplete")
		}
	}
}
