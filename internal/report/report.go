// Package report renders scan results for external consumers. The engine
// only produces the finding/statistics data model; everything here is a
// presentation concern layered on top of it.
package report

import (
	"io"
	"time"

	"github.com/canarysec/canary/internal/gitmeta"
	"github.com/canarysec/canary/internal/types"
)

// Metadata describes one scan run for the report envelope.
type Metadata struct {
	ScannerVersion  string    `json:"scanner_version"`
	Timestamp       time.Time `json:"scan_timestamp"`
	TargetPath      string    `json:"target_path"`
	DurationSeconds float64   `json:"scan_duration_seconds"`
	PatternsLoaded  int       `json:"patterns_loaded"`
	FilesScanned    int       `json:"files_scanned"`
	FilesSkipped    int       `json:"files_skipped"`
	TotalFindings   int       `json:"total_findings"`
}

// Summary is the per-tier breakdown of findings.
type Summary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Report is the full envelope handed to reporters.
type Report struct {
	Metadata   Metadata        `json:"scan_metadata"`
	Repository *gitmeta.Context `json:"repository_context,omitempty"`
	Summary    Summary         `json:"severity_breakdown"`
	Findings   []types.Finding `json:"findings"`
	LoadErrors []string        `json:"pattern_load_errors,omitempty"`
}

// Build assembles the envelope from engine output. Findings must already be
// in their final sorted order. The severity breakdown is tallied from the
// findings being reported, not from raw engine counters, so suppression
// applied between scan and report (baseline filtering) cannot leave the
// breakdown disagreeing with the findings array.
func Build(version, target string, findings []types.Finding, stats types.Stats, patternsLoaded int, loadErrs []string, repo gitmeta.Context) Report {
	var sum Summary
	for _, f := range findings {
		switch f.Confidence {
		case types.ConfidenceHigh:
			sum.High++
		case types.ConfidenceMedium:
			sum.Medium++
		case types.ConfidenceLow:
			sum.Low++
		}
	}
	rep := Report{
		Metadata: Metadata{
			ScannerVersion:  version,
			Timestamp:       time.Now().UTC(),
			TargetPath:      target,
			DurationSeconds: stats.Duration.Seconds(),
			PatternsLoaded:  patternsLoaded,
			FilesScanned:    stats.FilesScanned,
			FilesSkipped:    stats.FilesSkipped,
			TotalFindings:   len(findings),
		},
		Summary:    sum,
		Findings:   findings,
		LoadErrors: loadErrs,
	}
	if rep.Findings == nil {
		rep.Findings = []types.Finding{}
	}
	if !repo.Empty() {
		r := repo
		rep.Repository = &r
	}
	return rep
}

// Reporter writes a report in one output format.
type Reporter interface {
	Write(w io.Writer, rep Report) error
}

// ShouldFail maps a minimum-confidence threshold (high|medium|low|any) to a
// gating decision: true when any finding's tier is at or above it.
func ShouldFail(findings []types.Finding, failOn string) bool {
	var th int
	switch failOn {
	case "high":
		th = types.ConfidenceHigh.Rank()
	case "medium":
		th = types.ConfidenceMedium.Rank()
	case "low", "any":
		th = types.ConfidenceLow.Rank()
	default:
		th = types.ConfidenceMedium.Rank()
	}
	for _, f := range findings {
		if f.Confidence.Rank() >= th {
			return true
		}
	}
	return false
}
