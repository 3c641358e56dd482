package types

import "time"

// Confidence is how specific a pattern is, and therefore how much
// corroborating evidence (entropy) a match needs before it is reported.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Tiers returns the confidence tiers in matching priority order.
func Tiers() []Confidence {
	return []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
}

// Rank maps a tier to a comparable severity (High=3 ... Low=1, unknown=0).
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

// Valid reports whether c is one of the three recognized labels.
func (c Confidence) Valid() bool {
	return c.Rank() > 0
}

// Finding describes one confirmed secret-pattern match at a file and line.
// SecretValue carries the raw matched text for the duration of the run only
// and is never serialized; SecretPreview is the masked form safe for display.
type Finding struct {
	FilePath      string     `json:"file_path"`
	LineNumber    int        `json:"line_number"`
	RuleID        string     `json:"rule_id"`
	Description   string     `json:"description"`
	Confidence    Confidence `json:"confidence"`
	SecretValue   string     `json:"-"`
	SecretPreview string     `json:"secret_preview"`
}

// Stats accumulates per-run counters. It is owned by the scan orchestration
// and must not be mutated once a scan completes.
type Stats struct {
	FilesScanned int           `json:"files_scanned"`
	FilesSkipped int           `json:"files_skipped"`
	High         int           `json:"high"`
	Medium       int           `json:"medium"`
	Low          int           `json:"low"`
	Duration     time.Duration `json:"-"`
}

// Total returns the number of findings across all tiers.
func (s Stats) Total() int {
	return s.High + s.Medium + s.Low
}

// AddFinding increments the tier counter for f.
func (s *Stats) AddFinding(f Finding) {
	switch f.Confidence {
	case ConfidenceHigh:
		s.High++
	case ConfidenceMedium:
		s.Medium++
	case ConfidenceLow:
		s.Low++
	}
}
