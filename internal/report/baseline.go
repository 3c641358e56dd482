package report

import (
	"encoding/json"
	"os"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/canarysec/canary/internal/types"
)

// DefaultBaselinePath is where scan looks for accepted findings.
const DefaultBaselinePath = "canary.baseline.json"

// Baseline records fingerprints of accepted findings so later scans can
// suppress them. Fingerprints are hashes; the file never holds secrets.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

// Fingerprint hashes the identity of a finding: location-independent of the
// line number so moved code does not resurface accepted findings.
func Fingerprint(f types.Finding) string {
	sum := xxhash.Sum64String(f.FilePath + "|" + f.RuleID + "|" + f.SecretValue)
	const hex = "0123456789abcdef"
	var buf [16]byte
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// LoadBaseline reads a baseline file; a missing file yields an empty baseline
// and the error, letting callers decide whether absence matters.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, err
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

// SaveBaseline writes the fingerprints of findings to path.
func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[Fingerprint(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// FilterNew drops findings already recorded in the baseline.
func FilterNew(findings []types.Finding, base Baseline) []types.Finding {
	if len(base.Items) == 0 {
		return findings
	}
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[Fingerprint(f)] {
			out = append(out, f)
		}
	}
	return out
}
