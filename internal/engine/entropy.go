package engine

import (
	"math"

	"github.com/canarysec/canary/internal/types"
)

// Default entropy thresholds in bits per character. High-tier matches are
// never entropy-filtered; the pattern itself is the evidence.
const (
	DefaultMediumEntropy = 3.5
	DefaultLowEntropy    = 4.5
)

// Shannon computes the Shannon entropy of s over its rune frequency
// distribution. Empty and single-rune strings score 0.
func Shannon(s string) float64 {
	if s == "" {
		return 0
	}
	counts := map[rune]int{}
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}
	h := 0.0
	n := float64(total)
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// acceptCandidate applies the tier-specific entropy gate to a raw match.
func acceptCandidate(c candidate, mediumMin, lowMin float64) bool {
	switch c.pattern.Confidence {
	case types.ConfidenceHigh:
		return true
	case types.ConfidenceMedium:
		return Shannon(c.text) >= mediumMin
	default:
		return Shannon(c.text) >= lowMin
	}
}
