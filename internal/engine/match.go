package engine

import (
	"github.com/canarysec/canary/internal/patterns"
	"github.com/canarysec/canary/internal/types"
)

// candidate is one raw pattern match on a line, before entropy validation.
type candidate struct {
	pattern *patterns.Pattern
	text    string
}

// matchLine applies every pattern to line, tier by tier in priority order
// (High, Medium, Low). All tiers run and every match position is reported;
// the ordering only guarantees that high-signal candidates come first.
func matchLine(reg *patterns.Registry, line string) []candidate {
	var out []candidate
	for _, tier := range types.Tiers() {
		for _, p := range reg.ByTier(tier) {
			for _, m := range p.FindAll(line) {
				out = append(out, candidate{pattern: p, text: m})
			}
		}
	}
	return out
}
