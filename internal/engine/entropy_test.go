package engine

import (
	"strings"
	"testing"

	"github.com/canarysec/canary/internal/patterns"
	"github.com/canarysec/canary/internal/types"
)

func TestShannon_RepeatedCharacterIsZero(t *testing.T) {
	for _, n := range []int{1, 2, 16, 1000} {
		if h := Shannon(strings.Repeat("a", n)); h != 0 {
			t.Fatalf("entropy of %d repeated chars = %f, want 0", n, h)
		}
	}
}

func TestShannon_Empty(t *testing.T) {
	if h := Shannon(""); h != 0 {
		t.Fatalf("entropy of empty string = %f, want 0", h)
	}
}

func TestShannon_HighDiversity(t *testing.T) {
	// 24 distinct characters: entropy is log2(24) ~ 4.58 bits/char.
	s := "aA1bB2cC3dD4eE5fF6gG7hH8"
	if h := Shannon(s); h < 4.5 {
		t.Fatalf("entropy of %q = %f, want >= 4.5", s, h)
	}
}

func TestShannon_StructuredTextIsLow(t *testing.T) {
	if h := Shannon("password_password_password"); h >= 3.5 {
		t.Fatalf("structured text entropy = %f, want < 3.5", h)
	}
}

func tierPattern(t *testing.T, conf types.Confidence) *patterns.Pattern {
	t.Helper()
	src := "patterns:\n  - {rule_id: T, description: t, regex: '.+', confidence: " + string(conf) + "}\n"
	reg, errs, err := patterns.Load([]byte(src))
	if err != nil || len(errs) != 0 {
		t.Fatalf("load tier pattern: %v %v", err, errs)
	}
	return reg.ByTier(conf)[0]
}

func TestAcceptCandidate_HighBypassesEntropy(t *testing.T) {
	c := candidate{pattern: tierPattern(t, types.ConfidenceHigh), text: "aaaaaaaaaaaaaaaa"}
	if !acceptCandidate(c, DefaultMediumEntropy, DefaultLowEntropy) {
		t.Fatal("High-confidence candidate must be accepted regardless of entropy")
	}
}

func TestAcceptCandidate_MediumThreshold(t *testing.T) {
	p := tierPattern(t, types.ConfidenceMedium)
	low := candidate{pattern: p, text: "aaaabbbbaaaabbbb"}
	if acceptCandidate(low, DefaultMediumEntropy, DefaultLowEntropy) {
		t.Fatal("low-entropy Medium candidate accepted")
	}
	// 16 distinct characters: log2(16) = 4.0 >= 3.5
	high := candidate{pattern: p, text: "abcdefghij123456"}
	if !acceptCandidate(high, DefaultMediumEntropy, DefaultLowEntropy) {
		t.Fatal("high-entropy Medium candidate rejected")
	}
}

func TestAcceptCandidate_LowThreshold(t *testing.T) {
	p := tierPattern(t, types.ConfidenceLow)
	// log2(16) = 4.0 < 4.5: not random enough for the Low tier.
	mid := candidate{pattern: p, text: "abcdefghij123456"}
	if acceptCandidate(mid, DefaultMediumEntropy, DefaultLowEntropy) {
		t.Fatal("mid-entropy Low candidate accepted")
	}
	high := candidate{pattern: p, text: "aA1bB2cC3dD4eE5fF6gG7hH8"}
	if !acceptCandidate(high, DefaultMediumEntropy, DefaultLowEntropy) {
		t.Fatal("high-entropy Low candidate rejected")
	}
}
