package core_test

import (
	"fmt"
	"os"

	"github.com/canarysec/canary/pkg/core"
)

// ExampleScanSource demonstrates scanning a directory with the built-in
// ruleset.
func ExampleScanSource() {
	// 1. Configure the scan
	cfg := core.Config{
		Threads:  4,           // Number of concurrent workers
		MaxBytes: 1024 * 1024, // Skip files larger than 1MB
	}

	// 2. Run the scan; nil pattern source selects the built-in rules
	res, loadErrs, err := core.ScanSource(".", nil, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}
	for _, le := range loadErrs {
		fmt.Fprintf(os.Stderr, "pattern skipped: %v\n", le)
	}

	// 3. Process findings
	if len(res.Findings) == 0 {
		fmt.Println("No secrets found.")
		return
	}
	for _, f := range res.Findings {
		fmt.Printf("%s:%d %s (%s) %s\n",
			f.FilePath, f.LineNumber, f.RuleID, f.Confidence, f.SecretPreview)
	}
	fmt.Printf("high=%d medium=%d low=%d\n", res.Stats.High, res.Stats.Medium, res.Stats.Low)
}

// ExampleValidatePatterns pre-flights a custom ruleset before using it.
func ExampleValidatePatterns() {
	src, err := os.ReadFile("patterns.yml")
	if err != nil {
		panic(err)
	}

	v := core.ValidatePatterns(src)
	if !v.Valid {
		for _, e := range v.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return
	}
	fmt.Printf("%d patterns OK\n", v.PatternCount)
}
