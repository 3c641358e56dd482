// Package core is the stable embedding API for the Canary detection engine.
// It exposes the scan entry point and pattern loading without reaching into
// internal packages:
//
//	res, loadErrs, err := core.ScanSource(".", nil, core.Config{})
//	for _, f := range res.Findings {
//		fmt.Println(f.FilePath, f.LineNumber, f.RuleID, f.SecretPreview)
//	}
//
// The engine itself never renders output or decides pass/fail; see
// internal/report for the reporters the CLI composes on top of this API.
package core
