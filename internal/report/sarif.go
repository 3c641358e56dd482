package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/canarysec/canary/internal/types"
)

type sarifFile struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func confToLevel(c types.Confidence) string {
	switch c {
	case types.ConfidenceHigh:
		return "error"
	case types.ConfidenceMedium:
		return "warning"
	default:
		return "note"
	}
}

// SARIFReporter writes findings as SARIF 2.1.0 for code-scanning consumers.
// Messages carry descriptions and masked previews only, never raw secrets.
type SARIFReporter struct{}

func (SARIFReporter) Write(w io.Writer, rep Report) error {
	results := make([]sarifResult, 0, len(rep.Findings))
	for _, f := range rep.Findings {
		results = append(results, sarifResult{
			RuleID: f.RuleID,
			Level:  confToLevel(f.Confidence),
			Message: sarifMessage{
				Text: fmt.Sprintf("%s (%s)", f.Description, f.SecretPreview),
			},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.FilePath},
					Region:           sarifRegion{StartLine: f.LineNumber},
				},
			}},
		})
	}
	doc := sarifFile{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: "canary", Version: rep.Metadata.ScannerVersion}},
			Results: results,
		}},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
