package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/canarysec/canary/internal/types"
)

var (
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// ConsoleReporter renders a human-readable table plus a summary footer.
type ConsoleReporter struct {
	NoColor bool
	// Reveal prints raw secret values instead of previews. Only the console
	// reporter ever honors this; machine formats always get previews.
	Reveal bool
}

func (c ConsoleReporter) Write(w io.Writer, rep Report) error {
	if len(rep.Findings) == 0 {
		fmt.Fprintln(w, "No secrets found.")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"CONFIDENCE", "RULE", "LOCATION", "DESCRIPTION", "SECRET"})
		for _, f := range rep.Findings {
			secret := f.SecretPreview
			if c.Reveal {
				secret = f.SecretValue
			}
			table.Append([]string{
				c.confidence(f.Confidence),
				f.RuleID,
				fmt.Sprintf("%s:%d", f.FilePath, f.LineNumber),
				f.Description,
				secret,
			})
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nFindings: %d (high: %d, medium: %d, low: %d)\n",
		rep.Metadata.TotalFindings, rep.Summary.High, rep.Summary.Medium, rep.Summary.Low)
	fmt.Fprintf(w, "Files scanned: %d, skipped: %d\n", rep.Metadata.FilesScanned, rep.Metadata.FilesSkipped)
	if rep.Metadata.DurationSeconds > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", rep.Metadata.DurationSeconds)
	}
	for _, e := range rep.LoadErrors {
		fmt.Fprintf(w, "pattern load warning: %s\n", e)
	}
	return nil
}

func (c ConsoleReporter) confidence(conf types.Confidence) string {
	s := string(conf)
	if c.NoColor {
		return s
	}
	switch conf {
	case types.ConfidenceHigh:
		return highStyle.Render(s)
	case types.ConfidenceMedium:
		return mediumStyle.Render(s)
	default:
		return lowStyle.Render(s)
	}
}

// JSONReporter emits the full envelope as indented JSON.
type JSONReporter struct{}

func (JSONReporter) Write(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
