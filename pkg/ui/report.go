package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Renderer turns execution reports and errors into printable output.
type Renderer interface {
	RenderReport(report *types.ExecutionReport) string
	RenderError(err error) string
}

// NewRenderer creates the renderer for the requested format, resolving
// FormatAuto against the given output stream.
func NewRenderer(format Format, output *os.File) Renderer {
	if format == FormatAuto {
		format = DetectFormat(output)
	}
	switch format {
	case FormatTerminal:
		return &TerminalRenderer{}
	case FormatJSON:
		return &JSONRenderer{}
	default:
		return &PlainRenderer{}
	}
}

// TerminalRenderer renders styled output for capable terminals.
type TerminalRenderer struct{}

// RenderReport renders the report with colors and indicators.
func (r *TerminalRenderer) RenderReport(report *types.ExecutionReport) string {
	var b strings.Builder

	title := "Materialization"
	if report.DryRun {
		title = "Materialization (dry run)"
	}
	b.WriteString(pterm.Bold.Sprint(title) + "\n\n")

	for _, outcome := range report.Outcomes {
		b.WriteString(r.renderOutcome(outcome) + "\n")
	}
	if len(report.Outcomes) > 0 {
		b.WriteString("\n")
	}

	if len(report.BrewCommands) > 0 {
		b.WriteString(titleStyle.Render("Homebrew") + "\n")
		for _, cmd := range report.BrewCommands {
			b.WriteString("  " + mutedStyle.Render(cmd) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(r.renderSummary(report))
	return b.String()
}

func (r *TerminalRenderer) renderOutcome(outcome types.LinkOutcome) string {
	var indicator string
	switch outcome.Status {
	case types.LinkStatusLinked:
		indicator = successIndicator
	case types.LinkStatusBackedUp:
		indicator = warningIndicator
	case types.LinkStatusSkippedDryRun:
		indicator = skippedIndicator
	default:
		indicator = errorIndicator
	}

	line := fmt.Sprintf("  %s %s", indicator, pathStyle.Render(outcome.Entry.Destination))
	switch outcome.Status {
	case types.LinkStatusBackedUp:
		line += "\n    " + mutedStyle.Render("backup: "+outcome.BackupPath)
	case types.LinkStatusSkippedDryRun:
		line += " " + mutedStyle.Render("(dry run)")
		if outcome.BackupPath != "" {
			line += "\n    " + mutedStyle.Render("would back up to: "+outcome.BackupPath)
		}
	case types.LinkStatusFailed:
		line += "\n    " + errorStyle.Render(outcome.Err.Error())
	}
	return line
}

func (r *TerminalRenderer) renderSummary(report *types.ExecutionReport) string {
	counts := countOutcomes(report)
	summary := fmt.Sprintf("%d linked, %d backed up, %d failed",
		counts.linked, counts.backedUp, counts.failed)
	if report.Success() {
		return successStyle.Render("done") + " " + mutedStyle.Render(summary)
	}
	return errorStyle.Render("completed with failures") + " " + mutedStyle.Render(summary)
}

// RenderError renders a styled error line.
func (r *TerminalRenderer) RenderError(err error) string {
	return errorStyle.Render("Error:") + " " + err.Error()
}

// PlainRenderer renders unstyled text for pipes and dumb terminals.
type PlainRenderer struct{}

// RenderReport renders the report as plain text.
func (r *PlainRenderer) RenderReport(report *types.ExecutionReport) string {
	var b strings.Builder

	title := "Materialization"
	if report.DryRun {
		title = "Materialization (dry run)"
	}
	b.WriteString(title + "\n\n")

	for _, outcome := range report.Outcomes {
		b.WriteString(fmt.Sprintf("  [%s] %s\n", outcome.Status, outcome.Entry.Destination))
		if outcome.BackupPath != "" {
			b.WriteString("    backup: " + outcome.BackupPath + "\n")
		}
		if outcome.Err != nil {
			b.WriteString("    error: " + outcome.Err.Error() + "\n")
		}
	}
	if len(report.Outcomes) > 0 {
		b.WriteString("\n")
	}

	if len(report.BrewCommands) > 0 {
		b.WriteString("Homebrew\n")
		for _, cmd := range report.BrewCommands {
			b.WriteString("  " + cmd + "\n")
		}
		b.WriteString("\n")
	}

	counts := countOutcomes(report)
	b.WriteString(fmt.Sprintf("%d linked, %d backed up, %d failed\n",
		counts.linked, counts.backedUp, counts.failed))
	return b.String()
}

// RenderError renders a plain error line.
func (r *PlainRenderer) RenderError(err error) string {
	return "Error: " + err.Error()
}

// JSONRenderer renders machine-readable output.
type JSONRenderer struct{}

type jsonOutcome struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	BackupPath  string `json:"backupPath,omitempty"`
	Error       string `json:"error,omitempty"`
}

type jsonReport struct {
	State        string        `json:"state"`
	DryRun       bool          `json:"dryRun"`
	Success      bool          `json:"success"`
	Outcomes     []jsonOutcome `json:"outcomes"`
	BrewCommands []string      `json:"brewCommands,omitempty"`
}

// RenderReport renders the report as indented JSON.
func (r *JSONRenderer) RenderReport(report *types.ExecutionReport) string {
	out := jsonReport{
		State:        string(report.State),
		DryRun:       report.DryRun,
		Success:      report.Success(),
		Outcomes:     make([]jsonOutcome, 0, len(report.Outcomes)),
		BrewCommands: report.BrewCommands,
	}
	for _, outcome := range report.Outcomes {
		entry := jsonOutcome{
			Source:      outcome.Entry.Source,
			Destination: outcome.Entry.Destination,
			Status:      string(outcome.Status),
			BackupPath:  outcome.BackupPath,
		}
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}
		out.Outcomes = append(out.Outcomes, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// RenderError renders the error as a JSON object.
func (r *JSONRenderer) RenderError(err error) string {
	data, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

type outcomeCounts struct {
	linked   int
	backedUp int
	failed   int
}

func countOutcomes(report *types.ExecutionReport) outcomeCounts {
	var counts outcomeCounts
	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case types.LinkStatusLinked:
			counts.linked++
		case types.LinkStatusBackedUp:
			counts.backedUp++
		case types.LinkStatusFailed:
			counts.failed++
		}
	}
	return counts
}
