package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/indaco/rustws/internal/printer"
)

// ProjectSummary describes one successfully processed project.
type ProjectSummary struct {
	Path           string `json:"path"`
	Classification string `json:"classification"`
	Package        string `json:"package"`
	Targets        int    `json:"targets"`
}

// RunnableSummary describes one generated launch configuration.
type RunnableSummary struct {
	Name    string `json:"name"`
	Package string `json:"package"`
}

// FailureSummary describes a skipped project.
type FailureSummary struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary is the consolidated result of one run.
type Summary struct {
	Root           string            `json:"root"`
	Projects       []ProjectSummary  `json:"projects"`
	Runnables      []RunnableSummary `json:"runnables"`
	Failures       []FailureSummary  `json:"failures,omitempty"`
	OutputFile     string            `json:"output_file,omitempty"`
	BackupPath     string            `json:"backup_path,omitempty"`
	PriorMalformed bool              `json:"prior_malformed,omitempty"`
}

// Formatter handles display of run summaries.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatSummary formats the run summary for display.
func (f *Formatter) FormatSummary(summary *Summary) string {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(summary)
	case FormatTable:
		return f.formatTable(summary)
	default:
		return f.formatText(summary)
	}
}

// PrintSummary formats and prints the run summary.
func (f *Formatter) PrintSummary(summary *Summary) {
	fmt.Println(f.FormatSummary(summary))
}

// formatJSON renders the summary as indented JSON.
func (f *Formatter) formatJSON(summary *Summary) string {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// formatTable renders projects and runnables as aligned columns.
func (f *Formatter) formatTable(summary *Summary) string {
	var sb strings.Builder

	if len(summary.Projects) > 0 {
		fmt.Fprintf(&sb, "%-30s %-18s %-20s %s\n", "PATH", "KIND", "PACKAGE", "TARGETS")
		for _, p := range summary.Projects {
			fmt.Fprintf(&sb, "%-30s %-18s %-20s %d\n", p.Path, p.Classification, p.Package, p.Targets)
		}
	}

	if len(summary.Runnables) > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%-50s %s\n", "CONFIGURATION", "PACKAGE")
		for _, r := range summary.Runnables {
			fmt.Fprintf(&sb, "%-50s %s\n", r.Name, r.Package)
		}
	}

	if len(summary.Failures) > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%-30s %s\n", "SKIPPED", "REASON")
		for _, fail := range summary.Failures {
			fmt.Fprintf(&sb, "%-30s %s\n", fail.Path, fail.Reason)
		}
	}

	if summary.OutputFile != "" {
		fmt.Fprintf(&sb, "\nOutput: %s\n", summary.OutputFile)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatText renders a human-readable block in the style of the console
// narration, for callers that collect output instead of streaming it.
func (f *Formatter) formatText(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString(printer.Info("Workspace Generation Results"))
	sb.WriteString("\n")
	sb.WriteString(printer.Faint(strings.Repeat("-", 70)))
	sb.WriteString("\n")

	if len(summary.Projects) > 0 {
		sb.WriteString(printer.Info("Projects:"))
		sb.WriteString("\n")
		for _, p := range summary.Projects {
			fmt.Fprintf(&sb, "  %s %s %s\n",
				printer.Success("✓"), p.Path,
				printer.Faint(fmt.Sprintf("(%s, %d targets)", p.Package, p.Targets)))
		}
	}

	if len(summary.Runnables) > 0 {
		sb.WriteString(printer.Info("Launch configurations:"))
		sb.WriteString("\n")
		for _, r := range summary.Runnables {
			fmt.Fprintf(&sb, "  - %s\n", r.Name)
		}
	}

	if len(summary.Failures) > 0 {
		sb.WriteString(printer.Warning("Skipped:"))
		sb.WriteString("\n")
		for _, fail := range summary.Failures {
			fmt.Fprintf(&sb, "  %s %s: %s\n", printer.Warning("⚠"), fail.Path, fail.Reason)
		}
	}

	if summary.OutputFile != "" {
		fmt.Fprintf(&sb, "Output: %s\n", summary.OutputFile)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// printQuietSummary prints a minimal one-line summary of the run.
func printQuietSummary(summary *Summary) {
	fmt.Printf("Projects: %d | Runnables: %d", len(summary.Projects), len(summary.Runnables))
	if len(summary.Failures) > 0 {
		fmt.Printf(" | Skipped: %d", len(summary.Failures))
	}
	if summary.OutputFile != "" {
		fmt.Printf(" | Output: %s", summary.OutputFile)
	}
	fmt.Println()
}
