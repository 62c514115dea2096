package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"csweep/internal/parser"
)

// Format selects how findings are rendered
type Format string

const (
	FormatText    Format = "text" // one "Warning: ..." line per finding
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// Reporter formats and outputs hygiene findings
type Reporter struct {
	output io.Writer
	format Format
	color  bool
}

// NewReporter creates a new reporter
func NewReporter(output io.Writer, format Format, color bool) *Reporter {
	if format == "" {
		format = FormatText
	}
	return &Reporter{
		output: output,
		format: format,
		color:  color,
	}
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatConsole, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// ColorEnabled reports whether ANSI colour should be used on f
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Report outputs the findings
func (r *Reporter) Report(findings []parser.Finding) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(findings)
	case FormatYAML:
		return r.reportYAML(findings)
	case FormatConsole:
		return r.reportConsole(findings)
	}
	return r.reportText(findings)
}

func (r *Reporter) reportText(findings []parser.Finding) error {
	for _, f := range findings {
		if _, err := fmt.Fprintln(r.output, r.paint(f.Message())); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) reportConsole(findings []parser.Finding) error {
	if len(findings) == 0 {
		fmt.Fprintln(r.output, "[OK] No allocation hygiene issues detected.")
		return nil
	}

	sorted := append([]parser.Finding(nil), findings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].Line < sorted[j].Line
	})

	currentFile := ""
	for i, f := range sorted {
		if i == 0 || f.File != currentFile {
			currentFile = f.File
			name := "<input>"
			if currentFile != "" {
				name = filepath.Base(currentFile)
			}
			fmt.Fprintf(r.output, "\n%s:\n", name)
		}
		fmt.Fprintf(r.output, "  %s Line %d [%s]: %s\n", r.paint("[WARN] "), f.Line, f.VarName, f.Reason)
	}

	_, err := fmt.Fprintf(r.output, "\nSummary: %d warning(s)\n", len(sorted))
	return err
}

func (r *Reporter) reportJSON(findings []parser.Finding) error {
	encoder := json.NewEncoder(r.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newDocument(findings))
}

func (r *Reporter) reportYAML(findings []parser.Finding) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(newDocument(findings)); err != nil {
		return err
	}
	return encoder.Close()
}

func (r *Reporter) paint(s string) string {
	if !r.color {
		return s
	}
	return colorYellow + s + colorReset
}

type document struct {
	Findings []parser.Finding `json:"findings" yaml:"findings"`
	Summary  Summary          `json:"summary" yaml:"summary"`
}

// Summary holds aggregate information about the analysis
type Summary struct {
	TotalIssues int            `json:"total_issues" yaml:"total_issues"`
	ByKind      map[string]int `json:"by_kind" yaml:"by_kind"`
}

func newDocument(findings []parser.Finding) document {
	doc := document{
		Findings: findings,
		Summary: Summary{
			TotalIssues: len(findings),
			ByKind:      make(map[string]int),
		},
	}
	if doc.Findings == nil {
		doc.Findings = []parser.Finding{}
	}
	for _, f := range findings {
		doc.Summary.ByKind[string(f.Kind)]++
	}
	return doc
}
