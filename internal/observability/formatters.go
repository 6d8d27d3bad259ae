// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/survey-maker/internal/assembly"
	"github.com/jonathan/survey-maker/internal/counting"
	"github.com/jonathan/survey-maker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCountSummary outputs the question counts gathered during a build,
// globally and per module.
func (p *Printer) PrintCountSummary(counts *counting.Accumulator, categories types.CategorySet) {
	if counts == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Modules:    %d\n", counts.Value(counting.KeyModules)))
	sb.WriteString(fmt.Sprintf("Questions:  %d\n", counts.Value(counting.KeyQuestions)))
	sb.WriteString(fmt.Sprintf("Incl. choices: %d\n", counts.Value(counting.KeyQuestionsTotal)))

	categoryKeys := counts.CategoryKeys()
	if len(categoryKeys) > 0 {
		sb.WriteString("\nPer category:\n")
		for _, key := range categoryKeys {
			sb.WriteString(fmt.Sprintf("  %-16s %d\n", displayLabel(key, categories), counts.SummaryValue(key)))
		}
	}

	p.printBox("QUESTION COUNTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintModuleCounts outputs the per-module count breakdown with one line per module.
func (p *Printer) PrintModuleCounts(counts *counting.Accumulator, survey types.SurveyDefinition) {
	if counts == nil {
		return
	}

	moduleKeys := counts.ModuleKeys()
	if len(moduleKeys) == 0 {
		return
	}

	var sb strings.Builder
	for _, key := range moduleKeys {
		title := key
		if module, ok := survey.Lookup(key); ok {
			title = module.Title
		}
		sb.WriteString(fmt.Sprintf("%-28s %3d questions\n", truncate(title, 28), counts.ModuleValue(key, counting.KeyQuestions)))
	}

	p.printBox("PER MODULE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBuildResult outputs where a finished document was written and any warnings.
func (p *Printer) PrintBuildResult(path string, result *assembly.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Output:   %s\n", path))
	sb.WriteString(fmt.Sprintf("Build ID: %s\n", result.BuildID))
	if result.Warnings > 0 {
		sb.WriteString(fmt.Sprintf("Warnings: %d\n", result.Warnings))
	}

	p.printBox("BUILD FINISHED", strings.TrimSuffix(sb.String(), "\n"))
}

func displayLabel(key string, categories types.CategorySet) string {
	if category, ok := categories.Get(key); ok && category.Label != "" {
		return category.Label
	}
	return key
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
