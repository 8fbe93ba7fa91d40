// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/daniel/career-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobSpec outputs a human-readable summary of a parsed job posting.
func (p *Printer) PrintJobSpec(spec *types.JobSpec) {
	if spec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", spec.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", spec.JobTitle))
	if spec.CompanyURL != "" {
		sb.WriteString(fmt.Sprintf("Site:     %s\n", spec.CompanyURL))
	}
	sb.WriteString(fmt.Sprintf("\nDescription: %d chars", len(spec.JobDescription)))

	p.printBox("PARSED JOB POSTING", sb.String())
}

// PrintInventory outputs a summary of an extracted fact inventory.
func (p *Printer) PrintInventory(inventory *types.FactInventory) {
	if inventory == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills:       %d\n", len(inventory.Skills)))
	sb.WriteString(fmt.Sprintf("Achievements: %d\n", len(inventory.Achievements)))
	sb.WriteString(fmt.Sprintf("Credentials:  %d\n", len(inventory.Credentials)))
	sb.WriteString(fmt.Sprintf("Companies:    %d\n", len(inventory.Companies)))

	if len(inventory.Skills) > 0 {
		sb.WriteString("\nTop skills:\n")
		count := min(len(inventory.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := inventory.Skills[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", skill.Skill, skill.Confidence))
		}
		if len(inventory.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(inventory.Skills)-maxItemsToShow))
		}
	}

	if len(inventory.Companies) > 0 {
		companies := strings.Join(inventory.Companies, ", ")
		if len(companies) > boxWidth-16 {
			companies = companies[:boxWidth-19] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nCompanies: %s", companies))
	}

	p.printBox("FACT INVENTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs the structure of a generated document.
func (p *Printer) PrintDocument(doc *types.DocumentContent) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Headline: %s\n", doc.Headline))
	if doc.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %d chars\n", len(doc.Summary)))
	}
	sb.WriteString("\nSections:\n")
	for _, section := range doc.Sections {
		bullets := 0
		for _, entry := range section.Entries {
			bullets += len(entry.Bullets)
		}
		sb.WriteString(fmt.Sprintf("  • %s (%d entries, %d bullets)\n", section.Title, len(section.Entries), bullets))
	}
	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills listed: %d", len(doc.Skills)))
	}

	p.printBox("GENERATED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPhase prints a single pipeline phase line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPhase(phase string, message string) {
	fmt.Fprintf(p.out, "[%s] %s\n", strings.ToUpper(phase), message)
}
