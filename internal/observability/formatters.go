// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/report-engine/internal/scoring"
	"github.com/jonathan/report-engine/internal/types"
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

// PrintCompositeScores outputs the eight composite scores in their declared
// group order.
func (p *Printer) PrintCompositeScores(scores map[string]float64) {
	if len(scores) == 0 {
		return
	}

	var sb strings.Builder
	for _, group := range scoring.CompositeGroups {
		score, ok := scores[group.Name]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-24s %.2f  %s\n", group.Name, score, scoreBar(score)))
	}
	p.printBox("Composite Scores", strings.TrimRight(sb.String(), "\n"))
}

// scoreBar renders a coarse text gauge for a 1-5 score.
func scoreBar(score float64) string {
	filled := int(score*4 + 0.5)
	if filled < 0 {
		filled = 0
	} else if filled > 20 {
		filled = 20
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// PrintRadarGroups outputs the two radar display groups with their per-trait
// values.
func (p *Printer) PrintRadarGroups(groups ...scoring.RadarGroup) {
	for _, group := range groups {
		var sb strings.Builder
		for _, e := range group.Entries {
			sb.WriteString(fmt.Sprintf("%-28s %d\n", e.Trait, e.Value))
		}
		p.printBox(fmt.Sprintf("%s (%d traits)", group.Name, len(group.Entries)), strings.TrimRight(sb.String(), "\n"))
	}
}

// PrintNarrative outputs a summary of the expanded narrative record.
func (p *Printer) PrintNarrative(record *types.NarrativeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Profile: %s\n\n", truncate(record.PersonalProfile, 120)))

	writeEntries := func(heading string, entries []types.NarrativeEntry) {
		sb.WriteString(heading + ":\n")
		for _, e := range entries {
			sb.WriteString(fmt.Sprintf("  • %s\n", e.Title))
		}
		sb.WriteString("\n")
	}
	writeEntries("Strengths", record.Strengths)
	writeEntries("Development Areas", record.DevelopmentAreas)
	writeEntries("Personal Development", record.PersonalDevelopment)
	writeEntries("Organisational Support", record.OrgSupport)

	sb.WriteString(fmt.Sprintf("Future: %s", truncate(record.FutureConsiderations, 120)))
	p.printBox("Narrative", sb.String())
}

// PrintSummaryRatings outputs the four quadrant ratings with scale labels.
func (p *Printer) PrintSummaryRatings(ratings types.SummaryRatings) {
	var sb strings.Builder
	rows := []struct {
		name  string
		value int
	}{
		{"Fit for Role", ratings.FitForRole},
		{"Capabilities", ratings.Capabilities},
		{"Potential", ratings.Potential},
		{"Future Considerations", ratings.FutureConsiderations},
	}
	for _, row := range rows {
		label := ""
		if row.value >= 1 && row.value <= len(scoring.ScaleLabels) {
			label = scoring.ScaleLabels[row.value-1]
		}
		sb.WriteString(fmt.Sprintf("%-24s %d  %s\n", row.name, row.value, label))
	}
	p.printBox("Summary Ratings", strings.TrimRight(sb.String(), "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
