// Package observability provides human-readable terminal summaries of footprints and recommendations.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/terrago/carbon-advisor/internal/footprint"
	"github.com/terrago/carbon-advisor/internal/types"
)

const (
	// boxWidth is the outer width of every box
	boxWidth = 76
	// barWidth is the length of a full share bar
	barWidth = 20
)

// Printer handles formatted output for reports and verbose mode
type Printer struct {
	out    io.Writer
	styled bool
	num    *message.Printer

	title  lipgloss.Style
	muted  lipgloss.Style
	border lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer.
// Output is styled with colors and rounded borders only when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	return newPrinter(out, isTerminal(out))
}

func newPrinter(out io.Writer, styled bool) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:    out,
		styled: styled,
		num:    message.NewPrinter(language.English),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("35")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
		border: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("29")).
			Padding(0, 1).
			Width(boxWidth - 2),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printBox prints a box with a title and content, wrapping long lines
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	lines := wrapLines(content, inner)

	if p.styled {
		body := p.title.Render(title) + "\n" + strings.Join(lines, "\n")
		fmt.Fprintln(p.out, p.border.Render(body))
		return
	}

	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrapLines word-wraps each line of content to width display cells
func wrapLines(content string, width int) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if lipgloss.Width(line) <= width {
			out = append(out, line)
			continue
		}
		// continuation lines hang two cells past the original indent
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		wrapped := lipgloss.NewStyle().Width(width - len(indent) - 2).Render(strings.TrimLeft(line, " "))
		for i, part := range strings.Split(wrapped, "\n") {
			part = strings.TrimRight(part, " ")
			if i > 0 {
				part = strings.Repeat(" ", len(indent)+2) + part
			} else {
				part = indent + part
			}
			out = append(out, part)
		}
	}
	return out
}

// pad right-pads s to width display cells
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func shareBar(part, total float64) string {
	if total <= 0 || part <= 0 {
		return ""
	}
	n := int(part / total * barWidth)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", min(n, barWidth))
}

// PrintFootprint outputs the annual footprint with its breakdown and equivalencies.
func (p *Printer) PrintFootprint(fp *types.Footprint, equivalencies []types.Equivalency) {
	if fp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:        %s kg CO2e per year\n\n", footprint.FormatKg(fp.TotalAnnual)))

	parts := []struct {
		name  string
		value float64
	}{
		{"Transport", fp.TransportAnnual},
		{"Diet", fp.DietAnnual},
		{"Electricity", fp.ElectricityAnnual},
	}
	for _, part := range parts {
		share := 0.0
		if fp.TotalAnnual > 0 {
			share = part.value / fp.TotalAnnual * 100
		}
		sb.WriteString(fmt.Sprintf("%-12s %10s kg %6s  %s\n",
			part.name,
			footprint.FormatKg(part.value),
			p.num.Sprintf("%.1f%%", share),
			shareBar(part.value, fp.TotalAnnual),
		))
	}

	if len(equivalencies) > 0 {
		sb.WriteString("\nThat is about:\n")
		for _, eq := range equivalencies {
			sb.WriteString(fmt.Sprintf("  • %s %s\n", eq.FormattedValue, eq.Label))
		}
	}

	p.printBox("ANNUAL FOOTPRINT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintActions outputs the recommended actions in presentation order.
func (p *Printer) PrintActions(selection *types.ActionSelection) {
	if selection == nil || len(selection.Actions) == 0 {
		return
	}

	var sb strings.Builder
	for i, action := range selection.Actions {
		category := "[" + string(action.Category) + "]"
		if p.styled {
			category = p.muted.Render(category)
		}
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, action.Text, category))
	}

	p.printBox(fmt.Sprintf("%d RECOMMENDED ACTIONS", len(selection.Actions)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the household inputs.
func (p *Printer) PrintProfile(profile *types.HouseholdProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Postcode:     %s\n", profile.Postcode))
	sb.WriteString(fmt.Sprintf("Adults:       %d\n", profile.Adults))
	sb.WriteString(fmt.Sprintf("Cars:         %d (%s)\n", profile.Cars, profile.FuelType))
	sb.WriteString(fmt.Sprintf("Trips/week:   %d\n", profile.TripsPerWeek))
	sb.WriteString(fmt.Sprintf("Diet:         %s\n", strings.ReplaceAll(string(profile.Diet), "_", " ")))
	solar := "no"
	if profile.HasSolar() {
		solar = "yes"
	}
	sb.WriteString(fmt.Sprintf("Solar:        %s", solar))

	p.printBox("HOUSEHOLD", sb.String())
}

// PrintAssessment outputs the household, its footprint and its actions.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAssessment(a *types.Assessment) {
	if a == nil {
		return
	}

	p.PrintProfile(&a.Profile)
	p.PrintFootprint(&a.Footprint, a.Equivalencies)
	p.PrintActions(&a.Actions)

	footer := fmt.Sprintf("assessment %s · text by %s · %s", a.ID, a.Renderer, a.CreatedAt.Format("2006-01-02 15:04 MST"))
	if p.styled {
		footer = p.muted.Render(footer)
	}
	fmt.Fprintln(p.out, footer)
}
