package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/etchant/internal/model"
)

// WriteMarkdown renders the report as a Markdown document
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.Report) error {
	bw := bufio.NewWriter(w)
	p := func(format string, a ...any) { _, _ = fmt.Fprintf(bw, format, a...) }

	m := report.Material
	p("# Etchant recommendations: %s\n\n", m.Name)
	p("- **Category:** %s", Title(report.CategoryKey))
	if m.Category != "" && !strings.EqualFold(m.Category, Title(report.CategoryKey)) {
		p(" (%s)", m.Category)
	}
	p("\n")
	if m.Composition != "" {
		p("- **Composition:** %s\n", m.Composition)
	}
	if m.HardnessCategory != "" {
		p("- **Hardness:** %s", m.HardnessCategory.Label())
		if m.Hardness != "" {
			p(" (%s)", m.Hardness)
		}
		p("\n")
	}
	if m.Microstructure != "" {
		p("- **Microstructure:** %s\n", m.Microstructure)
	}
	if m.HeatTreatment != "" {
		p("- **Heat treatment:** %s\n", m.HeatTreatment)
	}
	if report.Filters.Purpose != "" {
		p("- **Purpose:** %s\n", report.Filters.Purpose.Label())
	}
	if report.Filters.ApplicationContext != "" {
		p("- **Application:** %s\n", report.Filters.ApplicationContext.Label())
	}
	p("\n")

	if report.IsEmpty() {
		p("> %s\n", EmptyStateMessage(report))
	}

	for _, match := range report.Matches {
		e := match.Etchant
		p("## %d. %s %s %d%%\n\n", match.Rank, e.Name, bandMark(match.Band), match.Percentage)
		p("`%s` score %d", bar(match.Percentage), match.Score)
		if match.RecommendedSequence > 0 {
			p(" · step %d in the etching sequence", match.RecommendedSequence)
		}
		p("\n\n")

		if e.Composition != "" {
			p("*%s*\n\n", e.Composition)
		}
		writeList(bw, "Why", match.Reasons)
		writeList(bw, "Tips", match.Tips)
		writeList(bw, "⚠️ Warnings", match.Warnings)
		if len(e.PPERequired) > 0 {
			p("**PPE:** %s\n\n", strings.Join(e.PPERequired, ", "))
		}
		if match.PurchaseURL != "" {
			p("[Buy %s](%s)\n\n", e.Name, match.PurchaseURL)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && report.LLM.SummaryMD != "" {
		p("---\n\n## Narrative summary (%s/%s)\n\n", report.LLM.Provider, report.LLM.Model)
		p("%s\n\n", strings.TrimSpace(report.LLM.SummaryMD))
		p("_Generated text. Rankings above are computed without it._\n\n")
	}

	if r.includeFooter {
		p("---\n\n")
		p("Report %s · catalog: %s (%d materials, %d etchants", report.ID, report.Catalog.Source, report.Catalog.Materials, report.Catalog.Etchants)
		if report.Catalog.Excluded > 0 {
			p(", %d excluded as incompatible", report.Catalog.Excluded)
		}
		p(") · %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
		p("%s Always follow the safety data sheet for each reagent.\n", PracticalMaxNote)
	}

	return bw.Flush()
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "**%s**\n\n", title)
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "- %s\n", item)
	}
	_, _ = fmt.Fprintln(w)
}
