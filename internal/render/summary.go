package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/etchant/internal/model"
)

const rule = "═══════════════════════════════════════════════════════════"

// WriteSummary prints the ranked list for a terminal
func (r *Renderer) WriteSummary(w io.Writer, report *model.Report) {
	p := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	p("\n%s\n", rule)
	p("  %s\n", report.Material.Name)
	p("  %s", Title(report.CategoryKey))
	if report.Filters.Purpose != "" {
		p(" · %s", report.Filters.Purpose.Label())
	}
	if report.Filters.ApplicationContext != "" {
		p(" · %s", report.Filters.ApplicationContext.Label())
	}
	p("\n%s\n\n", rule)

	if report.IsEmpty() {
		p("  %s\n\n", EmptyStateMessage(report))
		return
	}

	for _, m := range report.Matches {
		seq := ""
		if m.RecommendedSequence > 0 {
			seq = fmt.Sprintf("  [step %d]", m.RecommendedSequence)
		}
		p("  %2d. %-28s %s %3d%% %s%s\n", m.Rank, truncate(m.Etchant.Name, 28), bar(m.Percentage), m.Percentage, bandMark(m.Band), seq)
		if len(m.Reasons) > 0 {
			p("      %s\n", strings.Join(m.Reasons, " · "))
		}
		for _, warn := range m.Warnings {
			p("      ⚠ %s\n", warn)
		}
	}
	p("\n")

	if report.Catalog.Excluded > 0 {
		p("  %d etchant(s) excluded as incompatible with %s\n\n", report.Catalog.Excluded, Title(report.CategoryKey))
	}
}

// WriteEtchant prints the detail view of one etchant
func WriteEtchant(w io.Writer, e model.Etchant, purchaseURL string) {
	p := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }
	field := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			p("  %-18s %s\n", label+":", value)
		}
	}

	p("\n%s\n  %s\n%s\n\n", rule, e.Name, rule)
	field("Also known as", strings.Join(e.AlternativeNames, ", "))
	field("Category", Title(string(e.Category)))
	field("Composition", e.Composition)
	field("Concentration", e.Concentration)
	field("Method", string(e.ApplicationMethod))
	if e.TypicalTimeSeconds > 0 {
		field("Typical time", fmt.Sprintf("%d s", e.TypicalTimeSeconds))
	}
	if e.TemperatureCelsius != 0 {
		field("Temperature", fmt.Sprintf("%g °C", e.TemperatureCelsius))
	}
	if e.Voltage != 0 {
		field("Voltage", fmt.Sprintf("%g V", e.Voltage))
	}
	field("Reveals", e.Reveals)
	field("Typical results", e.TypicalResults)
	field("Compatible", strings.Join(e.CompatibleMaterials, ", "))
	field("Incompatible", strings.Join(e.IncompatibleMaterials, ", "))
	field("ASTM", strings.Join(e.ASTMReferences, ", "))
	field("Hazards", strings.Join(e.Hazards, ", "))
	field("PPE", strings.Join(e.PPERequired, ", "))
	field("Safety", e.SafetyNotes)
	field("Application", e.ApplicationNotes)
	field("Preparation", e.PreparationNotes)
	field("Storage", e.StorageNotes)
	field("Alternatives", strings.Join(e.AlternativeEtchants, ", "))
	field("Buy", purchaseURL)
	p("\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
