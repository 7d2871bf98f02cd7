// Package render writes recommendation reports as JSON, Markdown and
// terminal summaries.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/score"
)

// Renderer writes reports in the supported formats
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

var titleCaser = cases.Title(language.English)

// Title turns a category key like "copper-brass" into "Copper Brass"
func Title(key string) string {
	return titleCaser.String(strings.ReplaceAll(strings.TrimSpace(key), "-", " "))
}

// WriteJSON encodes the report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderJSON writes the report to a JSON file
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf, report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// RenderMarkdown writes the report to a Markdown file
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var buf bytes.Buffer
	if err := r.WriteMarkdown(&buf, report); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// RenderLLMMarkdown writes a standalone LLM narrative file
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	return writeFile(path, []byte(markdown))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EmptyStateMessage explains an empty result and how to widen it
func EmptyStateMessage(report *model.Report) string {
	var hints []string
	if report.Filters.Purpose.IsFilter() || (report.Filters.ApplicationContext != "" && report.Filters.ApplicationContext != model.ContextGeneral) {
		hints = append(hints, "clear the purpose and application-context filters")
	}
	hints = append(hints, "select a different material")
	if report.Catalog.Etchants == 0 {
		hints = append(hints, "check that the etchant catalog loaded")
	}
	return fmt.Sprintf("No suitable etchants found for %s. Try to %s.", report.Material.Name, strings.Join(hints, ", or "))
}

// bar draws a 20-cell score bar for a percentage
func bar(pct int) string {
	filled := pct / 5
	if filled > 20 {
		filled = 20
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

func bandMark(b model.ScoreBand) string {
	switch b {
	case model.BandGreen:
		return "🟢"
	case model.BandBlue:
		return "🔵"
	case model.BandYellow:
		return "🟡"
	default:
		return "⚪"
	}
}

// PracticalMaxNote documents the percentage scale in report footers
var PracticalMaxNote = fmt.Sprintf("Match percentage = score / %d, capped at 100%%.", score.PracticalMax)
