package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/etchant/internal/pipeline"
	"github.com/ppiankov/etchant/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	writeMD      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run recommendations for many materials",
	Long: `Batch reads one query per line and writes one JSON report per query.

Line format (purpose and context are optional):
  material | purpose | context

Blank lines and lines starting with # are ignored.

Example:
  etchant batch materials.txt --workers 8 --out reports/ --md`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&concurrency, "workers", "w", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVarP(&outputDir, "out", "o", "reports", "output directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
	batchCmd.Flags().BoolVar(&writeMD, "md", false, "also write Markdown reports")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the catalog response cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().IntVar(&maxResults, "max", 0, "maximum matches per report (1-10)")
	batchCmd.Flags().StringVar(&llmProvider, "llm", "", "add an LLM narrative (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(verbose)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Etchant Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Catalog:      %s\n", cfg.Catalog.Source)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s\n", cfg.LLM.Provider)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	// Fail fast on a broken catalog
	if _, err := p.Catalog(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Processing queries with %d workers...\n\n", cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := p.Renderer()
	successCount, failureCount := 0, 0
	used := make(map[string]int)

	for _, result := range results {
		label := result.Query.Material
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", label, result.Error)
			continue
		}

		report := result.Report
		name := reportFilename(report.Material.Name, string(report.Filters.Purpose), string(report.Filters.ApplicationContext))
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		jsonPath := filepath.Join(outputDir, name+".json")
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", label, err)
			continue
		}
		if writeMD {
			if err := renderer.RenderMarkdown(report, filepath.Join(outputDir, name+".md")); err != nil {
				failureCount++
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", label, err)
				continue
			}
		}

		successCount++
		top := "no suitable etchant"
		if !report.IsEmpty() {
			m := report.Matches[0]
			top = fmt.Sprintf("%s (%d%%)", m.Etchant.Name, m.Percentage)
		}
		fmt.Fprintf(os.Stderr, "✓ %s → %s\n", report.Material.Name, top)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d queries\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// reportFilename builds a filesystem-safe report name from its parts
func reportFilename(parts ...string) string {
	var kept []string
	for _, p := range parts {
		s := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(p), "-"), "-")
		if s != "" {
			kept = append(kept, s)
		}
	}
	name := strings.Join(kept, "_")
	if name == "" {
		name = "report"
	}
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
