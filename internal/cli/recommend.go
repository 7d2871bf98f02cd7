package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/etchant/internal/catalog"
	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/pipeline"
	"github.com/ppiankov/etchant/internal/render"
)

var (
	purposeFlag string
	contextFlag string
	outJSON     string
	outMD       string
	maxResults  int
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	llmProvider string
	llmModel    string
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:     "recommend <material>",
	Aliases: []string{"rec"},
	Short:   "Rank etchants for a material",
	Long: `Recommend ranks the catalog's etchants for one material.

The material may be an id, a name, an alternative name, a quick-pick
category (carbon-steel, stainless-steel, aluminum, copper-brass, titanium,
cast-iron) or any search text.

Example:
  etchant recommend "AISI 1018"
  etchant recommend 304 --purpose grain-boundaries --context failure-analysis
  etchant recommend titanium --json report.json --md report.md
  etchant recommend 6061 --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVarP(&purposeFlag, "purpose", "p", "", "feature to reveal (see 'etchant materials --options')")
	recommendCmd.Flags().StringVarP(&contextFlag, "context", "c", "", "application context (see 'etchant materials --options')")
	recommendCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	recommendCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	recommendCmd.Flags().IntVar(&maxResults, "max", 0, "maximum matches to show (1-10)")
	recommendCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	recommendCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the catalog response cache")
	recommendCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	recommendCmd.Flags().StringVar(&llmProvider, "llm", "", "add an LLM narrative (openai, anthropic, ollama)")
	recommendCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyRunFlags copies the shared per-run flags onto the config
func applyRunFlags(cfg *model.Config) {
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if maxResults > 0 {
		cfg.Output.MaxResults = maxResults
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		applyLLMKeyFallbacks(cfg)
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.Output.Verbose = verbose
}

func runRecommend(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	purpose, err := model.ParsePurpose(purposeFlag)
	if err != nil {
		return err
	}
	appCtx, err := model.ParseContext(contextFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(verbose)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Loading %s catalog...\n", cfg.Catalog.Source)
	}

	report, err := p.Recommend(ctx, pipeline.Request{
		MaterialQuery: query,
		Purpose:       purpose,
		Context:       appCtx,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "✗ No material matches %q. Try 'etchant materials %s'.\n", query, query)
			return err
		}
		// The catalog did not load: show the empty state rather than nothing.
		empty := &model.Report{
			Material: model.Material{Name: query},
			Filters:  model.Filters{Purpose: purpose, ApplicationContext: appCtx},
		}
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		fmt.Println(render.EmptyStateMessage(empty))
		return fmt.Errorf("recommend failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Resolved %q to %s (%s)\n", query, report.Material.Name, report.Material.ID)
		fmt.Fprintf(os.Stderr, "✓ Ranked %d etchant(s), %d excluded\n", len(report.Matches), report.Catalog.Excluded)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
	}

	if err := p.RenderReport(os.Stdout, report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if report.LLM != nil && report.LLM.Enabled && outMD == "" {
		fmt.Println("  Narrative (generated after ranking):")
		fmt.Printf("  %s\n\n", strings.ReplaceAll(strings.TrimSpace(report.LLM.SummaryMD), "\n", "\n  "))
	}

	return nil
}
