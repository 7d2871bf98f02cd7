package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/etchant/internal/catalog"
	"github.com/ppiankov/etchant/internal/classify"
	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/pipeline"
)

var showOptions bool

// materialsCmd represents the materials command
var materialsCmd = &cobra.Command{
	Use:   "materials [query]",
	Short: "Search the material catalog",
	Long: `Materials searches materials by name, alternative name, category and tag.
Without a query it lists the featured materials and the quick picks.

Example:
  etchant materials
  etchant materials stainless
  etchant materials --options`,
	RunE: runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
	materialsCmd.Flags().BoolVar(&showOptions, "options", false, "list purpose and application-context values")
}

func runMaterials(cmd *cobra.Command, args []string) error {
	if showOptions {
		printOptions()
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(verbose)
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	cat, err := p.Catalog(context.Background())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	query := strings.Join(args, " ")
	results := cat.SearchMaterials(query)

	if query == "" {
		fmt.Println("Quick picks:")
		for _, qp := range catalog.QuickPicks() {
			if m, ok := cat.QuickPick(qp.Key); ok {
				fmt.Printf("  %-16s → %s\n", qp.Key, m.Name)
			}
		}
		fmt.Println()
		fmt.Println("Featured materials:")
	}

	if len(results) == 0 {
		fmt.Printf("No materials match %q.\n", query)
		return nil
	}
	for _, m := range results {
		printMaterialLine(m)
	}
	return nil
}

func printMaterialLine(m model.Material) {
	star := " "
	if m.Featured {
		star = "★"
	}
	fmt.Printf("  %s %-14s %-28s %s\n", star, m.ID, m.Name, classify.CategoryKey(m))
}

func printOptions() {
	fmt.Println("Purposes (--purpose):")
	for _, o := range model.PurposeOptions() {
		fmt.Printf("  %-20s %s\n", o.Value, o.Label)
	}
	fmt.Println()
	fmt.Println("Application contexts (--context):")
	for _, o := range model.ContextOptions() {
		fmt.Printf("  %-30s %s\n", o.Value, o.Label)
	}
}
