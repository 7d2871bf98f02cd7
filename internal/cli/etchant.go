package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/etchant/internal/pipeline"
	"github.com/ppiankov/etchant/internal/render"
)

// etchantCmd represents the etchant detail command
var etchantCmd = &cobra.Command{
	Use:   "etchant <id-or-name>",
	Short: "Show one etchant with its hazards, PPE and procedure notes",
	Example: `  etchant etchant et-nital-2
  etchant etchant "Kroll's Reagent"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEtchant,
}

func init() {
	rootCmd.AddCommand(etchantCmd)
}

func runEtchant(cmd *cobra.Command, args []string) error {
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

	e, err := cat.Etchant(strings.Join(args, " "))
	if err != nil {
		return err
	}

	render.WriteEtchant(os.Stdout, e, p.ProductLink(e))
	return nil
}
