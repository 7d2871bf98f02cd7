package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/etchant/internal/pipeline"
	"github.com/ppiankov/etchant/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation API over HTTP",
	Long: `Serve starts a JSON HTTP API:

  GET /healthz
  GET /api/v1/options
  GET /api/v1/materials?q=
  GET /api/v1/materials/{id}
  GET /api/v1/etchants/{id}
  GET /api/v1/recommendations?material=&purpose=&context=`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := zap.NewProduction()
	if verbose || err != nil {
		logger = newLogger(true)
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the catalog; a failure is logged and retried on the first request.
	if _, err := p.Catalog(ctx); err != nil {
		logger.Warn("catalog not loaded at startup", zap.Error(err))
	}

	fmt.Fprintf(os.Stderr, "✓ Serving on %s (catalog: %s)\n", cfg.Server.Addr, cfg.Catalog.Source)
	return server.New(p, cfg.Server, logger).Run(ctx)
}
