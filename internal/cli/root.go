// Package cli implements the etchant command line.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/etchant/internal/model"
)

// Version is set at build time with -ldflags
var Version = "v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "etchant",
	Short: "Etchant - metallographic etchant recommender",
	Long: `Etchant recommends metallographic etchants for a material.

It ranks a catalog of etchants against the selected material, an optional
purpose (the feature to reveal) and an optional application context, and
explains every score with human-readable reasons, tips and safety warnings.

The catalog is read from a Supabase backend, a local YAML file, or the
sample catalog built into the binary.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("etchant %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.etchant/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("catalog", "", "catalog source (embedded, file, supabase)")
	rootCmd.PersistentFlags().String("catalog-file", "", "YAML catalog path for the file source")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("catalog.source", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("catalog.file", rootCmd.PersistentFlags().Lookup("catalog-file"))

	rootCmd.AddCommand(versionCmd)
}

// envKeys are the config keys that can be set from ETCHANT_* variables
var envKeys = []string{
	"catalog.source",
	"catalog.file",
	"catalog.shop_base",
	"supabase.url",
	"supabase.anon_key",
	"supabase.published_only",
	"cache.enabled",
	"cache.dir",
	"llm.provider",
	"llm.model",
	"llm.api_key",
	"llm.base_url",
	"llm.strict",
	"server.addr",
	"http.http_proxy",
	"http.https_proxy",
	"http.no_proxy",
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".etchant"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// ETCHANT_SUPABASE_URL -> supabase.url
	viper.SetEnvPrefix("ETCHANT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file, environment and flags over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// An unset source means the file source when a file was given
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = model.SourceEmbedded
		if cfg.Catalog.File != "" {
			cfg.Catalog.Source = model.SourceFile
		}
	}
	applyLLMKeyFallbacks(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyLLMKeyFallbacks fills provider credentials from the providers' own
// environment variables
func applyLLMKeyFallbacks(cfg *model.Config) {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}

// newLogger returns a development logger in verbose mode and a quiet
// production logger otherwise
func newLogger(verbose bool) *zap.Logger {
	if verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			return l
		}
		return zap.NewNop()
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zcfg.OutputPaths = []string{"stderr"}
	l, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
