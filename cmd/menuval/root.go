package main

import (
	"fmt"
	"io"

	"github.com/ZaguanLabs/menuval"
	"github.com/ZaguanLabs/menuval/internal/config"
	"github.com/ZaguanLabs/menuval/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries state shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	quiet      bool

	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"source":         "source.kind",
	"source-path":    "source.path",
	"spreadsheet-id": "source.spreadsheet_id",
	"credentials":    "source.credentials_file",
	"provider":       "provider.kind",
	"api-key":        "provider.api_key",
	"model":          "provider.model",
	"rate":           "provider.rate_per_minute",
	"workers":        "workers",
	"cache-file":     "cache.file",
	"redis-url":      "cache.redis_url",
	"conflicts":      "terminology.conflicts",
	"log-level":      "log.level",
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "menuval",
		Short: "Restaurant menu validator and English/Arabic translator",
		Long: "menuval checks menu items for forbidden content, undefined choices, category " +
			"mismatches and filler descriptions, and translates them between English and Arabic " +
			"using a curated terminology table before falling back to machine translation.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default: ./menuval.yaml or ./config/menuval.yaml)")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "Suppress the summary on stderr")
	pf.String("source", "", "Configuration source: sheets, yaml, csv or none")
	pf.String("source-path", "", "YAML workbook or CSV directory for the yaml/csv sources")
	pf.String("spreadsheet-id", "", "Google spreadsheet ID for the sheets source")
	pf.String("credentials", "", "Service account JSON for the sheets source")
	pf.String("provider", "", "Translation provider: google, openai, mock or none")
	pf.String("api-key", "", "Translation provider API key")
	pf.String("model", "", "Provider model (OpenAI model or Google nmt/base)")
	pf.Int("rate", 0, "Provider requests per minute (0 = unlimited)")
	pf.Int("workers", 0, "Concurrent rows per batch")
	pf.String("cache-file", "", "Translation cache file, loaded before and saved after the run")
	pf.String("redis-url", "", "Shared Redis translation cache, e.g. redis://localhost:6379/0")
	pf.String("conflicts", "", "Terminology conflict policy: keep-last, keep-first or reject")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newValidateCmd(a),
		newTranslateCmd(a),
		newProcessCmd(a),
		newLookupCmd(a),
		newDiffCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	v := config.New(a.configFile)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return err
	}

	a.v, a.cfg, a.logger = v, cfg, logger
	a.logger.Debug("configuration loaded",
		zap.String("config_file", v.ConfigFileUsed()),
		zap.String("source", cfg.Source.Kind),
		zap.String("provider", cfg.Provider.Kind),
		zap.String("version", menuval.FullVersion()),
	)
	return nil
}
