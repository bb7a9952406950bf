// Package cli implements the quiz command line: interactive practice,
// catalog tooling, simulations and the HTTP server.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizpractice/backend/internal/app"
	"github.com/quizpractice/backend/internal/infrastructure/config"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	catalogs []string
	dsn      string
	logLevel string
	plain    bool
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "quiz",
		Short:         "Practice multiple-choice questions by topic and difficulty",
		Long:          "Quiz runs practice sessions over a catalog of Physics, Chemistry and Math questions, in the terminal or over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringSliceVar(&opts.catalogs, "catalog", nil, "Catalog file (CSV or JSON); repeatable, overrides CATALOG_PATHS")
	f.StringVar(&opts.dsn, "dsn", "", "Catalog database (sqlite://path or postgres://...), overrides CATALOG_DSN")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); terminal commands default to warn")
	f.BoolVar(&opts.plain, "plain", os.Getenv("NO_COLOR") != "", "Disable colors and borders")

	root.AddCommand(
		newPracticeCmd(opts),
		newTopicsCmd(opts),
		newDifficultiesCmd(opts),
		newValidateCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newSimulateCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// Execute runs the command tree with ctx, typically cancelled on SIGINT.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// config loads the usual configuration and applies flag overrides.
func (o *options) config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if len(o.catalogs) > 0 {
		cfg.CatalogPaths = o.catalogs
		cfg.CatalogDSN = ""
	}
	if o.dsn != "" {
		cfg.CatalogDSN = o.dsn
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, cfg.Validate()
}

// load builds the application for a terminal command. Logs go to stderr
// in text form so they never mix with command output.
func (o *options) load(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg, o.terminalLogger(cmd))
}

func (o *options) terminalLogger(cmd *cobra.Command) *slog.Logger {
	logCfg := config.Log{Level: o.logLevel, Format: "text"}
	if logCfg.Level == "" {
		logCfg.Level = "warn"
	}
	return app.NewLogger(logCfg, cmd.ErrOrStderr())
}

func (o *options) printer(w io.Writer) printer {
	return printer{w: w, plain: o.plain}
}
