// Package cli - офлайн утилита prioritize поверх SQLite набора данных.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/pkg/logger"
	"github.com/huc-prioritizer/internal/repository/dataset"
	"github.com/huc-prioritizer/internal/repository/source"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type rootOptions struct {
	dataset  string
	logLevel string
	noColor  bool
}

// app - зависимости, собранные в PersistentPreRunE
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

func (a *app) tables() dataset.Tables {
	return dataset.Tables{
		Excluded: a.cfg.Dataset.ExcludedTable,
		Included: a.cfg.Dataset.IncludedTable,
	}
}

func (a *app) openSource() (*source.Source, error) {
	return source.Open(a.cfg, a.logger)
}

// NewRootCommand собирает дерево команд; вывод команд идёт в out
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	a := &app{out: out}

	cmd := &cobra.Command{
		Use:     "prioritize",
		Short:   "Rank HUC-12 watersheds for conservation from a local SQLite dataset",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.Dataset.Driver = "sqlite"
			if opts.dataset != "" {
				cfg.Dataset.SQLitePath = opts.dataset
			}

			log, err := logger.NewConsole(opts.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if opts.noColor {
				color.NoColor = true
			}

			a.cfg, a.logger = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.dataset, "dataset", "", "SQLite dataset path (default: DATASET_SQLITE_PATH or data/huc12.db)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newRunCommand(a),
		newNamesCommand(a),
		newMigrateCommand(a),
		newImportCommand(a),
	)
	return cmd
}

// Execute - точка входа cmd/prioritize
func Execute() int {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		return 1
	}
	return 0
}
