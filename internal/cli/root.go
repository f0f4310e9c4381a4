// Package cli implements the pbxreport command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pbx-insights-go/internal/config"
	"pbx-insights-go/internal/history"
	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/pipeline"
	"pbx-insights-go/internal/processor"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	Format    string
	History   string
	NoHistory bool
	LogLevel  string
	// Workers is set by batch --workers.
	Workers   int
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "pbxreport",
		Short: "pbxreport analyzes PBX call statistics exports",
		Long: `pbxreport classifies PBX XML exports (ACD queues, hunt groups, rule-based
routing, IVR menus, users), computes their KPIs and keeps a local run history.

Quick start:
  pbxreport analyze queue.xml            # summary and hourly tables
  pbxreport analyze queue.xml --xlsx out.xlsx
  pbxreport batch manifest.xlsx          # one run per manifest row
  pbxreport history list --account 42`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.Format, "format", "table", "output format: table|json")
	pf.StringVar(&opts.History, "history", "", "history database path (overrides HISTORY_PATH)")
	pf.BoolVar(&opts.NoHistory, "no-history", false, "do not record runs")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug|info|warn|error (overrides LOG_LEVEL)")

	root.AddCommand(newAnalyzeCmd(opts), newBatchCmd(opts), newHistoryCmd(opts))
	return root
}

// Execute is the entry point called by main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// deps is what a command needs, built at the start of its RunE.
type deps struct {
	cfg   config.Config
	log   *logger.Logger
	store *history.Store
	proc  *processor.Processor
}

func buildDeps(opts *rootOptions, withHistory bool) (*deps, error) {
	cfg := config.Load()
	if opts.History != "" {
		cfg.HistoryPath = opts.History
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Workers > 0 {
		cfg.BatchWorkers = opts.Workers
	}

	// logs go to stderr so table and json output stay clean
	log := logger.Configure(os.Stderr, cfg.Environment, cfg.LogLevel)
	d := &deps{cfg: cfg, log: log}

	var recorder processor.Recorder
	if withHistory && !opts.NoHistory {
		store, err := history.Open(cfg.HistoryPath, cfg.SourceRetryMax)
		if err != nil {
			return nil, err
		}
		d.store = store
		recorder = store
	}
	d.proc = processor.New(log, pipeline.New(log), recorder, processor.Options{
		TTL:      cfg.HistoryTTL,
		RetryMax: cfg.SourceRetryMax,
		Workers:  cfg.BatchWorkers,
	})
	return d, nil
}

// requireStore opens the history even when --no-history is set; history
// commands always need it.
func (d *deps) requireStore() error {
	if d.store != nil {
		return nil
	}
	store, err := history.Open(d.cfg.HistoryPath, d.cfg.SourceRetryMax)
	if err != nil {
		return err
	}
	d.store = store
	return nil
}

func (d *deps) Close() {
	if d.store != nil {
		_ = d.store.Close()
	}
}
