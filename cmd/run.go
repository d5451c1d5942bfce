package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"outreach-scout/internal/ai"
	"outreach-scout/internal/config"
	"outreach-scout/internal/filter"
	"outreach-scout/internal/reddit"
	"outreach-scout/internal/redisclient"
	"outreach-scout/internal/scoring"
	"outreach-scout/internal/storage"
	"outreach-scout/worker"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	runOutput   string
	runTopN     int
	runStrategy string
	runMarkdown string
)

// runCmd performs one scan: fetch, filter, score, rank, draft and persist.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan the configured forums once and write the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cmd.Flags().Changed("output") {
			cfg.Output.Path = runOutput
		}
		if cmd.Flags().Changed("top") {
			cfg.Output.TopN = runTopN
		}
		if cmd.Flags().Changed("strategy") {
			cfg.Drafter.Strategy = runStrategy
		}
		if cmd.Flags().Changed("markdown") {
			cfg.Output.Markdown = runMarkdown
		}
		// Missing credentials stop the run before anything is fetched.
		if err := config.Validate(cfg); err != nil {
			return err
		}
		window, err := worker.ParseWindow(cfg.Reddit.Window)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		slog.SetDefault(slog.Default().With("run", runID))
		slog.Info("run: starting", "forums", cfg.Forums.List, "strategy", cfg.Drafter.Strategy, "output", cfg.Output.Path)

		drafter, closeDrafter := newDrafter(cfg)
		defer closeDrafter()

		builder := &worker.ReportBuilder{
			Collector: &worker.Collector{
				Client: reddit.NewClient(cfg.Reddit.BaseURL, cfg.Reddit.UserAgent, config.Duration(cfg.Reddit.Timeout)),
				Filter: filter.New(cfg.Forums.Primary, cfg.Filter.Keywords),
				Delay:  config.Duration(cfg.Reddit.FetchDelay),
			},
			Scorer:        scoring.NewDefault(),
			Drafter:       drafter,
			Forums:        cfg.Forums.List,
			Window:        window,
			Limit:         cfg.Reddit.Limit,
			TopN:          cfg.Output.TopN,
			ContentLimit:  cfg.Output.ContentLimit,
			OutputPath:    cfg.Output.Path,
			MarkdownPath:  cfg.Output.Markdown,
			MarkdownTitle: cfg.Output.MarkdownTitle,
			Out:           cmd.OutOrStdout(),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := builder.Run(ctx)
		if err != nil {
			return err
		}
		slog.Info("run: done", "scanned", report.TotalPostsScanned, "results", len(report.TopOpportunities))
		if len(report.TopOpportunities) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\n🎉 Done! Check the dashboard to review opportunities.")
		}
		return nil
	},
}

// newDrafter builds the configured strategy, wrapped in the redis cache when enabled.
func newDrafter(cfg config.Config) (ai.Drafter, func()) {
	var d ai.Drafter
	switch cfg.Drafter.Strategy {
	case config.StrategyOpenAI:
		d = ai.NewOpenAI(ai.Config{
			APIKey:      cfg.OpenAI.APIKey,
			Model:       cfg.OpenAI.Model,
			BaseURL:     cfg.OpenAI.BaseURL,
			Temperature: *cfg.OpenAI.Temperature,
			Timeout:     config.Duration(cfg.OpenAI.Timeout),
			Pace:        config.Duration(cfg.Drafter.Delay),
		})
	default:
		d = ai.NewTemplates(nil)
	}
	if !cfg.Cache.Enabled {
		return d, func() {}
	}
	rdb := redisclient.New(cfg.Redis)
	slog.Info("run: draft cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Cache.TTL)
	return &ai.Cached{
		Next:  d,
		Store: storage.NewRedisStore(rdb, cfg.Drafter.Strategy),
		TTL:   config.Duration(cfg.Cache.TTL),
	}, func() { _ = rdb.Close() }
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "report path (overrides output.path)")
	runCmd.Flags().IntVarP(&runTopN, "top", "n", 0, "keep only the top N posts, 0 keeps all (overrides output.top_n)")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "", "drafter strategy: template or openai (overrides drafter.strategy)")
	runCmd.Flags().StringVar(&runMarkdown, "markdown", "", "also render a Markdown digest to this path")
}
