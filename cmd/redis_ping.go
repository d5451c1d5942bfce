package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"outreach-scout/internal/redisclient"
	"outreach-scout/internal/storage"

	"github.com/spf13/cobra"
)

type draftCounter interface {
	CountDrafts(ctx context.Context) (int64, error)
}

// pingCmd checks the draft cache backend and reports how many drafts it holds.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping the draft cache and count stored drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("draft cache at %s: %w", cfg.Redis.Addr, err)
		}
		return reportCache(ctx, cmd.OutOrStdout(), res, cfg.Cache.Enabled, storage.NewRedisStore(rdb, cfg.Drafter.Strategy))
	},
}

func reportCache(ctx context.Context, w io.Writer, pong string, enabled bool, c draftCounter) error {
	n, err := c.CountDrafts(ctx)
	if err != nil {
		return fmt.Errorf("count drafts: %w", err)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Fprintln(w, pong)
	fmt.Fprintf(w, "draft cache %s, %d stored drafts\n", state, n)
	return nil
}

func init() {
	redisCmd.AddCommand(pingCmd)
}
