package cmd

import (
	"context"
	"fmt"
	"time"

	"outreach-scout/internal/redisclient"
	"outreach-scout/internal/storage"

	"github.com/spf13/cobra"
)

var forgetStrategy string

// forgetCmd drops a cached draft so the next run drafts the post again.
var forgetCmd = &cobra.Command{
	Use:   "forget <forum> <post_id>",
	Short: "Remove the cached draft for a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		strategy := cfg.Drafter.Strategy
		if cmd.Flags().Changed("strategy") {
			strategy = forgetStrategy
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		store := storage.NewRedisStore(rdb, strategy)
		if err := store.ForgetDraft(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "forgot %s draft for r/%s %s\n", strategy, args[0], args[1])
		return nil
	},
}

func init() {
	redisCmd.AddCommand(forgetCmd)
	forgetCmd.Flags().StringVar(&forgetStrategy, "strategy", "", "drafter strategy whose draft to drop (default: drafter.strategy)")
}
