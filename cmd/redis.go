package cmd

import "github.com/spf13/cobra"

// redisCmd groups draft cache subcommands.
var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Draft cache utilities",
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
