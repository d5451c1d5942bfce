package cmd

import (
	"fmt"
	"sort"

	"outreach-scout/internal/markdown"

	"github.com/spf13/cobra"
)

// inspectCmd parses a rendered digest and prints what its frontmatter says.
var inspectCmd = &cobra.Command{
	Use:   "inspect <digest.md>",
	Short: "Parse a Markdown digest and print its frontmatter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := markdown.ParseFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		keys := make([]string, 0, len(doc.Frontmatter))
		for k := range doc.Frontmatter {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(out, "file: %s\n", args[0])
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %v\n", k, doc.Frontmatter[k])
		}
		fmt.Fprintf(out, "body: %d bytes\n", len(doc.Body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
