package cmd

import (
	"time"

	"outreach-scout/internal/model"
	"outreach-scout/internal/scoring"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

var (
	scoreTitle    string
	scoreBody     string
	scoreForum    string
	scoreAgeHours float64
	scoreComments int
	scoreNoColor  bool
)

// scoreCmd scores an ad-hoc post with the same rules used by `run`.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single post and dump the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		post := model.Post{
			ID:          "adhoc",
			Title:       scoreTitle,
			Body:        scoreBody,
			Forum:       scoreForum,
			CreatedAt:   time.Now().Add(-time.Duration(scoreAgeHours * float64(time.Hour))),
			NumComments: scoreComments,
			AgeHours:    scoreAgeHours,
		}
		s := scoring.NewDefault()
		total, contributions := s.Evaluate(post)

		printer := pp.New()
		printer.SetOutput(cmd.OutOrStdout())
		printer.SetColoringEnabled(!scoreNoColor)
		printer.Println(s.Apply(post))
		printer.Println(contributions)
		printer.Printf("total: %d/%d\n", total, scoring.MaxScore)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreTitle, "title", "", "post title")
	scoreCmd.Flags().StringVar(&scoreBody, "body", "", "post body")
	scoreCmd.Flags().StringVar(&scoreForum, "forum", "nobuy", "forum the post belongs to")
	scoreCmd.Flags().Float64Var(&scoreAgeHours, "age-hours", 1, "post age in hours")
	scoreCmd.Flags().IntVar(&scoreComments, "comments", 0, "number of comments")
	scoreCmd.Flags().BoolVar(&scoreNoColor, "no-color", false, "disable colored output")
}
