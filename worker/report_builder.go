package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"outreach-scout/internal/ai"
	"outreach-scout/internal/digest"
	"outreach-scout/internal/model"
	"outreach-scout/internal/scoring"
)

// ReportBuilder runs one collect → score → rank → draft → persist pass.
type ReportBuilder struct {
	Collector *Collector
	Scorer    *scoring.Scorer
	Drafter   ai.Drafter

	Forums []string
	Window Window
	Limit  int

	TopN         int // 0 keeps every scored post
	ContentLimit int // characters of body kept per result
	OutputPath   string

	MarkdownPath  string // optional digest, skipped when empty
	MarkdownTitle string

	Out io.Writer // human-readable progress
	Now func() time.Time
}

// Run executes the pipeline once and returns the persisted report. A cancelled
// ctx aborts the run with an error and leaves any previous report untouched.
func (b *ReportBuilder) Run(ctx context.Context) (model.Report, error) {
	started := b.now()
	b.printf("🚀 Starting outreach scan...\n")
	b.printf("📅 Run time: %s\n", started.Format("2006-01-02 15:04:05"))

	var pool []model.Post
	for _, forum := range b.Forums {
		if err := ctx.Err(); err != nil {
			return model.Report{}, fmt.Errorf("run interrupted while collecting: %w", err)
		}
		b.printf("📡 Scraping r/%s...\n", forum)
		res := b.Collector.CollectForum(ctx, forum, b.Window, b.Limit)
		pool = append(pool, res.Relevant...)
		b.printf("   Found %d relevant posts\n", len(res.Relevant))
	}
	if err := ctx.Err(); err != nil {
		return model.Report{}, fmt.Errorf("run interrupted while collecting: %w", err)
	}
	b.printf("\n📊 Total posts collected: %d\n", len(pool))

	b.printf("\n🔢 Scoring posts...\n")
	scored := ScoreAll(b.Scorer, pool)
	SortByScore(scored)
	selected := Select(scored, b.TopN)

	if len(selected) == 0 {
		b.printf("⚠️  No posts found. The source may be blocking automated requests.\n")
		report := model.Report{
			GeneratedAt:       b.now().Format(time.RFC3339),
			TotalPostsScanned: 0,
			TopOpportunities:  []model.Result{},
		}
		if err := b.persist(report); err != nil {
			return report, err
		}
		return report, nil
	}

	b.printf("✅ %d of %d posts selected (scores: %d-%d)\n", len(selected), len(scored), selected[0].Score, selected[len(selected)-1].Score)
	b.printf("\n✍️  Drafting responses for %d posts...\n", len(selected))

	results := make([]model.Result, 0, len(selected))
	failed := 0
	for i, sp := range selected {
		b.printf("   Drafting %d/%d...\r", i+1, len(selected))
		responses := b.Drafter.Draft(ctx, sp.Post)
		if err := ctx.Err(); err != nil {
			return model.Report{}, fmt.Errorf("run interrupted while drafting: %w", err)
		}
		if ai.Failed(responses) {
			failed++
			slog.Warn("builder: draft fell back", "forum", sp.Post.Forum, "post", sp.Post.ID)
		}
		results = append(results, Project(i+1, sp, responses, b.ContentLimit))
	}
	b.printf("\n✅ All responses drafted! (%d fell back)\n", failed)

	report := model.Report{
		GeneratedAt:       b.now().Format(time.RFC3339),
		TotalPostsScanned: len(pool),
		TopOpportunities:  results,
	}
	if err := b.persist(report); err != nil {
		return report, err
	}
	b.summary(report, len(pool))
	return report, nil
}

// ScoreAll scores every post, keeping input order.
func ScoreAll(s *scoring.Scorer, posts []model.Post) []model.ScoredPost {
	out := make([]model.ScoredPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.Apply(p))
	}
	return out
}

// SortByScore orders posts by descending score; equal scores keep input order.
func SortByScore(posts []model.ScoredPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Score > posts[j].Score
	})
}

// Select returns the first n posts, or all of them when n <= 0.
func Select(posts []model.ScoredPost, n int) []model.ScoredPost {
	if n <= 0 || n >= len(posts) {
		return posts
	}
	return posts[:n]
}

// Project builds the persisted view of a ranked post.
func Project(rank int, sp model.ScoredPost, r model.Responses, contentLimit int) model.Result {
	breakdown := sp.Breakdown
	if breakdown == nil {
		breakdown = []string{}
	}
	p := sp.Post
	return model.Result{
		Rank:           rank,
		Score:          sp.Score,
		PostID:         p.ID,
		Title:          p.Title,
		Content:        truncate(p.Body, contentLimit),
		Author:         p.Author,
		Subreddit:      p.Forum,
		URL:            p.URL,
		Created:        p.CreatedAt.UTC().Format("2006-01-02 15:04"),
		AgeHours:       int(p.AgeHours),
		Engagement:     model.Engagement{Upvotes: p.Upvotes, Comments: p.NumComments},
		ScoreBreakdown: breakdown,
		Responses:      r,
	}
}

func (b *ReportBuilder) persist(report model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.OutputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(b.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	slog.Info("builder: report written", "path", b.OutputPath, "results", len(report.TopOpportunities))
	b.printf("\n💾 Report saved to: %s\n", b.OutputPath)

	if strings.TrimSpace(b.MarkdownPath) == "" {
		return nil
	}
	md, err := digest.Render(report, b.MarkdownTitle, b.now())
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.MarkdownPath), 0o755); err != nil {
		return fmt.Errorf("create digest dir: %w", err)
	}
	if err := os.WriteFile(b.MarkdownPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	b.printf("📝 Digest saved to: %s\n", b.MarkdownPath)
	return nil
}

func (b *ReportBuilder) summary(report model.Report, scanned int) {
	top := report.TopOpportunities[0]
	last := report.TopOpportunities[len(report.TopOpportunities)-1]
	line := strings.Repeat("=", 60)
	b.printf("\n%s\n📈 SUMMARY\n%s\n", line, line)
	b.printf("Total posts scanned: %d\n", scanned)
	b.printf("Total posts selected: %d\n", len(report.TopOpportunities))
	b.printf("Score range: %d - %d\n", top.Score, last.Score)
	b.printf("\nHighest scoring post:\n")
	b.printf("  Score: %d/100\n", top.Score)
	b.printf("  Subreddit: r/%s\n", top.Subreddit)
	b.printf("  Title: %s...\n", truncate(top.Title, 60))
	b.printf("%s\n", line)
}

func (b *ReportBuilder) printf(format string, args ...any) {
	if b.Out == nil {
		return
	}
	fmt.Fprintf(b.Out, format, args...)
}

func (b *ReportBuilder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// truncate keeps at most n characters of s.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
