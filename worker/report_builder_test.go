package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"outreach-scout/internal/ai"
	"outreach-scout/internal/markdown"
	"outreach-scout/internal/model"
	"outreach-scout/internal/reddit"
	"outreach-scout/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDrafter struct {
	calls  []string
	failOn map[string]bool
}

func (s *stubDrafter) Draft(_ context.Context, p model.Post) model.Responses {
	s.calls = append(s.calls, p.ID)
	if s.failOn[p.ID] {
		return model.Responses{PublicComment: ai.DraftFailed, DM: ai.DraftFailed}
	}
	return model.Responses{PublicComment: "public for " + p.ID, DM: "dm for " + p.ID}
}

func newTestBuilder(t *testing.T, l Lister, d ai.Drafter, forums ...string) (*ReportBuilder, *bytes.Buffer) {
	t.Helper()
	var slept []time.Duration
	out := &bytes.Buffer{}
	return &ReportBuilder{
		Collector:    newTestCollector(l, &slept),
		Scorer:       scoring.NewDefault(),
		Drafter:      d,
		Forums:       forums,
		Window:       Month,
		Limit:        100,
		ContentLimit: 500,
		OutputPath:   filepath.Join(t.TempDir(), "data", "report.json"),
		Out:          out,
		Now:          func() time.Time { return fixedNow },
	}, out
}

func readReport(t *testing.T, path string) (model.Report, map[string]any) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var r model.Report
	require.NoError(t, json.Unmarshal(b, &r))
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	return r, raw
}

func TestRunEndToEnd(t *testing.T) {
	l := &fakeLister{items: map[string][]reddit.Item{
		"nobuy": {
			{ID: "neutral", Title: "Weekly check-in thread", Author: "mod", Permalink: "/r/nobuy/comments/neutral/", CreatedUTC: hoursAgo(30)},
			{ID: "small", Title: "I spent $50 yesterday", Author: "u2", Permalink: "/r/nobuy/comments/small/", CreatedUTC: hoursAgo(5)},
			{ID: "hot", Title: "What app do you recommend?", Selftext: "I've spent $700 and I hate myself",
				Author: "u1", Permalink: "/r/nobuy/comments/hot/", CreatedUTC: hoursAgo(2), Score: 9, NumComments: 15},
		},
	}}
	d := &stubDrafter{}
	b, out := newTestBuilder(t, l, d, "nobuy")

	report, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalPostsScanned)
	require.Len(t, report.TopOpportunities, 3)
	ids := []string{report.TopOpportunities[0].PostID, report.TopOpportunities[1].PostID, report.TopOpportunities[2].PostID}
	assert.Equal(t, []string{"hot", "small", "neutral"}, ids)
	assert.Equal(t, []string{"hot", "small", "neutral"}, d.calls, "drafting follows rank order")

	top := report.TopOpportunities[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 100, top.Score)
	assert.Equal(t, 2, top.AgeHours)
	assert.Equal(t, model.Engagement{Upvotes: 9, Comments: 15}, top.Engagement)
	assert.Equal(t, "public for hot", top.Responses.PublicComment)
	assert.Equal(t, "2026-10-17 10:00", top.Created)
	assert.Equal(t, 23, report.TopOpportunities[1].Score)
	assert.Equal(t, 13, report.TopOpportunities[2].Score)

	fromDisk, raw := readReport(t, b.OutputPath)
	assert.Equal(t, report, fromDisk)
	assert.Equal(t, fixedNow.Format(time.RFC3339), raw["generated_at"])
	first := raw["top_opportunities"].([]any)[0].(map[string]any)
	for _, k := range []string{"rank", "score", "post_id", "title", "content", "author", "subreddit", "url",
		"created", "age_hours", "engagement", "score_breakdown", "responses"} {
		assert.Contains(t, first, k)
	}
	assert.Contains(t, first["responses"], "public_comment")
	assert.Contains(t, first["responses"], "dm")

	assert.Contains(t, out.String(), "Score range: 100 - 13")
	assert.Contains(t, out.String(), "Subreddit: r/nobuy")
}

func TestRunEmptyDoesNotDraft(t *testing.T) {
	l := &fakeLister{items: map[string][]reddit.Item{
		"personalfinance": {{ID: "1", Title: "index funds?", CreatedUTC: hoursAgo(1)}},
	}}
	d := &stubDrafter{}
	b, _ := newTestBuilder(t, l, d, "personalfinance", "frugal")

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.calls)
	assert.Equal(t, 0, report.TotalPostsScanned)

	_, raw := readReport(t, b.OutputPath)
	assert.Equal(t, float64(0), raw["total_posts_scanned"])
	assert.Equal(t, []any{}, raw["top_opportunities"], "empty results must serialize as []")
	assert.Equal(t, []string{"personalfinance", "frugal"}, l.calls)
}

func TestRunDraftFailureDoesNotAbort(t *testing.T) {
	l := &fakeLister{items: map[string][]reddit.Item{
		"nobuy": {
			{ID: "x", Title: "need help $900", CreatedUTC: hoursAgo(1)},
			{ID: "y", Title: "quiet", CreatedUTC: hoursAgo(1)},
		},
	}}
	d := &stubDrafter{failOn: map[string]bool{"x": true}}
	b, out := newTestBuilder(t, l, d, "nobuy")

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.TopOpportunities, 2)
	assert.Equal(t, ai.DraftFailed, report.TopOpportunities[0].Responses.PublicComment)
	assert.Equal(t, ai.DraftFailed, report.TopOpportunities[0].Responses.DM)
	assert.Equal(t, "public for y", report.TopOpportunities[1].Responses.PublicComment)
	assert.Contains(t, out.String(), "(1 fell back)")
}

func TestRunFetchFailureIsIsolated(t *testing.T) {
	l := &fakeLister{
		errs: map[string]error{"nobuy": assert.AnError},
		items: map[string][]reddit.Item{
			"shoppingaddiction": {{ID: "s1", Title: "relapse", CreatedUTC: hoursAgo(3)}},
		},
	}
	b, _ := newTestBuilder(t, l, &stubDrafter{}, "nobuy", "shoppingaddiction")

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalPostsScanned)
	require.Len(t, report.TopOpportunities, 1)
	assert.Equal(t, "shoppingaddiction", report.TopOpportunities[0].Subreddit)
}

func TestRunTopNAndDigest(t *testing.T) {
	l := &fakeLister{items: map[string][]reddit.Item{
		"nobuy": {
			{ID: "a", Title: "quiet", CreatedUTC: hoursAgo(100)},
			{ID: "b", Title: "please help, $300 gone", CreatedUTC: hoursAgo(1)},
			{ID: "c", Title: "day 1", CreatedUTC: hoursAgo(1)},
		},
	}}
	d := &stubDrafter{}
	b, _ := newTestBuilder(t, l, d, "nobuy")
	b.TopN = 2
	b.MarkdownPath = filepath.Join(filepath.Dir(b.OutputPath), "report.md")

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalPostsScanned, "scanned counts the pool before selection")
	require.Len(t, report.TopOpportunities, 2)
	assert.Equal(t, "b", report.TopOpportunities[0].PostID)
	assert.Equal(t, "c", report.TopOpportunities[1].PostID)
	assert.Len(t, d.calls, 2)

	doc, err := markdown.ParseFile(b.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Frontmatter["opportunities"])
	assert.True(t, strings.Contains(doc.Body, "## 1. [please help, $300 gone]"))
}

func TestSortByScoreIsStable(t *testing.T) {
	posts := []model.ScoredPost{
		{Post: model.Post{ID: "1"}, Score: 10},
		{Post: model.Post{ID: "2"}, Score: 50},
		{Post: model.Post{ID: "3"}, Score: 10},
		{Post: model.Post{ID: "4"}, Score: 50},
		{Post: model.Post{ID: "5"}, Score: 10},
	}
	SortByScore(posts)
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.Post.ID)
	}
	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, ids)
}

func TestSelect(t *testing.T) {
	posts := make([]model.ScoredPost, 5)
	assert.Len(t, Select(posts, 0), 5)
	assert.Len(t, Select(posts, 3), 3)
	assert.Len(t, Select(posts, 20), 5)
}

func TestProject(t *testing.T) {
	body := strings.Repeat("é", 600)
	sp := model.ScoredPost{
		Post: model.Post{
			ID: "p", Title: "t", Body: body, Author: "a", Forum: "frugal", URL: "u",
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 59, 0, time.UTC), AgeHours: 71.99,
			Upvotes: -3, NumComments: 2,
		},
		Score: 42,
	}
	r := Project(7, sp, model.Responses{PublicComment: "p", DM: "d"}, 500)
	assert.Equal(t, 7, r.Rank)
	assert.Equal(t, 500, len([]rune(r.Content)))
	assert.Equal(t, "2026-01-02 03:04", r.Created)
	assert.Equal(t, 71, r.AgeHours)
	assert.Equal(t, model.Engagement{Upvotes: -3, Comments: 2}, r.Engagement)
	assert.Equal(t, []string{}, r.ScoreBreakdown)
}

type cancellingDrafter struct {
	stubDrafter
	cancel context.CancelFunc
}

func (c *cancellingDrafter) Draft(ctx context.Context, p model.Post) model.Responses {
	c.cancel()
	return c.stubDrafter.Draft(ctx, p)
}

func TestRunCancelledKeepsPreviousReport(t *testing.T) {
	l := &fakeLister{items: map[string][]reddit.Item{
		"nobuy": {{ID: "a", Title: "need help", CreatedUTC: hoursAgo(1)}},
	}}
	d := &stubDrafter{}
	b, _ := newTestBuilder(t, l, d, "nobuy", "frugal")
	require.NoError(t, os.MkdirAll(filepath.Dir(b.OutputPath), 0o755))
	require.NoError(t, os.WriteFile(b.OutputPath, []byte(`{"previous":true}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d.calls)
	got, err := os.ReadFile(b.OutputPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"previous":true}`, string(got))
}

func TestRunCancelledWhileDraftingWritesNothing(t *testing.T) {
	l := &fakeLister{items: map[string][]reddit.Item{
		"nobuy": {
			{ID: "a", Title: "need help", CreatedUTC: hoursAgo(1)},
			{ID: "b", Title: "quiet", CreatedUTC: hoursAgo(2)},
		},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := &cancellingDrafter{cancel: cancel}
	b, _ := newTestBuilder(t, l, d, "nobuy")

	_, err := b.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, d.calls)
	_, statErr := os.Stat(b.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "no report may be written for an interrupted run")
}
