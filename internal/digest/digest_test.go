package digest

import (
	"strings"
	"testing"
	"time"

	"outreach-scout/internal/markdown"
	"outreach-scout/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandVars(t *testing.T) {
	now := time.Date(2026, 10, 17, 23, 30, 0, 0, time.FixedZone("X", -5*3600))
	assert.Equal(t, "Digest 2026-10-18", ExpandVars("Digest {.CurrentDate}", now))
	assert.Equal(t, "", ExpandVars("", now))
}

func TestRenderRoundTripsFrontmatter(t *testing.T) {
	r := model.Report{
		GeneratedAt:       "2026-10-17T08:00:00Z",
		TotalPostsScanned: 12,
		TopOpportunities: []model.Result{{
			Rank:           1,
			Score:          88,
			PostID:         "a1",
			Title:          "What app: stop buying?",
			Content:        "line one\nline two",
			Author:         "saver",
			Subreddit:      "nobuy",
			URL:            "https://reddit.com/r/nobuy/comments/a1/",
			Created:        "2026-10-17 06:00",
			AgeHours:       2,
			Engagement:     model.Engagement{Upvotes: 5, Comments: 11},
			ScoreBreakdown: []string{"💬 Actively seeking help"},
			Responses:      model.Responses{PublicComment: "pub text", DM: "dm text"},
		}},
	}
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	out, err := Render(r, "", now)
	require.NoError(t, err)

	doc, err := markdown.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Outreach opportunities 2026-10-17", doc.Frontmatter["title"])
	assert.Equal(t, 12, doc.Frontmatter["total_posts_scanned"])
	assert.Equal(t, 1, doc.Frontmatter["opportunities"])
	assert.Equal(t, 88, doc.Frontmatter["top_score"])

	assert.Contains(t, doc.Body, "## 1. [What app: stop buying?](https://reddit.com/r/nobuy/comments/a1/)")
	assert.Contains(t, doc.Body, "- 💬 Actively seeking help")
	assert.Contains(t, doc.Body, "> line one\n> line two")
	assert.Contains(t, doc.Body, "pub text")
	assert.Contains(t, doc.Body, "dm text")
}

func TestRenderEmptyReport(t *testing.T) {
	out, err := Render(model.Report{GeneratedAt: "x", TopOpportunities: []model.Result{}}, "Empty {.CurrentDate}", time.Unix(0, 0))
	require.NoError(t, err)

	doc, err := markdown.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Empty 1970-01-01", doc.Frontmatter["title"])
	_, hasTop := doc.Frontmatter["top_score"]
	assert.False(t, hasTop)
	assert.Contains(t, doc.Body, "No opportunities found in 0 scanned posts.")
}
