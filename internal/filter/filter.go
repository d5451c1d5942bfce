package filter

import (
	"strings"

	"outreach-scout/internal/model"

	"github.com/samber/lo"
)

// Relevance decides whether a post is in scope for the forum it came from.
// Posts of primary forums are always relevant; other forums need at least one
// keyword phrase in the case-folded title and body.
type Relevance struct {
	primary  []string
	keywords []string
}

// New builds a relevance filter. Forum names compare case-insensitively and
// keywords are matched lower-cased.
func New(primary, keywords []string) *Relevance {
	norm := func(s string, _ int) string { return strings.ToLower(strings.TrimSpace(s)) }
	nonEmpty := func(s string, _ int) bool { return s != "" }
	return &Relevance{
		primary:  lo.Filter(lo.Map(primary, norm), nonEmpty),
		keywords: lo.Filter(lo.Map(keywords, norm), nonEmpty),
	}
}

// IsPrimary reports whether forum bypasses keyword matching.
func (r *Relevance) IsPrimary(forum string) bool {
	return lo.Contains(r.primary, strings.ToLower(strings.TrimSpace(forum)))
}

// Include returns the inclusion decision for post as fetched from forum.
func (r *Relevance) Include(post model.Post, forum string) bool {
	if r.IsPrimary(forum) {
		return true
	}
	text := post.Text()
	return lo.ContainsBy(r.keywords, func(k string) bool {
		return strings.Contains(text, k)
	})
}
