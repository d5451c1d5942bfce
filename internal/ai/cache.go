package ai

import (
	"context"
	"log/slog"
	"time"

	"outreach-scout/internal/model"
)

// DraftStore persists drafted responses between runs.
type DraftStore interface {
	GetDraft(ctx context.Context, forum, id string) (model.Responses, bool, error)
	SetDraft(ctx context.Context, forum, id string, r model.Responses, ttl time.Duration) error
}

// Cached reuses stored drafts and only calls Next on a miss. Fallback
// drafts are never stored, and store errors bypass the cache.
type Cached struct {
	Next  Drafter
	Store DraftStore
	TTL   time.Duration
}

func (c *Cached) Draft(ctx context.Context, post model.Post) model.Responses {
	r, ok, err := c.Store.GetDraft(ctx, post.Forum, post.ID)
	if err != nil {
		slog.Warn("draft-cache: read failed", "forum", post.Forum, "post", post.ID, "err", err)
	} else if ok {
		slog.Debug("draft-cache: hit", "forum", post.Forum, "post", post.ID)
		return r
	}
	r = c.Next.Draft(ctx, post)
	if Failed(r) {
		return r
	}
	if err := c.Store.SetDraft(ctx, post.Forum, post.ID, r, c.TTL); err != nil {
		slog.Warn("draft-cache: write failed", "forum", post.Forum, "post", post.ID, "err", err)
	}
	return r
}

var _ Drafter = (*Cached)(nil)
