package worker

import (
	"context"
	"log/slog"
	"math"
	"time"

	"outreach-scout/internal/filter"
	"outreach-scout/internal/model"
	"outreach-scout/internal/reddit"
)

// Lister returns a forum's most recent raw listing entries.
type Lister interface {
	New(ctx context.Context, forum string, limit int) ([]reddit.Item, error)
}

// Collector fetches forum listings, normalizes them into posts and applies the
// relevance filter. A failing forum yields zero posts and never stops a run.
type Collector struct {
	Client Lister
	Filter *filter.Relevance
	Delay  time.Duration // pause after every forum fetch, success or not

	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration)
}

// ForumResult is the outcome of collecting one forum.
type ForumResult struct {
	Forum    string
	Fetched  int
	Relevant []model.Post
}

// Fetch returns the posts of forum created within window, newest first.
func (w *Collector) Fetch(ctx context.Context, forum string, window Window, limit int) []model.Post {
	defer w.pause(ctx)

	items, err := w.Client.New(ctx, forum, limit)
	if ctx.Err() != nil {
		// An interrupted run is not a forum failure; the caller aborts.
		slog.Debug("collector: fetch interrupted", "forum", forum, "error", ctx.Err())
		return nil
	}
	if err != nil {
		slog.Error("collector: fetch failed", "forum", forum, "error", err)
		return nil
	}
	now := w.now()
	maxAge := window.Duration()
	posts := make([]model.Post, 0, len(items))
	for _, it := range items {
		created := unixFloat(it.CreatedUTC)
		age := now.Sub(created)
		if age > maxAge {
			continue
		}
		posts = append(posts, model.Post{
			ID:          it.ID,
			Title:       it.Title,
			Body:        it.Selftext,
			Author:      it.Author,
			Forum:       forum,
			URL:         it.URL(),
			CreatedAt:   created,
			Upvotes:     it.Score,
			NumComments: it.NumComments,
			AgeHours:    age.Hours(),
		})
	}
	return posts
}

// CollectForum fetches one forum and keeps the relevant posts.
func (w *Collector) CollectForum(ctx context.Context, forum string, window Window, limit int) ForumResult {
	posts := w.Fetch(ctx, forum, window, limit)
	res := ForumResult{Forum: forum, Fetched: len(posts), Relevant: make([]model.Post, 0, len(posts))}
	for _, p := range posts {
		if w.Filter.Include(p, forum) {
			res.Relevant = append(res.Relevant, p)
		}
	}
	slog.Info("collector: completed for forum", "forum", forum, "fetched", res.Fetched, "relevant", len(res.Relevant))
	return res
}

func (w *Collector) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Collector) pause(ctx context.Context) {
	if w.Delay <= 0 || ctx.Err() != nil {
		return
	}
	if w.Sleep != nil {
		w.Sleep(ctx, w.Delay)
		return
	}
	t := time.NewTimer(w.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func unixFloat(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9))
}
