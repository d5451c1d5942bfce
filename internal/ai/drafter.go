package ai

import (
	"context"

	"outreach-scout/internal/model"
)

// DraftFailed replaces any outreach text that could not be generated.
const DraftFailed = "[Draft generation failed - please write this response manually]"

// Drafter produces the public reply and private message for a post.
// Implementations never fail: an undraftable channel carries DraftFailed.
type Drafter interface {
	Draft(ctx context.Context, post model.Post) model.Responses
}

// Failed reports whether either channel of r fell back to DraftFailed.
func Failed(r model.Responses) bool {
	return r.PublicComment == DraftFailed || r.DM == DraftFailed
}

// Channel identifies where an outreach text will be posted.
type Channel int

const (
	Public Channel = iota
	Private
)

func (c Channel) String() string {
	if c == Private {
		return "dm"
	}
	return "public_comment"
}
