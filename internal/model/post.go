package model

import (
	"strings"
	"time"
)

// Post represents a single collected forum post. Fields are fixed once fetched.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Author      string    `json:"author"`
	Forum       string    `json:"forum"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	Upvotes     int       `json:"upvotes"`
	NumComments int       `json:"num_comments"`
	// AgeHours is computed once at fetch time so scoring stays stable within a run.
	AgeHours float64 `json:"age_hours"`
}

// Text returns the lower-cased title and body used for phrase matching.
func (p Post) Text() string {
	return strings.ToLower(p.Title + " " + p.Body)
}

// ScoredPost decorates a post with its relevance score and display breakdown.
type ScoredPost struct {
	Post      Post
	Score     int
	Breakdown []string
}

// Responses holds the two drafted outreach texts for a post.
type Responses struct {
	PublicComment string `json:"public_comment"`
	DM            string `json:"dm"`
}
