package model

// Engagement carries the raw counters reported by the source.
type Engagement struct {
	Upvotes  int `json:"upvotes"`
	Comments int `json:"comments"`
}

// Result is one ranked, outreach-annotated entry of the persisted report.
type Result struct {
	Rank           int        `json:"rank"`
	Score          int        `json:"score"`
	PostID         string     `json:"post_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Author         string     `json:"author"`
	Subreddit      string     `json:"subreddit"`
	URL            string     `json:"url"`
	Created        string     `json:"created"`
	AgeHours       int        `json:"age_hours"`
	Engagement     Engagement `json:"engagement"`
	ScoreBreakdown []string   `json:"score_breakdown"`
	Responses      Responses  `json:"responses"`
}

// Report is the root artifact consumed by the dashboard. Field names are a
// compatibility contract.
type Report struct {
	GeneratedAt       string   `json:"generated_at"`
	TotalPostsScanned int      `json:"total_posts_scanned"`
	TopOpportunities  []Result `json:"top_opportunities"`
}
