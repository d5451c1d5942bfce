package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal client for the public Reddit JSON listings.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a listing client. baseURL defaults to https://old.reddit.com.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://old.reddit.com"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Item is one raw listing entry. Selftext is empty for link posts.
type Item struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// URL returns the canonical post URL built from the permalink.
func (it Item) URL() string {
	return "https://reddit.com" + it.Permalink
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// New returns up to limit posts of a forum, most recent first.
// API: GET /r/{forum}/new/.json?limit={limit}
func (c *Client) New(ctx context.Context, forum string, limit int) ([]Item, error) {
	endpoint := fmt.Sprintf("%s/r/%s/new/.json", c.baseURL, url.PathEscape(forum))
	if limit > 0 {
		endpoint += "?" + url.Values{"limit": {fmt.Sprintf("%d", limit)}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("reddit: r/%s status %d: %s", forum, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("reddit: r/%s decode listing: %w", forum, err)
	}
	items := make([]Item, 0, len(listing.Data.Children))
	for i, child := range listing.Data.Children {
		var it Item
		if err := json.Unmarshal(child.Data, &it); err != nil {
			slog.Warn("reddit: skipping malformed entry", "forum", forum, "index", i, "err", err)
			continue
		}
		if it.ID == "" || it.CreatedUTC <= 0 {
			slog.Warn("reddit: skipping entry without id or created_utc", "forum", forum, "index", i)
			continue
		}
		items = append(items, it)
	}
	return items, nil
}
