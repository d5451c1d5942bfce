package digest

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"outreach-scout/internal/model"

	"gopkg.in/yaml.v3"
)

// DefaultTitle is used when no digest title is configured.
const DefaultTitle = "Outreach opportunities {.CurrentDate}"

type frontmatter struct {
	Title             string `yaml:"title"`
	GeneratedAt       string `yaml:"generated_at"`
	TotalPostsScanned int    `yaml:"total_posts_scanned"`
	Opportunities     int    `yaml:"opportunities"`
	TopScore          int    `yaml:"top_score,omitempty"`
}

type data struct {
	Frontmatter string
	Report      model.Report
}

//go:embed digest.tmpl
var digestTpl string

var compiled = template.Must(template.New("digest").Funcs(template.FuncMap{
	"quote": func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n> ")
	},
}).Parse(digestTpl))

// Render formats a report as Markdown with a YAML frontmatter block.
func Render(r model.Report, title string, now time.Time) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	fm := frontmatter{
		Title:             ExpandVars(title, now),
		GeneratedAt:       r.GeneratedAt,
		TotalPostsScanned: r.TotalPostsScanned,
		Opportunities:     len(r.TopOpportunities),
	}
	if len(r.TopOpportunities) > 0 {
		fm.TopScore = r.TopOpportunities[0].Score
	}
	b, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, data{Frontmatter: string(b), Report: r}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
