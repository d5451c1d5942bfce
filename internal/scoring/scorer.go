package scoring

import (
	"outreach-scout/internal/model"
)

// MaxScore bounds every post score.
const MaxScore = 100

// Contribution is the points one factor added to a score.
type Contribution struct {
	Factor string
	Points int
}

// Scorer evaluates posts against a factor table and a highlight table.
type Scorer struct {
	factors    []Factor
	highlights []Highlight
}

// New creates a scorer from explicit rule tables.
func New(factors []Factor, highlights []Highlight) *Scorer {
	return &Scorer{factors: factors, highlights: highlights}
}

// NewDefault creates a scorer with the default relevance rules.
func NewDefault() *Scorer {
	return New(DefaultFactors(), DefaultHighlights())
}

// Evaluate returns the clamped score and the per-factor contributions.
func (s *Scorer) Evaluate(p model.Post) (int, []Contribution) {
	f := Observe(p)
	total := 0
	parts := make([]Contribution, 0, len(s.factors))
	for _, fac := range s.factors {
		pts := fac.points(f)
		parts = append(parts, Contribution{Factor: fac.Name, Points: pts})
		total += pts
	}
	if total > MaxScore {
		total = MaxScore
	}
	if total < 0 {
		total = 0
	}
	return total, parts
}

// Score returns the relevance score of a post in [0, MaxScore].
func (s *Scorer) Score(p model.Post) int {
	total, _ := s.Evaluate(p)
	return total
}

// Breakdown returns the display highlights for a post. It is evaluated
// independently of Score and may mention only part of what was scored.
func (s *Scorer) Breakdown(p model.Post) []string {
	f := Observe(p)
	out := make([]string, 0, len(s.highlights))
	for _, h := range s.highlights {
		if h.Match(f) {
			out = append(out, h.Format(f))
		}
	}
	return out
}

// Apply enriches a post with its score and breakdown.
func (s *Scorer) Apply(p model.Post) model.ScoredPost {
	return model.ScoredPost{
		Post:      p,
		Score:     s.Score(p),
		Breakdown: s.Breakdown(p),
	}
}

func (fac Factor) points(f Facts) int {
	pts := 0
	for _, t := range fac.Tiers {
		if t.Match(f) {
			pts = t.Points
			break
		}
	}
	for _, b := range fac.Bonuses {
		if b.Match(f) {
			pts += b.Points
		}
	}
	if fac.Max > 0 && pts > fac.Max {
		pts = fac.Max
	}
	return pts
}
