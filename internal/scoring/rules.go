package scoring

import "fmt"

// Tier awards Points when Match holds.
type Tier struct {
	Match  Predicate
	Points int
}

// Factor is one independent scoring dimension. The first matching tier wins;
// every matching bonus is added on top. The contribution is capped at Max.
type Factor struct {
	Name    string
	Max     int
	Tiers   []Tier
	Bonuses []Tier
}

// Highlight is a display-only breakdown line emitted when Match holds.
type Highlight struct {
	Match  Predicate
	Format func(Facts) string
}

var (
	askingForHelp = []string{
		"what app", "recommend an app", "looking for app",
		"need help", "please help", "can someone help",
		"what should i do", "how do i stop",
		"looking for tools", "need accountability",
	}
	appRequest        = []string{"what app", "recommend app", "looking for app"}
	startingChallenge = []string{
		"starting no buy", "beginning no buy",
		"day 1", "first day", "just started",
		"trying to stop", "committed to",
	}
	severePain = []string{
		"hate myself", "disgusted", "ashamed", "embarrassed",
		"destroying", "ruining", "can't stop", "out of control",
		"relationship", "marriage", "divorce",
	}
)

// DefaultFactors is the five-factor relevance table, highest priority tier first.
func DefaultFactors() []Factor {
	return []Factor{
		{
			Name: "intent",
			Max:  30,
			Tiers: []Tier{
				{AnyOf(askingForHelp...), 30},
				{AnyOf("help", "advice", "tips", "suggestions"), 20},
				{AnyOf("struggling", "problem", "issue", "addiction"), 10},
			},
		},
		{
			Name: "financial",
			Max:  25,
			Tiers: []Tier{
				{AmountAtLeast(500), 25},
				{AmountAtLeast(200), 15},
				{AmountAtLeast(100), 10},
				{AnyAmount(), 5},
				{AnyOf("debt", "broke", "can't afford", "financial trouble"), 10},
			},
		},
		{
			Name: "tools",
			Max:  20,
			Tiers: []Tier{
				{AnyOf(appRequest...), 20},
				{AnyOf("app", "tool", "software", "tracker"), 15},
				{AnyOf(startingChallenge...), 10},
			},
		},
		{
			Name: "recency",
			Max:  20,
			Tiers: []Tier{
				{AgeUnder(24), 15},
				{AgeUnder(72), 10},
				{Always(), 5},
			},
			Bonuses: []Tier{
				{CommentsOver(10), 5},
			},
		},
		{
			Name: "pain",
			Max:  10,
			Tiers: []Tier{
				{AnyOf(severePain...), 10},
				{AnyOf("guilt", "shame", "regret", "anxiety"), 7},
				{Always(), 3},
			},
		},
	}
}

// DefaultHighlights produces the advisory breakdown list, in display order.
func DefaultHighlights() []Highlight {
	return []Highlight{
		{
			Match:  AmountAtLeast(500),
			Format: func(f Facts) string { return fmt.Sprintf("⚠️ HIGH SPENDER: Mentions $%d", f.MaxAmount) },
		},
		{
			Match:  AnyOf(appRequest...),
			Format: func(Facts) string { return "🎯 Asking for app recommendations" },
		},
		{
			Match:  AnyOf(askingForHelp...),
			Format: func(Facts) string { return "💬 Actively seeking help" },
		},
		{
			Match:  AgeUnder(24),
			Format: func(f Facts) string { return fmt.Sprintf("🕐 Posted %d hours ago", int(f.AgeHours)) },
		},
	}
}
