package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"outreach-scout/internal/model"

	"github.com/samber/lo"
)

var dollarRe = regexp.MustCompile(`\$(\d+)`)

// Facts are the per-post observations every rule is evaluated against.
type Facts struct {
	Text      string // lower-cased title + " " + body
	HasAmount bool
	MaxAmount int // largest "$<digits>" mention
	AgeHours  float64
	Comments  int
}

// Observe extracts the facts of a post. It is pure.
func Observe(p model.Post) Facts {
	f := Facts{
		Text:     p.Text(),
		AgeHours: p.AgeHours,
		Comments: p.NumComments,
	}
	for _, m := range dollarRe.FindAllStringSubmatch(f.Text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// only overflow is possible for a digit run
			n = math.MaxInt
		}
		if !f.HasAmount || n > f.MaxAmount {
			f.MaxAmount = n
		}
		f.HasAmount = true
	}
	return f
}

// Predicate is a pure test over post facts.
type Predicate func(Facts) bool

// AnyOf matches when the text contains at least one of the phrases.
func AnyOf(phrases ...string) Predicate {
	return func(f Facts) bool {
		return lo.ContainsBy(phrases, func(p string) bool {
			return strings.Contains(f.Text, p)
		})
	}
}

// AmountAtLeast matches when the largest dollar mention is >= n.
func AmountAtLeast(n int) Predicate {
	return func(f Facts) bool { return f.HasAmount && f.MaxAmount >= n }
}

// AnyAmount matches when any dollar amount is mentioned.
func AnyAmount() Predicate {
	return func(f Facts) bool { return f.HasAmount }
}

// AgeUnder matches posts younger than h hours.
func AgeUnder(h float64) Predicate {
	return func(f Facts) bool { return f.AgeHours < h }
}

// CommentsOver matches posts with more than n comments.
func CommentsOver(n int) Predicate {
	return func(f Facts) bool { return f.Comments > n }
}

// Always matches every post.
func Always() Predicate {
	return func(Facts) bool { return true }
}
