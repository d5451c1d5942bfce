package ai

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"outreach-scout/internal/model"
)

var publicComments = []string{
	"I completely understand what you're going through. I struggled with impulse buying too, which is why I built Spend Slow - it helps you add items to a wishlist and set cooldown periods (1, 3, or 7 days) before buying. The waiting period really helps break the impulse cycle. There's a free option if you want to try it. Happy to share more info if helpful!",
	"This resonates with me so much. I've found that creating a barrier between wanting something and buying it makes a huge difference. That's the idea behind Spend Slow - you add items and choose how long to wait (1-7 days). Often by the time the cooldown ends, you realize you don't actually need it. Free version available. Let me know if you'd like to know more!",
	"You're not alone in this struggle. I built a tool called Spend Slow specifically for this - it lets you pause before purchases by setting cooldown periods. You can choose 1, 3, or 7 days to think it over. It's been really effective for breaking the impulse buying habit. There's a free tier. Feel free to reach out if you want more details!",
}

var directMessages = []string{
	"Hey, I saw your post and really related to your struggle. I went through something similar with impulse buying, which led me to create Spend Slow.\n\nIt's a simple tool that helps you pause before purchasing - you add items you want and set a cooldown period (1, 3, or 7 days). During that time, you can think it over, and often the urge passes.\n\nThere's a free version you can try. No pressure at all, just wanted to share something that helped me. Wishing you the best on your journey!",
	"Hi! I came across your post and wanted to reach out. I've been where you are with the shopping struggles, and I know how hard it can be.\n\nI actually built a tool called Spend Slow to help with this exact problem. The concept is simple: before buying anything, you add it to the app and set a waiting period (1-7 days). That pause is often enough to break the impulse cycle.\n\nThere's a free option available. Just thought I'd share in case it might help. You've got this!",
	"Hey there, I saw your post and felt compelled to reach out. Your struggle really resonated with me because I've been through something similar.\n\nI ended up creating Spend Slow as a way to manage impulse purchases. It works by letting you add items and then choosing a cooldown period before you can buy them. Sometimes just knowing you have to wait 3 or 7 days is enough to change your mind.\n\nThere's a free tier if you want to give it a try. Either way, I'm rooting for you!",
}

// Templates drafts by picking a pre-written text per channel uniformly at random.
type Templates struct {
	mu      sync.Mutex
	rng     *rand.Rand
	public  []string
	private []string
}

// NewTemplates creates a template drafter. A nil rng is seeded from the clock.
func NewTemplates(rng *rand.Rand) *Templates {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Templates{rng: rng, public: publicComments, private: directMessages}
}

func (t *Templates) Draft(_ context.Context, _ model.Post) model.Responses {
	return model.Responses{
		PublicComment: t.pick(t.public),
		DM:            t.pick(t.private),
	}
}

func (t *Templates) pick(texts []string) string {
	if len(texts) == 0 {
		return DraftFailed
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return texts[t.rng.Intn(len(texts))]
}

var _ Drafter = (*Templates)(nil)
