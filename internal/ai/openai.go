package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"outreach-scout/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Drafter using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	pace        time.Duration
	sleep       func(ctx context.Context, d time.Duration)
}

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string // optional
	Temperature float32
	Timeout     time.Duration // per completion call
	Pace        time.Duration // pause before each post is drafted
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		client:      c,
		model:       model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		pace:        cfg.Pace,
		sleep:       sleepCtx,
	}
}

const systemPrompt = `You are the founder of Spend Slow, a small app that helps people stop impulse buying.
Users add things they want to a wishlist and pick a cooldown (1, 3 or 7 days) before they are allowed to buy.
Most of the time the urge passes before the cooldown ends. Spend Slow has a free tier.
You write short, warm, human replies to people who are struggling with spending.
You are empathetic first and never salesy: acknowledge their situation, share that you have been there,
and only then mention Spend Slow and its free tier as one option. Never use hashtags or marketing language.`

type channelSpec struct {
	instructions string
	maxWords     int
	maxTokens    int
}

var channels = map[Channel]channelSpec{
	Public: {
		instructions: "Write a public comment replying to this post. Keep it conversational and supportive, " +
			"mention Spend Slow naturally near the end, and note there is a free option.",
		maxWords:  100,
		maxTokens: 220,
	},
	Private: {
		instructions: "Write a private direct message to the author of this post. Open by saying you saw their post, " +
			"relate to their struggle, briefly explain how Spend Slow's cooldown works, mention the free tier, " +
			"and make clear there is no pressure. Use short paragraphs.",
		maxWords:  150,
		maxTokens: 320,
	},
}

func (o *OpenAIClient) Draft(ctx context.Context, post model.Post) model.Responses {
	if o.pace > 0 {
		o.sleep(ctx, o.pace)
	}
	return model.Responses{
		PublicComment: o.draftOrFallback(ctx, post, Public),
		DM:            o.draftOrFallback(ctx, post, Private),
	}
}

func (o *OpenAIClient) draftOrFallback(ctx context.Context, post model.Post, ch Channel) string {
	out, err := o.DraftChannel(ctx, post, ch)
	if err != nil {
		slog.Error("openai: draft error", "post", post.ID, "channel", ch.String(), "err", err)
		return DraftFailed
	}
	return out
}

// DraftChannel asks the model for one outreach text.
func (o *OpenAIClient) DraftChannel(ctx context.Context, post model.Post, ch Channel) (string, error) {
	cs, ok := channels[ch]
	if !ok {
		return "", fmt.Errorf("openai: unknown channel %d", ch)
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	body := strings.TrimSpace(post.Body)
	if len([]rune(body)) > 2000 {
		body = string([]rune(body)[:2000])
	}
	user := fmt.Sprintf("Post title: %s\nPost content: %s\n\nTask: %s\nGuidelines:\n- Be empathetic and genuine, not salesy.\n- Mention Spend Slow and its free tier.\n- Hard limit: at most %d words.\n- Output only the message text.",
		post.Title, body, cs.instructions, cs.maxWords)

	out, err := o.create(ctx, systemPrompt, user, cs.maxTokens)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("openai: empty completion")
	}
	return out, nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string, maxTokens int) (string, error) {
	temperature := o.temperature
	if temperature == 0 {
		// A zero value is omitted from the request, and the API then samples at 1.
		temperature = math.SmallestNonzeroFloat32
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

var _ Drafter = (*OpenAIClient)(nil)
