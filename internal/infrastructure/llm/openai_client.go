package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultModel = "gpt-4o-mini"

var (
	ErrNoAPIKey      = errors.New("openai api key is not set")
	ErrEmptyResponse = errors.New("empty LLM response")
)

// Client rewrites templated reply drafts. It never decides the category,
// that stays with the keyword router.
type Client struct {
	api   openai.Client
	model string
}

func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}, nil
}

func (c *Client) Polish(ctx context.Context, draft, original string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(polishPrompt(draft, original)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	text := cleanReply(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func polishPrompt(draft, original string) string {
	return fmt.Sprintf(`Rewrite the reply draft below so it reads naturally as a short, polite email reply.
Keep the language of the draft, keep its meaning and any commitments, do not add new facts.
Return ONLY the reply text, without markdown, quotes or backticks.

Draft:
%s

Original email:
%s`, draft, original)
}

// cleanReply strips code fences and surrounding quotes models sometimes add.
func cleanReply(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if i := strings.IndexByte(text, '\n'); i >= 0 && !strings.ContainsAny(text[:i], " .,!?") {
			text = text[i+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	text = strings.TrimSpace(text)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return strings.TrimSpace(text)
}
