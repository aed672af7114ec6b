package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// maxPromptRunes bounds the user message so a large fetch cannot blow the
// prompt budget. Truncation happens at a line boundary.
const maxPromptRunes = 24000

// Client wraps the Gemini API behind the one call the summarizer needs.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Generate sends one system instruction plus one user message and returns the
// raw response text. No streaming, no multi-turn state.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	user = truncateRunes(strings.TrimSpace(strings.ReplaceAll(user, "\r", "")), maxPromptRunes)

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	trimmed := string(runes[:max])
	// cut back to the last complete line so we never feed a half article
	if idx := strings.LastIndex(trimmed, "\n"); idx > max/4 {
		trimmed = trimmed[:idx]
	}
	return trimmed + "\n[TRUNCATED]"
}
