package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// Default generation parameters, applied when a caller passes zero values.
const (
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.7
)

// Generator is the text-generation capability consumed by every wizard
// component. Tests stub it; Client is the production implementation.
type Generator interface {
	// Generate sends a prompt and returns the model's text, with
	// surrounding whitespace stripped.
	Generate(ctx context.Context, prompt string, maxTokens int64, temperature float64) (string, error)
}

// Compile-time verification that Client implements Generator.
var _ Generator = (*Client)(nil)

// Generate sends a single-turn prompt to the model and returns the stripped
// text response. maxTokens <= 0 selects DefaultMaxTokens; temperature < 0
// selects DefaultTemperature. Transport and remote failures are returned as
// errors; callers substitute their own documented fallbacks.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int64, temperature float64) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if temperature < 0 {
		temperature = DefaultTemperature
	}

	resp, err := c.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	c.tracker.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var text strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}

	return strings.TrimSpace(text.String()), nil
}
