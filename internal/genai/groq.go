// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the Groq (OpenAI-compatible) implementation of the Narrator.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// groqNarrator answers general questions through Groq's OpenAI-compatible API.
// It implements the Narrator interface.
type groqNarrator struct {
	client openai.Client
	model  string
}

// newGroqNarrator creates a new Groq-based narrator.
// Returns nil if apiKey is empty (narration disabled).
func newGroqNarrator(_ context.Context, apiKey, model string) (*groqNarrator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: feature disabled when no API key
	}

	if model == "" {
		model = DefaultGroqModel
	}

	client := openai.NewClient(
		option.WithBaseURL(ProviderEndpoint[ProviderGroq]),
		option.WithAPIKey(apiKey),
	)

	return &groqNarrator{
		client: client,
		model:  model,
	}, nil
}

// Answer generates a grounded reply for a general question.
func (n *groqNarrator) Answer(ctx context.Context, question string) (string, error) {
	return n.generate(ctx, GeneralPrompt(question))
}

// Narrate rewrites a lookup result card as a conversational reply.
func (n *groqNarrator) Narrate(ctx context.Context, card string) (string, error) {
	return n.generate(ctx, PersonPrompt(card))
}

func (n *groqNarrator) generate(ctx context.Context, prompt string) (string, error) {
	if n == nil {
		return "", fmt.Errorf("groq narrator not initialized")
	}

	params := openai.ChatCompletionNewParams{
		Model: n.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(AnswerTemperature),
		MaxTokens:   openai.Int(AnswerMaxOutputTokens),
		TopP:        openai.Float(AnswerTopP),
	}

	start := time.Now()
	resp, err := n.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "narration API call failed",
			"provider", "groq",
			"model", n.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", WrapError(fmt.Errorf("chat completion failed: %w", err), ProviderGroq, 0)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", nil
	}

	result := ScrubReply(resp.Choices[0].Message.Content)

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "narration completed",
			"provider", "groq",
			"model", n.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds())
	}

	return result, nil
}

// IsEnabled returns true if the narrator is properly initialized.
func (n *groqNarrator) IsEnabled() bool {
	return n != nil
}

// Provider returns the provider type for this narrator.
func (n *groqNarrator) Provider() Provider {
	return ProviderGroq
}

// Close releases resources.
// Safe to call on nil receiver.
func (n *groqNarrator) Close() error {
	if n == nil {
		return nil
	}
	// openai-go client doesn't require cleanup
	return nil
}
