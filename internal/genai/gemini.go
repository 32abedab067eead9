// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the Gemini implementation of the Narrator.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiNarrator answers general questions with the Gemini API.
// It implements the Narrator interface.
type geminiNarrator struct {
	client *genai.Client
	model  string
}

// newGeminiNarrator creates a new Gemini-based narrator.
// Returns nil if apiKey is empty (narration disabled).
func newGeminiNarrator(ctx context.Context, apiKey, model string) (*geminiNarrator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: feature disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiNarrator{
		client: client,
		model:  model,
	}, nil
}

// Answer generates a grounded reply for a general question.
func (n *geminiNarrator) Answer(ctx context.Context, question string) (string, error) {
	return n.generate(ctx, GeneralPrompt(question))
}

// Narrate rewrites a lookup result card as a conversational reply.
func (n *geminiNarrator) Narrate(ctx context.Context, card string) (string, error) {
	return n.generate(ctx, PersonPrompt(card))
}

func (n *geminiNarrator) generate(ctx context.Context, prompt string) (string, error) {
	if n == nil || n.client == nil {
		return "", fmt.Errorf("gemini narrator not initialized")
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](AnswerTemperature),
		MaxOutputTokens: AnswerMaxOutputTokens,
		TopP:            genai.Ptr[float32](AnswerTopP),
		TopK:            genai.Ptr[float32](AnswerTopK),
	}

	start := time.Now()
	resp, err := n.client.Models.GenerateContent(ctx, n.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "narration API call failed",
			"provider", "gemini",
			"model", n.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", WrapError(fmt.Errorf("generate content failed: %w", err), ProviderGemini, 0)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			answer.WriteString(part.Text)
		}
	}

	result := ScrubReply(answer.String())

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "narration completed",
			"provider", "gemini",
			"model", n.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"total_tokens", resp.UsageMetadata.TotalTokenCount,
			"duration_ms", duration.Milliseconds())
	}

	return result, nil
}

// IsEnabled returns true if the narrator is properly initialized.
func (n *geminiNarrator) IsEnabled() bool {
	return n != nil && n.client != nil
}

// Provider returns the provider type for this narrator.
func (n *geminiNarrator) Provider() Provider {
	return ProviderGemini
}

// Close releases resources.
// Safe to call on nil receiver.
func (n *geminiNarrator) Close() error {
	if n == nil {
		return nil
	}
	// Note: genai.Client does not require explicit cleanup in current SDK version
	return nil
}
