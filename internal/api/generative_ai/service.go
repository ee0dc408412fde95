package generativeAI

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// defaultModels is the preference order walked at startup when the config
// does not narrow it down.
var defaultModels = []string{
	"gemini-2.5-flash",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
}

// AIClient wraps the genai SDK with a resolved model name and a default
// generation config.
type AIClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
	logger *slog.Logger
}

// NewAIClient creates a genai client against the Vertex AI backend and
// resolves the first usable model from the preference list.
func NewAIClient(ctx context.Context, projectID, location string, models []string, genCfg *genai.GenerateContentConfig, logger *slog.Logger) (*AIClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("google cloud project ID is required")
	}
	if location == "" {
		location = "us-central1"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if len(models) == 0 {
		models = defaultModels
	}

	ai := &AIClient{
		client: client,
		config: genCfg,
		logger: logger,
	}

	model, err := ai.resolveModel(ctx, models)
	if err != nil {
		return nil, err
	}
	ai.model = model
	logger.InfoContext(ctx, "Generative AI client initialized", slog.String("model", model))

	return ai, nil
}

// resolveModel probes each candidate with a tiny request and keeps the first
// one that answers.
func (ai *AIClient) resolveModel(ctx context.Context, models []string) (string, error) {
	probe := &genai.GenerateContentConfig{
		CandidateCount:  1,
		MaxOutputTokens: 10,
	}
	for _, m := range models {
		resp, err := ai.client.Models.GenerateContent(ctx, m, genai.Text("Hello"), probe)
		if err != nil || resp == nil || len(resp.Candidates) == 0 {
			ai.logger.WarnContext(ctx, "Model not available, trying next",
				slog.String("model", m), slog.Any("error", err))
			continue
		}
		return m, nil
	}
	return "", fmt.Errorf("no generative models are available")
}

// Model returns the resolved model name.
func (ai *AIClient) Model() string {
	return ai.model
}

// GenerateContent sends a single prompt using the client's default
// generation config and returns the concatenated response text.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return ai.GenerateWithConfig(ctx, prompt, ai.config)
}

// GenerateWithConfig sends a single prompt with an explicit generation
// config. An empty response is reported as an error, never as "".
func (ai *AIClient) GenerateWithConfig(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from model %s", ai.model)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response from model %s", ai.model)
	}
	return text, nil
}
