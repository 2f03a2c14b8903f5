package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	models *genai.Models
	model  string
}

// NewGeminiClient creates a client for the Gemini API. An empty apiKey lets
// genai fall back to GOOGLE_API_KEY / GEMINI_API_KEY.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{models: cli.Models, model: model}, nil
}

func GeminiFactory(ctx context.Context, profile domain.ModelProfile) (TextGenerator, error) {
	g, err := NewGeminiClient(ctx, profile.APIKey, profile.Model, profile.Timeout)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &TransportError{Op: "gemini generate", Err: err}
	}
	text := resp.Text()
	if text == "" {
		return "", &TransportError{Op: "gemini generate", Err: errors.New("empty response")}
	}
	return text, nil
}

// Describe reports the configured model; the API is not queried.
func (g *GeminiClient) Describe(context.Context) (string, error) {
	return g.model, nil
}
