package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultOllamaHost  = "http://localhost:11434"
	DefaultOllamaModel = "llama3:latest"

	defaultTimeout   = 120 * time.Second
	modelInfoTTL     = 5 * time.Minute
	modelInfoEntries = 64
	maxErrorBody     = 2048
)

type OllamaConfig struct {
	Host    string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// OllamaClient talks to a local Ollama server over its JSON API
type OllamaClient struct {
	http  *http.Client
	host  string
	model string
	info  *expirable.LRU[string, string]
}

func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	host := strings.TrimRight(strings.TrimSpace(cfg.Host), "/")
	if host == "" {
		host = DefaultOllamaHost
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultOllamaModel
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &OllamaClient{
		http:  client,
		host:  host,
		model: model,
		info:  expirable.NewLRU[string, string](modelInfoEntries, nil, modelInfoTTL),
	}
}

func OllamaFactory(_ context.Context, profile domain.ModelProfile) (TextGenerator, error) {
	return NewOllamaClient(OllamaConfig{
		Host:    profile.Host,
		Model:   profile.Model,
		Timeout: profile.Timeout,
	}), nil
}

func (c *OllamaClient) Name() string { return "ollama:" + c.model }

type ollamaGenerateReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResp struct {
	Response string `json:"response"`
}

type ollamaModel struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type ollamaTagsResp struct {
	Models []ollamaModel `json:"models"`
}

// Generate runs a non-streaming completion.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaGenerateReq{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	var out ollamaGenerateResp
	if err := c.do(ctx, http.MethodPost, "/api/generate", bytes.NewReader(body), &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Describe looks up the configured model among the installed ones and reports
// its name and size. Results are cached for a few minutes.
func (c *OllamaClient) Describe(ctx context.Context) (string, error) {
	key := c.host + "|" + c.model
	if info, ok := c.info.Get(key); ok {
		return info, nil
	}

	var tags ollamaTagsResp
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return "", err
	}

	info := c.model
	if m, ok := tags.find(c.model); ok {
		info = fmt.Sprintf("%s (%.1fGB)", m.Name, float64(m.Size)/(1024*1024*1024))
	}
	c.info.Add(key, info)
	return info, nil
}

// find prefers the exact tag and falls back to the first one of the same family.
func (t ollamaTagsResp) find(model string) (ollamaModel, bool) {
	for _, m := range t.Models {
		if m.Name == model {
			return m, true
		}
	}
	family := modelFamily(model)
	for _, m := range t.Models {
		if strings.Contains(m.Name, family) {
			return m, true
		}
	}
	return ollamaModel{}, false
}

func (c *OllamaClient) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	op := "ollama " + path
	req, err := http.NewRequestWithContext(ctx, method, c.host+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(b)))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// modelFamily strips the tag: "llama3:latest" -> "llama3".
func modelFamily(model string) string {
	if i := strings.Index(model, ":"); i > 0 {
		return model[:i]
	}
	return model
}
