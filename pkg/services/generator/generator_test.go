package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/de-tools/ba-assistant/pkg/services/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGenerator struct{ text string }

func (s staticGenerator) Name() string { return "static" }
func (s staticGenerator) Generate(context.Context, string) (string, error) {
	return s.text, nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(nil)
	factory := func(_ context.Context, p domain.ModelProfile) (TextGenerator, error) {
		return staticGenerator{text: p.Model}, nil
	}

	require.NoError(t, reg.Register("static", factory))
	assert.Error(t, reg.Register("static", factory))
	assert.Error(t, reg.Register("", factory))
	assert.Error(t, reg.Register("other", nil))

	gen, err := reg.Create(context.Background(), domain.ModelProfile{Provider: "static", Model: "m1"})
	require.NoError(t, err)
	out, err := gen.Generate(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "m1", out)

	_, err = reg.Create(context.Background(), domain.ModelProfile{Provider: "missing"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []string{"gemini", "ollama"}, reg.ListProviders())

	gen, err := reg.Create(context.Background(), domain.ModelProfile{
		Provider: domain.ProviderOllama,
		Host:     "http://example.invalid:11434",
		Model:    "phi3",
	})
	require.NoError(t, err)
	assert.Equal(t, "ollama:phi3", gen.Name())
}

func TestDefaultRegistry_EmptyModelUsesProviderDefault(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.ModelProfile
		want    string
	}{
		{"ollama", domain.ModelProfile{Provider: domain.ProviderOllama}, "ollama:" + DefaultOllamaModel},
		{"gemini", domain.ModelProfile{Provider: domain.ProviderGemini, APIKey: "test-key"}, "gemini:" + DefaultGeminiModel},
	}

	reg := DefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := reg.Create(context.Background(), tt.profile)
			require.NoError(t, err)
			assert.Equal(t, tt.want, gen.Name())
		})
	}
}

func TestTransportError(t *testing.T) {
	inner := errors.New("connection refused")
	err := error(&TransportError{Op: "ollama /api/generate", Err: inner})

	assert.Equal(t, "ollama /api/generate: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsTransportError(inner))

	withStatus := &TransportError{Op: "x", StatusCode: 500, Err: errors.New("boom")}
	assert.Equal(t, "x: unexpected status 500: boom", withStatus.Error())
}

func TestFallbackReport_FillsEverySection(t *testing.T) {
	raw := FallbackReport(domain.Project{Name: "Task App"})
	r := parser.Parse(raw)

	assert.Contains(t, r.ExecutiveSummary, "The Task App project aims")
	for _, kind := range domain.ListSections {
		assert.NotEmpty(t, r.Items(kind), kind.Title())
	}
	assert.Equal(t, "FR-001: User authentication and secure access management", r.FunctionalRequirements[0])
	assert.Equal(t, "The system is available 99.5% of the time", r.NonFunctionalRequirements[2])
	assert.Equal(t, "llama3:latest (Demo Mode)", FallbackModelInfo("llama3:latest"))
}
