package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", s.Server.Addr())
	assert.Equal(t, 10*time.Second, s.Server.ShutdownTimeout)
	assert.Equal(t, "ollama", s.Model.Provider)
	assert.Empty(t, s.Model.Name)
	assert.Empty(t, s.Model.Host)
	assert.Equal(t, 120*time.Second, s.Model.Timeout)
	assert.True(t, s.Model.Fallback)
	assert.Equal(t, 0, s.Parser.MinLineLength)
}

func TestLoadSettings_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	path := writeFile(t, "ba.yaml", `server:
  host: "0.0.0.0"
  port: 9000
  shutdown_timeout: 5s
model:
  provider: gemini
  name: gemini-2.0-flash
  api_key: secret
  timeout: 30s
  fallback: false
parser:
  min_line_length: 10`)

	// When
	s, err := LoadSettings(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", s.Server.Addr())
	assert.Equal(t, 5*time.Second, s.Server.ShutdownTimeout)
	assert.Equal(t, "gemini", s.Model.Provider)
	assert.Equal(t, "gemini-2.0-flash", s.Model.Name)
	assert.Equal(t, "secret", s.Model.APIKey)
	assert.Equal(t, 30*time.Second, s.Model.Timeout)
	assert.False(t, s.Model.Fallback)
	assert.Equal(t, 10, s.Parser.MinLineLength)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("BA_SERVER_PORT", "9191")
	t.Setenv("BA_MODEL_NAME", "phi3:mini")

	s, err := LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, 9191, s.Server.Port)
	assert.Equal(t, "phi3:mini", s.Model.Name)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "server: [unclosed"},
		{name: "bad port", content: "server:\n  port: 70000"},
		{name: "negative min length", content: "parser:\n  min_line_length: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeFile(t, "ba.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

const profilesFile = `[default]
provider = ollama
host = http://localhost:11434
model = llama3:latest
timeout = 90s

[cloud]
provider = Gemini
model = gemini-2.0-flash
api_key = key-123

[empty]
`

func TestRegistry_GetProfiles(t *testing.T) {
	reg, err := NewRegistry(writeFile(t, ProfileFileName, profilesFile))
	require.NoError(t, err)

	profiles, err := reg.GetProfiles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.ModelProfile{
		{
			Name:     "default",
			Provider: domain.ProviderOllama,
			Host:     "http://localhost:11434",
			Model:    "llama3:latest",
			Timeout:  90 * time.Second,
		},
		{
			Name:     "cloud",
			Provider: domain.ProviderGemini,
			Model:    "gemini-2.0-flash",
			APIKey:   "key-123",
		},
	}, profiles)
}

func TestRegistry_GetProfile(t *testing.T) {
	reg, err := NewRegistry(writeFile(t, ProfileFileName, profilesFile))
	require.NoError(t, err)

	p, err := reg.GetProfile(context.Background(), "cloud")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, p.Provider)

	_, err = reg.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = reg.GetProfile(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRegistry_InvalidTimeout(t *testing.T) {
	reg, err := NewRegistry(writeFile(t, ProfileFileName, "[default]\ntimeout = soon\n"))
	require.NoError(t, err)

	_, err = reg.GetProfile(context.Background(), "default")
	assert.Error(t, err)
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSettings_ModelProfile(t *testing.T) {
	inline := Settings{Model: ModelSettings{Provider: "OLLAMA", Host: "http://h:1", Name: "m", Timeout: time.Second}}
	p, err := inline.ModelProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ModelProfile{
		Name:     "settings",
		Provider: domain.ProviderOllama,
		Host:     "http://h:1",
		Model:    "m",
		Timeout:  time.Second,
	}, p)

	fromFile := Settings{Model: ModelSettings{
		Profile:      "cloud",
		ProfilesPath: writeFile(t, ProfileFileName, profilesFile),
	}}
	p, err = fromFile.ModelProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cloud", p.Name)
	assert.Equal(t, "key-123", p.APIKey)
}

func TestSettings_ModelProfile_ProviderFromEnvKeepsModelUnset(t *testing.T) {
	t.Setenv("BA_MODEL_PROVIDER", "gemini")

	s, err := LoadSettings("")
	require.NoError(t, err)

	p, err := s.ModelProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, p.Provider)
	assert.Empty(t, p.Model)
	assert.Empty(t, p.Host)
}
