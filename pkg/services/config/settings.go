package config

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/spf13/viper"
)

const EnvPrefix = "BA"

type Settings struct {
	Server ServerSettings `mapstructure:"server"`
	Model  ModelSettings  `mapstructure:"model"`
	Parser ParserSettings `mapstructure:"parser"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ModelSettings struct {
	// Profile selects a section of the profiles file; when set it replaces
	// the inline provider settings below.
	Profile      string        `mapstructure:"profile"`
	ProfilesPath string        `mapstructure:"profiles_path"`
	Provider     string        `mapstructure:"provider"`
	Host         string        `mapstructure:"host"`
	Name         string        `mapstructure:"name"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Fallback     bool          `mapstructure:"fallback"`
}

type ParserSettings struct {
	MinLineLength int `mapstructure:"min_line_length"`
}

func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("model.profile", "")
	v.SetDefault("model.profiles_path", "")
	v.SetDefault("model.provider", string(domain.ProviderOllama))
	// Empty host and name let each provider apply its own defaults.
	v.SetDefault("model.host", "")
	v.SetDefault("model.name", "")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.timeout", 120*time.Second)
	v.SetDefault("model.fallback", true)

	v.SetDefault("parser.min_line_length", 0)
}

// LoadSettings reads the optional config file at path and overlays BA_*
// environment variables, e.g. BA_SERVER_PORT or BA_MODEL_NAME.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", s.Server.Port)
	}
	if s.Parser.MinLineLength < 0 {
		return fmt.Errorf("parser.min_line_length must not be negative, got %d", s.Parser.MinLineLength)
	}
	return nil
}

// ModelProfile resolves the backend to use, either from the named profile or
// from the inline model settings.
func (s *Settings) ModelProfile(ctx context.Context) (domain.ModelProfile, error) {
	if s.Model.Profile == "" {
		return domain.ModelProfile{
			Name:     "settings",
			Provider: domain.ProviderType(strings.ToLower(s.Model.Provider)),
			Host:     s.Model.Host,
			Model:    s.Model.Name,
			APIKey:   s.Model.APIKey,
			Timeout:  s.Model.Timeout,
		}, nil
	}

	path := s.Model.ProfilesPath
	if path == "" {
		path = DefaultProfilePath()
	}
	registry, err := NewRegistry(path)
	if err != nil {
		return domain.ModelProfile{}, err
	}
	return registry.GetProfile(ctx, s.Model.Profile)
}
