package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const ProfileFileName = ".bacfg"

var ErrProfileNotFound = errors.New("profile not found")

// Registry exposes the model profiles declared in an ini file, e.g.
//
//	[default]
//	provider = ollama
//	host     = http://localhost:11434
//	model    = llama3:latest
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ModelProfile, error)
	GetProfile(ctx context.Context, name string) (domain.ModelProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultProfilePath is $HOME/.bacfg, or ".bacfg" when the home directory is unknown.
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ProfileFileName
	}
	return filepath.Join(home, ProfileFileName)
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ModelProfile, error) {
	var profiles []domain.ModelProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		p, err := profileFromSection(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.ModelProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.ModelProfile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return profileFromSection(section)
}

func profileFromSection(section *ini.Section) (domain.ModelProfile, error) {
	provider := strings.ToLower(section.Key("provider").MustString(string(domain.ProviderOllama)))

	var timeout time.Duration
	if raw := section.Key("timeout").String(); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return domain.ModelProfile{}, fmt.Errorf("profile %s: invalid timeout %q: %w", section.Name(), raw, err)
		}
		timeout = d
	}

	return domain.ModelProfile{
		Name:     section.Name(),
		Provider: domain.ProviderType(provider),
		Host:     section.Key("host").String(),
		Model:    section.Key("model").String(),
		APIKey:   section.Key("api_key").String(),
		Timeout:  timeout,
	}, nil
}
