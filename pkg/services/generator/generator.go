package generator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

var ErrUnknownProvider = errors.New("unknown provider")

// TextGenerator sends a prompt to a model and returns its complete response
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelDescriber is implemented by generators that can describe the model
// they talk to, e.g. "llama3:latest (4.3GB)".
type ModelDescriber interface {
	Describe(ctx context.Context) (string, error)
}

// TransportError reports that the model server could not be reached or
// answered with a non-2xx status.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err, or anything it wraps, is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Factory builds a generator from a model profile
type Factory func(ctx context.Context, profile domain.ModelProfile) (TextGenerator, error)

// Registry maps provider names to generator factories
type Registry interface {
	Register(provider domain.ProviderType, factory Factory) error
	Create(ctx context.Context, profile domain.ModelProfile) (TextGenerator, error)
	ListProviders() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.ProviderType]Factory
}

func NewRegistry(factories map[domain.ProviderType]Factory) Registry {
	r := &registry{factories: make(map[domain.ProviderType]Factory, len(factories))}
	for provider, factory := range factories {
		r.factories[provider] = factory
	}
	return r
}

// DefaultRegistry knows every provider shipped with the assistant.
func DefaultRegistry() Registry {
	return NewRegistry(map[domain.ProviderType]Factory{
		domain.ProviderOllama: OllamaFactory,
		domain.ProviderGemini: GeminiFactory,
	})
}

func (r *registry) Register(provider domain.ProviderType, factory Factory) error {
	if provider == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[provider]; exists {
		return fmt.Errorf("provider %q is already registered", provider)
	}
	r.factories[provider] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, profile domain.ModelProfile) (TextGenerator, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Provider]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, profile.Provider)
	}
	return factory(ctx, profile)
}

func (r *registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for p := range r.factories {
		providers = append(providers, string(p))
	}
	sort.Strings(providers)
	return providers
}
