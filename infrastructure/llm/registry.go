package llm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/brandscope/brandscope/internal/ports"
)

// Registry manages the set of LLM clients a collection run queries,
// keyed by the model alias used in configuration and answer records.
// It is safe for concurrent use once populated.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]ports.LLMClient
}

// NewRegistry creates an empty client registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]ports.LLMClient)}
}

// Register adds a client under the given model alias. Registering the
// same alias twice replaces the earlier client.
func (r *Registry) Register(alias string, client ports.LLMClient) error {
	if alias == "" {
		return fmt.Errorf("model alias cannot be empty")
	}
	if client == nil {
		return fmt.Errorf("client for %q cannot be nil", alias)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[alias] = client
	return nil
}

// Get returns the client registered under the alias.
func (r *Registry) Get(alias string) (ports.LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[alias]
	if !ok {
		return nil, fmt.Errorf("no client registered for model %q", alias)
	}
	return client, nil
}

// Aliases returns the registered model aliases in sorted order, so
// collection runs iterate models deterministically.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make([]string, 0, len(r.clients))
	for alias := range r.clients {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// BuildRegistry constructs clients from per-alias provider
// configurations and registers them under their aliases. It fails fast
// on the first invalid configuration.
func BuildRegistry(configs map[string]ProviderConfig) (*Registry, error) {
	registry := NewRegistry()

	for alias, cfg := range configs {
		client, err := NewClient(cfg.Provider, cfg.Client)
		if err != nil {
			return nil, fmt.Errorf("building client for %q: %w", alias, err)
		}
		if err := registry.Register(alias, client); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// ProviderConfig pairs a provider type with its client configuration
// for registry construction.
type ProviderConfig struct {
	// Provider selects the factory: "openai", "anthropic", or "google".
	Provider string
	// Client holds the provider's connection settings.
	Client ClientConfig
}
