package assistant

import (
	"fmt"

	"rolodex/internal/capabilities"
	"rolodex/internal/config"
)

// providerFactory builds a ModelProvider for one named backend. Keeping
// construction behind factories lets main wire both real and mock
// providers without importing their packages here.
type providerFactory func(cfg *config.Config) (ModelProvider, error)

var providerFactories = map[string]providerFactory{}

// RegisterProvider makes a provider constructible by name. Called from
// provider package init via the wiring in cmd/server.
func RegisterProvider(name string, factory func(cfg *config.Config) (ModelProvider, error)) {
	providerFactories[name] = factory
}

// SelectProvider resolves the configured provider and validates the
// configured model against the capability registry. An unregistered model
// is a startup error rather than a per-request surprise. Models without
// tool support are allowed; the loop degrades to text-only conversation.
func SelectProvider(cfg *config.Config, registry *capabilities.Registry) (ModelProvider, error) {
	factory, ok := providerFactories[cfg.DefaultProvider]
	if !ok {
		return nil, fmt.Errorf("unknown model provider %q", cfg.DefaultProvider)
	}

	caps, err := registry.GetModelCapabilities(cfg.DefaultProvider, cfg.DefaultModel)
	if err != nil {
		return nil, fmt.Errorf("model %q is not registered for provider %q: %w", cfg.DefaultModel, cfg.DefaultProvider, err)
	}
	if cfg.MaxTokens > caps.MaxOutputTokens {
		return nil, fmt.Errorf("configured max tokens %d exceeds model limit %d", cfg.MaxTokens, caps.MaxOutputTokens)
	}

	provider, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	if !provider.SupportsModel(cfg.DefaultModel) {
		return nil, fmt.Errorf("provider %q does not support model %q", provider.Name(), cfg.DefaultModel)
	}
	return provider, nil
}
