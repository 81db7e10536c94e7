package capabilities

// ModelCapabilities describes one model's limits and features.
type ModelCapabilities struct {
	ID              string `yaml:"id"`
	DisplayName     string `yaml:"display_name"`
	ContextWindow   int    `yaml:"context_window"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
	SupportsTools   bool   `yaml:"supports_tools"`
}

// ProviderCapabilities groups the models of one provider.
type ProviderCapabilities struct {
	Provider string              `yaml:"provider"`
	Models   []ModelCapabilities `yaml:"models"`
}
