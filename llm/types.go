package llm

import "context"

// Provider names used in config, settings storage and the UI.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Provider is the common contract for all text-generation providers.
// Ask composes a provider-specific prompt from the question and the
// (already truncated) document context, dispatches exactly one request
// and returns the reply's primary text. Implementations do not retry.
type Provider interface {
	// Ask sends one question plus document context and returns the
	// model's raw textual reply.
	Ask(ctx context.Context, question, docContext string) (string, error)

	// Name returns the provider name
	Name() string

	// Models returns the list of supported models
	Models() []string

	// ValidateConfig validates the provider configuration
	ValidateConfig() error
}

// Config represents provider configuration
type Config struct {
	ProviderName string // Display name for the provider
	APIKey       string
	BaseURL      string
	Model        string
	Models       []string // Available models list
	MaxTokens    int
	Temperature  float64
}

// Fallback is returned when a provider's response envelope carries no
// generated text. An empty envelope is not treated as an error.
const Fallback = "Sorry, I could not generate a response."

// New constructs the provider registered under name. Adding a provider
// means adding a case here and an implementation of Provider; callers
// never branch on provider identity themselves.
func New(name string, config Config) (Provider, error) {
	switch name {
	case ProviderOpenAI:
		return NewOpenAIProvider(config)
	case ProviderGemini:
		return NewGeminiProvider(config)
	}
	return nil, &UnknownProviderError{Name: name}
}
