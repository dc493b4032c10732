// Package llm wraps the Gemini API behind a small client interface and
// maps each pipeline task to a model tier, so callers pick a capability
// level instead of hard-coding model names.
package llm

// ModelTier names a capability level. Cheap extraction work runs on the
// lite tier; suggestion writing needs the advanced one.
type ModelTier string

const (
	// TierLite handles job posting extraction and other mechanical tasks.
	TierLite ModelTier = "lite"
	// TierStandard handles resume extraction, which needs more layout tolerance.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles suggestion generation and gap explanation.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the backing LLM vendor.
type Provider string

// ProviderGemini is the only provider currently wired up.
const ProviderGemini Provider = "gemini"

// DefaultEmbeddingModel is used when the config names no embedding model.
const DefaultEmbeddingModel = "text-embedding-004"

// Config maps tiers to concrete model names for one provider.
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
}

// DefaultConfig returns the Gemini tier mapping the engine ships with.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel: DefaultEmbeddingModel,
	}
}

// GetModel resolves a tier to a model name. A tier with no mapping falls
// back to standard, then lite; "" means nothing is configured at all.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	for _, fallback := range []ModelTier{TierStandard, TierLite} {
		if model, ok := c.Models[fallback]; ok {
			return model
		}
	}
	return ""
}

// GetEmbeddingModel returns the configured embedding model name.
func (c *Config) GetEmbeddingModel() string {
	if c.EmbeddingModel != "" {
		return c.EmbeddingModel
	}
	return DefaultEmbeddingModel
}

func (c *Config) clone() *Config {
	models := make(map[ModelTier]string, len(c.Models))
	for tier, model := range c.Models {
		models[tier] = model
	}
	return &Config{
		Provider:       c.Provider,
		Models:         models,
		EmbeddingModel: c.EmbeddingModel,
	}
}

// WithModel returns a copy of the config with one tier remapped.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := c.clone()
	out.Models[tier] = model
	return out
}

// WithEmbeddingModel returns a copy of the config with the embedding
// model replaced.
func (c *Config) WithEmbeddingModel(model string) *Config {
	out := c.clone()
	out.EmbeddingModel = model
	return out
}
