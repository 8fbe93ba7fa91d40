package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.Models[TierLite])
	assert.NotEmpty(t, cfg.Models[TierStandard])
	assert.NotEmpty(t, cfg.Models[TierAdvanced])
}

func TestGetModel_FallbackChain(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "lite-model",
		},
	}

	// Advanced not configured: falls through standard (missing) to lite
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))
}

func TestGetModel_NoModels(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", cfg.GetModel(TierStandard))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	cfg := DefaultConfig()
	original := cfg.GetModel(TierAdvanced)

	next := cfg.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "custom-model", next.GetModel(TierAdvanced))
	assert.Equal(t, original, cfg.GetModel(TierAdvanced))
}
