package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/multimodal-go/pkg/config"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

func TestNew(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNoOpLogger()

	t.Run("openai", func(t *testing.T) {
		client, err := New(ctx, config.ProviderConfig{Name: "openai", APIKey: "sk-test"}, logger)
		require.NoError(t, err)
		assert.Equal(t, "openai", client.Name())
	})

	t.Run("gemini api", func(t *testing.T) {
		client, err := New(ctx, config.ProviderConfig{Name: "Gemini", APIKey: "g-key"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "gemini", client.Name())
	})

	t.Run("bedrock with static credentials", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
		t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
		t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

		client, err := New(ctx, config.ProviderConfig{Name: "bedrock", Bedrock: config.BedrockConfig{Region: "us-east-1"}}, logger)
		require.NoError(t, err)
		assert.Equal(t, "bedrock", client.Name())
	})

	t.Run("missing settings", func(t *testing.T) {
		tests := []config.ProviderConfig{
			{Name: "openai"},
			{Name: "gemini"},
			{Name: "bedrock"},
			{Name: "ollama"},
		}
		for _, cfg := range tests {
			_, err := New(ctx, cfg, logger)
			assert.Error(t, err, cfg.Name)
		}
	})
}
