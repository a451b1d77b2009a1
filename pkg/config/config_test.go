package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, "sk-test", cfg.Provider.APIKey)
	assert.Equal(t, DefaultTextModel, cfg.Models.Text)
	assert.Equal(t, DefaultAudioModel, cfg.Models.Audio)
	assert.Equal(t, DefaultVideoModel, cfg.Models.Video)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("MULTIMODAL_PROVIDER_NAME", "Gemini")
	t.Setenv("MULTIMODAL_MODELS_VISION", "gemini-2.5-flash")
	t.Setenv("MULTIMODAL_TRACING_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider.Name)
	assert.Equal(t, "g-key", cfg.Provider.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Models.Vision)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multimodal.yaml")
	content := `
log_level: debug
provider:
  name: bedrock
  bedrock:
    region: us-east-1
storage:
  type: gcs
  gcs:
    bucket: inspections
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(WithEnvFiles(), WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "bedrock", cfg.Provider.Name)
	assert.Equal(t, "us-east-1", cfg.Provider.Bedrock.Region)
	assert.Equal(t, "gcs", cfg.Storage.Type)
	assert.Equal(t, "inspections", cfg.Storage.GCS.Bucket)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MULTIMODAL_MODELS_TEXT=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MULTIMODAL_MODELS_TEXT") })

	cfg, err := Load(WithEnvFiles(path, filepath.Join(dir, "missing.env")))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Models.Text)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(WithEnvFiles(), WithConfigFile(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}
