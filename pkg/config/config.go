// Package config loads SDK and CLI settings from defaults, an optional
// config file, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "MULTIMODAL"

// Default model per modality
const (
	DefaultTextModel   = "gpt-4o-mini"
	DefaultVisionModel = "gpt-4o-mini"
	DefaultAudioModel  = "gpt-4o-audio-preview"
	DefaultVideoModel  = "gpt-4o"
	DefaultReportModel = "gpt-4o"
)

// Config is the root configuration
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Provider ProviderConfig `mapstructure:"provider"`
	Models   ModelConfig    `mapstructure:"models"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Tracing  TracingConfig  `mapstructure:"tracing"`

	// PromptsFile optionally points at a YAML file overriding pipeline prompts
	PromptsFile string `mapstructure:"prompts_file"`
}

// ProviderConfig selects and configures the model provider
type ProviderConfig struct {
	// Name is one of "openai", "gemini", "bedrock"
	Name    string        `mapstructure:"name"`
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Bedrock BedrockConfig `mapstructure:"bedrock"`
}

// GeminiConfig holds Vertex AI settings; empty Project means the Gemini API backend
type GeminiConfig struct {
	Project         string `mapstructure:"project"`
	Location        string `mapstructure:"location"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// BedrockConfig holds AWS Bedrock settings
type BedrockConfig struct {
	Region string `mapstructure:"region"`
}

// ModelConfig names the model used for each modality
type ModelConfig struct {
	Text   string `mapstructure:"text"`
	Vision string `mapstructure:"vision"`
	Audio  string `mapstructure:"audio"`
	Video  string `mapstructure:"video"`
	Report string `mapstructure:"report"`
}

// StorageConfig selects where local resources are read from
type StorageConfig struct {
	// Type is "local" or "gcs"
	Type  string            `mapstructure:"type"`
	Local LocalSourceConfig `mapstructure:"local"`
	GCS   GCSSourceConfig   `mapstructure:"gcs"`
}

// LocalSourceConfig configures filesystem reads
type LocalSourceConfig struct {
	// Root restricts reads to a directory; empty means paths are used as given
	Root string `mapstructure:"root"`
}

// GCSSourceConfig configures Google Cloud Storage reads
type GCSSourceConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

// TracingConfig configures OpenTelemetry export
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Exporter is "grpc" or "http"
	Exporter    string `mapstructure:"exporter"`
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
	ServiceName string `mapstructure:"service_name"`
}

type loadOptions struct {
	configFile string
	envFiles   []string
}

// LoadOption customizes Load
type LoadOption func(*loadOptions)

// WithConfigFile reads a YAML/TOML/JSON file before applying the environment
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnvFiles overrides the .env files loaded into the process environment
func WithEnvFiles(files ...string) LoadOption {
	return func(o *loadOptions) {
		o.envFiles = files
	}
}

// Load builds a Config. Precedence: environment, config file, defaults.
func Load(options ...LoadOption) (*Config, error) {
	opts := &loadOptions{envFiles: []string{".env"}}
	for _, opt := range options {
		opt(opts)
	}

	for _, f := range opts.envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Provider.Name = strings.ToLower(cfg.Provider.Name)
	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = providerAPIKey(cfg.Provider.Name)
	}
	if cfg.Provider.Bedrock.Region == "" {
		cfg.Provider.Bedrock.Region = os.Getenv("AWS_REGION")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("prompts_file", "")

	v.SetDefault("provider.name", "openai")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.gemini.project", "")
	v.SetDefault("provider.gemini.location", "us-central1")
	v.SetDefault("provider.gemini.credentials_file", "")
	v.SetDefault("provider.bedrock.region", "")

	v.SetDefault("models.text", DefaultTextModel)
	v.SetDefault("models.vision", DefaultVisionModel)
	v.SetDefault("models.audio", DefaultAudioModel)
	v.SetDefault("models.video", DefaultVideoModel)
	v.SetDefault("models.report", DefaultReportModel)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local.root", "")
	v.SetDefault("storage.gcs.bucket", "")
	v.SetDefault("storage.gcs.prefix", "")
	v.SetDefault("storage.gcs.credentials_file", "")
	v.SetDefault("storage.gcs.credentials_json", "")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "grpc")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", false)
	v.SetDefault("tracing.service_name", "multimodal-cli")
}

// providerAPIKey falls back to the provider's conventional variable
func providerAPIKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	default:
		return ""
	}
}
