// Package llm selects and builds a model client from configuration.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Ingenimax/multimodal-go/pkg/config"
	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/llm/anthropic"
	"github.com/Ingenimax/multimodal-go/pkg/llm/gemini"
	"github.com/Ingenimax/multimodal-go/pkg/llm/openai"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

// New creates the model client named by cfg.Name
func New(ctx context.Context, cfg config.ProviderConfig, logger logging.Logger) (interfaces.ModelClient, error) {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	switch provider := strings.ToLower(cfg.Name); provider {
	case "openai", "":
		return createOpenAIClient(cfg, logger)
	case "gemini":
		return createGeminiClient(ctx, cfg, logger)
	case "bedrock", "anthropic":
		return createBedrockClient(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, gemini, bedrock)", provider)
	}
}

func createOpenAIClient(cfg config.ProviderConfig, logger logging.Logger) (interfaces.ModelClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for OpenAI provider (set OPENAI_API_KEY or MULTIMODAL_PROVIDER_API_KEY)")
	}

	options := []openai.Option{openai.WithLogger(logger)}
	if cfg.BaseURL != "" {
		options = append(options, openai.WithBaseURL(cfg.BaseURL))
	}
	return openai.NewClient(cfg.APIKey, options...), nil
}

func createGeminiClient(ctx context.Context, cfg config.ProviderConfig, logger logging.Logger) (interfaces.ModelClient, error) {
	options := []gemini.Option{gemini.WithLogger(logger)}
	if cfg.BaseURL != "" {
		options = append(options, gemini.WithBaseURL(cfg.BaseURL))
	}

	// A project selects Vertex AI, otherwise the Gemini API key is used
	if cfg.Gemini.Project != "" {
		options = append(options,
			gemini.WithBackend(genai.BackendVertexAI),
			gemini.WithProjectID(cfg.Gemini.Project),
		)
		if cfg.Gemini.Location != "" {
			options = append(options, gemini.WithLocation(cfg.Gemini.Location))
		}
		if cfg.Gemini.CredentialsFile != "" {
			options = append(options, gemini.WithCredentialsFile(cfg.Gemini.CredentialsFile))
		}
	} else {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("api_key is required for Gemini provider (set GEMINI_API_KEY or configure provider.gemini.project)")
		}
		options = append(options, gemini.WithAPIKey(cfg.APIKey))
	}

	return gemini.NewClient(ctx, options...)
}

func createBedrockClient(ctx context.Context, cfg config.ProviderConfig, logger logging.Logger) (interfaces.ModelClient, error) {
	if cfg.Bedrock.Region == "" {
		return nil, fmt.Errorf("region is required for Bedrock provider (set AWS_REGION or provider.bedrock.region)")
	}
	return anthropic.NewBedrockClientFromEnv(ctx, cfg.Bedrock.Region, anthropic.WithLogger(logger))
}
