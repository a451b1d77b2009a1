package interfaces

import "context"

// ModelClient submits a message to a hosted model and returns its text response.
// Implementations own transport, authentication and the request schema.
type ModelClient interface {
	// Generate submits msg to the named model
	Generate(ctx context.Context, model string, msg Message, options ...GenerateOption) (*Response, error)

	// Name returns the name of the provider
	Name() string
}

// GenerateOption represents options for a single request
type GenerateOption func(options *GenerateOptions)

// GenerateOptions contains per-request configuration
type GenerateOptions struct {
	SystemMessage string // System message for chat models
	MaxTokens     int    // 0 = provider default
	LLMConfig     *LLMConfig
}

type LLMConfig struct {
	Temperature float64 // Temperature for the generation
	TopP        float64 // Top P for the generation
}

// WithSystemMessage creates a GenerateOption to set the system message
func WithSystemMessage(systemMessage string) GenerateOption {
	return func(options *GenerateOptions) {
		options.SystemMessage = systemMessage
	}
}

// WithMaxTokens creates a GenerateOption to cap the response length
func WithMaxTokens(maxTokens int) GenerateOption {
	return func(options *GenerateOptions) {
		options.MaxTokens = maxTokens
	}
}

// WithTemperature creates a GenerateOption to set the temperature
func WithTemperature(temperature float64) GenerateOption {
	return func(options *GenerateOptions) {
		if options.LLMConfig == nil {
			options.LLMConfig = &LLMConfig{}
		}
		options.LLMConfig.Temperature = temperature
	}
}

// WithTopP creates a GenerateOption to set the top_p
func WithTopP(topP float64) GenerateOption {
	return func(options *GenerateOptions) {
		if options.LLMConfig == nil {
			options.LLMConfig = &LLMConfig{}
		}
		options.LLMConfig.TopP = topP
	}
}

// ApplyGenerateOptions folds options into a fresh GenerateOptions
func ApplyGenerateOptions(options ...GenerateOption) *GenerateOptions {
	opts := &GenerateOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}
