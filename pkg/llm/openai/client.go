package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

const providerName = "openai"

// Client implements interfaces.ModelClient on the OpenAI chat completions API
type Client struct {
	client  openai.Client
	logger  logging.Logger
	builder *contentBuilder
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// Option represents an option for configuring the OpenAI client
type Option func(*clientOptions)

// WithBaseURL points the client at a compatible endpoint
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a new OpenAI client. Requests are never retried.
func NewClient(apiKey string, options ...Option) *Client {
	opts := &clientOptions{logger: logging.New()}
	for _, opt := range options {
		opt(opts)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.baseURL))
	}
	if opts.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.httpClient))
	}

	return &Client{
		client:  openai.NewClient(reqOpts...),
		logger:  opts.logger,
		builder: newContentBuilder(opts.logger),
	}
}

// Name implements interfaces.ModelClient.Name
func (c *Client) Name() string {
	return providerName
}

// Generate sends msg as a single chat completion request
func (c *Client) Generate(ctx context.Context, model string, msg interfaces.Message, options ...interfaces.GenerateOption) (*interfaces.Response, error) {
	opts := interfaces.ApplyGenerateOptions(options...)

	messages, err := c.builder.buildMessages(ctx, msg, opts.SystemMessage)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: messages,
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.LLMConfig != nil {
		if opts.LLMConfig.Temperature > 0 {
			params.Temperature = openai.Float(opts.LLMConfig.Temperature)
		}
		if opts.LLMConfig.TopP > 0 {
			params.TopP = openai.Float(opts.LLMConfig.TopP)
		}
	}

	c.logger.Debug(ctx, "Sending chat completion request", map[string]interface{}{
		"model": model,
		"parts": msg.Kinds(),
	})

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		remoteErr := &interfaces.RemoteServiceError{Provider: providerName, Model: model, Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			remoteErr.StatusCode = apiErr.StatusCode
		}
		c.logger.Error(ctx, "Chat completion request failed", map[string]interface{}{
			"model":      model,
			"statusCode": remoteErr.StatusCode,
			"error":      err.Error(),
		})
		return nil, remoteErr
	}

	if len(completion.Choices) == 0 {
		return nil, &interfaces.RemoteServiceError{
			Provider: providerName,
			Model:    model,
			Err:      fmt.Errorf("no choices in response"),
		}
	}

	return &interfaces.Response{
		Content: completion.Choices[0].Message.Content,
		Model:   completion.Model,
		Usage: &interfaces.Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
		},
		Metadata: map[string]interface{}{
			"id":            completion.ID,
			"finish_reason": completion.Choices[0].FinishReason,
		},
	}, nil
}
