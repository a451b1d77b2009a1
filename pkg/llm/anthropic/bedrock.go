package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

const (
	providerName     = "bedrock"
	anthropicVersion = "bedrock-2023-05-31"
	defaultMaxTokens = 1024
)

// invoker is the subset of the Bedrock runtime client used here
type invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient implements interfaces.ModelClient for Anthropic models on AWS Bedrock
type BedrockClient struct {
	client       invoker
	region       string
	maxTokens    int
	cacheControl *CacheControl
	logger       logging.Logger
}

// Option represents an option for configuring the Bedrock client
type Option func(*BedrockClient)

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(c *BedrockClient) {
		c.logger = logger
	}
}

// WithDefaultMaxTokens sets max_tokens when the request does not specify one
func WithDefaultMaxTokens(maxTokens int) Option {
	return func(c *BedrockClient) {
		c.maxTokens = maxTokens
	}
}

// WithPromptCaching marks the last content block as a cache breakpoint
func WithPromptCaching(cc *CacheControl) Option {
	return func(c *BedrockClient) {
		c.cacheControl = cc
	}
}

// withInvoker replaces the runtime client
func withInvoker(inv invoker) Option {
	return func(c *BedrockClient) {
		c.client = inv
	}
}

// NewBedrockClient creates a client from an existing AWS config.
// Credentials and settings are configured through the aws.Config itself.
func NewBedrockClient(ctx context.Context, awsConfig aws.Config, options ...Option) (*BedrockClient, error) {
	if awsConfig.Region == "" {
		return nil, fmt.Errorf("region is required in AWS config")
	}

	c := &BedrockClient{
		region:    awsConfig.Region,
		maxTokens: defaultMaxTokens,
		logger:    logging.New(),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.client == nil {
		c.client = bedrockruntime.NewFromConfig(awsConfig)
	}

	if !IsBedrockRegionSupported(c.region) {
		c.logger.Warn(ctx, "Region is not known to host Anthropic models", map[string]interface{}{
			"region": c.region,
		})
	}

	return c, nil
}

// NewBedrockClientFromEnv loads the default AWS credential chain for region
func NewBedrockClientFromEnv(ctx context.Context, region string, options ...Option) (*BedrockClient, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewBedrockClient(ctx, awsConfig, options...)
}

// Message is an Anthropic messages API turn
type Message struct {
	Role    string              `json:"role"`
	Content []contentBlockParam `json:"content"`
}

// BedrockRequest represents the request format for AWS Bedrock (uses standard Anthropic format)
type BedrockRequest struct {
	MaxTokens        int       `json:"max_tokens"`
	Messages         []Message `json:"messages"`
	System           string    `json:"system,omitempty"`
	Temperature      float64   `json:"temperature,omitempty"`
	TopP             float64   `json:"top_p,omitempty"`
	AnthropicVersion string    `json:"anthropic_version"`
}

// CompletionResponse is the Anthropic messages API response
type CompletionResponse struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Name implements interfaces.ModelClient.Name
func (c *BedrockClient) Name() string {
	return providerName
}

// Generate invokes modelID with msg (non-streaming)
func (c *BedrockClient) Generate(ctx context.Context, modelID string, msg interfaces.Message, options ...interfaces.GenerateOption) (*interfaces.Response, error) {
	if !IsBedrockModel(modelID) {
		return nil, interfaces.NewValidationError("model", fmt.Sprintf("%q is not an Anthropic model ID on Bedrock", modelID))
	}
	opts := interfaces.ApplyGenerateOptions(options...)

	req, err := c.buildRequest(msg, opts)
	if err != nil {
		return nil, err
	}

	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.logger.Debug(ctx, "Invoking Bedrock model", map[string]interface{}{
		"modelID":     modelID,
		"region":      c.region,
		"requestSize": len(requestBody),
	})

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        requestBody,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		remoteErr := &interfaces.RemoteServiceError{Provider: providerName, Model: modelID, Err: err}
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			remoteErr.StatusCode = respErr.HTTPStatusCode()
		}
		c.logger.Error(ctx, "Failed to invoke Bedrock model", map[string]interface{}{
			"error":   err.Error(),
			"modelID": modelID,
			"region":  c.region,
		})
		return nil, remoteErr
	}

	// Bedrock returns the standard Anthropic response format
	var resp CompletionResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		c.logger.Error(ctx, "Failed to parse Bedrock response", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, &interfaces.RemoteServiceError{
			Provider: providerName,
			Model:    modelID,
			Err:      fmt.Errorf("failed to parse Bedrock response: %w", err),
		}
	}

	c.logger.Debug(ctx, "Successfully received response from Bedrock", map[string]interface{}{
		"modelID":      modelID,
		"stopReason":   resp.StopReason,
		"inputTokens":  resp.Usage.InputTokens,
		"outputTokens": resp.Usage.OutputTokens,
	})

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	model := resp.Model
	if model == "" {
		model = modelID
	}
	return &interfaces.Response{
		Content: text.String(),
		Model:   model,
		Usage: &interfaces.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
		Metadata: map[string]interface{}{
			"id":          resp.ID,
			"stop_reason": resp.StopReason,
		},
	}, nil
}

func (c *BedrockClient) buildRequest(msg interfaces.Message, opts *interfaces.GenerateOptions) (*BedrockRequest, error) {
	blocks, err := buildContentBlocks(msg.Parts)
	if err != nil {
		return nil, err
	}
	if c.cacheControl != nil && len(blocks) > 0 {
		blocks[len(blocks)-1].CacheControl = c.cacheControl
	}

	role := "user"
	if msg.Role == interfaces.MessageRoleAssistant {
		role = "assistant"
	}

	req := &BedrockRequest{
		MaxTokens:        c.maxTokens,
		Messages:         []Message{{Role: role, Content: blocks}},
		System:           opts.SystemMessage,
		AnthropicVersion: anthropicVersion,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.LLMConfig != nil {
		req.Temperature = opts.LLMConfig.Temperature
		req.TopP = opts.LLMConfig.TopP
	}
	return req, nil
}

// IsBedrockModel reports whether model names an Anthropic model on Bedrock:
// a base or cross-region model ID ("us.anthropic.claude-...") or a Bedrock ARN.
func IsBedrockModel(model string) bool {
	return strings.Contains(model, "anthropic.claude") || strings.HasPrefix(model, "arn:aws:bedrock:")
}

// GetSupportedBedrockRegions returns a list of AWS regions that support Anthropic models on Bedrock
func GetSupportedBedrockRegions() []string {
	return []string{
		"us-east-1",
		"us-west-2",
		"ap-south-1",
		"ap-southeast-1",
		"ap-southeast-2",
		"ap-northeast-1",
		"eu-central-1",
		"eu-west-1",
		"eu-west-2",
		"eu-west-3",
		"ca-central-1",
		"sa-east-1",
	}
}

// IsBedrockRegionSupported checks if a region supports Anthropic models on Bedrock
func IsBedrockRegionSupported(region string) bool {
	for _, supported := range GetSupportedBedrockRegions() {
		if region == supported {
			return true
		}
	}
	return false
}
