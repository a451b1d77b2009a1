package gemini

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

const providerName = "gemini"

// Client implements interfaces.ModelClient on the Gemini API or Vertex AI
type Client struct {
	client          *genai.Client
	apiKey          string
	backend         genai.Backend
	projectID       string
	location        string
	credentialsFile string
	credentialsJSON []byte
	baseURL         string
	logger          logging.Logger
}

// Option represents an option for configuring the Gemini client
type Option func(*Client)

// WithAPIKey sets the Gemini API key
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithBackend selects genai.BackendGeminiAPI or genai.BackendVertexAI
func WithBackend(backend genai.Backend) Option {
	return func(c *Client) {
		c.backend = backend
	}
}

// WithProjectID sets the Vertex AI project
func WithProjectID(projectID string) Option {
	return func(c *Client) {
		c.projectID = projectID
	}
}

// WithLocation sets the Vertex AI location
func WithLocation(location string) Option {
	return func(c *Client) {
		c.location = location
	}
}

// WithCredentialsFile loads service account credentials from a file
func WithCredentialsFile(path string) Option {
	return func(c *Client) {
		c.credentialsFile = path
	}
}

// WithCredentialsJSON loads service account credentials from JSON content
func WithCredentialsJSON(data []byte) Option {
	return func(c *Client) {
		c.credentialsJSON = data
	}
}

// WithBaseURL overrides the API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithGenAIClient injects an already initialized genai.Client
func WithGenAIClient(existing *genai.Client) Option {
	return func(c *Client) {
		c.client = existing
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, options ...Option) (*Client, error) {
	c := &Client{
		backend:  genai.BackendGeminiAPI,
		location: "us-central1",
		logger:   logging.New(),
	}
	for _, option := range options {
		option(c)
	}

	if c.credentialsFile != "" && len(c.credentialsJSON) > 0 {
		return nil, fmt.Errorf("only one credential type can be provided: choose between WithCredentialsFile or WithCredentialsJSON")
	}

	if c.client != nil {
		return c, nil
	}

	clientConfig := &genai.ClientConfig{
		Backend: c.backend,
	}
	if c.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	switch c.backend {
	case genai.BackendGeminiAPI:
		if c.apiKey == "" {
			return nil, fmt.Errorf("API key is required for Gemini API backend")
		}
		clientConfig.APIKey = c.apiKey

	case genai.BackendVertexAI:
		if c.projectID == "" {
			return nil, fmt.Errorf("project ID is required for Vertex AI backend")
		}
		clientConfig.Project = c.projectID
		clientConfig.Location = c.location

		creds, err := c.detectCredentials()
		if err != nil {
			return nil, err
		}
		clientConfig.Credentials = creds

	default:
		return nil, fmt.Errorf("unsupported Gemini backend: %v", c.backend)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client

	return c, nil
}

// detectCredentials returns explicit credentials, or nil for Application Default Credentials
func (c *Client) detectCredentials() (*auth.Credentials, error) {
	scopes := []string{"https://www.googleapis.com/auth/cloud-platform"}

	switch {
	case c.credentialsFile != "":
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsFile: c.credentialsFile,
			Scopes:          scopes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials from file: %w", err)
		}
		return creds, nil
	case len(c.credentialsJSON) > 0:
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsJSON: c.credentialsJSON,
			Scopes:          scopes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials from JSON: %w", err)
		}
		return creds, nil
	default:
		return nil, nil
	}
}

// Name implements interfaces.ModelClient.Name
func (c *Client) Name() string {
	return providerName
}

// Generate sends msg as a single generateContent request
func (c *Client) Generate(ctx context.Context, model string, msg interfaces.Message, options ...interfaces.GenerateOption) (*interfaces.Response, error) {
	opts := interfaces.ApplyGenerateOptions(options...)

	parts, err := buildGeminiParts(msg.Parts)
	if err != nil {
		return nil, err
	}

	role := genai.RoleUser
	if msg.Role == interfaces.MessageRoleAssistant {
		role = genai.RoleModel
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.Role(role))}

	config := &genai.GenerateContentConfig{}
	if opts.SystemMessage != "" {
		config.SystemInstruction = genai.NewContentFromText(opts.SystemMessage, genai.RoleUser)
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.LLMConfig != nil {
		if opts.LLMConfig.Temperature > 0 {
			t := float32(opts.LLMConfig.Temperature)
			config.Temperature = &t
		}
		if opts.LLMConfig.TopP > 0 {
			p := float32(opts.LLMConfig.TopP)
			config.TopP = &p
		}
	}

	c.logger.Debug(ctx, "Generating content with Gemini", map[string]interface{}{
		"model": model,
		"parts": msg.Kinds(),
	})

	result, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		remoteErr := &interfaces.RemoteServiceError{Provider: providerName, Model: model, Err: err}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			remoteErr.StatusCode = apiErr.Code
		}
		c.logger.Error(ctx, "Failed to generate content", map[string]interface{}{
			"model":      model,
			"statusCode": remoteErr.StatusCode,
			"error":      err.Error(),
		})
		return nil, remoteErr
	}

	if result == nil || len(result.Candidates) == 0 {
		return nil, &interfaces.RemoteServiceError{
			Provider: providerName,
			Model:    model,
			Err:      fmt.Errorf("no candidates in response"),
		}
	}

	resp := &interfaces.Response{
		Content: result.Text(),
		Model:   model,
		Metadata: map[string]interface{}{
			"finish_reason": string(result.Candidates[0].FinishReason),
		},
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if result.UsageMetadata != nil {
		resp.Usage = &interfaces.Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}
	return resp, nil
}
