package payload

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

// Submitter passes messages to a model client, logging each request
type Submitter struct {
	client interfaces.ModelClient
	logger logging.Logger
}

// SubmitterOption configures a Submitter
type SubmitterOption func(*Submitter)

// WithLogger sets the logger
func WithLogger(logger logging.Logger) SubmitterOption {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// NewSubmitter creates a Submitter for client
func NewSubmitter(client interfaces.ModelClient, options ...SubmitterOption) *Submitter {
	s := &Submitter{
		client: client,
		logger: logging.NewNoOpLogger(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Submit sends msg to model. Client errors are returned as-is.
func (s *Submitter) Submit(ctx context.Context, model string, msg interfaces.Message, options ...interfaces.GenerateOption) (*interfaces.Response, error) {
	if len(msg.Parts) == 0 {
		return nil, interfaces.NewValidationError("parts", "message must contain at least one content part")
	}

	if _, ok := logging.RequestID(ctx); !ok {
		ctx = logging.WithRequestID(ctx, uuid.NewString())
	}

	start := time.Now()
	s.logger.Debug(ctx, "Submitting message", map[string]interface{}{
		"provider": s.client.Name(),
		"model":    model,
		"parts":    msg.Kinds(),
	})

	resp, err := s.client.Generate(ctx, model, msg, options...)
	if err != nil {
		s.logger.Error(ctx, "Model request failed", map[string]interface{}{
			"provider": s.client.Name(),
			"model":    model,
			"error":    err.Error(),
		})
		return nil, err
	}
	if resp == nil {
		return nil, &interfaces.RemoteServiceError{
			Provider: s.client.Name(),
			Model:    model,
			Err:      errors.New("empty response"),
		}
	}

	s.logger.Debug(ctx, "Received response", map[string]interface{}{
		"provider":   s.client.Name(),
		"model":      model,
		"durationMs": time.Since(start).Milliseconds(),
		"length":     len(resp.Content),
	})
	return resp, nil
}

// Submit sends msg to model through client without any other processing
func Submit(ctx context.Context, client interfaces.ModelClient, model string, msg interfaces.Message, options ...interfaces.GenerateOption) (*interfaces.Response, error) {
	return NewSubmitter(client).Submit(ctx, model, msg, options...)
}
