package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
)

// OTELModelMiddleware wraps a ModelClient and records one span per request
type OTELModelMiddleware struct {
	client interfaces.ModelClient
	tracer trace.Tracer
}

// NewOTELModelMiddleware creates a new tracing middleware around client
func NewOTELModelMiddleware(client interfaces.ModelClient, tracer trace.Tracer) *OTELModelMiddleware {
	return &OTELModelMiddleware{
		client: client,
		tracer: tracer,
	}
}

// Generate implements interfaces.ModelClient.Generate. Errors are returned unchanged.
func (m *OTELModelMiddleware) Generate(ctx context.Context, model string, msg interfaces.Message, options ...interfaces.GenerateOption) (*interfaces.Response, error) {
	ctx, span := m.tracer.Start(ctx, "model.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", m.client.Name()),
			attribute.String("llm.model", model),
			attribute.String("llm.message.role", string(msg.Role)),
			attribute.Int("llm.message.parts", len(msg.Parts)),
			attribute.StringSlice("llm.message.part_kinds", msg.Kinds()),
		),
	)
	defer span.End()

	resp, err := m.client.Generate(ctx, model, msg, options...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}
	if resp == nil {
		err := &interfaces.RemoteServiceError{Provider: m.client.Name(), Model: model, Err: errors.New("empty response")}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("llm.response.length", len(resp.Content)))
	if resp.Model != "" {
		span.SetAttributes(attribute.String("llm.response.model", resp.Model))
	}
	if resp.Usage != nil {
		span.SetAttributes(
			attribute.Int("llm.usage.input_tokens", resp.Usage.InputTokens),
			attribute.Int("llm.usage.output_tokens", resp.Usage.OutputTokens),
		)
	}
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// Name implements interfaces.ModelClient.Name
func (m *OTELModelMiddleware) Name() string {
	return m.client.Name()
}
