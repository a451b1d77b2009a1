// Package payload assembles multimodal messages and hands them to an
// injected model client.
package payload

import (
	"fmt"
	"strings"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
)

// BuildMessage assembles a user message from parts, preserving their order.
// The parts slice is copied so later changes by the caller do not leak in.
func BuildMessage(parts ...interfaces.ContentPart) (interfaces.Message, error) {
	return BuildMessageWithRole(interfaces.MessageRoleUser, parts...)
}

// BuildMessageWithRole is BuildMessage with an explicit role
func BuildMessageWithRole(role interfaces.MessageRole, parts ...interfaces.ContentPart) (interfaces.Message, error) {
	if len(parts) == 0 {
		return interfaces.Message{}, interfaces.NewValidationError("parts", "message must contain at least one content part")
	}

	out := make([]interfaces.ContentPart, len(parts))
	for i, part := range parts {
		p, err := validatePart(i, part)
		if err != nil {
			return interfaces.Message{}, err
		}
		out[i] = p
	}

	return interfaces.Message{Role: role, Parts: out}, nil
}

// validatePart checks one part and returns a copy safe to retain
func validatePart(i int, part interfaces.ContentPart) (interfaces.ContentPart, error) {
	field := fmt.Sprintf("parts[%d]", i)

	switch p := part.(type) {
	case interfaces.TextPart:
		return p, nil
	case interfaces.RemoteMediaPart:
		if strings.TrimSpace(p.URI) == "" {
			return nil, interfaces.NewValidationError(field, "remote media requires a uri")
		}
		if p.Kind == "" {
			p.Kind = interfaces.MediaKindImage
		}
		return p, nil
	case interfaces.InlineMediaPart:
		if strings.TrimSpace(p.MimeType) == "" {
			return nil, interfaces.NewValidationError(field, "inline media requires a mime type")
		}
		p.Data = append([]byte(nil), p.Data...)
		return p, nil
	case nil:
		return nil, interfaces.NewValidationError(field, "content part is nil")
	default:
		return nil, interfaces.NewValidationError(field, fmt.Sprintf("unsupported content part %T", part))
	}
}
