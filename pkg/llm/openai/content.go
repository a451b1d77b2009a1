package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
	"github.com/Ingenimax/multimodal-go/pkg/payload"
)

// contentBuilder converts messages into OpenAI chat messages
type contentBuilder struct {
	logger logging.Logger
}

func newContentBuilder(logger logging.Logger) *contentBuilder {
	return &contentBuilder{
		logger: logger,
	}
}

// buildMessages returns the request messages, system message first
func (b *contentBuilder) buildMessages(ctx context.Context, msg interfaces.Message, systemMessage string) ([]openai.ChatCompletionMessageParamUnion, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemMessage != "" {
		messages = append(messages, openai.SystemMessage(systemMessage))
	}

	items, err := b.buildContentParts(msg.Parts)
	if err != nil {
		b.logger.Error(ctx, "Failed to build content parts", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	switch msg.Role {
	case interfaces.MessageRoleSystem:
		text, err := textOnly(msg.Parts)
		if err != nil {
			return nil, err
		}
		messages = append(messages, openai.SystemMessage(text))
	case interfaces.MessageRoleAssistant:
		text, err := textOnly(msg.Parts)
		if err != nil {
			return nil, err
		}
		messages = append(messages, openai.AssistantMessage(text))
	default:
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: items,
				},
			},
		})
	}

	return messages, nil
}

// buildContentParts maps every part to exactly one OpenAI content part
func (b *contentBuilder) buildContentParts(parts []interfaces.ContentPart) ([]openai.ChatCompletionContentPartUnionParam, error) {
	items := make([]openai.ChatCompletionContentPartUnionParam, 0, len(parts))

	for i, part := range parts {
		switch p := part.(type) {
		case interfaces.TextPart:
			items = append(items, openai.TextContentPart(p.Text))

		case interfaces.RemoteMediaPart:
			if p.Kind != interfaces.MediaKindImage {
				return nil, interfaces.NewValidationError(fmt.Sprintf("parts[%d]", i), fmt.Sprintf("remote %s is not supported by OpenAI chat completions", p.Kind))
			}
			imageURL := openai.ChatCompletionContentPartImageImageURLParam{
				URL: p.URI,
			}
			if p.Detail != "" {
				imageURL.Detail = p.Detail
			}
			items = append(items, openai.ImageContentPart(imageURL))

		case interfaces.InlineMediaPart:
			item, err := inlineContentPart(p)
			if err != nil {
				return nil, fmt.Errorf("parts[%d]: %w", i, err)
			}
			items = append(items, item)

		default:
			return nil, interfaces.NewValidationError(fmt.Sprintf("parts[%d]", i), fmt.Sprintf("unsupported content part %T", part))
		}
	}

	return items, nil
}

// inlineContentPart picks image_url, input_audio or file based on the MIME type
func inlineContentPart(p interfaces.InlineMediaPart) (openai.ChatCompletionContentPartUnionParam, error) {
	switch p.Kind() {
	case interfaces.MediaKindImage:
		return openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: payload.DataURL(p),
		}), nil

	case interfaces.MediaKindAudio:
		format, ok := audioFormat(p.MimeType)
		if !ok {
			return openai.ChatCompletionContentPartUnionParam{}, interfaces.NewValidationError("mime_type", fmt.Sprintf("audio format %s is not supported (use mp3 or wav)", p.MimeType))
		}
		return openai.InputAudioContentPart(openai.ChatCompletionContentPartInputAudioInputAudioParam{
			Data:   payload.EncodeBase64(p.Data),
			Format: format,
		}), nil

	default:
		name := p.Name
		if name == "" {
			name = "attachment"
		}
		return openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: openai.String(payload.DataURL(p)),
			Filename: openai.String(name),
		}), nil
	}
}

func audioFormat(mimeType string) (string, bool) {
	switch strings.ToLower(mimeType) {
	case "audio/mpeg", "audio/mp3", "audio/mpeg3":
		return "mp3", true
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return "wav", true
	default:
		return "", false
	}
}

func textOnly(parts []interfaces.ContentPart) (string, error) {
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		p, ok := part.(interfaces.TextPart)
		if !ok {
			return "", interfaces.NewValidationError("parts", "system and assistant messages may only contain text")
		}
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n"), nil
}
