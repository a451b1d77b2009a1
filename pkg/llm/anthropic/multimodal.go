package anthropic

import (
	"fmt"
	"strings"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/payload"
)

type contentBlockParam struct {
	Type         string        `json:"type"`
	Text         string        `json:"text,omitempty"`
	Source       *sourceParam  `json:"source,omitempty"`
	CacheControl *CacheControl `json:"cache_control,omitempty"`
}

type sourceParam struct {
	// base64 | url
	Type string `json:"type"`
	// e.g. image/png, application/pdf
	MediaType string `json:"media_type,omitempty"`
	// base64 string (no data: prefix)
	Data string `json:"data,omitempty"`
	// URL when Type == "url"
	URL string `json:"url,omitempty"`
}

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// buildContentBlocks maps every part to exactly one Anthropic content block.
// Audio and video have no Anthropic representation and are rejected.
func buildContentBlocks(parts []interfaces.ContentPart) ([]contentBlockParam, error) {
	blocks := make([]contentBlockParam, 0, len(parts))

	for i, part := range parts {
		field := fmt.Sprintf("parts[%d]", i)

		switch p := part.(type) {
		case interfaces.TextPart:
			blocks = append(blocks, contentBlockParam{
				Type: "text",
				Text: p.Text,
			})

		case interfaces.RemoteMediaPart:
			blockType, err := blockTypeForKind(p.Kind)
			if err != nil {
				return nil, interfaces.NewValidationError(field, err.Error())
			}
			blocks = append(blocks, contentBlockParam{
				Type: blockType,
				Source: &sourceParam{
					Type: "url",
					URL:  p.URI,
				},
			})

		case interfaces.InlineMediaPart:
			mediaType := strings.ToLower(p.MimeType)
			blockType, err := blockTypeForKind(p.Kind())
			if err != nil {
				return nil, interfaces.NewValidationError(field, err.Error())
			}
			if blockType == "image" && !supportedImageTypes[mediaType] {
				return nil, interfaces.NewValidationError(field, fmt.Sprintf("image type %s is not supported", p.MimeType))
			}
			if blockType == "document" && mediaType != "application/pdf" {
				return nil, interfaces.NewValidationError(field, fmt.Sprintf("document type %s is not supported", p.MimeType))
			}
			blocks = append(blocks, contentBlockParam{
				Type: blockType,
				Source: &sourceParam{
					Type:      "base64",
					MediaType: mediaType,
					Data:      payload.EncodeBase64(p.Data),
				},
			})

		default:
			return nil, interfaces.NewValidationError(field, fmt.Sprintf("unsupported content part %T", part))
		}
	}

	return blocks, nil
}

func blockTypeForKind(kind interfaces.MediaKind) (string, error) {
	switch kind {
	case interfaces.MediaKindImage:
		return "image", nil
	case interfaces.MediaKindDocument:
		return "document", nil
	default:
		return "", fmt.Errorf("%s input is not supported by Anthropic models", kind)
	}
}
