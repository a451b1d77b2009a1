package gemini

import (
	"fmt"
	"path"
	"strings"

	"google.golang.org/genai"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/payload"
)

// guessMIMEFromURL infers a MIME type for remote media from its extension,
// falling back to a default for the part's kind
func guessMIMEFromURL(u string, kind interfaces.MediaKind) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if path.Ext(u) != "" {
		t := payload.InferMIMEType(u, nil)
		if kind == interfaces.MediaKindDocument || interfaces.KindFromMIME(t) == kind {
			return t
		}
	}

	switch kind {
	case interfaces.MediaKindImage:
		return "image/jpeg"
	case interfaces.MediaKindAudio:
		return "audio/mpeg"
	case interfaces.MediaKindVideo:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// buildGeminiParts maps every part to exactly one genai part.
// Gemini takes all inline media as a blob, so there is no per-kind fork.
func buildGeminiParts(parts []interfaces.ContentPart) ([]*genai.Part, error) {
	out := make([]*genai.Part, 0, len(parts))

	for i, part := range parts {
		switch p := part.(type) {
		case interfaces.TextPart:
			out = append(out, genai.NewPartFromText(p.Text))

		case interfaces.RemoteMediaPart:
			out = append(out, genai.NewPartFromURI(p.URI, guessMIMEFromURL(p.URI, p.Kind)))

		case interfaces.InlineMediaPart:
			out = append(out, genai.NewPartFromBytes(p.Data, p.MimeType))

		default:
			return nil, interfaces.NewValidationError(fmt.Sprintf("parts[%d]", i), fmt.Sprintf("unsupported content part %T", part))
		}
	}

	return out, nil
}
