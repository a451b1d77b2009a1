package interfaces

import "strings"

// ContentPart represents a single content part in a multimodal message.
//
// The set of implementations is closed: TextPart, RemoteMediaPart and
// InlineMediaPart. Provider serializers switch over these three cases and
// reject anything else.
type ContentPart interface {
	// PartType returns the wire-neutral tag of the part
	PartType() PartType

	contentPart()
}

// PartType tags a content part
type PartType string

const (
	PartTypeText        PartType = "text"
	PartTypeRemoteMedia PartType = "remote_media"
	PartTypeInlineMedia PartType = "inline_media"
)

// MediaKind classifies media content
type MediaKind string

const (
	MediaKindImage    MediaKind = "image"
	MediaKindAudio    MediaKind = "audio"
	MediaKindVideo    MediaKind = "video"
	MediaKindDocument MediaKind = "document"
)

// TextPart is plain text
type TextPart struct {
	Text string `json:"text"`
}

// RemoteMediaPart references media by URL. The remote service fetches it.
type RemoteMediaPart struct {
	URI  string    `json:"uri"`
	Kind MediaKind `json:"kind"`

	// Detail is an optional image fidelity hint: "low" | "high" | "auto"
	Detail string `json:"detail,omitempty"`
}

// InlineMediaPart carries raw bytes embedded in the request.
// Data is kept raw; transport encoding happens at serialization time.
type InlineMediaPart struct {
	Data     []byte `json:"data"`
	MimeType string `json:"mime_type"`

	// Name is an optional file name, used by providers that require one
	Name string `json:"name,omitempty"`
}

func (TextPart) PartType() PartType        { return PartTypeText }
func (RemoteMediaPart) PartType() PartType { return PartTypeRemoteMedia }
func (InlineMediaPart) PartType() PartType { return PartTypeInlineMedia }

func (TextPart) contentPart()        {}
func (RemoteMediaPart) contentPart() {}
func (InlineMediaPart) contentPart() {}

// Kind derives the media kind from the MIME type
func (p InlineMediaPart) Kind() MediaKind {
	return KindFromMIME(p.MimeType)
}

// KindFromMIME maps a MIME type to a media kind. Anything that is not
// image, audio or video is a document.
func KindFromMIME(mimeType string) MediaKind {
	major, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(mimeType)), "/")
	switch major {
	case "image":
		return MediaKindImage
	case "audio":
		return MediaKindAudio
	case "video":
		return MediaKindVideo
	default:
		return MediaKindDocument
	}
}

// NewTextPart is a helper to construct a text content part.
func NewTextPart(text string) TextPart {
	return TextPart{Text: text}
}

// NewImageURLPart is a helper to construct a remote image part.
func NewImageURLPart(url string, detail string) RemoteMediaPart {
	return RemoteMediaPart{
		URI:    url,
		Kind:   MediaKindImage,
		Detail: detail,
	}
}

// NewInlineMediaPart is a helper to construct an inline media part.
func NewInlineMediaPart(data []byte, mimeType string) InlineMediaPart {
	return InlineMediaPart{
		Data:     data,
		MimeType: mimeType,
	}
}
