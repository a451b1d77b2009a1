package interfaces

// MessageRole represents the role of a message sender
type MessageRole string

const (
	// MessageRoleUser represents a user message
	MessageRoleUser MessageRole = "user"
	// MessageRoleAssistant represents an assistant message
	MessageRoleAssistant MessageRole = "assistant"
	// MessageRoleSystem represents a system message
	MessageRoleSystem MessageRole = "system"
)

// Message is one ordered turn submitted to a model.
// Use payload.BuildMessage to construct one; do not mutate Parts afterwards.
type Message struct {
	Role  MessageRole
	Parts []ContentPart
}

// Kinds lists a short tag per part, in order. Used for logs and spans.
func (m Message) Kinds() []string {
	kinds := make([]string, 0, len(m.Parts))
	for _, part := range m.Parts {
		switch p := part.(type) {
		case TextPart:
			kinds = append(kinds, string(PartTypeText))
		case RemoteMediaPart:
			kinds = append(kinds, "remote_"+string(p.Kind))
		case InlineMediaPart:
			kinds = append(kinds, "inline_"+string(p.Kind()))
		default:
			kinds = append(kinds, "unknown")
		}
	}
	return kinds
}

// Response is the text result of a submitted message
type Response struct {
	Content string
	Model   string
	Usage   *Usage

	// Metadata contains provider-specific information
	Metadata map[string]interface{}
}

// Usage is token accounting reported by the provider, when available
type Usage struct {
	InputTokens  int
	OutputTokens int
}
