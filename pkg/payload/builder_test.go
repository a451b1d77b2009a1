package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
)

func TestBuildMessage(t *testing.T) {
	t.Run("single text part", func(t *testing.T) {
		msg, err := BuildMessage(interfaces.NewTextPart("hello"))
		require.NoError(t, err)

		require.Len(t, msg.Parts, 1)
		assert.Equal(t, interfaces.MessageRoleUser, msg.Role)
		assert.Equal(t, interfaces.TextPart{Text: "hello"}, msg.Parts[0])
	})

	t.Run("preserves order", func(t *testing.T) {
		msg, err := BuildMessage(
			interfaces.NewTextPart("describe"),
			interfaces.RemoteMediaPart{URI: "https://x/y.jpg", Kind: interfaces.MediaKindImage},
		)
		require.NoError(t, err)

		require.Len(t, msg.Parts, 2)
		assert.Equal(t, interfaces.TextPart{Text: "describe"}, msg.Parts[0])
		assert.Equal(t, interfaces.RemoteMediaPart{URI: "https://x/y.jpg", Kind: interfaces.MediaKindImage}, msg.Parts[1])
	})

	t.Run("preserves count for mixed sequences", func(t *testing.T) {
		parts := []interfaces.ContentPart{
			interfaces.NewTextPart("a"),
			interfaces.NewInlineMediaPart([]byte{1}, "audio/mpeg"),
			interfaces.NewTextPart("b"),
			interfaces.NewImageURLPart("https://x/1.png", "high"),
			interfaces.NewInlineMediaPart([]byte{2}, "video/mp4"),
			interfaces.NewTextPart(""),
		}
		for n := 1; n <= len(parts); n++ {
			msg, err := BuildMessage(parts[:n]...)
			require.NoError(t, err)
			assert.Equal(t, parts[:n], msg.Parts)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := BuildMessage()
		assert.ErrorIs(t, err, interfaces.ErrValidation)
	})

	t.Run("malformed parts", func(t *testing.T) {
		tests := []struct {
			name string
			part interfaces.ContentPart
		}{
			{"nil part", nil},
			{"remote without uri", interfaces.RemoteMediaPart{Kind: interfaces.MediaKindImage}},
			{"inline without mime", interfaces.InlineMediaPart{Data: []byte{1}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := BuildMessage(interfaces.NewTextPart("x"), tt.part)
				assert.ErrorIs(t, err, interfaces.ErrValidation)
				assert.Contains(t, err.Error(), "parts[1]")
			})
		}
	})

	t.Run("remote kind defaults to image", func(t *testing.T) {
		msg, err := BuildMessage(interfaces.RemoteMediaPart{URI: "https://x/y.jpg"})
		require.NoError(t, err)
		assert.Equal(t, interfaces.MediaKindImage, msg.Parts[0].(interfaces.RemoteMediaPart).Kind)
	})

	t.Run("caller mutations do not leak", func(t *testing.T) {
		data := []byte{1, 2, 3}
		parts := []interfaces.ContentPart{
			interfaces.NewTextPart("keep"),
			interfaces.NewInlineMediaPart(data, "image/jpeg"),
		}
		msg, err := BuildMessage(parts...)
		require.NoError(t, err)

		parts[0] = interfaces.NewTextPart("changed")
		data[0] = 9

		assert.Equal(t, interfaces.TextPart{Text: "keep"}, msg.Parts[0])
		assert.Equal(t, []byte{1, 2, 3}, msg.Parts[1].(interfaces.InlineMediaPart).Data)
	})

	t.Run("explicit role", func(t *testing.T) {
		msg, err := BuildMessageWithRole(interfaces.MessageRoleSystem, interfaces.NewTextPart("rules"))
		require.NoError(t, err)
		assert.Equal(t, interfaces.MessageRoleSystem, msg.Role)
	})
}
