package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/multimodal-go/pkg/config"
	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/llm/mock"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
)

const testConfig = `log_level: error
models:
  text: text-model
  vision: vision-model
  audio: audio-model
  video: video-model
  report: report-model
storage:
  type: local
  local:
    root: %s
`

// setup writes a config whose storage root is a temp dir holding the given files
func setup(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(testConfig, dir)), 0o600))
	return cfgPath
}

func run(t *testing.T, client *mock.Client, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	a.newClient = func(context.Context, config.ProviderConfig, logging.Logger) (interfaces.ModelClient, error) {
		return client, nil
	}
	t.Cleanup(func() { _ = a.close(context.Background()) })

	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTextCommand(t *testing.T) {
	cfg := setup(t, nil)

	t.Run("default prompt", func(t *testing.T) {
		client := mock.NewClient(nil)
		out, err := run(t, client, "--config", cfg, "text")
		require.NoError(t, err)
		assert.Equal(t, "Response: response from text-model\n", out)

		calls := client.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, []interfaces.ContentPart{interfaces.NewTextPart("Summarize the key features of multimodal AI systems.")}, calls[0].Message.Parts)
	})

	t.Run("model override", func(t *testing.T) {
		client := mock.NewClient(nil)
		out, err := run(t, client, "--config", cfg, "text", "hello", "--model", "other")
		require.NoError(t, err)
		assert.Equal(t, "Response: response from other\n", out)
	})

	t.Run("client error is returned", func(t *testing.T) {
		remoteErr := &interfaces.RemoteServiceError{Provider: "mock", Model: "text-model", StatusCode: 500, Err: errors.New("boom")}
		client := mock.NewClient(func(context.Context, string, interfaces.Message) (*interfaces.Response, error) {
			return nil, remoteErr
		})
		out, err := run(t, client, "--config", cfg, "text")
		assert.ErrorIs(t, err, interfaces.ErrRemoteService)
		assert.Empty(t, out)
	})
}

func TestImageCommand(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF}
	cfg := setup(t, map[string][]byte{"photo.jpg": jpeg, "clip.mp3": []byte("ID3")})

	t.Run("remote url", func(t *testing.T) {
		client := mock.NewClient(nil)
		out, err := run(t, client, "--config", cfg, "image", "--url", "https://example.com/a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "Response: response from vision-model\n", out)

		parts := client.Calls()[0].Message.Parts
		require.Len(t, parts, 2)
		assert.Equal(t, interfaces.NewTextPart("Describe this image in detail."), parts[0])
		assert.Equal(t, interfaces.NewImageURLPart("https://example.com/a.jpg", ""), parts[1])
	})

	t.Run("local file", func(t *testing.T) {
		client := mock.NewClient(nil)
		_, err := run(t, client, "--config", cfg, "image", "--file", "photo.jpg")
		require.NoError(t, err)

		parts := client.Calls()[0].Message.Parts
		require.Len(t, parts, 2)
		assert.Equal(t, interfaces.NewTextPart("What do you see in this image?"), parts[0])
		inline, ok := parts[1].(interfaces.InlineMediaPart)
		require.True(t, ok)
		assert.Equal(t, jpeg, inline.Data)
		assert.Equal(t, "image/jpeg", inline.MimeType)
	})

	t.Run("rejects non-image file", func(t *testing.T) {
		client := mock.NewClient(nil)
		_, err := run(t, client, "--config", cfg, "image", "--file", "clip.mp3")
		assert.ErrorIs(t, err, interfaces.ErrValidation)
		assert.Empty(t, client.Calls())
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		_, err := run(t, mock.NewClient(nil), "--config", cfg, "image", "--url", "ftp://example.com/a.jpg")
		assert.Error(t, err)
	})

	t.Run("requires an image", func(t *testing.T) {
		_, err := run(t, mock.NewClient(nil), "--config", cfg, "image")
		assert.Error(t, err)
	})
}

func TestMediaCommands(t *testing.T) {
	cfg := setup(t, map[string][]byte{"meeting.mp3": []byte("ID3audio"), "walk.mp4": []byte("video")})

	t.Run("audio", func(t *testing.T) {
		client := mock.NewClient(nil)
		out, err := run(t, client, "--config", cfg, "audio", "--file", "meeting.mp3")
		require.NoError(t, err)
		assert.Equal(t, "Response: response from audio-model\n", out)

		msg := client.Calls()[0].Message
		assert.Equal(t, []string{"text", "inline_audio"}, msg.Kinds())
		assert.Equal(t, interfaces.NewTextPart("Transcribe and summarize this audio."), msg.Parts[0])
	})

	t.Run("video", func(t *testing.T) {
		client := mock.NewClient(nil)
		out, err := run(t, client, "--config", cfg, "video", "--file", "walk.mp4", "--prompt", "What moves?")
		require.NoError(t, err)
		assert.Equal(t, "Response: response from video-model\n", out)
		assert.Equal(t, interfaces.NewTextPart("What moves?"), client.Calls()[0].Message.Parts[0])
	})

	t.Run("missing file", func(t *testing.T) {
		client := mock.NewClient(nil)
		_, err := run(t, client, "--config", cfg, "audio", "--file", "absent.mp3")
		var notFound *interfaces.ResourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "absent.mp3", notFound.Path)
		assert.Empty(t, client.Calls())
	})

	t.Run("wrong media kind", func(t *testing.T) {
		_, err := run(t, mock.NewClient(nil), "--config", cfg, "video", "--file", "meeting.mp3")
		assert.ErrorIs(t, err, interfaces.ErrValidation)
	})
}

func TestInspectCommand(t *testing.T) {
	cfg := setup(t, map[string][]byte{"site.jpg": {0xFF, 0xD8, 0xFF}, "notes.wav": []byte("RIFF")})

	responder := func(_ context.Context, model string, _ interfaces.Message) (*interfaces.Response, error) {
		switch model {
		case "vision-model":
			return &interfaces.Response{Content: "cracked beam"}, nil
		case "audio-model":
			return &interfaces.Response{Content: "inspector mentions rust"}, nil
		default:
			return &interfaces.Response{Content: "replace the beam"}, nil
		}
	}

	t.Run("pipeline", func(t *testing.T) {
		client := mock.NewClient(responder)
		out, err := run(t, client, "--config", cfg, "inspect", "--image", "site.jpg", "--audio", "notes.wav")
		require.NoError(t, err)
		assert.Equal(t, "Analysis: cracked beam\nTranscript: inspector mentions rust\nReport: replace the beam\n", out)

		calls := client.Calls()
		require.Len(t, calls, 3)
		assert.Equal(t, "report-model", calls[2].Model)
		assert.Equal(t, []string{"text"}, calls[2].Message.Kinds())
	})

	t.Run("notes with remote image", func(t *testing.T) {
		client := mock.NewClient(responder)
		out, err := run(t, client, "--config", cfg, "inspect", "--notes", "rust on beam", "--image-url", "https://example.com/site.jpg")
		require.NoError(t, err)
		assert.Equal(t, "Analysis: replace the beam\n", out)
		assert.Equal(t, []string{"text", "remote_image"}, client.Calls()[0].Message.Kinds())
	})

	t.Run("audio stage failure aborts", func(t *testing.T) {
		stageErr := errors.New("audio unavailable")
		client := mock.NewClient(func(ctx context.Context, model string, msg interfaces.Message) (*interfaces.Response, error) {
			if model == "audio-model" {
				return nil, stageErr
			}
			return responder(ctx, model, msg)
		})
		out, err := run(t, client, "--config", cfg, "inspect", "--image", "site.jpg", "--audio", "notes.wav")
		assert.ErrorIs(t, err, stageErr)
		assert.Empty(t, out)
		assert.Len(t, client.Calls(), 2)
	})

	t.Run("requires inputs", func(t *testing.T) {
		_, err := run(t, mock.NewClient(nil), "--config", cfg, "inspect", "--image", "site.jpg")
		assert.Error(t, err)
	})
}
