package gcs

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
)

type fakeBucket map[string]string

func (f fakeBucket) open(_ context.Context, bucket, object string) (io.ReadCloser, error) {
	body, ok := f[bucket+"/"+object]
	if !ok {
		return nil, storage.ErrObjectNotExist
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func TestSourceOpen(t *testing.T) {
	objects := fakeBucket{
		"inspections/site-a/audio.mp3": "mp3-bytes",
		"other/clip.mp4":               "mp4-bytes",
	}
	src := newSource(objects.open, "inspections", "/site-a/")

	t.Run("object in default bucket", func(t *testing.T) {
		rc, err := src.Open(context.Background(), "audio.mp3")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "mp3-bytes", string(data))
	})

	t.Run("gs uri", func(t *testing.T) {
		rc, err := src.Open(context.Background(), "gs://other/clip.mp4")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "mp4-bytes", string(data))
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := src.Open(context.Background(), "missing.jpg")
		assert.ErrorIs(t, err, interfaces.ErrResourceNotFound)
		assert.ErrorIs(t, err, storage.ErrObjectNotExist)
	})

	t.Run("malformed uri", func(t *testing.T) {
		_, err := src.Open(context.Background(), "gs://bucket-only")
		assert.ErrorIs(t, err, interfaces.ErrResourceNotFound)
	})

	t.Run("transport failure", func(t *testing.T) {
		failing := newSource(func(context.Context, string, string) (io.ReadCloser, error) {
			return nil, errors.New("connection reset")
		}, "b", "")
		_, err := failing.Open(context.Background(), "x.png")
		assert.ErrorIs(t, err, interfaces.ErrResourceNotFound)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("no default bucket", func(t *testing.T) {
		bare := newSource(objects.open, "", "")
		_, err := bare.Open(context.Background(), "audio.mp3")
		assert.ErrorIs(t, err, interfaces.ErrResourceNotFound)
	})
}

func TestParseCredentialsJSON(t *testing.T) {
	raw := `{"type":"service_account"}`
	assert.Equal(t, raw, parseCredentialsJSON(raw))
	assert.Equal(t, raw, parseCredentialsJSON(base64.StdEncoding.EncodeToString([]byte(raw))))
}
