package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/storage"
)

func TestSourceOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte{0x01, 0x02, 0x03}, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	t.Run("reads file without root", func(t *testing.T) {
		src, err := NewWithOptions()
		require.NoError(t, err)

		rc, err := src.Open(context.Background(), filepath.Join(dir, "photo.jpg"))
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, data)
	})

	t.Run("reads file under root", func(t *testing.T) {
		src, err := NewWithOptions(WithRoot(dir))
		require.NoError(t, err)

		rc, err := src.Open(context.Background(), "photo.jpg")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Len(t, data, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		src, err := NewWithOptions(WithRoot(dir))
		require.NoError(t, err)

		_, err = src.Open(context.Background(), "missing.jpg")
		assert.ErrorIs(t, err, interfaces.ErrResourceNotFound)
	})

	t.Run("escaping root is rejected", func(t *testing.T) {
		src, err := NewWithOptions(WithRoot(filepath.Join(dir, "nested")))
		require.NoError(t, err)

		_, err = src.Open(context.Background(), "../photo.jpg")
		assert.ErrorIs(t, err, interfaces.ErrResourceNotFound)
	})

	t.Run("directory is rejected", func(t *testing.T) {
		src, err := NewWithOptions()
		require.NoError(t, err)

		_, err = src.Open(context.Background(), filepath.Join(dir, "nested"))
		assert.ErrorIs(t, err, interfaces.ErrResourceNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		src, err := NewWithOptions()
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = src.Open(ctx, filepath.Join(dir, "photo.jpg"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewFromConfig(t *testing.T) {
	src, err := storage.NewSourceFromConfig(context.Background(), storage.Config{Type: "local"})
	require.NoError(t, err)
	assert.Equal(t, "local", src.Name())

	_, err = storage.NewSourceFromConfig(context.Background(), storage.Config{
		Type:  "local",
		Local: storage.LocalConfig{Root: filepath.Join(t.TempDir(), "absent")},
	})
	assert.Error(t, err)

	_, err = storage.NewSourceFromConfig(context.Background(), storage.Config{Type: "s3"})
	assert.Error(t, err)
}
