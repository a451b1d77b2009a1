// Package storage provides the sources local resources are read from
// before being embedded into a message.
package storage

import (
	"context"
	"fmt"
	"io"
)

// Source opens resources by path
type Source interface {
	// Open returns a reader over the whole resource. The caller must close it.
	// Paths that cannot be resolved fail with *interfaces.ResourceNotFoundError.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Name returns the source backend name
	Name() string
}

// Config contains configuration for storage backends
type Config struct {
	// Type is the storage backend type ("local", "gcs")
	Type string

	// Local filesystem configuration
	Local LocalConfig

	// GCS storage configuration
	GCS GCSConfig
}

// LocalConfig contains configuration for local filesystem reads
type LocalConfig struct {
	// Root confines reads to a directory (optional).
	// If empty, paths are opened as given.
	Root string
}

// GCSConfig contains configuration for Google Cloud Storage
type GCSConfig struct {
	// Bucket is the default GCS bucket name, used for paths without gs://
	Bucket string

	// Prefix is the path prefix within the bucket
	Prefix string

	// CredentialsFile is the path to the service account JSON file (optional)
	// If empty, uses Application Default Credentials
	CredentialsFile string

	// CredentialsJSON is the service account JSON content (optional)
	// Can be raw JSON or base64 encoded. Takes precedence over CredentialsFile.
	CredentialsJSON string
}

// NewSourceFromConfig creates a source from configuration
func NewSourceFromConfig(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Type {
	case "local", "":
		if NewLocalSource == nil {
			return nil, fmt.Errorf("local source is not registered")
		}
		return NewLocalSource(cfg.Local)
	case "gcs":
		if NewGCSSource == nil {
			return nil, fmt.Errorf("gcs source is not registered")
		}
		return NewGCSSource(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s (supported: local, gcs)", cfg.Type)
	}
}

// NewLocalSource creates a new local filesystem source
// This is a placeholder that will be implemented in the local package
var NewLocalSource func(cfg LocalConfig) (Source, error)

// NewGCSSource creates a new GCS source
// This is a placeholder that will be implemented in the gcs package
var NewGCSSource func(ctx context.Context, cfg GCSConfig) (Source, error)
