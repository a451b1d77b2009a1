package gcs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	srcstorage "github.com/Ingenimax/multimodal-go/pkg/storage"
)

func init() {
	// Register the GCS source factory
	srcstorage.NewGCSSource = New
}

// openFunc opens one object for reading
type openFunc func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

// Source implements storage.Source for Google Cloud Storage.
// Paths are either gs://bucket/object or an object name in the default bucket.
type Source struct {
	open   openFunc
	bucket string
	prefix string
}

// New creates a new GCS source
func New(ctx context.Context, cfg srcstorage.GCSConfig) (srcstorage.Source, error) {
	// Build client options
	var opts []option.ClientOption

	// CredentialsJSON takes precedence over CredentialsFile
	if cfg.CredentialsJSON != "" {
		//nolint:staticcheck // SA1019: WithCredentialsJSON is deprecated but needed for programmatic credentials
		opts = append(opts, option.WithCredentialsJSON([]byte(parseCredentialsJSON(cfg.CredentialsJSON))))
	} else if cfg.CredentialsFile != "" {
		//nolint:staticcheck // SA1019: WithCredentialsFile is deprecated but needed for file-based credentials
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return newSource(clientOpener(client), cfg.Bucket, cfg.Prefix), nil
}

func newSource(open openFunc, bucket, prefix string) *Source {
	return &Source{
		open:   open,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func clientOpener(client *storage.Client) openFunc {
	return func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
		return client.Bucket(bucket).Object(object).NewReader(ctx)
	}
}

// Name returns the source backend name
func (s *Source) Name() string {
	return "gcs"
}

// Open opens an object for reading
func (s *Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, err := s.resolve(path)
	if err != nil {
		return nil, &interfaces.ResourceNotFoundError{Path: path, Err: err}
	}

	rc, err := s.open(ctx, bucket, object)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, &interfaces.ResourceNotFoundError{Path: path, Err: err}
		}
		return nil, &interfaces.ResourceNotFoundError{Path: path, Err: fmt.Errorf("failed to read from GCS: %w", err)}
	}
	return rc, nil
}

// resolve splits a path into bucket and object name
func (s *Source) resolve(path string) (bucket, object string, err error) {
	if rest, ok := strings.CutPrefix(path, "gs://"); ok {
		bucket, object, _ = strings.Cut(rest, "/")
		if bucket == "" || object == "" {
			return "", "", fmt.Errorf("invalid GCS URI %q", path)
		}
		return bucket, object, nil
	}

	if s.bucket == "" {
		return "", "", fmt.Errorf("GCS bucket name is required for path %q", path)
	}
	object = joinPath(s.prefix, strings.TrimPrefix(path, "/"))
	if object == "" {
		return "", "", fmt.Errorf("empty object path")
	}
	return s.bucket, object, nil
}

// joinPath joins path components with forward slashes
func joinPath(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	return base + "/" + path
}

// parseCredentialsJSON parses credentials that may be base64 encoded or raw JSON
func parseCredentialsJSON(creds string) string {
	// Try to decode as base64 first
	if decoded, err := base64.StdEncoding.DecodeString(creds); err == nil {
		// Check if decoded content looks like JSON
		if len(decoded) > 0 && decoded[0] == '{' {
			return string(decoded)
		}
	}
	// Return as-is (assuming it's raw JSON)
	return creds
}
