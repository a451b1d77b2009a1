package local

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/storage"
)

func init() {
	// Register the local source factory
	storage.NewLocalSource = New
}

// Source implements storage.Source for the local filesystem
type Source struct {
	root string
}

// Option represents an option for configuring the local source
type Option func(*Source)

// WithRoot confines reads to dir
func WithRoot(dir string) Option {
	return func(s *Source) {
		s.root = dir
	}
}

// New creates a new local filesystem source
func New(cfg storage.LocalConfig) (storage.Source, error) {
	return NewWithOptions(WithRoot(cfg.Root))
}

// NewWithOptions creates a new local source with functional options
func NewWithOptions(options ...Option) (*Source, error) {
	s := &Source{}
	for _, opt := range options {
		opt(s)
	}

	if s.root != "" {
		info, err := os.Stat(s.root)
		if err != nil {
			return nil, fmt.Errorf("failed to access source root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("source root %s is not a directory", s.root)
		}
	}

	return s, nil
}

// Name returns the source backend name
func (s *Source) Name() string {
	return "local"
}

// Open opens path for reading. With a root configured, paths escaping the
// root are rejected.
func (s *Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, &interfaces.ResourceNotFoundError{Path: path, Err: fmt.Errorf("empty path")}
	}

	if s.root == "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, &interfaces.ResourceNotFoundError{Path: path, Err: err}
		}
		return checkRegular(path, f, nil)
	}

	root, err := os.OpenRoot(s.root)
	if err != nil {
		return nil, &interfaces.ResourceNotFoundError{Path: path, Err: err}
	}
	f, err := root.Open(path)
	if err != nil {
		_ = root.Close()
		return nil, &interfaces.ResourceNotFoundError{Path: path, Err: err}
	}
	return checkRegular(path, f, root)
}

// checkRegular rejects directories so callers never read a directory handle
func checkRegular(path string, f *os.File, root *os.Root) (io.ReadCloser, error) {
	rc := &file{File: f, root: root}

	info, err := f.Stat()
	if err != nil {
		_ = rc.Close()
		return nil, &interfaces.ResourceNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		_ = rc.Close()
		return nil, &interfaces.ResourceNotFoundError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	return rc, nil
}

// file releases the root handle together with the file
type file struct {
	*os.File
	root *os.Root
}

func (f *file) Close() error {
	err := f.File.Close()
	if f.root != nil {
		if rerr := f.root.Close(); err == nil {
			err = rerr
		}
	}
	return err
}
