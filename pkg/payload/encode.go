package payload

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/storage"
	"github.com/Ingenimax/multimodal-go/pkg/storage/local"
)

// EncodeLocalResource reads the file at filePath into an inline media part.
// An empty mimeType is inferred from the extension or content.
func EncodeLocalResource(filePath, mimeType string) (interfaces.InlineMediaPart, error) {
	src, err := local.NewWithOptions()
	if err != nil {
		return interfaces.InlineMediaPart{}, err
	}
	return EncodeResource(context.Background(), src, filePath, mimeType)
}

// EncodeResource reads a whole resource from src into an inline media part.
// The reader is always closed before returning.
func EncodeResource(ctx context.Context, src storage.Source, resourcePath, mimeType string) (interfaces.InlineMediaPart, error) {
	rc, err := src.Open(ctx, resourcePath)
	if err != nil {
		return interfaces.InlineMediaPart{}, err
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return interfaces.InlineMediaPart{}, &interfaces.ResourceNotFoundError{
			Path: resourcePath,
			Err:  fmt.Errorf("failed to read resource: %w", err),
		}
	}

	if strings.TrimSpace(mimeType) == "" {
		mimeType = InferMIMEType(resourcePath, data)
	}

	return interfaces.InlineMediaPart{
		Data:     data,
		MimeType: mimeType,
		Name:     resourceName(resourcePath),
	}, nil
}

func resourceName(p string) string {
	if strings.HasPrefix(p, "gs://") {
		return path.Base(p)
	}
	return filepath.Base(p)
}

// EncodeBase64 encodes raw bytes with standard padded base64
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 reverses EncodeBase64
func DecodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, interfaces.NewValidationError("data", fmt.Sprintf("invalid base64: %v", err))
	}
	return data, nil
}

// DataURL renders an inline part as data:<mime>;base64,<payload>
func DataURL(part interfaces.InlineMediaPart) string {
	return fmt.Sprintf("data:%s;base64,%s", part.MimeType, EncodeBase64(part.Data))
}

// ParseDataURL decodes a base64 data URL into an inline part
func ParseDataURL(dataURL string) (interfaces.InlineMediaPart, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return interfaces.InlineMediaPart{}, interfaces.NewValidationError("data_url", "missing data: prefix")
	}
	meta, b64, found := strings.Cut(rest, ",")
	if !found {
		return interfaces.InlineMediaPart{}, interfaces.NewValidationError("data_url", "missing payload separator")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return interfaces.InlineMediaPart{}, interfaces.NewValidationError("data_url", "only base64 data URLs are supported")
	}
	if mimeType == "" {
		return interfaces.InlineMediaPart{}, interfaces.NewValidationError("data_url", "missing mime type")
	}

	data, err := DecodeBase64(b64)
	if err != nil {
		return interfaces.InlineMediaPart{}, err
	}
	return interfaces.InlineMediaPart{Data: data, MimeType: mimeType}, nil
}
