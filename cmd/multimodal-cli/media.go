package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/payload"
	"github.com/Ingenimax/multimodal-go/pkg/storage"
)

// buildImageParts turns --url and --file values into image parts.
// URLs are sent by reference; files are read through the storage source.
func buildImageParts(ctx context.Context, src storage.Source, imageURLs, imagePaths []string, detail string) ([]interfaces.ContentPart, error) {
	parts := make([]interfaces.ContentPart, 0, len(imageURLs)+len(imagePaths))

	for _, u := range imageURLs {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if !isAllowedImageURLScheme(u) {
			return nil, fmt.Errorf("invalid --url: must start with http://, https://, or data:")
		}
		if isDataURL(u) {
			part, err := payload.ParseDataURL(u)
			if err != nil {
				return nil, err
			}
			if part.Kind() != interfaces.MediaKindImage {
				return nil, fmt.Errorf("invalid --url data URL: must be data:image/*")
			}
			parts = append(parts, part)
			continue
		}
		parts = append(parts, interfaces.NewImageURLPart(u, detail))
	}

	for _, p := range imagePaths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		part, err := encodeMedia(ctx, src, p, interfaces.MediaKindImage)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return parts, nil
}

// encodeMedia reads a resource and checks that it is of the expected kind
func encodeMedia(ctx context.Context, src storage.Source, path string, want interfaces.MediaKind) (interfaces.InlineMediaPart, error) {
	part, err := payload.EncodeResource(ctx, src, path, "")
	if err != nil {
		return interfaces.InlineMediaPart{}, err
	}
	if part.Kind() != want {
		return interfaces.InlineMediaPart{}, interfaces.NewValidationError("path",
			fmt.Sprintf("%s has mime type %q, expected %s", part.Name, part.MimeType, want))
	}
	return part, nil
}

// imagePart resolves a value that is either a remote URL or a resource path
func imagePart(ctx context.Context, src storage.Source, value string) (interfaces.ContentPart, error) {
	if isRemoteURL(value) {
		return interfaces.NewImageURLPart(value, ""), nil
	}
	return encodeMedia(ctx, src, value, interfaces.MediaKindImage)
}

func isAllowedImageURLScheme(u string) bool {
	return isRemoteURL(u) || isDataURL(u)
}

func isRemoteURL(u string) bool {
	l := strings.ToLower(strings.TrimSpace(u))
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func isDataURL(u string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(u)), "data:")
}
