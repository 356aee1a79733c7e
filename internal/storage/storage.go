package storage

import (
	"context"
	"io"
)

// Store persists photo blobs and hands back public URLs. Image
// transformations are delegated to the provider serving those URLs; the
// backend only needs to derive the rendition URL.
type Store interface {
	// Save writes the object under key and returns its public URL.
	Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	// TransformURL derives the URL of a transformed rendition of the object.
	TransformURL(baseURL string, t Transform) string
}

// Transform describes a provider-side image transformation.
type Transform struct {
	Width  int
	Height int
	Filter string
}
