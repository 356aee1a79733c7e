package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore keeps blobs on the local filesystem under
// baseDir/YYYY/MM/DD/<key> and serves them from staticBase.
type LocalStore struct {
	baseDir    string
	staticBase string
}

func NewLocalStore(baseDir, staticBase string) *LocalStore {
	return &LocalStore{baseDir: baseDir, staticBase: staticBase}
}

// BaseDir is the directory the HTTP server should expose at the static base.
func (s *LocalStore) BaseDir() string { return s.baseDir }

func (s *LocalStore) Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	absPath := filepath.Join(absDir, key)
	// keys may carry a subdirectory prefix (e.g. qr/)
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath := relDir + "/" + key
	return s.staticBase + "/" + relPath, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	// Key collisions across dates are impossible (keys carry a UUID), so a
	// glob over the dated directories is enough to find the file.
	matches, err := filepath.Glob(filepath.Join(s.baseDir, "*", "*", "*", key))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *LocalStore) TransformURL(baseURL string, t Transform) string {
	return appendTransformQuery(baseURL, t)
}

// appendTransformQuery encodes the transformation as query parameters for the
// image proxy fronting the static files.
func appendTransformQuery(baseURL string, t Transform) string {
	v := url.Values{}
	if t.Width > 0 {
		v.Set("w", fmt.Sprintf("%d", t.Width))
	}
	if t.Height > 0 {
		v.Set("h", fmt.Sprintf("%d", t.Height))
	}
	if t.Filter != "" {
		v.Set("filter", t.Filter)
	}
	if len(v) == 0 {
		return baseURL
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + v.Encode()
}
