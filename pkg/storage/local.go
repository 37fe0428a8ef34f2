// Package storage keeps media blobs on the local filesystem.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/sanitize"
)

// BlobStore persists a blob and returns the URL it is served under.
type BlobStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory served under the store's base URL.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes data under a collision-free name derived from filename.
func (s *LocalStore) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}

	name := hex.EncodeToString(suffix) + "_" + sanitize.Filename(filename, "file")
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
