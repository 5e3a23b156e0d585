package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ ObjectStore = (*DirStore)(nil)

// DirStore writes objects to a local directory. It is the development
// substitute for S3 when no AWS credentials are configured; the API serves
// the directory under /files so the derived URLs resolve.
type DirStore struct {
	root    string
	baseURL string
}

// NewDirStore creates a directory-backed object store. baseURL is the public
// prefix under which the directory is served (e.g. http://localhost:8000/files).
func NewDirStore(root, baseURL string) (*DirStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DirStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory objects are written to.
func (d *DirStore) Root() string { return d.root }

// Upload writes the payload to root/key and returns its public URL.
// The content type is ignored; the file server sniffs it on read.
func (d *DirStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write object %q: %w", key, err)
	}
	return d.PublicURL(key), nil
}

// PublicURL derives the served URL for a key.
func (d *DirStore) PublicURL(key string) string {
	return d.baseURL + "/" + key
}
