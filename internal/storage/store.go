package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the blob-storage collaborator for product photos.
type Store interface {
	Upload(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, paths []string) error
	PublicURL(path string) string
}

// FSStore keeps objects on the local filesystem under root/<bucket>/<key>.
// Public URLs use the /storage/object/public/{bucket}/{key} shape so that
// ResolvePhotoRef round-trips them.
type FSStore struct {
	root    string
	baseURL string
}

func NewFSStore(root, baseURL string) (*FSStore, error) {
	dir := filepath.Join(root, PhotoBucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &FSStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// BucketDir is the on-disk directory backing the photo bucket; the router
// serves it under the public URL prefix.
func (s *FSStore) BucketDir() string {
	return filepath.Join(s.root, PhotoBucket)
}

// objectPath rejects keys that escape the bucket directory.
func (s *FSStore) objectPath(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.BucketDir(), clean), nil
}

func (s *FSStore) Upload(_ context.Context, key string, data []byte) error {
	path, err := s.objectPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *FSStore) Remove(_ context.Context, keys []string) error {
	for _, key := range keys {
		path, err := s.objectPath(key)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *FSStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/object/public/%s/%s", s.baseURL, PhotoBucket, strings.TrimLeft(key, "/"))
}
