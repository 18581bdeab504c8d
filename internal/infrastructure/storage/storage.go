// Package storage persists uploaded bootcamp photos. Two backends: Google
// Cloud Storage when a bucket is configured, local disk otherwise.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"

	"github.com/campdir/campdir-api/pkg/helpers"
)

// Store writes a named object and returns where it ended up.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// GCSStore keeps photos in a cloud bucket under the photos/ prefix.
type GCSStore struct {
	Client *gcs.Client
	Bucket string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

func (s *GCSStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	object := "photos/" + name
	return helpers.UploadObject(ctx, s.Client, s.Bucket, object, contentType, r)
}

// DiskStore writes photos under a local directory.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{Dir: dir}
}

func (s *DiskStore) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
