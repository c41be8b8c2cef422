package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BielosX/wombat/pokedex/src/s3"
)

// Store persists one exported file under key.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
}

type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(client *s3.Client, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	if err := s.client.PutFile(ctx, body, s.bucket, key, contentType); err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// DirStore writes files below a local directory, creating parents as needed.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (s *DirStore) Put(_ context.Context, key string, body io.Reader, _ string) error {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, body); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
