package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BlobInfo describes one stored media object.
type BlobInfo struct {
	Pathname   string    `json:"pathname"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// BlobStore abstracts the media object store used by the portfolio.
type BlobStore interface {
	Put(ctx context.Context, pathname string, r io.Reader) (*BlobInfo, error)
	Delete(ctx context.Context, pathname string) error
	List(ctx context.Context) ([]BlobInfo, error)
}

// FSBlobStore keeps blobs on the local filesystem under a root directory
// and addresses them publicly through a base URL the HTTP layer serves.
type FSBlobStore struct {
	root    string
	baseURL string
}

// NewFSBlobStore creates the root directory if needed.
func NewFSBlobStore(root, baseURL string) (*FSBlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FSBlobStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put streams the reader into root/pathname, creating parent directories.
func (s *FSBlobStore) Put(_ context.Context, pathname string, r io.Reader) (*BlobInfo, error) {
	full, err := s.resolve(pathname)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(full)
		return nil, fmt.Errorf("write blob: %w", err)
	}

	return &BlobInfo{
		Pathname:   pathname,
		URL:        s.URLFor(pathname),
		Size:       size,
		UploadedAt: time.Now(),
	}, nil
}

// Delete removes a blob; deleting a missing blob is not an error.
func (s *FSBlobStore) Delete(_ context.Context, pathname string) error {
	full, err := s.resolve(pathname)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// List walks the store and returns every blob.
func (s *FSBlobStore) List(_ context.Context) ([]BlobInfo, error) {
	var blobs []BlobInfo
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		pathname := filepath.ToSlash(rel)
		blobs = append(blobs, BlobInfo{
			Pathname:   pathname,
			URL:        s.URLFor(pathname),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return blobs, nil
}

// URLFor maps a pathname to its public URL.
func (s *FSBlobStore) URLFor(pathname string) string {
	return s.baseURL + "/" + pathname
}

// Root exposes the storage directory for static file serving.
func (s *FSBlobStore) Root() string {
	return s.root
}

func (s *FSBlobStore) resolve(pathname string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(pathname))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob pathname %q", pathname)
	}
	return filepath.Join(s.root, clean), nil
}
