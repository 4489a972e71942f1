package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is the blob collaborator for changelog images. Callers only record
// and clear the returned path; everything else about the bytes is the
// store's concern.
type Store interface {
	Put(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// DiskStore keeps uploads on the local filesystem under a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Put writes the blob under a random name that keeps the original extension,
// and returns the path to record.
func (s *DiskStore) Put(_ context.Context, filename string, r io.Reader) (string, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	name := hex.EncodeToString(buf) + strings.ToLower(filepath.Ext(filename))

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return name, nil
}

// Delete removes a previously stored blob. A missing file is not an error;
// the record it backed is already gone or never existed.
func (s *DiskStore) Delete(_ context.Context, path string) error {
	// Refuse anything that escapes the upload dir.
	if strings.Contains(path, "..") || strings.ContainsRune(path, os.PathSeparator) {
		return fmt.Errorf("invalid storage path: %s", path)
	}
	err := os.Remove(filepath.Join(s.dir, path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Dir returns the root directory, for serving files over HTTP.
func (s *DiskStore) Dir() string {
	return s.dir
}
