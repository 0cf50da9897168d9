package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// FileBackend stores one readable JSON file per key in a directory.
type FileBackend struct {
	disk *diskv.Diskv
}

var unsafeKeyChars = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

// NewFileBackend creates dir if needed. Writes go through a temp directory
// inside dir and are renamed into place.
func NewFileBackend(dir string) (*FileBackend, error) {
	tmp := filepath.Join(dir, ".tmp")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	disk := diskv.New(diskv.Options{
		BasePath:  dir,
		Transform: func(string) []string { return []string{} },
		TempDir:   tmp,
		PathPerm:  0o755,
		FilePerm:  0o644,
	})
	return &FileBackend{disk: disk}, nil
}

// fileKey flattens key to a file name directly under the data dir.
func fileKey(key string) string {
	return unsafeKeyChars.Replace(key) + ".json"
}

func (f *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := f.disk.Read(fileKey(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileBackend) Set(_ context.Context, key string, data []byte) error {
	return f.disk.Write(fileKey(key), data)
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	err := f.disk.Erase(fileKey(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileBackend) Close() error { return nil }
