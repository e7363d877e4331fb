// Package storage persists uploaded politician images under a configured
// directory. Files get uuid names so user-supplied filenames never touch the
// filesystem.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	Dir string
}

func NewStore(dir string) *Store { return &Store{Dir: dir} }

// Save writes the uploaded file and returns the stored filename.
// The original extension is kept (lowercased) for content-type sniffing by
// the media file server.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file; missing files are not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
