// Package avatars stores uploaded profile pictures on local disk.
package avatars

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "task-manager.com/task-manager/internal/errors"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type FileStore struct {
	dir          string
	publicPrefix string
	maxBytes     int64
}

func NewFileStore(dir, publicPrefix string, maxBytes int64) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory: %w", err)
	}

	return &FileStore{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		maxBytes:     maxBytes,
	}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes the upload under a fresh name and returns its public URL.
func (s *FileStore) Save(filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", apperrors.ErrInvalidAvatar
	}
	if size > s.maxBytes {
		return "", apperrors.ErrInvalidAvatar
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create avatar file: %w", err)
	}

	// Read one byte past the limit so a lying size header is still caught.
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}
	if n > s.maxBytes {
		_ = os.Remove(path)
		return "", apperrors.ErrInvalidAvatar
	}

	return s.publicPrefix + "/" + name, nil
}

// Remove deletes an avatar previously returned by Save. URLs this store did
// not issue, such as external avatar links, are left alone.
func (s *FileStore) Remove(url string) error {
	name, ok := strings.CutPrefix(url, s.publicPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove avatar file: %w", err)
	}
	return nil
}
