// Package storage keeps post attachments on the local filesystem, outside the
// relational store. Files are addressed by a generated name that is recorded
// in posts.image.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("invalid attachment name")

type Uploads struct {
	dir string
}

// NewUploads creates dir if it does not exist.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

// Save copies r into a new file and returns its generated name. Only the
// extension of originalName is kept.
func (u *Uploads) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + sanitizeExt(originalName)

	f, err := os.OpenFile(filepath.Join(u.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write attachment: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close attachment: %w", err)
	}

	return name, nil
}

// Path resolves a stored name to its location on disk.
func (u *Uploads) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	return filepath.Join(u.dir, name), nil
}

func (u *Uploads) Open(name string) (*os.File, error) {
	path, err := u.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (u *Uploads) Remove(name string) error {
	path, err := u.Path(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
